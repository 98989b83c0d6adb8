package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/token-guard/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx response into *HTTPError. The message is
// taken from a {"message": ...} body when present.
func mapHTTPError(resp *resty.Response) error {
	if isSuccess(resp.StatusCode()) {
		return nil
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return newHTTPError(resp.StatusCode(), "")
	}

	return newHTTPError(resp.StatusCode(), strings.TrimSpace(body.Message))
}

// mapMutationResponse checks the optional {status, message} body of a 2xx
// mutation response. Empty and non-JSON bodies count as success.
func mapMutationResponse(resp *resty.Response) error {
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	raw := resp.Body()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}

	var body models.StatusResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	if body.Status != nil && !isSuccess(*body.Status) {
		return newHTTPError(*body.Status, strings.TrimSpace(body.Message))
	}

	return nil
}

// mapTransportError classifies a resty error. Cancellation of ctx becomes
// ErrAborted; everything else is wrapped with the operation name.
func mapTransportError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	return fmt.Errorf("%s request: %w", op, err)
}
