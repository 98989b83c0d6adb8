package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// envelopeSchema describes {status:number, message?:string, <field>:[...]}.
// The array is only required when status is 2xx; error envelopes may omit it.
const envelopeSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["status"],
  "properties": {
    "status": {"type": "number"},
    "message": {"type": "string"},
    "%[1]s": {"type": "array", "items": {"type": "%[2]s"}}
  },
  "if": {"properties": {"status": {"minimum": 200, "exclusiveMaximum": 300}}},
  "then": {"required": ["%[1]s"]}
}`

// invalidResponseError keeps the validation detail for logs while showing
// the operator only ErrInvalidResponse's message.
type invalidResponseError struct {
	detail string
}

func (e *invalidResponseError) Error() string { return ErrInvalidResponse.Error() }

func (e *invalidResponseError) Unwrap() error { return ErrInvalidResponse }

func invalidResponse(detail string) error {
	return &invalidResponseError{detail: firstLine(detail)}
}

// envelope validates and decodes one collection endpoint's response.
type envelope struct {
	name   string
	schema *jsonschema.Schema
}

func compileEnvelope(name, field, itemType string) (*envelope, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(fmt.Sprintf(envelopeSchema, field, itemType)))
	if err != nil {
		return nil, fmt.Errorf("parse %s envelope schema: %w", field, err)
	}

	url := "https://token-guard.local/schemas/" + name + ".json"
	c := jsonschema.NewCompiler()
	if err = c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add %s envelope schema: %w", field, err)
	}

	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s envelope schema: %w", field, err)
	}

	return &envelope{name: name, schema: sch}, nil
}

// decode validates body and unmarshals it into dst, which must be one of the
// models.*Response envelopes. A non-2xx status inside the envelope is
// reported as *HTTPError.
func (e *envelope) decode(body []byte, dst any) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return invalidResponse(err.Error())
	}
	if err = e.schema.Validate(inst); err != nil {
		return invalidResponse(err.Error())
	}

	var head struct {
		Status  float64 `json:"status"`
		Message string  `json:"message"`
	}
	if err = json.Unmarshal(body, &head); err != nil {
		return invalidResponse(err.Error())
	}
	if status := int(head.Status); !isSuccess(status) {
		return newHTTPError(status, strings.TrimSpace(head.Message))
	}

	if err = json.Unmarshal(body, dst); err != nil {
		return invalidResponse(err.Error())
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

type envelopes struct {
	tokens   *envelope
	policies *envelope
	history  *envelope
	geo      *envelope
}

func compileEnvelopes() (*envelopes, error) {
	var (
		set envelopes
		err error
	)
	if set.tokens, err = compileEnvelope("tokens", "tokens", "object"); err != nil {
		return nil, err
	}
	if set.policies, err = compileEnvelope("policies", "policies", "object"); err != nil {
		return nil, err
	}
	if set.history, err = compileEnvelope("history", "data", "object"); err != nil {
		return nil, err
	}
	if set.geo, err = compileEnvelope("geo", "data", "string"); err != nil {
		return nil, err
	}
	return &set, nil
}
