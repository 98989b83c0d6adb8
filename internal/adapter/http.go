package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/MKhiriev/token-guard/internal/config"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/utils"
	"github.com/MKhiriev/token-guard/models"
	"github.com/go-resty/resty/v2"
)

type httpAdminAdapter struct {
	client    *utils.HTTPClient
	envelopes *envelopes
	metadata  models.RequestMetadata

	logger *logger.Logger
}

// NewHTTPAdminAdapter constructs the resty implementation of [AdminAdapter].
//
// The base URL comes from adapterCfg.Address; a zero RequestTimeout leaves
// calls without a client-side timeout. Basic auth is attached to every
// request when appCfg carries credentials.
func NewHTTPAdminAdapter(adapterCfg config.ConsoleAdapter, appCfg config.ConsoleApp, log *logger.Logger) (AdminAdapter, error) {
	baseURL := utils.NormalizeBaseURL(adapterCfg.Address)
	if u, err := url.Parse(baseURL); err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid adapter address %q", adapterCfg.Address)
	}

	set, err := compileEnvelopes()
	if err != nil {
		return nil, fmt.Errorf("compile envelope schemas: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout, utils.NewUUIDGenerator())
	if appCfg.HasCredentials() {
		client.SetBasicAuth(appCfg.AdminUsername, appCfg.AdminPassword)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &httpAdminAdapter{
		client:    client,
		envelopes: set,
		metadata:  adapterCfg.Metadata,
		logger:    log.WithComponent("admin-adapter"),
	}, nil
}

func (h *httpAdminAdapter) FetchTokens(ctx context.Context) ([]models.TokenActivity, error) {
	var body models.TokensResponse
	if err := h.fetch(ctx, "fetch tokens", "/AdminUsers", h.envelopes.tokens, &body); err != nil {
		return nil, err
	}
	return body.Tokens, nil
}

func (h *httpAdminAdapter) FetchPolicies(ctx context.Context) ([]models.Policy, error) {
	var body models.PoliciesResponse
	if err := h.fetch(ctx, "fetch policies", "/PolicyResource", h.envelopes.policies, &body); err != nil {
		return nil, err
	}
	return body.Policies, nil
}

func (h *httpAdminAdapter) FetchHistory(ctx context.Context) ([]models.HistoryLogItem, error) {
	var body models.HistoryResponse
	if err := h.fetch(ctx, "fetch history", "/HistoryLogs", h.envelopes.history, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

func (h *httpAdminAdapter) FetchGeoLocations(ctx context.Context) ([]models.GeoLocation, error) {
	var body models.GeoLocationsResponse
	if err := h.fetch(ctx, "fetch geo locations", "/GeoLocation", h.envelopes.geo, &body); err != nil {
		return nil, err
	}
	return models.GeoLocationsFromStrings(body.Data), nil
}

func (h *httpAdminAdapter) BanToken(ctx context.Context, token string) error {
	return h.mutate(ctx, "ban token", resty.MethodPost, "/BanToken", h.banRequest(token))
}

func (h *httpAdminAdapter) UnbanToken(ctx context.Context, token string) error {
	return h.mutate(ctx, "unban token", resty.MethodPost, "/UnbanToken", h.banRequest(token))
}

func (h *httpAdminAdapter) EnablePolicy(ctx context.Context, id string) error {
	return h.mutate(ctx, "enable policy", resty.MethodPost, "/PolicyEnable", models.PolicyIDRequest{ID: id})
}

func (h *httpAdminAdapter) DisablePolicy(ctx context.Context, id string) error {
	return h.mutate(ctx, "disable policy", resty.MethodPost, "/PolicyDisable", models.PolicyIDRequest{ID: id})
}

func (h *httpAdminAdapter) ApplyPolicyToToken(ctx context.Context, token string) error {
	return h.mutate(ctx, "apply policy", resty.MethodPost, "/ApplyPolicyToToken", models.ApplyPolicyRequest{Token: token})
}

func (h *httpAdminAdapter) UpdateGeoLocations(ctx context.Context, locations []models.GeoLocation) error {
	req := models.GeoLocationsRequest{Locations: models.GeoLocationStrings(locations)}
	return h.mutate(ctx, "update geo locations", resty.MethodPut, "/GeoLocation", req)
}

func (h *httpAdminAdapter) banRequest(token string) models.BanRequest {
	return models.BanRequest{
		Token:            token,
		TokenClaim:       tokenClaim(token, h.metadata.TokenClaim),
		RequestUserAgent: h.metadata.UserAgent,
		RequestIP:        h.metadata.IP,
		RequestHostname:  h.metadata.Hostname,
		RequestPath:      h.metadata.Path,
	}
}

// fetch GETs path and decodes its envelope into dst.
func (h *httpAdminAdapter) fetch(ctx context.Context, op, path string, env *envelope, dst any) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return mapTransportError(ctx, op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().Str("op", op).Int("status", resp.StatusCode()).Err(err).Msg("admin api rejected request")
		return err
	}

	if err = env.decode(resp.Body(), dst); err != nil {
		var invalid *invalidResponseError
		if errors.As(err, &invalid) {
			h.logger.Warn().Str("op", op).Str("detail", invalid.detail).Msg("malformed envelope")
		}
		return err
	}
	return nil
}

func (h *httpAdminAdapter) mutate(ctx context.Context, op, method, path string, body any) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Execute(method, path)
	if err != nil {
		return mapTransportError(ctx, op, err)
	}
	if err = mapMutationResponse(resp); err != nil {
		h.logger.Debug().Str("op", op).Int("status", resp.StatusCode()).Err(err).Msg("admin api rejected mutation")
		return err
	}
	return nil
}
