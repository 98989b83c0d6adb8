// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/token-guard/internal/config"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/utils"
	"github.com/MKhiriev/token-guard/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetadata = models.RequestMetadata{
	TokenClaim: "unknown",
	UserAgent:  "token-guard-console",
	IP:         "127.0.0.1",
	Hostname:   "ops-laptop",
	Path:       "/",
}

// newTestAdapter creates an adapter pointed at the test server with basic
// auth credentials admin/secret.
func newTestAdapter(t *testing.T, serverURL string) AdminAdapter {
	t.Helper()
	a, err := NewHTTPAdminAdapter(
		config.ConsoleAdapter{Address: serverURL, Metadata: testMetadata},
		config.ConsoleApp{AdminUsername: "admin", AdminPassword: "secret"},
		logger.Nop(),
	)
	require.NoError(t, err)
	return a
}

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ── constructor ──────────────────────────────────────────────────────────────

func TestNewHTTPAdminAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPAdminAdapter(config.ConsoleAdapter{Address: ""}, config.ConsoleApp{}, nil)
	assert.Error(t, err)
}

// ── reads ────────────────────────────────────────────────────────────────────

func TestFetchTokens_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/AdminUsers", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin", user)
		assert.Equal(t, "secret", pass)
		assert.NotEmpty(t, r.Header.Get(utils.RequestIDHeader))

		_, _ = io.WriteString(w, `{"status":200,"tokens":[
			{"username":"alice","token":"t-1","status":"ok","access_count_1m":4,"access_count_5m":9,"access_count_15m":20,"concurrent_users":1},
			{"username":"bob","token":"t-2","status":"banned","access_count_1m":0,"access_count_5m":0,"access_count_15m":0,"concurrent_users":0}
		]}`)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).FetchTokens(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t-1", got[0].Token)
	assert.Equal(t, 20, got[0].AccessCount15m)
	assert.True(t, got[1].Banned())
}

func TestFetchTokens_RequestIDFromContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(utils.RequestIDHeader))
		_, _ = io.WriteString(w, `{"status":200,"tokens":[]}`)
	}))
	defer srv.Close()

	ctx := utils.WithRequestID(context.Background(), "req-42")
	got, err := newTestAdapter(t, srv.URL).FetchTokens(ctx)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchPolicies_Success(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"status":200,"policies":[
		{"id":"auto_concurrency","name":"Concurrency","active":true,"max_concurrent":3,
		 "auto_ban_enabled":true,"geo_ban_enabled":false,"created_at":"2025-01-01","updated_at":"2025-01-02"}
	]}`)

	got, err := newTestAdapter(t, srv.URL).FetchPolicies(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.PolicyKindAuto, got[0].Kind())
	assert.Equal(t, 3, got[0].MaxConcurrent)
}

func TestFetchHistory_Success(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"status":200,"data":[
		{"id":"h1","timestamp":"2025-01-01T00:00:00Z","type":"ban","token":"t-1","reason":"manual","by":"admin","details":{"ip":"1.2.3.4"}}
	]}`)

	got, err := newTestAdapter(t, srv.URL).FetchHistory(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `{"ip":"1.2.3.4"}`, got[0].DetailsText())
}

func TestFetchGeoLocations_Success(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"status":200,"data":["US","DE"]}`)

	got, err := newTestAdapter(t, srv.URL).FetchGeoLocations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.GeoLocation{"US", "DE"}, got)
}

// ── read failures ────────────────────────────────────────────────────────────

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantIs   error
		wantCode int
	}{
		{
			name:     "message from body",
			status:   http.StatusInternalServerError,
			body:     `{"message":"database down"}`,
			wantMsg:  "database down",
			wantIs:   ErrServerError,
			wantCode: 500,
		},
		{
			name:     "status fallback",
			status:   http.StatusBadGateway,
			body:     `<html>bad gateway</html>`,
			wantMsg:  "HTTP error 502",
			wantIs:   ErrServerError,
			wantCode: 502,
		},
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     ``,
			wantMsg:  "HTTP error 401",
			wantIs:   ErrUnauthorized,
			wantCode: 401,
		},
		{
			name:     "envelope status",
			status:   http.StatusOK,
			body:     `{"status":403,"message":"admin only"}`,
			wantMsg:  "admin only",
			wantIs:   ErrForbidden,
			wantCode: 403,
		},
		{
			name:    "missing array",
			status:  http.StatusOK,
			body:    `{"status":200}`,
			wantMsg: "invalid response structure",
			wantIs:  ErrInvalidResponse,
		},
		{
			name:    "status not numeric",
			status:  http.StatusOK,
			body:    `{"status":"200","tokens":[]}`,
			wantMsg: "invalid response structure",
			wantIs:  ErrInvalidResponse,
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `tokens`,
			wantMsg: "invalid response structure",
			wantIs:  ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveJSON(t, tt.status, tt.body)

			_, err := newTestAdapter(t, srv.URL).FetchTokens(context.Background())

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.ErrorIs(t, err, tt.wantIs)

			var httpErr *HTTPError
			if tt.wantCode != 0 {
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, tt.wantCode, httpErr.StatusCode)
			}
		})
	}
}

func TestFetch_Aborted(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := newTestAdapter(t, srv.URL).FetchTokens(ctx)

	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_TransportErrorWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).FetchPolicies(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch policies request")
	assert.NotErrorIs(t, err, ErrAborted)
}

// ── mutations ────────────────────────────────────────────────────────────────

func TestBanToken_SendsMetadata(t *testing.T) {
	jwtToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).SignedString([]byte("k"))
	require.NoError(t, err)

	var got models.BanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/BanToken", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _, ok := r.BasicAuth()
		assert.True(t, ok)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"status":200,"message":"banned"}`)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).BanToken(context.Background(), jwtToken))

	assert.Equal(t, models.BanRequest{
		Token:            jwtToken,
		TokenClaim:       "alice",
		RequestUserAgent: "token-guard-console",
		RequestIP:        "127.0.0.1",
		RequestHostname:  "ops-laptop",
		RequestPath:      "/",
	}, got)
}

func TestUnbanToken_OpaqueTokenUsesPlaceholderClaim(t *testing.T) {
	var got models.BanRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/UnbanToken", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, newTestAdapter(t, srv.URL).UnbanToken(context.Background(), "opaque-token"))
	assert.Equal(t, "unknown", got.TokenClaim)
}

func TestBanToken_NotFound(t *testing.T) {
	srv := serveJSON(t, http.StatusInternalServerError, `{"message":"token not found"}`)

	err := newTestAdapter(t, srv.URL).BanToken(context.Background(), "t-1")

	require.Error(t, err)
	assert.Equal(t, "token not found", err.Error())
}

func TestMutation_ResponseBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "empty body", body: ``},
		{name: "plain text", body: `ok`},
		{name: "success envelope", body: `{"status":200}`},
		{name: "failure envelope", body: `{"status":409,"message":"already active"}`, wantErr: "already active"},
		{name: "failure without message", body: `{"status":500}`, wantErr: "HTTP error 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveJSON(t, http.StatusOK, tt.body)

			err := newTestAdapter(t, srv.URL).EnablePolicy(context.Background(), "auto_geo")

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestPolicyToggles_SendID(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body models.PolicyIDRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "demo_rate", body.ID)
		paths = append(paths, r.URL.Path)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.EnablePolicy(context.Background(), "demo_rate"))
	require.NoError(t, a.DisablePolicy(context.Background(), "demo_rate"))

	assert.Equal(t, []string{"/PolicyEnable", "/PolicyDisable"}, paths)
}

func TestApplyPolicyToToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ApplyPolicyToToken", r.URL.Path)
		var body models.ApplyPolicyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "t-9", body.Token)
	}))
	defer srv.Close()

	assert.NoError(t, newTestAdapter(t, srv.URL).ApplyPolicyToToken(context.Background(), "t-9"))
}

func TestUpdateGeoLocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/GeoLocation", r.URL.Path)
		var body models.GeoLocationsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"US", "CN"}, body.Locations)
		_, _ = io.WriteString(w, `{"status":200,"message":"updated"}`)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).UpdateGeoLocations(context.Background(), []models.GeoLocation{"US", "CN"})
	assert.NoError(t, err)
}

// ── HTTPError ────────────────────────────────────────────────────────────────

func TestHTTPError_Is(t *testing.T) {
	assert.ErrorIs(t, newHTTPError(401, ""), ErrUnauthorized)
	assert.ErrorIs(t, newHTTPError(403, ""), ErrForbidden)
	assert.ErrorIs(t, newHTTPError(404, ""), ErrNotFound)
	assert.ErrorIs(t, newHTTPError(503, ""), ErrServerError)
	assert.NotErrorIs(t, newHTTPError(400, ""), ErrServerError)
	assert.Equal(t, "HTTP error 400", newHTTPError(400, "").Error())
}
