// Package source provides a synthetic admin API for demos and offline work.
//
// [SyntheticAdapter] implements adapter.AdminAdapter entirely in memory. Every
// token fetch advances a random walk over the access counters, so the tokens
// engine sees live-looking traffic without a server.
package source

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/token-guard/internal/adapter"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/utils"
	"github.com/MKhiriev/token-guard/models"
)

// DefaultTokenCount is the size of the generated token list.
const DefaultTokenCount = 23

var fruits = []string{
	"Apple", "Banana", "Cherry", "Fig", "Grape", "Honeydew", "Jackfruit",
	"Kiwi", "Lemon", "Mango", "Nectarine", "Orange", "Papaya", "Raspberry",
}

var users = []string{"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi"}

// SyntheticAdapter is an in-memory adapter.AdminAdapter.
type SyntheticAdapter struct {
	mu       sync.Mutex
	rng      *rand.Rand
	ids      *utils.UUIDGenerator
	now      func() time.Time
	tokens   []models.TokenActivity
	policies []models.Policy
	history  []models.HistoryLogItem
	geo      []models.GeoLocation

	logger *logger.Logger
}

// NewSyntheticAdapter seeds a synthetic API with tokens generated entries.
// The same seed always yields the same data and walk.
func NewSyntheticAdapter(seed uint64, tokens int, log *logger.Logger) *SyntheticAdapter {
	if tokens <= 0 {
		tokens = DefaultTokenCount
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &SyntheticAdapter{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		logger: log.WithComponent("synthetic-source"),
	}
	s.seed(tokens)
	return s
}

func (s *SyntheticAdapter) seed(n int) {
	seen := make(map[string]bool, n)
	for len(s.tokens) < n {
		name := fmt.Sprintf("id-R_%s_%s_%s", s.pick(fruits), s.pick(fruits), s.pick(fruits))
		if seen[name] {
			continue
		}
		seen[name] = true

		status := models.TokenStatusActive
		if s.rng.IntN(6) == 0 {
			status = models.TokenStatusBanned
		}
		s.tokens = append(s.tokens, models.TokenActivity{
			Username:        s.pick(users),
			Token:           name,
			Status:          status,
			AccessCount1m:   s.rng.IntN(40),
			AccessCount5m:   50 + s.rng.IntN(500),
			AccessCount15m:  200 + s.rng.IntN(4000),
			ConcurrentUsers: s.rng.IntN(7),
		})
	}

	created := s.now().Add(-72 * time.Hour).UTC().Format(time.RFC3339)
	s.policies = []models.Policy{
		{ID: "auto_concurrency", Name: "Concurrent sessions", Active: true, MaxConcurrent: 5, AutoBanEnabled: true, CreatedAt: created, UpdatedAt: created},
		{ID: "auto_geo", Name: "Geo restriction", Active: false, MaxConcurrent: 0, GeoBanEnabled: true, CreatedAt: created, UpdatedAt: created},
		{ID: "demo_rate", Name: "Rate limit demo", Active: false, MaxConcurrent: 3, AutoBanEnabled: true, CreatedAt: created, UpdatedAt: created},
	}
	s.geo = []models.GeoLocation{"CN", "KP", "RU"}
}

func (s *SyntheticAdapter) pick(from []string) string {
	return from[s.rng.IntN(len(from))]
}

// signedDelta returns a magnitude in [0, limit) that is positive with probability
// 0.3, matching the decay-heavy walk of the live dashboard.
func (s *SyntheticAdapter) signedDelta(limit int) int {
	d := s.rng.IntN(limit)
	if s.rng.Float64() > 0.7 {
		return d
	}
	return -d
}

// step advances the random walk once. Each token changes with probability
// 0.5, one counter at a time, and counters never go negative.
func (s *SyntheticAdapter) step() {
	for i := range s.tokens {
		if s.rng.Float64() <= 0.5 {
			continue
		}
		t := &s.tokens[i]
		switch s.rng.IntN(4) {
		case 0:
			delta := -1
			if s.rng.Float64() > 0.7 {
				delta = 1
			}
			if t.ConcurrentUsers+delta >= 1 {
				t.ConcurrentUsers += delta
			}
		case 1:
			t.AccessCount1m = max(0, t.AccessCount1m+s.signedDelta(5))
		case 2:
			t.AccessCount5m = max(0, t.AccessCount5m+s.signedDelta(10))
		case 3:
			t.AccessCount15m = max(0, t.AccessCount15m+s.signedDelta(15))
		}
	}
}

func aborted(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return adapter.ErrAborted
	}
	return ctx.Err()
}

func (s *SyntheticAdapter) FetchTokens(ctx context.Context) ([]models.TokenActivity, error) {
	if err := aborted(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.step()
	return slices.Clone(s.tokens), nil
}

func (s *SyntheticAdapter) FetchPolicies(ctx context.Context) ([]models.Policy, error) {
	if err := aborted(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.policies), nil
}

func (s *SyntheticAdapter) FetchHistory(ctx context.Context) ([]models.HistoryLogItem, error) {
	if err := aborted(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history), nil
}

func (s *SyntheticAdapter) FetchGeoLocations(ctx context.Context) ([]models.GeoLocation, error) {
	if err := aborted(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.geo), nil
}

func (s *SyntheticAdapter) BanToken(ctx context.Context, token string) error {
	return s.setTokenStatus(ctx, token, models.TokenStatusBanned, "ban")
}

func (s *SyntheticAdapter) UnbanToken(ctx context.Context, token string) error {
	return s.setTokenStatus(ctx, token, models.TokenStatusActive, "unban")
}

func (s *SyntheticAdapter) setTokenStatus(ctx context.Context, token, status, kind string) error {
	if err := aborted(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.tokenIndex(token)
	if i < 0 {
		return &adapter.HTTPError{StatusCode: http.StatusNotFound, Message: "token not found"}
	}
	s.tokens[i].Status = status
	s.appendHistory(kind, token, "manual "+kind, "admin")
	return nil
}

func (s *SyntheticAdapter) tokenIndex(token string) int {
	return slices.IndexFunc(s.tokens, func(t models.TokenActivity) bool { return t.Token == token })
}

func (s *SyntheticAdapter) EnablePolicy(ctx context.Context, id string) error {
	return s.setPolicyActive(ctx, id, true)
}

func (s *SyntheticAdapter) DisablePolicy(ctx context.Context, id string) error {
	return s.setPolicyActive(ctx, id, false)
}

func (s *SyntheticAdapter) setPolicyActive(ctx context.Context, id string, active bool) error {
	if err := aborted(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.policies, func(p models.Policy) bool { return p.ID == id })
	if i < 0 {
		return &adapter.HTTPError{StatusCode: http.StatusNotFound, Message: "policy not found"}
	}
	s.policies[i].Active = active
	s.policies[i].UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return nil
}

// ApplyPolicyToToken bans the token when an active auto-ban policy's
// concurrency limit is exceeded.
func (s *SyntheticAdapter) ApplyPolicyToToken(ctx context.Context, token string) error {
	if err := aborted(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.tokenIndex(token)
	if i < 0 {
		return &adapter.HTTPError{StatusCode: http.StatusNotFound, Message: "token not found"}
	}

	for _, p := range s.policies {
		if !p.Active || !p.AutoBanEnabled || p.MaxConcurrent <= 0 {
			continue
		}
		if s.tokens[i].ConcurrentUsers > p.MaxConcurrent && !s.tokens[i].Banned() {
			s.tokens[i].Status = models.TokenStatusBanned
			s.appendHistory("ban", token, "policy "+p.ID, "policy")
			s.logger.Debug().Str("token", token).Str("policy", p.ID).Msg("policy banned token")
			return nil
		}
	}
	return nil
}

func (s *SyntheticAdapter) UpdateGeoLocations(ctx context.Context, locations []models.GeoLocation) error {
	if err := aborted(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.geo = slices.Clone(locations)
	return nil
}

func (s *SyntheticAdapter) appendHistory(kind, token, reason, by string) {
	s.history = append(s.history, models.HistoryLogItem{
		ID:        s.ids.Generate(),
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
		Type:      kind,
		Token:     token,
		Reason:    reason,
		By:        by,
	})
}

var _ adapter.AdminAdapter = (*SyntheticAdapter)(nil)
