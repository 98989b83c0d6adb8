package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/token-guard/internal/config"
	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/mock"
	"github.com/MKhiriev/token-guard/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testEngines = config.ConsoleEngines{
	Tokens:   config.EngineConfig{PageSize: 10},
	Policies: config.EngineConfig{PageSize: 10},
	History:  config.EngineConfig{PageSize: 20},
	Geo:      config.EngineConfig{PageSize: 10},
}

func makeTokens(n int) []models.TokenActivity {
	out := make([]models.TokenActivity, n)
	for i := range out {
		out[i] = models.TokenActivity{
			Username: fmt.Sprintf("user-%02d", i+1),
			Token:    fmt.Sprintf("t-%02d", i+1),
			Status:   models.TokenStatusActive,
		}
	}
	return out
}

// countingObserver counts journal failures and mutation outcomes.
type countingObserver struct {
	engine.NopRecorder

	journalFailures atomic.Int64

	mu        sync.Mutex
	mutations []engine.Outcome
}

func (o *countingObserver) JournalFailed() { o.journalFailures.Add(1) }

func (o *countingObserver) MutationObserved(_ string, outcome engine.Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mutations = append(o.mutations, outcome)
}

// journalCapture collects recorded entries from a mock repository.
type journalCapture struct {
	mu      sync.Mutex
	entries []models.JournalEntry
}

func (c *journalCapture) expect(repo *mock.MockJournalRepository) {
	repo.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e models.JournalEntry) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.entries = append(c.entries, e)
		return nil
	}).AnyTimes()
}

func (c *journalCapture) last(t *testing.T) models.JournalEntry {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.entries, "nothing journaled")
	return c.entries[len(c.entries)-1]
}

func (c *journalCapture) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// tokenSource backs FetchTokens and can be changed mid-test.
type tokenSource struct {
	mu     sync.Mutex
	tokens []models.TokenActivity
	n      int
}

func (s *tokenSource) set(tokens []models.TokenActivity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
}

func (s *tokenSource) fetch(context.Context) ([]models.TokenActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	out := make([]models.TokenActivity, len(s.tokens))
	copy(out, s.tokens)
	return out, nil
}

func (s *tokenSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

type fixture struct {
	tokens   *tokenSource
	admin    *mock.MockAdminAdapter
	repo     *mock.MockJournalRepository
	journal  *journalCapture
	observer *countingObserver
	svc      *ConsoleServices
}

// newFixture wires services over mocks. FetchTokens is served from
// f.tokens, initially holding tokens.
func newFixture(t *testing.T, tokens []models.TokenActivity) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		tokens:   &tokenSource{tokens: tokens},
		admin:    mock.NewMockAdminAdapter(ctrl),
		repo:     mock.NewMockJournalRepository(ctrl),
		journal:  &journalCapture{},
		observer: &countingObserver{},
	}
	f.admin.EXPECT().FetchTokens(gomock.Any()).DoAndReturn(f.tokens.fetch).AnyTimes()

	f.svc = NewConsoleServices(f.admin, f.repo, testEngines, f.observer, logger.Nop())
	t.Cleanup(f.svc.Workers.Stop)
	t.Cleanup(func() {
		f.svc.Engines.Tokens.Stop()
		f.svc.Engines.Policies.Stop()
		f.svc.Engines.History.Stop()
		f.svc.Engines.Geo.Stop()
	})
	return f
}

// loadTokens performs the initial fetch without journaling it.
func (f *fixture) loadTokens(t *testing.T) {
	t.Helper()
	require.NoError(t, f.svc.Engines.Tokens.Refresh(context.Background()))
}

func mustToken(t *testing.T, f *fixture, token string) models.TokenActivity {
	t.Helper()
	tok, ok := f.svc.Engines.Tokens.Get(token)
	require.True(t, ok, "token %s not found", token)
	return tok
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}
