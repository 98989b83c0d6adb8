package tui

import (
	"context"
	"slices"
	"time"

	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/prefs"
	"github.com/MKhiriev/token-guard/internal/service"
	"github.com/MKhiriev/token-guard/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type tab int

const (
	tabTokens tab = iota
	tabPolicies
	tabHistory
	tabGeo
	tabJournal
	tabCount
)

var tabTitles = [tabCount]string{"Tokens", "Policies", "History", "Geo", "Journal"}

var tabPrefs = [tabCount]string{prefs.TabTokens, prefs.TabPolicies, prefs.TabHistory, prefs.TabGeo, prefs.TabJournal}

func tabFromPref(name string) tab {
	if i := slices.Index(tabPrefs[:], name); i >= 0 {
		return tab(i)
	}
	return tabTokens
}

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayVersion
	overlayConfirm
	overlayGeoInput
)

const journalLimit = 50

// pager is the part of an engine the model drives without knowing its
// entry type.
type pager interface {
	SetPage(page int) int
	ClearError()
	Status() engine.Status
	Changes() <-chan struct{}
}

type model struct {
	ctx    context.Context
	svc    *service.ConsoleServices
	build  models.AppBuildInfo
	logger *logger.Logger
	now    func() time.Time

	tab          tab
	cursor       [tabCount]int
	selected     map[string]struct{}
	paused       bool
	confirmBatch bool

	journal    []models.JournalEntry
	journalErr error

	pending   int
	spinner   spinner.Model
	status    string
	actionErr error

	overlay       overlay
	confirmAction string
	confirmRun    func(context.Context) error
	input         textinput.Model

	width int
}

func newModel(ctx context.Context, svc *service.ConsoleServices, p prefs.Prefs, build models.AppBuildInfo, log *logger.Logger) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	in := textinput.New()
	in.Placeholder = "US"
	in.CharLimit = 8
	in.Width = 12

	return model{
		ctx:          ctx,
		svc:          svc,
		build:        build,
		logger:       log,
		now:          time.Now,
		tab:          tabFromPref(p.Tab),
		selected:     make(map[string]struct{}),
		paused:       p.Paused,
		confirmBatch: p.ConfirmBatch,
		spinner:      sp,
		input:        in,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), m.spinner.Tick}
	for t := tabTokens; t < tabJournal; t++ {
		cmds = append(cmds, waitForChange(m.ctx, t, m.pager(t).Changes()))
	}
	if m.tab == tabJournal {
		cmds = append(cmds, loadJournal(m.ctx, m.svc.Journal, journalLimit))
	}
	return tea.Batch(cmds...)
}

// prefs returns what should be remembered for the next session.
func (m model) prefs() prefs.Prefs {
	return prefs.Prefs{Tab: tabPrefs[m.tab], Paused: m.paused, ConfirmBatch: m.confirmBatch}
}

func (m model) pager(t tab) pager {
	e := m.svc.Engines
	switch t {
	case tabTokens:
		return e.Tokens
	case tabPolicies:
		return e.Policies
	case tabHistory:
		return e.History
	case tabGeo:
		return e.Geo
	}
	return nil
}

// rows returns the number of rows visible on the current page of t.
func (m model) rows(t tab) int {
	e := m.svc.Engines
	switch t {
	case tabTokens:
		return len(e.Tokens.View().Items)
	case tabPolicies:
		return len(e.Policies.View().Items)
	case tabHistory:
		return len(e.History.View().Items)
	case tabGeo:
		return len(e.Geo.View().Items)
	case tabJournal:
		return len(m.journal)
	}
	return 0
}

func (m *model) clampCursor(t tab) {
	n := m.rows(t)
	switch {
	case n == 0:
		m.cursor[t] = 0
	case m.cursor[t] >= n:
		m.cursor[t] = n - 1
	case m.cursor[t] < 0:
		m.cursor[t] = 0
	}
}

func (m model) currentToken() (models.TokenActivity, bool) {
	items := m.svc.Engines.Tokens.View().Items
	if c := m.cursor[tabTokens]; c < len(items) {
		return items[c], true
	}
	return models.TokenActivity{}, false
}

func (m model) currentPolicy() (models.Policy, bool) {
	items := m.svc.Engines.Policies.View().Items
	if c := m.cursor[tabPolicies]; c < len(items) {
		return items[c], true
	}
	return models.Policy{}, false
}

func (m model) currentGeo() (models.GeoLocation, bool) {
	items := m.svc.Engines.Geo.View().Items
	if c := m.cursor[tabGeo]; c < len(items) {
		return items[c], true
	}
	return "", false
}

func (m model) selection() []string {
	out := make([]string, 0, len(m.selected))
	for token := range m.selected {
		out = append(out, token)
	}
	slices.Sort(out)
	return out
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case changeMsg:
		m.clampCursor(msg.tab)
		return m, waitForChange(m.ctx, msg.tab, m.pager(msg.tab).Changes())

	case tickMsg:
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDoneMsg:
		return m.actionDone(msg)

	case journalLoadedMsg:
		m.journal, m.journalErr = msg.entries, msg.err
		m.clampCursor(tabJournal)
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.actionErr = msg.err
			m.status = ""
			return m, nil
		}
		m.actionErr = nil
		m.status = "copied " + fitText(msg.token, 40)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) actionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}

	switch {
	case msg.err == nil:
		m.actionErr = nil
		m.status = msg.action + ": done"
		if msg.clearSelection {
			clear(m.selected)
		}
	case isAborted(msg.err):
		m.status = msg.action + ": cancelled"
	default:
		m.actionErr = msg.err
		m.status = ""
		m.logger.Warn().Err(msg.err).Str("action", msg.action).Msg("operator action failed")
	}

	for t := tabTokens; t < tabJournal; t++ {
		m.clampCursor(t)
	}
	return m, loadJournal(m.ctx, m.svc.Journal, journalLimit)
}

// start dispatches an action and tracks it as pending.
func (m model) start(action string, clearSelection bool, fn func(context.Context) error) (tea.Model, tea.Cmd) {
	m.pending++
	m.actionErr = nil
	m.status = action + "..."
	return m, runAction(m.ctx, action, clearSelection, fn)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp, overlayVersion:
		m.overlay = overlayNone
		return m, nil
	case overlayConfirm:
		return m.handleConfirmKey(msg)
	case overlayGeoInput:
		return m.handleGeoInputKey(msg)
	}

	if m.tab != tabJournal {
		if st := m.pager(m.tab).Status(); st.Error != "" {
			switch {
			case key.Matches(msg, keys.enter):
				return m.refresh()
			case key.Matches(msg, keys.esc):
				m.pager(m.tab).ClearError()
				return m, nil
			}
		}
	}

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.help):
		m.overlay = overlayHelp
		return m, nil
	case key.Matches(msg, keys.version):
		m.overlay = overlayVersion
		return m, nil
	case key.Matches(msg, keys.nextTab):
		return m.switchTab((m.tab + 1) % tabCount)
	case key.Matches(msg, keys.prevTab):
		return m.switchTab((m.tab + tabCount - 1) % tabCount)
	case len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] < '1'+rune(tabCount):
		return m.switchTab(tab(msg.Runes[0] - '1'))
	case key.Matches(msg, keys.up):
		m.cursor[m.tab]--
		m.clampCursor(m.tab)
		return m, nil
	case key.Matches(msg, keys.down):
		m.cursor[m.tab]++
		m.clampCursor(m.tab)
		return m, nil
	case key.Matches(msg, keys.prevPage):
		return m.turnPage(-1), nil
	case key.Matches(msg, keys.nextPage):
		return m.turnPage(1), nil
	case key.Matches(msg, keys.refresh):
		return m.refresh()
	case key.Matches(msg, keys.pause):
		m.paused = !m.paused
		if m.paused {
			m.svc.Engines.Pause()
			m.status = "live updates paused"
		} else {
			m.svc.Engines.Resume()
			m.status = "live updates resumed"
		}
		return m, nil
	}

	switch m.tab {
	case tabTokens:
		return m.handleTokensKey(msg)
	case tabPolicies:
		return m.handlePoliciesKey(msg)
	case tabGeo:
		return m.handleGeoKey(msg)
	}
	return m, nil
}

func (m model) switchTab(t tab) (tea.Model, tea.Cmd) {
	m.tab = t
	m.clampCursor(t)
	if t == tabJournal {
		return m, loadJournal(m.ctx, m.svc.Journal, journalLimit)
	}
	return m, nil
}

func (m model) turnPage(delta int) model {
	if m.tab == tabJournal {
		return m
	}
	p := m.pager(m.tab)
	p.SetPage(p.Status().Page + delta)
	m.cursor[m.tab] = 0
	return m
}

func (m model) refresh() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabTokens:
		return m.start("refresh tokens", false, m.svc.Tokens.Refresh)
	case tabPolicies:
		return m.start("refresh policies", false, m.svc.Policies.Refresh)
	case tabHistory:
		return m.start("refresh history", false, m.svc.History.Refresh)
	case tabGeo:
		return m.start("refresh geo", false, m.svc.Geo.Refresh)
	}
	return m, loadJournal(m.ctx, m.svc.Journal, journalLimit)
}

func (m model) handleTokensKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.batchBan):
		return m.batch("ban", m.svc.Tokens.BanBatch)
	case key.Matches(msg, keys.batchUnban):
		return m.batch("unban", m.svc.Tokens.UnbanBatch)
	}

	tok, ok := m.currentToken()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.selectRow):
		if _, sel := m.selected[tok.Token]; sel {
			delete(m.selected, tok.Token)
		} else {
			m.selected[tok.Token] = struct{}{}
		}
		return m, nil
	case key.Matches(msg, keys.toggleBan):
		action := "ban"
		if tok.Banned() {
			action = "unban"
		}
		return m.start(action, false, func(ctx context.Context) error {
			return m.svc.Tokens.ToggleBan(ctx, tok.Token)
		})
	case key.Matches(msg, keys.applyPolicy):
		return m.start("apply policies", false, func(ctx context.Context) error {
			return m.svc.Tokens.ApplyPolicy(ctx, tok.Token)
		})
	case key.Matches(msg, keys.copy):
		return m, copyToken(tok.Token)
	}
	return m, nil
}

func (m model) batch(verb string, fn func(context.Context, []string) error) (tea.Model, tea.Cmd) {
	tokens := m.selection()
	if len(tokens) == 0 {
		m.actionErr = service.ErrEmptySelection
		m.status = ""
		return m, nil
	}

	action := verb + " " + itoa(len(tokens)) + " tokens"
	run := func(ctx context.Context) error { return fn(ctx, tokens) }

	if !m.confirmBatch {
		return m.start(action, true, run)
	}

	m.overlay = overlayConfirm
	m.confirmAction, m.confirmRun = action, run
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.overlay = overlayNone
		action, run := m.confirmAction, m.confirmRun
		m.confirmAction, m.confirmRun = "", nil
		return m.start(action, true, run)
	case key.Matches(msg, keys.no):
		m.overlay = overlayNone
		m.confirmAction, m.confirmRun = "", nil
		m.status = "cancelled"
	}
	return m, nil
}

func (m model) handlePoliciesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, keys.toggle) {
		return m, nil
	}
	p, ok := m.currentPolicy()
	if !ok {
		return m, nil
	}
	action := "enable " + p.ID
	if p.Active {
		action = "disable " + p.ID
	}
	return m.start(action, false, func(ctx context.Context) error {
		return m.svc.Policies.Toggle(ctx, p.ID)
	})
}

func (m model) handleGeoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.add):
		m.overlay = overlayGeoInput
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, keys.remove):
		code, ok := m.currentGeo()
		if !ok {
			return m, nil
		}
		return m.start("remove "+string(code), false, func(ctx context.Context) error {
			return m.svc.Geo.Remove(ctx, string(code))
		})
	}
	return m, nil
}

func (m model) handleGeoInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.overlay = overlayNone
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		code := m.input.Value()
		m.overlay = overlayNone
		m.input.Blur()
		return m.start("add "+code, false, func(ctx context.Context) error {
			return m.svc.Geo.Add(ctx, code)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
