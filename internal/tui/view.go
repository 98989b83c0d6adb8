package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/models"
	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	switch m.overlay {
	case overlayHelp:
		return appStyle.Render(m.renderHelp())
	case overlayVersion:
		return appStyle.Render(renderBuildInfo(m.build))
	}

	var body string
	switch m.tab {
	case tabTokens:
		v := m.svc.Engines.Tokens.View()
		body = m.withState(v.Page.Page, v.TotalPages, v.Total, stateOf(v, m.now()), m.renderTokens(v.Items))
	case tabPolicies:
		v := m.svc.Engines.Policies.View()
		body = m.withState(v.Page.Page, v.TotalPages, v.Total, stateOf(v, m.now()), m.renderPolicies(v.Items))
	case tabHistory:
		v := m.svc.Engines.History.View()
		body = m.withState(v.Page.Page, v.TotalPages, v.Total, stateOf(v, m.now()), m.renderHistory(v.Items))
	case tabGeo:
		v := m.svc.Engines.Geo.View()
		body = m.withState(v.Page.Page, v.TotalPages, v.Total, stateOf(v, m.now()), m.renderGeo(v.Items))
	case tabJournal:
		body = m.renderJournal()
	}

	return renderPage(m.renderTabs(), body, m.renderFooter())
}

// viewState is the entry-free part of an engine view.
type viewState struct {
	loading    bool
	refreshing bool
	paused     bool
	stale      bool
	err        error
	updated    string
}

func stateOf[T any](v engine.View[T], now time.Time) viewState {
	st := viewState{
		loading:    v.Loading,
		refreshing: v.Refreshing,
		paused:     v.Paused,
		stale:      v.Stale(),
		err:        v.Err,
	}
	if !v.LastUpdated.IsZero() {
		st.updated = humanizeSince(now, v.LastUpdated)
	}
	return st
}

func (m model) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for t := tabTokens; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", t+1, tabTitles[t])
		if t == m.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return titleStyle.Render("token-guard") + "  " + strings.Join(parts, "  ")
}

// withState prepends the error box and the sync status line to a table.
func (m model) withState(page, pages, total int, st viewState, table string) string {
	var b strings.Builder

	if st.err != nil {
		box := errorStyle.Render(humanizeError(st.err)) + "\n" + helpStyle.Render("enter: retry │ esc: dismiss")
		b.WriteString(overlayBoxStyle.Render(box))
		b.WriteString("\n")
	}

	status := []string{fmt.Sprintf("page %d/%d", page, pages), fmt.Sprintf("%d items", total)}
	switch {
	case st.loading:
		status = append(status, m.spinner.View()+" loading")
	case st.refreshing:
		status = append(status, m.spinner.View()+" refreshing")
	}
	if st.updated != "" {
		status = append(status, "updated "+st.updated)
	}
	if st.paused {
		status = append(status, staleStyle.Render("paused"))
	}
	if st.stale {
		status = append(status, staleStyle.Render("stale"))
	}
	b.WriteString(helpStyle.Render(strings.Join(status, " · ")))
	b.WriteString("\n\n")

	if strings.TrimSpace(table) == "" && st.loading {
		b.WriteString(m.spinner.View() + " loading...")
	} else {
		b.WriteString(table)
	}
	return b.String()
}

func (m model) marker(t tab, row int) string {
	if m.cursor[t] == row {
		return cursorStyle.Render("›")
	}
	return " "
}

func (m model) renderTokens(items []models.TokenActivity) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(helpStyle.Render(fmt.Sprintf("    %-12s %-34s %-7s %5s %5s %6s %5s",
		"USER", "TOKEN", "STATUS", "1M", "5M", "15M", "USERS")))
	for i, t := range items {
		b.WriteString("\n")
		b.WriteString(m.marker(tabTokens, i))
		if _, ok := m.selected[t.Token]; ok {
			b.WriteString("* ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(" ")
		b.WriteString(padRight(t.Username, 12))
		b.WriteString(" ")
		b.WriteString(padRight(t.Token, 34))
		b.WriteString(" ")
		if t.Banned() {
			b.WriteString(bannedStyle.Render(padRight(models.TokenStatusBanned, 7)))
		} else {
			b.WriteString(activeStyle.Render(padRight(models.TokenStatusActive, 7)))
		}
		b.WriteString(" ")
		b.WriteString(counter(t.AccessCount1m, models.Access1mThreshold, 5))
		b.WriteString(" ")
		b.WriteString(counter(t.AccessCount5m, models.Access5mThreshold, 5))
		b.WriteString(" ")
		b.WriteString(counter(t.AccessCount15m, models.Access15mThreshold, 6))
		b.WriteString(" ")
		b.WriteString(counter(t.ConcurrentUsers, models.ConcurrentUsersThreshold, 5))
	}
	if n := len(m.selected); n > 0 {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d selected", n)))
	}
	return b.String()
}

func (m model) renderPolicies(items []models.Policy) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %-20s %-24s %-8s %-8s %4s %-8s %-8s",
		"ID", "NAME", "KIND", "STATE", "MAX", "AUTOBAN", "GEOBAN")))
	for i, p := range items {
		state := inactiveTabStyle.Render(padRight("off", 8))
		if p.Active {
			state = activeStyle.Render(padRight("on", 8))
		}
		b.WriteString("\n")
		b.WriteString(m.marker(tabPolicies, i))
		b.WriteString(" ")
		b.WriteString(padRight(p.ID, 20))
		b.WriteString(" ")
		b.WriteString(padRight(p.Name, 24))
		b.WriteString(" ")
		b.WriteString(padRight(string(p.Kind()), 8))
		b.WriteString(" ")
		b.WriteString(state)
		b.WriteString(" ")
		b.WriteString(padLeft(itoa(p.MaxConcurrent), 4))
		b.WriteString(" ")
		b.WriteString(padRight(yesNo(p.AutoBanEnabled), 8))
		b.WriteString(" ")
		b.WriteString(padRight(yesNo(p.GeoBanEnabled), 8))
	}
	return b.String()
}

func (m model) renderHistory(items []models.HistoryLogItem) string {
	if len(items) == 0 {
		return ""
	}

	detailWidth := 30
	if m.width > 120 {
		detailWidth = m.width - 90
	}

	var b strings.Builder
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %-20s %-8s %-28s %-16s %-8s %s",
		"TIME", "TYPE", "TOKEN", "REASON", "BY", "DETAILS")))
	for i, h := range items {
		b.WriteString("\n")
		b.WriteString(m.marker(tabHistory, i))
		b.WriteString(" ")
		b.WriteString(padRight(h.Timestamp, 20))
		b.WriteString(" ")
		b.WriteString(padRight(h.Type, 8))
		b.WriteString(" ")
		b.WriteString(padRight(h.Token, 28))
		b.WriteString(" ")
		b.WriteString(padRight(h.Reason, 16))
		b.WriteString(" ")
		b.WriteString(padRight(h.By, 8))
		b.WriteString(" ")
		b.WriteString(fitText(h.DetailsText(), detailWidth))
	}
	return b.String()
}

func (m model) renderGeo(items []models.GeoLocation) string {
	var b strings.Builder
	if len(items) == 0 {
		b.WriteString(helpStyle.Render("no restricted locations"))
	}
	for i, g := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.marker(tabGeo, i))
		b.WriteString(" ")
		b.WriteString(string(g))
	}
	if m.overlay == overlayGeoInput {
		b.WriteString("\n\n")
		b.WriteString(overlayBoxStyle.Render("Add country code: " + m.input.View() + "\n" + helpStyle.Render("enter: add │ esc: cancel")))
	}
	return b.String()
}

func (m model) renderJournal() string {
	if m.journalErr != nil {
		return errorStyle.Render(humanizeError(m.journalErr))
	}
	if len(m.journal) == 0 {
		return helpStyle.Render("no actions recorded yet")
	}

	var b strings.Builder
	b.WriteString(helpStyle.Render(fmt.Sprintf("  %-19s %-14s %-9s %-8s %s",
		"TIME", "ACTION", "ENGINE", "OUTCOME", "TARGETS")))
	for i, e := range m.journal {
		outcome := padRight(string(e.Outcome), 8)
		switch e.Outcome {
		case models.OutcomeOK:
			outcome = activeStyle.Render(outcome)
		case models.OutcomeFailed:
			outcome = bannedStyle.Render(outcome)
		}
		b.WriteString("\n")
		b.WriteString(m.marker(tabJournal, i))
		b.WriteString(" ")
		b.WriteString(padRight(e.CreatedAt.Local().Format("2006-01-02 15:04:05"), 19))
		b.WriteString(" ")
		b.WriteString(padRight(string(e.Action), 14))
		b.WriteString(" ")
		b.WriteString(padRight(e.Engine, 9))
		b.WriteString(" ")
		b.WriteString(outcome)
		b.WriteString(" ")
		b.WriteString(fitText(strings.Join(e.Targets, ","), 40))
		if e.Message != "" {
			b.WriteString(" ")
			b.WriteString(helpStyle.Render(fitText(e.Message, 40)))
		}
		b.WriteString(" ")
		b.WriteString(helpStyle.Render(humanizeSince(m.now(), e.CreatedAt)))
	}
	return b.String()
}

func (m model) renderFooter() string {
	var b strings.Builder

	if m.overlay == overlayConfirm {
		b.WriteString(overlayBoxStyle.Render("Really " + m.confirmAction + "?  y: yes │ n: no"))
		b.WriteString("\n")
	}

	switch {
	case m.actionErr != nil:
		b.WriteString(errorStyle.Render(humanizeError(m.actionErr)))
	case m.pending > 0:
		b.WriteString(m.spinner.View() + " " + m.status)
	default:
		b.WriteString(m.status)
	}
	b.WriteString("\n")

	b.WriteString(renderBindings(tabBindings[m.tab]))
	b.WriteString("\n")
	b.WriteString(renderBindings(globalBindings))
	return b.String()
}

func (m model) renderHelp() string {
	rows := []string{titleStyle.Render("Keys"), ""}
	for _, g := range helpGroups {
		rows = append(rows, lipgloss.NewStyle().Bold(true).Render(g.title))
		for _, kb := range g.bindings {
			h := kb.Help()
			rows = append(rows, fmt.Sprintf("  %-10s %s", h.Key, h.Desc))
		}
		rows = append(rows, "")
	}
	rows = append(rows, helpStyle.Render("any key: close"))
	return overlayBoxStyle.Render(strings.Join(rows, "\n"))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
