package tui

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/token-guard/internal/engine"
	"github.com/MKhiriev/token-guard/internal/service"
	"github.com/MKhiriev/token-guard/internal/utils"
	"github.com/MKhiriev/token-guard/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// changeMsg reports that the engine behind a tab published a new view.
type changeMsg struct{ tab tab }

type tickMsg time.Time

// actionDoneMsg carries the result of an operator action.
type actionDoneMsg struct {
	action string
	err    error
	// clearSelection drops the token selection on success.
	clearSelection bool
}

type journalLoadedMsg struct {
	entries []models.JournalEntry
	err     error
}

type copiedMsg struct {
	token string
	err   error
}

// waitForChange blocks until ch fires or ctx is done. It is re-armed after
// every changeMsg so that each tab always has one waiter.
func waitForChange(ctx context.Context, t tab, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return changeMsg{tab: t}
		case <-ctx.Done():
			return nil
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var actionIDs = utils.NewUUIDGenerator()

// runAction runs fn under a fresh request id, which also names the journal
// entry of the action.
func runAction(ctx context.Context, action string, clearSelection bool, fn func(context.Context) error) tea.Cmd {
	ctx = utils.WithRequestID(ctx, actionIDs.Generate())
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: fn(ctx), clearSelection: clearSelection}
	}
}

func loadJournal(ctx context.Context, journal service.JournalService, limit uint64) tea.Cmd {
	return func() tea.Msg {
		entries, err := journal.List(ctx, models.JournalFilter{Limit: limit})
		return journalLoadedMsg{entries: entries, err: err}
	}
}

var writeClipboard = clipboard.WriteAll

func copyToken(token string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{token: token, err: writeClipboard(token)}
	}
}

func isAborted(err error) bool {
	return errors.Is(err, engine.ErrAborted) || errors.Is(err, context.Canceled)
}
