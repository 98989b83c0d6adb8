// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the operator console: a tabbed terminal view over the
// synchronized collections with keyboard driven actions.
package tui

import (
	"context"
	"fmt"

	"github.com/MKhiriev/token-guard/internal/logger"
	"github.com/MKhiriev/token-guard/internal/prefs"
	"github.com/MKhiriev/token-guard/internal/service"
	"github.com/MKhiriev/token-guard/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services  *service.ConsoleServices
	prefsPath string
	build     models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ConsoleServices, prefsPath string, build models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		prefsPath: prefsPath,
		build:     build,
		logger:    log.WithComponent("tui"),
	}
}

// Run shows the console until the operator quits or ctx is cancelled.
// The engines must already be started. Preferences are loaded before the
// first frame and saved on exit.
func (t *TUI) Run(ctx context.Context) error {
	p, err := prefs.Load(t.prefsPath)
	if err != nil {
		t.logger.Warn().Err(err).Str("path", t.prefsPath).Msg("failed to load preferences, using defaults")
	}
	if p.Paused {
		t.services.Engines.Pause()
	}

	m := newModel(ctx, t.services, p, t.build, t.logger)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run console: %w", err)
	}

	if result, ok := final.(model); ok {
		if err = prefs.Save(t.prefsPath, result.prefs()); err != nil {
			t.logger.Warn().Err(err).Str("path", t.prefsPath).Msg("failed to save preferences")
		}
	}
	return nil
}
