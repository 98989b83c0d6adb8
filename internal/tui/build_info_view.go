// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/token-guard/models"
)

func renderBuildInfo(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("token-guard console"))
	b.WriteString("\n\nVersion: ")
	b.WriteString(info.BuildVersion())
	b.WriteString("\nDate:    ")
	b.WriteString(info.BuildDate())
	b.WriteString("\nCommit:  ")
	b.WriteString(info.BuildCommit())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("esc: close"))

	return overlayBoxStyle.Render(b.String())
}
