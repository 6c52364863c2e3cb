// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/modeldiff/modeldiff/internal/config"
	"github.com/modeldiff/modeldiff/internal/differ"
)

// RenderColored renders the diffai representation with one lipgloss style
// per diff type. The plain Format output stays byte-stable for piping; this
// is terminal presentation only.
func RenderColored(entries []differ.Entry) string {
	styles := map[differ.DiffType]lipgloss.Style{
		differ.Added:       lipgloss.NewStyle().Foreground(resolveColor("colors.added", "#008800", "#00d700")),
		differ.Removed:     lipgloss.NewStyle().Foreground(resolveColor("colors.removed", "#aa0000", "#ff5f5f")),
		differ.Modified:    lipgloss.NewStyle().Foreground(resolveColor("colors.modified", "#b08800", "#f6be00")),
		differ.TypeChanged: lipgloss.NewStyle().Foreground(resolveColor("colors.typechanged", "#0088a0", "#00c8f0")),
	}

	var sb strings.Builder
	for _, e := range entries {
		line := formatDiffai([]differ.Entry{e})
		sb.WriteString(styles[e.Type].Render(strings.TrimSuffix(line, "\n")))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// resolveColor prefers an explicit config color, falling back to a default
// picked for the detected terminal background.
func resolveColor(key string, light string, dark string) lipgloss.Color {
	if c, err := config.GetString(key); err == nil {
		return lipgloss.Color(c)
	}
	if lipgloss.HasDarkBackground() {
		return lipgloss.Color(dark)
	}
	return lipgloss.Color(light)
}
