// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/modeldiff/modeldiff/internal/differ"
	"github.com/modeldiff/modeldiff/internal/output"
)

var (
	tuiTitleStyle  = lipgloss.NewStyle().Bold(true)
	tuiFooterStyle = lipgloss.NewStyle().Faint(true)
)

// browseEntries pages through the rendered entries in the terminal.
func browseEntries(entries []differ.Entry) error {
	m := browser{
		title:   fmt.Sprintf("%d changes", len(entries)),
		content: output.RenderColored(entries),
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type browser struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
}

func (m browser) Init() tea.Cmd { return nil }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Reserve one line each for the title and the footer.
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-2)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 2
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m browser) View() string {
	if !m.ready {
		return "loading..."
	}
	return tuiTitleStyle.Render(m.title) + "\n" +
		m.vp.View() + "\n" +
		tuiFooterStyle.Render("UP/DOWN/PGUP/PGDN: scroll, Q/ESCAPE: quit")
}
