// SPDX-License-Identifier: EPL-2.0

// Package tui is the terminal front end for recording and playback. The
// model only reads and writes a waveform.View; device goroutines push their
// chunks and events into the running program as messages.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/audwave/device"
	"github.com/ik5/audwave/render"
	"github.com/ik5/audwave/waveform"
)

// chrome is the number of terminal lines used by the header and help line.
const chrome = 2

// Controller starts and stops the device behind the view.
type Controller interface {
	Toggle() error
	Active() bool
}

// ChunkMsg carries the latest captured samples.
type ChunkMsg []int16

// ProgressMsg carries a playback event.
type ProgressMsg device.Event

// ErrMsg reports a device failure.
type ErrMsg struct{ Err error }

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	waveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model is the bubbletea model for both modes.
type Model struct {
	view *waveform.View
	ctrl Controller

	status string
	err    error

	width  int
	height int
}

func NewModel(view *waveform.View, ctrl Controller) Model {
	return Model{view: view, ctrl: ctrl}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Resize(msg.Width, max(msg.Height-chrome, 1))
	case ChunkMsg:
		m.view.SetSamples(msg)
	case ProgressMsg:
		m.applyEvent(device.Event(msg))
	case ErrMsg:
		m.err = msg.Err
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.err = m.ctrl.Toggle()
		m.status = ""
	}

	return m, nil
}

func (m *Model) applyEvent(ev device.Event) {
	m.view.SetMarker(ev.PositionMs)
	switch ev.Kind {
	case device.Completed:
		m.status = "done"
	case device.Stopped:
		m.status = fmt.Sprintf("stopped at %s", seconds(ev.PositionMs))
	default:
		m.status = ""
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.view.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderHeader(snap))
	b.WriteByte('\n')
	for _, row := range m.renderWave(snap) {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader(snap waveform.Snapshot) string {
	s := titleStyle.Render("audwave " + snap.Mode.String())

	if m.ctrl.Active() {
		label := "● REC"
		if snap.Mode == waveform.ModePlayback {
			label = "▶ PLAY"
		}
		s += " " + activeStyle.Render(label)
	}

	if snap.Mode == waveform.ModePlayback {
		pos := max(snap.Marker, 0)
		s += fmt.Sprintf("  %s / %s", seconds(pos), seconds(snap.AudioLength))
	}
	if m.status != "" {
		s += "  " + m.status
	}

	return s
}

func (m Model) renderWave(snap waveform.Snapshot) []string {
	var rows []string
	switch snap.Mode {
	case waveform.ModeRecording:
		rows = render.LiveRows(snap.Samples, snap.Width, snap.Height)
	case waveform.ModePlayback:
		rows = render.Rows(snap.Extremes, snap.Height)
	}

	x, visible := snap.MarkerX()
	col := int(x)
	out := make([]string, len(rows))
	for i, row := range rows {
		runes := []rune(row)
		if !visible || col >= len(runes) {
			out[i] = waveStyle.Render(row)
			continue
		}
		out[i] = waveStyle.Render(string(runes[:col])) +
			markerStyle.Render("│") +
			waveStyle.Render(string(runes[col+1:]))
	}

	return out
}

func (m Model) renderHelp() string {
	if m.err != nil {
		return errStyle.Render("error: " + m.err.Error())
	}

	return helpStyle.Render("space: start/stop  q: quit")
}

func seconds(ms int) string {
	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}
