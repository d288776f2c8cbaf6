package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"aejsx/internal/model"
	"aejsx/internal/transform"
)

// MsgBundleReady carries the results of the batch run.
type MsgBundleReady struct {
	Results []model.Result
	Err     error
}

// Update handles events.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.DetailsViewport.Width = msg.Width / 2
		m.DetailsViewport.Height = msg.Height - 8 // title, footer, borders
		m.syncViewport()
		return m, nil

	case MsgBundleReady:
		m.Loading = false
		m.Results = msg.Results
		m.Err = msg.Err
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.applyFilter()
				return m, nil
			case tea.KeyEsc:
				m.clearFilter()
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.ShowHelp {
				m.ShowHelp = false
				return m, nil
			}
			if m.FilterActive {
				m.clearFilter()
			}
			return m, nil
		case "?":
			m.ShowHelp = !m.ShowHelp
		case "up", "k":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.syncViewport()
			}
		case "down", "j":
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
				m.syncViewport()
			}
		case "tab":
			m.Pane = (m.Pane + 1) % paneCount
			m.syncViewport()
		case "shift+tab":
			m.Pane = (m.Pane + paneCount - 1) % paneCount
			m.syncViewport()
		case "/":
			m.InputMode = true
			m.InputBuffer.SetValue("")
			return m, tea.Batch(m.InputBuffer.Focus(), textinput.Blink)
		default:
			// pgup, pgdown and friends scroll the details
			m.DetailsViewport, cmd = m.DetailsViewport.Update(msg)
		}
	}

	return m, cmd
}

func (m *AppModel) clearFilter() {
	m.InputMode = false
	m.InputBuffer.Blur()
	m.InputBuffer.SetValue("")
	m.applyFilter()
}

// applyFilter keeps the results with an export name or file name
// containing the filter text.
func (m *AppModel) applyFilter() {
	term := strings.ToLower(strings.TrimSpace(m.InputBuffer.Value()))
	m.FilterActive = term != ""
	var indices []int
	for i, r := range m.Results {
		if !m.FilterActive || matches(r, term) {
			indices = append(indices, i)
		}
	}
	m.FilteredIndices = indices

	if m.SelectedIdx >= len(m.FilteredIndices) {
		m.SelectedIdx = len(m.FilteredIndices) - 1
	}
	if m.SelectedIdx < 0 {
		m.SelectedIdx = 0
	}
	m.syncViewport()
}

func matches(r model.Result, term string) bool {
	if strings.Contains(strings.ToLower(r.File), term) {
		return true
	}
	for _, e := range r.Exports {
		if strings.Contains(strings.ToLower(e.Exported), term) || strings.Contains(strings.ToLower(e.Local), term) {
			return true
		}
	}
	return false
}

// Selected returns the result under the cursor.
func (m AppModel) Selected() (model.Result, bool) {
	if m.SelectedIdx < 0 || m.SelectedIdx >= len(m.FilteredIndices) {
		return model.Result{}, false
	}
	return m.Results[m.FilteredIndices[m.SelectedIdx]], true
}

func (m *AppModel) syncViewport() {
	r, ok := m.Selected()
	if !ok {
		m.DetailsViewport.SetContent("")
		return
	}
	m.DetailsViewport.SetContent(details(r, m.Pane))
	m.DetailsViewport.GotoTop()
}

// BundleCmd runs the batch in the background.
func BundleCmd(t *transform.Transformer, units []model.Unit) tea.Cmd {
	return func() tea.Msg {
		results, err := t.Bundle(context.Background(), units)
		return MsgBundleReady{Results: results, Err: err}
	}
}
