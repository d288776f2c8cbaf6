package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aejsx/internal/model"
	"aejsx/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	borderColor = lipgloss.Color("63")
	activeColor = lipgloss.Color("205")
)

func (m AppModel) View() string {
	if m.Loading {
		return "\n  Transforming bundle... please wait.\n"
	}
	if len(m.Results) == 0 {
		if m.Err != nil {
			return fmt.Sprintf("\n  Error: %v\n", m.Err)
		}
		return "\n  Nothing to transform.\n"
	}
	if m.ShowHelp {
		return m.renderHelpDialog()
	}

	width := m.WindowSize.Width
	height := m.WindowSize.Height

	netWidth := width - 6
	if netWidth < 20 {
		netWidth = 20
	}
	leftWidth := netWidth / 3
	rightWidth := netWidth - leftWidth

	// Total box height (including borders)
	boxHeight := height - 4
	if boxHeight < 6 {
		boxHeight = 6
	}
	interiorHeight := boxHeight - 2

	// LEFT PANEL: file list
	var leftView strings.Builder
	leftView.WriteString(headerStyle.Render("Files"))
	leftView.WriteString("\n\n")

	visibleItems := interiorHeight - 2
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx, endIdx := window(m.SelectedIdx, len(m.FilteredIndices), visibleItems)

	for i := startIdx; i < endIdx; i++ {
		r := m.Results[m.FilteredIndices[i]]
		line := fmt.Sprintf("%s %s (%d)", model.StatusIcon(r), r.File, len(r.Exports))
		if r.Mode == model.Wrapped.String() {
			line += " " + model.IconWrap
		}
		if w := leftWidth - 2; len(line) > w && w > 5 {
			line = line[:w-3] + "..."
		}

		style := normalStyle
		switch {
		case i == m.SelectedIdx:
			style = selectedStyle
		case !r.OK():
			style = errorStyle
		}
		leftView.WriteString(style.Render(line))
		leftView.WriteString("\n")
	}
	if len(m.FilteredIndices) == 0 {
		leftView.WriteString(dimStyle.Render("no matching files"))
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(activeColor).
		Render(strings.TrimSuffix(leftView.String(), "\n"))

	// RIGHT PANEL: details viewport
	vp := m.DetailsViewport
	vp.Width = rightWidth - 2
	vp.Height = interiorHeight - 2
	if vp.Height < 1 {
		vp.Height = 1
	}
	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(interiorHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(headerStyle.Render(m.Pane.String()) + "\n\n" + vp.View())

	title := titleStyle.Render(fmt.Sprintf("aejsx %s", model.Version)) + " " +
		dimStyle.Render(report.Summarize(m.Results).String())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.footer(),
	)
}

func (m AppModel) footer() string {
	if m.InputMode {
		return "Filter: " + m.InputBuffer.View()
	}
	parts := []string{"↑/↓ select", "tab view", "/ filter", "? help", "q quit"}
	if m.FilterActive {
		parts = append(parts, fmt.Sprintf("filter %q (esc clears)", m.InputBuffer.Value()))
	}
	line := dimStyle.Render(strings.Join(parts, " • "))
	if m.Err != nil {
		line += "  " + errorStyle.Render(firstLine(m.Err.Error()))
	}
	return line
}

// window returns the visible [start,end) range of n rows keeping
// selected roughly centered.
func window(selected, n, visible int) (int, int) {
	if n <= visible {
		return 0, n
	}
	start := selected - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > n {
		start = n - visible
	}
	return start, start + visible
}

// details renders the viewport content of r for pane.
func details(r model.Result, pane Pane) string {
	switch pane {
	case PaneOriginal:
		return r.Original
	case PaneExports:
		if len(r.Exports) == 0 {
			return "no exports"
		}
		var b strings.Builder
		for _, e := range r.Exports {
			fmt.Fprintf(&b, "%s %s", model.IconExport, e.Exported)
			if e.Local != e.Exported {
				fmt.Fprintf(&b, " (local %s)", e.Local)
			}
			b.WriteString("\n")
		}
		return b.String()
	}

	if !r.OK() {
		out := r.ErrMsg + "\n"
		if ctx, ok := report.ErrorContext(r); ok {
			out += "\n" + ctx.String()
		}
		return out
	}
	return r.Code
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

const helpText = `Keys

  ↑ / k        previous file
  ↓ / j        next file
  tab          cycle Output, Original and Exports
  shift+tab    cycle backwards
  pgup / pgdn  scroll the details
  /            filter files by export or file name
  esc          clear the filter, close this help
  q            quit

Icons

  ✓  transformed
  ∅  transformed, no exports
  ✗  parse failure
  ◆  wrapped mode`

func (m AppModel) renderHelpDialog() string {
	w, h := m.WindowSize.Width, m.WindowSize.Height
	if w < 20 || h < 10 {
		return "Window too small"
	}

	helpWidth := w * 60 / 100
	if helpWidth < 40 {
		helpWidth = 40
	}
	if helpWidth > w-4 {
		helpWidth = w - 4
	}

	dialog := lipgloss.NewStyle().
		Width(helpWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(helpText)

	return lipgloss.Place(w, h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, BundleCmd(m.transformer, m.units))
}
