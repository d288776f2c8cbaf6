package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"aejsx/internal/model"
	"aejsx/internal/transform"
)

// Pane selects what the details viewport shows.
type Pane int

const (
	PaneOutput Pane = iota
	PaneOriginal
	PaneExports
	paneCount
)

func (p Pane) String() string {
	switch p {
	case PaneOriginal:
		return "Original"
	case PaneExports:
		return "Exports"
	default:
		return "Output"
	}
}

// AppModel holds the TUI state.
type AppModel struct {
	// Data
	Results []model.Result
	Loading bool
	Err     error // batch error, shown in the footer

	transformer *transform.Transformer
	units       []model.Unit

	// UI State
	SelectedIdx int
	Pane        Pane
	ShowHelp    bool
	WindowSize  tea.WindowSizeMsg

	// Filter State
	InputMode       bool
	InputBuffer     textinput.Model
	FilteredIndices []int // indices into Results
	FilterActive    bool

	// Components
	DetailsViewport viewport.Model
}

// InitialModel returns a model that transforms units with opts once
// started. Its transformer never logs: output on stderr would tear the
// alternate screen.
func InitialModel(opts model.Options, units []model.Unit) AppModel {
	ti := textinput.New()
	ti.Placeholder = "Export name..."
	ti.CharLimit = 50
	ti.Width = 20

	return AppModel{
		Loading:         true,
		transformer:     transform.New(opts, transform.WithLogger(zap.NewNop())),
		units:           units,
		InputBuffer:     ti,
		DetailsViewport: viewport.New(40, 10),
	}
}
