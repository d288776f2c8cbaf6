// Package report renders transformation results as a plain-text
// diagnostic report.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"aejsx/internal/edit"
	"aejsx/internal/model"
	"aejsx/internal/transform"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Summary counts a batch of results.
type Summary struct {
	Files   int `json:"files"`
	OK      int `json:"ok"`
	Failed  int `json:"failed"`
	Exports int `json:"exports"`
}

// Summarize counts results.
func Summarize(results []model.Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.OK() {
			s.OK++
		} else {
			s.Failed++
		}
		s.Exports += len(r.Exports)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("files: %d  ok: %d  failed: %d  exports: %d", s.Files, s.OK, s.Failed, s.Exports)
}

// Generate renders results. Verbose includes the generated code of every
// successful unit.
func Generate(results []model.Result, verbose bool) string {
	var b strings.Builder

	mode := "flat"
	if len(results) > 0 {
		mode = results[0].Mode
	}
	title := fmt.Sprintf("aejsx %s report (%s mode)", model.Version, mode)
	b.WriteString(headingStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	b.WriteString(Summarize(results).String() + "\n")

	for _, r := range results {
		b.WriteString("\n")
		writeUnit(&b, r, verbose)
	}
	return b.String()
}

func writeUnit(b *strings.Builder, r model.Result, verbose bool) {
	fmt.Fprintf(b, "%s %s\n", model.StatusIcon(r), r.File)

	if !r.OK() {
		fmt.Fprintf(b, "    error:   %s\n", failStyle.Render(r.ErrMsg))
		if ctx, ok := ErrorContext(r); ok {
			b.WriteString(edit.IndentLines(ctx.String(), "    "))
		}
		return
	}

	fmt.Fprintf(b, "    state:   %s\n", r.State)
	fmt.Fprintf(b, "    exports: %s\n", Exports(r.Exports))
	fmt.Fprintf(b, "    removed: %d statements, %d edits\n", r.Removed, r.Edits)
	if verbose {
		b.WriteString("    code:\n")
		b.WriteString(edit.IndentLines(r.Code, "        "))
		b.WriteString("\n")
	}
}

// Exports lists exports as "a, c (b)" where the parenthesized name is the
// local binding of an alias.
func Exports(list []model.Export) string {
	if len(list) == 0 {
		return "(none)"
	}
	parts := make([]string, len(list))
	for i, e := range list {
		if e.Exported == e.Local {
			parts[i] = e.Exported
		} else {
			parts[i] = fmt.Sprintf("%s (%s)", e.Exported, e.Local)
		}
	}
	return strings.Join(parts, ", ")
}

// ErrorContext returns the source lines around a parse failure. A result
// without its source, such as one decoded from JSON, is read back from
// its file.
func ErrorContext(r model.Result) (model.LineContext, bool) {
	var perr *transform.ParseError
	if !errors.As(r.Err, &perr) {
		return model.LineContext{}, false
	}
	line, col, ok := perr.Position()
	if !ok {
		return model.LineContext{}, false
	}
	if r.Original == "" && !strings.HasPrefix(perr.File, "<") {
		return model.GetFileLineContext(perr.File, line, col), true
	}
	return model.GetLineContext(r.Original, line, col), true
}
