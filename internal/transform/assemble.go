package transform

import (
	"fmt"
	"strings"

	"aejsx/internal/edit"
)

// assemble trims the composed body, indents it one level and wraps it in
// braces. An empty body yields "{}". Lines inside template literals keep
// their text.
func assemble(ed *edit.Editor, unit string) string {
	body := ed.Trim().String()
	if body == "" {
		return "{}"
	}
	return edit.New(body).Indent(unit).Prepend("{\n").Append("\n}").String()
}

// accessor wraps body and the return statement into `name() { ... }`.
// With a formatter the method is built as a function declaration first so
// the formatter sees a valid program, then renamed into method syntax.
func accessor(name, body, ret, unit string, f Formatter) (string, error) {
	if f == nil {
		var b strings.Builder
		b.WriteString(name + "() {\n")
		if body != "" {
			b.WriteString(edit.IndentCode(body, unit))
			b.WriteString("\n")
		}
		b.WriteString(unit + ret + "\n}")
		return b.String(), nil
	}

	head := "function " + name + "() {"
	src := head + "\n" + body + "\n" + ret + "\n}"
	out, err := f.Format(src)
	if err != nil {
		return "", fmt.Errorf("format accessor: %w", err)
	}
	if !strings.HasPrefix(out, head) {
		return "", fmt.Errorf("format accessor: formatter changed the %q header", head)
	}
	return name + "() {" + strings.TrimPrefix(out, head), nil
}
