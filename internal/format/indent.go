package format

import (
	"strings"

	"aejsx/internal/edit"
)

// indent rewrites the leading whitespace of every line. A line's level is
// the number of distinct lines holding its still-open brackets, so
// `f(function () {` opens a single level. A line led by closers takes the
// level of the line that opened the outermost of them. Lines starting
// inside a multi-line string, template or comment are left alone; blank
// lines lose their whitespace.
func (f *Formatter) indent(text string, ed *edit.Editor, toks []token) error {
	unit := f.opts.unit()
	base := strings.Repeat(" ", f.opts.BaseIndentSize)

	var open []int // rows of unclosed brackets
	levels := make(map[int]int)
	ti := 0

	for row, p := 0, 0; ; row++ {
		lineEnd := len(text)
		if i := strings.IndexByte(text[p:], '\n'); i >= 0 {
			lineEnd = p + i
		}

		for ti < len(toks) && toks[ti].start < p {
			switch t := toks[ti]; {
			case isOpener(t.typ):
				open = append(open, t.row)
			case isCloser(t.typ) && len(open) > 0:
				open = open[:len(open)-1]
			}
			ti++
		}

		inside := ti > 0 && toks[ti-1].end > p
		q := p
		for q < lineEnd && (text[q] == ' ' || text[q] == '\t') {
			q++
		}

		var err error
		switch {
		case inside:
		case q == lineEnd || (q+1 == lineEnd && text[q] == '\r'):
			if q > p {
				err = ed.Delete(p, q)
			}
		default:
			level := levelAt(open, levels, toks, ti, q)
			levels[row] = level
			err = setIndent(ed, text, p, q, base+strings.Repeat(unit, level))
		}
		if err != nil {
			return err
		}

		if lineEnd == len(text) {
			return nil
		}
		p = lineEnd + 1
	}
}

// levelAt is the indent level of the line whose first token is toks[ti]
// at offset q. levels holds the levels of the lines before it.
func levelAt(open []int, levels map[int]int, toks []token, ti, q int) int {
	if ti >= len(toks) || toks[ti].start != q {
		return distinct(open)
	}
	row := toks[ti].row
	n := len(open)
	for i := ti; i < len(toks) && toks[i].row == row && isCloser(toks[i].typ) && n > 0; i++ {
		n--
	}
	if n < len(open) {
		if level, ok := levels[open[n]]; ok {
			return level
		}
	}
	return distinct(open[:n]) + toks[ti].extra
}

// distinct counts distinct values in a non-decreasing slice.
func distinct(rows []int) int {
	n := 0
	for i, r := range rows {
		if i == 0 || r != rows[i-1] {
			n++
		}
	}
	return n
}

func setIndent(ed *edit.Editor, text string, p, q int, want string) error {
	if text[p:q] == want {
		return nil
	}
	switch {
	case p == q:
		return ed.InsertBefore(p, want)
	case want == "":
		return ed.Delete(p, q)
	default:
		return ed.Overwrite(p, q, want)
	}
}
