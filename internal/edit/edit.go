// Package edit queues offset-addressed edits against an immutable text and
// materializes the edited result on demand.
//
// All offsets refer to the original text, no matter how many edits were
// queued before. Removed and overwritten ranges may never overlap; the
// offending call fails with ErrOverlap instead of being reconciled later.
package edit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrOverlap    = errors.New("edit: range overlaps a queued edit")
	ErrOutOfRange = errors.New("edit: offset out of range")
	ErrEmptyRange = errors.New("edit: empty range")
)

type span struct {
	start, end int
	text       string
}

type insertion struct {
	pos  int
	text string
	left bool // attached to the content ending at pos
	seq  int
}

// Editor is an append-only log of edits over an original text.
type Editor struct {
	original string
	spans    []span
	inserts  []insertion
	post     []func(string) string
}

// New returns an editor over text.
func New(text string) *Editor {
	return &Editor{original: text}
}

// Remove deletes [start,end) together with any whitespace directly before
// start, so that a removed statement takes its indentation and blank
// lines with it. The widening never crosses a queued range.
func (e *Editor) Remove(start, end int) error {
	if err := e.check(start, end); err != nil {
		return err
	}
	limit := 0
	for _, s := range e.spans {
		if s.end <= start && s.end > limit {
			limit = s.end
		}
	}
	for start > limit && isSpace(e.original[start-1]) {
		start--
	}
	return e.add(start, end, "")
}

// Delete removes exactly [start,end).
func (e *Editor) Delete(start, end int) error {
	if err := e.check(start, end); err != nil {
		return err
	}
	return e.add(start, end, "")
}

// Overwrite replaces [start,end) with text.
func (e *Editor) Overwrite(start, end int, text string) error {
	if err := e.check(start, end); err != nil {
		return err
	}
	return e.add(start, end, text)
}

// InsertBefore queues text in front of the content starting at pos.
func (e *Editor) InsertBefore(pos int, text string) error {
	return e.insert(pos, text, false)
}

// InsertAfter queues text behind the content ending at pos.
func (e *Editor) InsertAfter(pos int, text string) error {
	return e.insert(pos, text, true)
}

func (e *Editor) insert(pos int, text string, left bool) error {
	if pos < 0 || pos > len(e.original) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, pos)
	}
	e.inserts = append(e.inserts, insertion{pos: pos, text: text, left: left, seq: len(e.inserts)})
	return nil
}

func (e *Editor) check(start, end int) error {
	if start < 0 || end > len(e.original) || start > end {
		return fmt.Errorf("%w: [%d,%d)", ErrOutOfRange, start, end)
	}
	if start == end {
		return fmt.Errorf("%w: [%d,%d)", ErrEmptyRange, start, end)
	}
	return nil
}

func (e *Editor) add(start, end int, text string) error {
	for _, s := range e.spans {
		if start < s.end && s.start < end {
			return fmt.Errorf("%w: [%d,%d) and [%d,%d)", ErrOverlap, start, end, s.start, s.end)
		}
	}
	e.spans = append(e.spans, span{start: start, end: end, text: text})
	return nil
}

// Prepend adds text in front of the composed result.
func (e *Editor) Prepend(text string) *Editor {
	e.post = append(e.post, func(s string) string { return text + s })
	return e
}

// Append adds text behind the composed result.
func (e *Editor) Append(text string) *Editor {
	e.post = append(e.post, func(s string) string { return s + text })
	return e
}

// Trim strips surrounding whitespace from the composed result.
func (e *Editor) Trim() *Editor {
	e.post = append(e.post, strings.TrimSpace)
	return e
}

// Indent prefixes every non-empty line of the composed result with unit,
// except lines that start inside a template literal. An empty unit is
// guessed from the original text.
func (e *Editor) Indent(unit string) *Editor {
	if unit == "" {
		unit = GuessIndent(e.original)
	}
	e.post = append(e.post, func(s string) string { return IndentCode(s, unit) })
	return e
}

// String composes the queued edits with the original text.
func (e *Editor) String() string {
	out := e.compose()
	for _, f := range e.post {
		out = f(out)
	}
	return out
}

// Len is the number of queued edits.
func (e *Editor) Len() int {
	return len(e.spans) + len(e.inserts)
}

func (e *Editor) compose() string {
	spans := make([]span, len(e.spans))
	copy(spans, e.spans)
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	ins := make([]insertion, len(e.inserts))
	copy(ins, e.inserts)
	sort.SliceStable(ins, func(i, j int) bool {
		if ins[i].pos != ins[j].pos {
			return ins[i].pos < ins[j].pos
		}
		if ins[i].left != ins[j].left {
			return ins[i].left
		}
		return ins[i].seq < ins[j].seq
	})

	var b strings.Builder
	b.Grow(len(e.original))
	pos, next := 0, 0

	copyUntil := func(to int) {
		for next < len(ins) && ins[next].pos <= to {
			b.WriteString(e.original[pos:ins[next].pos])
			pos = ins[next].pos
			b.WriteString(ins[next].text)
			next++
		}
		b.WriteString(e.original[pos:to])
		pos = to
	}

	for _, s := range spans {
		copyUntil(s.start)
		b.WriteString(s.text)
		// insertions inside a replaced range are kept, after its text
		for next < len(ins) && ins[next].pos < s.end {
			b.WriteString(ins[next].text)
			next++
		}
		pos = s.end
	}
	copyUntil(len(e.original))
	return b.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
