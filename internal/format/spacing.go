package format

import (
	"strings"

	"aejsx/internal/edit"
)

type spacer struct {
	text string
	ed   *edit.Editor
	done map[int]bool // gap starts already queued
}

// gap normalizes text[start:end] to one space. Gaps that span a line
// break or hold a comment are left alone.
func (s *spacer) gap(start, end int) error {
	if start > end || s.done[start] {
		return nil
	}
	g := s.text[start:end]
	if strings.Trim(g, " \t") != "" {
		return nil
	}
	s.done[start] = true
	switch g {
	case " ":
		return nil
	case "":
		return s.ed.InsertAfter(start, " ")
	default:
		return s.ed.Overwrite(start, end, " ")
	}
}

func (s *spacer) apply(o Options, c *collector) error {
	toks := c.tokens
	for i, t := range toks {
		var prev, next *token
		if i > 0 {
			prev = &toks[i-1]
		}
		if i+1 < len(toks) {
			next = &toks[i+1]
		}

		var err error
		switch t.typ {
		case ",":
			if o.InsertSpaceAfterCommaDelimiter && next != nil && !isCloser(next.typ) {
				err = s.gap(t.end, next.start)
			}
		case ";":
			if o.InsertSpaceAfterSemicolonInForStatements && inForHeader(t) && next != nil && next.typ != ")" {
				err = s.gap(t.end, next.start)
			}
		case "{", "[", "(":
			if o.pads(t.typ) && next != nil && next.typ != closerOf[t.typ] {
				err = s.gap(t.end, next.start)
			}
		case "}", "]", ")":
			if o.pads(t.typ) && prev != nil && prev.typ != openerOf[t.typ] {
				err = s.gap(prev.end, t.start)
			}
		}
		if err != nil {
			return err
		}
	}

	if !o.InsertSpaceBeforeAndAfterBinaryOperators {
		return nil
	}
	for _, op := range c.operators {
		left, operator, right := op[0], op[1], op[2]
		if err := s.gap(int(left.EndByte()), int(operator.StartByte())); err != nil {
			return err
		}
		if err := s.gap(int(operator.EndByte()), int(right.StartByte())); err != nil {
			return err
		}
	}
	return nil
}

func (o Options) pads(bracket string) bool {
	switch bracket {
	case "{", "}":
		return o.InsertSpaceAfterOpeningAndBeforeClosingNonemptyBraces
	case "[", "]":
		return o.InsertSpaceAfterOpeningAndBeforeClosingNonemptyBrackets
	case "(", ")":
		return o.InsertSpaceAfterOpeningAndBeforeClosingNonemptyParenthesis
	}
	return false
}

var (
	closerOf = map[string]string{"{": "}", "[": "]", "(": ")", "${": "}"}
	openerOf = map[string]string{"}": "{", "]": "[", ")": "("}
)

func isOpener(typ string) bool {
	_, ok := closerOf[typ]
	return ok
}

func isCloser(typ string) bool {
	_, ok := openerOf[typ]
	return ok
}

// inForHeader matches the semicolons of `for (init; test; update)`. The
// init semicolon belongs to the declaration or statement nested in the
// for statement.
func inForHeader(t token) bool {
	if t.parent == "for_statement" {
		return true
	}
	if t.grand != "for_statement" {
		return false
	}
	switch t.parent {
	case "lexical_declaration", "variable_declaration", "expression_statement", "empty_statement":
		return true
	}
	return false
}
