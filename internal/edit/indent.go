package edit

import "strings"

// GuessIndent returns the indentation unit text uses: a tab when tab
// indented lines are at least as common as space indented ones, otherwise
// the shortest run of leading spaces. Unindented text yields a tab.
func GuessIndent(text string) string {
	tabs, spaces, min := 0, 0, 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch line[0] {
		case '\t':
			tabs++
		case ' ':
			spaces++
			n := len(line) - len(strings.TrimLeft(line, " "))
			if min == 0 || n < min {
				min = n
			}
		}
	}
	if spaces == 0 || tabs >= spaces {
		return "\t"
	}
	return strings.Repeat(" ", min)
}

// IndentLines prefixes every non-empty line of s with unit.
func IndentLines(s, unit string) string {
	if s == "" {
		return s
	}
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	b.Grow(len(s) + len(lines)*len(unit))
	for _, line := range lines {
		if strings.TrimRight(line, "\r\n") != "" {
			b.WriteString(unit)
		}
		b.WriteString(line)
	}
	return b.String()
}

// IndentCode is IndentLines for JavaScript source: a line that starts
// inside a template literal, or after a backslash continued string, is
// part of the literal's value and keeps its text.
func IndentCode(s, unit string) string {
	if s == "" {
		return s
	}
	keep := literalLines(s)
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	b.Grow(len(s) + len(lines)*len(unit))
	p := 0
	for _, line := range lines {
		if strings.TrimRight(line, "\r\n") != "" && !keep[p] {
			b.WriteString(unit)
		}
		b.WriteString(line)
		p += len(line)
	}
	return b.String()
}

type lexState int

const (
	lexCode lexState = iota
	lexSingle
	lexDouble
	lexTemplate
	lexLineComment
	lexBlockComment
)

// literalLines returns the offsets of line starts in s that fall inside a
// string or template literal. Regular expression literals are not
// recognized.
func literalLines(s string) map[int]bool {
	marks := make(map[int]bool)
	var subst []int // brace depth at each open ${
	state, depth := lexCode, 0
	next := func(i int) byte {
		if i+1 < len(s) {
			return s[i+1]
		}
		return 0
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case lexCode:
			switch {
			case c == '\'':
				state = lexSingle
			case c == '"':
				state = lexDouble
			case c == '`':
				state = lexTemplate
			case c == '/' && next(i) == '/':
				state = lexLineComment
				i++
			case c == '/' && next(i) == '*':
				state = lexBlockComment
				i++
			case c == '{':
				depth++
			case c == '}':
				if n := len(subst); n > 0 && subst[n-1] == depth {
					subst = subst[:n-1]
					state = lexTemplate
				} else {
					depth--
				}
			}
		case lexSingle, lexDouble:
			switch {
			case c == '\\':
				if next(i) == '\n' {
					marks[i+2] = true
				}
				i++
			case c == '\n':
				state = lexCode
			case c == '\'' && state == lexSingle, c == '"' && state == lexDouble:
				state = lexCode
			}
		case lexTemplate:
			switch {
			case c == '\\':
				if next(i) == '\n' {
					marks[i+2] = true
				}
				i++
			case c == '`':
				state = lexCode
			case c == '$' && next(i) == '{':
				subst = append(subst, depth)
				state = lexCode
				i++
			case c == '\n':
				marks[i+1] = true
			}
		case lexLineComment:
			if c == '\n' {
				state = lexCode
			}
		case lexBlockComment:
			if c == '*' && next(i) == '/' {
				state = lexCode
				i++
			}
		}
	}
	return marks
}
