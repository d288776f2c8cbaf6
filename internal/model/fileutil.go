package model

import (
	"fmt"
	"os"
	"strings"
)

// LineContext represents a line from a file with surrounding context
type LineContext struct {
	Before2    string // Two lines before the target
	Before1    string // Line before the target
	Target     string // The actual target line
	After1     string // Line after the target
	After2     string // Two lines after the target
	LineNumber int    // Line number of the target
	Column     int    // Byte column inside Target, 0-based
	HasBefore2 bool
	HasBefore1 bool
	HasAfter1  bool
	HasAfter2  bool
	ErrorMsg   string // Error message if the line couldn't be located
}

// GetLineContext returns line lineNumber (1-based) of text with two lines
// of context on either side.
func GetLineContext(text string, lineNumber, column int) LineContext {
	result := LineContext{
		LineNumber: lineNumber,
		Column:     column,
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	if lineNumber < 1 || lineNumber > len(lines) {
		result.ErrorMsg = fmt.Sprintf("Line %d out of range (source has %d lines)", lineNumber, len(lines))
		return result
	}

	result.Target = lines[lineNumber-1]

	if lineNumber > 2 {
		result.Before2 = lines[lineNumber-3]
		result.HasBefore2 = true
	}
	if lineNumber > 1 {
		result.Before1 = lines[lineNumber-2]
		result.HasBefore1 = true
	}
	if lineNumber < len(lines) {
		result.After1 = lines[lineNumber]
		result.HasAfter1 = true
	}
	if lineNumber+1 < len(lines) {
		result.After2 = lines[lineNumber+1]
		result.HasAfter2 = true
	}

	return result
}

// GetFileLineContext is GetLineContext over a file on disk.
func GetFileLineContext(filePath string, lineNumber, column int) LineContext {
	if strings.HasPrefix(filePath, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			filePath = strings.Replace(filePath, "~", home, 1)
		}
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return LineContext{
			LineNumber: lineNumber,
			ErrorMsg:   fmt.Sprintf("Could not read file: %v", err),
		}
	}
	return GetLineContext(string(content), lineNumber, column)
}

// String renders the context with line numbers and a caret under Column.
func (c LineContext) String() string {
	if c.ErrorMsg != "" {
		return c.ErrorMsg
	}
	var b strings.Builder
	line := func(n int, s string) {
		fmt.Fprintf(&b, "%5d | %s\n", n, s)
	}
	if c.HasBefore2 {
		line(c.LineNumber-2, c.Before2)
	}
	if c.HasBefore1 {
		line(c.LineNumber-1, c.Before1)
	}
	line(c.LineNumber, c.Target)
	col := c.Column
	if col > len(c.Target) {
		col = len(c.Target)
	}
	fmt.Fprintf(&b, "      | %s^\n", strings.Repeat(" ", col))
	if c.HasAfter1 {
		line(c.LineNumber+1, c.After1)
	}
	if c.HasAfter2 {
		line(c.LineNumber+2, c.After2)
	}
	return b.String()
}
