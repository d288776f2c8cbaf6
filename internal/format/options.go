package format

import "strings"

// IndentStyle controls how line starts are re-indented.
type IndentStyle int

const (
	// IndentNone leaves leading whitespace alone.
	IndentNone IndentStyle = iota
	// IndentSmart indents by bracket nesting and statement structure.
	IndentSmart
)

// Options selects the whitespace rules applied by Format.
type Options struct {
	BaseIndentSize      int // spaces added in front of every indented line
	IndentSize          int
	TabSize             int
	IndentStyle         IndentStyle
	ConvertTabsToSpaces bool

	InsertSpaceAfterCommaDelimiter                             bool
	InsertSpaceAfterSemicolonInForStatements                   bool
	InsertSpaceBeforeAndAfterBinaryOperators                   bool
	InsertSpaceAfterOpeningAndBeforeClosingNonemptyBraces      bool
	InsertSpaceAfterOpeningAndBeforeClosingNonemptyBrackets    bool
	InsertSpaceAfterOpeningAndBeforeClosingNonemptyParenthesis bool
}

// DefaultOptions is the style the Wrapped accessor is formatted with:
// two-space smart indentation, spaces after commas, around binary
// operators and inside non-empty braces.
func DefaultOptions() Options {
	return Options{
		IndentSize:          2,
		TabSize:             2,
		IndentStyle:         IndentSmart,
		ConvertTabsToSpaces: true,

		InsertSpaceAfterCommaDelimiter:                        true,
		InsertSpaceBeforeAndAfterBinaryOperators:              true,
		InsertSpaceAfterOpeningAndBeforeClosingNonemptyBraces: true,
	}
}

func (o Options) unit() string {
	if !o.ConvertTabsToSpaces {
		return "\t"
	}
	size := o.IndentSize
	if size <= 0 {
		size = o.TabSize
	}
	return strings.Repeat(" ", size)
}
