// Package transform rewrites a bundled ES module into a single object
// literal for hosts that only evaluate plain object expressions.
//
// A run parses the source, discovers the exported bindings, rewrites
// the top-level statements by splicing the original text, and assembles
// the braces around the result. Untouched source keeps its formatting
// and comments byte for byte.
package transform

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"aejsx/internal/edit"
	"aejsx/internal/format"
	"aejsx/internal/logging"
	"aejsx/internal/model"
	"aejsx/internal/parse"
)

// Formatter canonicalizes whitespace of the generated accessor.
type Formatter interface {
	Format(text string) (string, error)
}

// ParseError reports a unit whose source could not be parsed.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s in %s", e.Err.Error(), e.File)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Position returns the 1-based line and 0-based column of the failure
// when the parser reported one.
func (e *ParseError) Position() (line, column int, ok bool) {
	var se *parse.SyntaxError
	if errors.As(e.Err, &se) {
		return se.Line, se.Column, true
	}
	return 0, 0, false
}

// Transformer runs the pipeline with fixed options.
type Transformer struct {
	opts      model.Options
	parse     parse.Func
	formatter Formatter
	log       *zap.Logger
}

// Option customizes a Transformer.
type Option func(*Transformer)

// WithParser replaces the tree-sitter parser.
func WithParser(p parse.Func) Option {
	return func(t *Transformer) { t.parse = p }
}

// WithFormatter sets the formatter used for Wrapped output. Flat output
// is never reformatted.
func WithFormatter(f Formatter) Option {
	return func(t *Transformer) { t.formatter = f }
}

// WithLogger sets the logger; the shared logging.Logger() is the default.
func WithLogger(l *zap.Logger) Option {
	return func(t *Transformer) { t.log = l }
}

// New returns a Transformer. opts.Format installs the default formatter
// unless WithFormatter supplied one.
func New(opts model.Options, options ...Option) *Transformer {
	if opts.Accessor == "" {
		opts.Accessor = model.DefaultOptions().Accessor
	}
	t := &Transformer{opts: opts, parse: parse.JavaScript}
	for _, o := range options {
		o(t)
	}
	if t.formatter == nil && opts.Format {
		t.formatter = format.New(format.DefaultOptions())
	}
	if t.log == nil {
		t.log = logging.Logger()
	}
	return t
}

// Options returns the options the Transformer runs with.
func (t *Transformer) Options() model.Options {
	return t.opts
}

// Transform rewrites one unit. A parse failure is returned as *ParseError
// and yields no code.
func (t *Transformer) Transform(file, code string) (model.Result, error) {
	res := model.Result{File: file, Mode: t.opts.Mode.String(), Original: code}

	root, err := t.parse([]byte(code))
	if err != nil {
		perr := &ParseError{File: file, Err: err}
		res.Err, res.ErrMsg = perr, perr.Error()
		t.log.Warn("parse failed", zap.String("file", file), zap.Error(err))
		return res, perr
	}
	res.State = model.Parsed

	exports := DiscoverExports(root)
	res.Exports = exports.List()
	res.State = model.ExportsDiscovered

	r := newRewriter(code, exports, t.opts)
	unit := edit.GuessIndent(code)

	fail := func(err error) (model.Result, error) {
		err = fmt.Errorf("%s: %w", file, err)
		res.Err, res.ErrMsg = err, err.Error()
		return res, err
	}

	var out string
	switch t.opts.Mode {
	case model.Wrapped:
		if err := r.wrapped(root); err != nil {
			return fail(err)
		}
		res.State = model.Rewritten

		f := t.formatter
		body, err := accessor(t.opts.Accessor, r.ed.Trim().String(), r.returnStatement(), unit, f)
		if err != nil {
			return fail(err)
		}
		if f != nil {
			unit = edit.GuessIndent(body)
		}
		out = assemble(edit.New(body), unit)
	default:
		if err := r.flat(root); err != nil {
			return fail(err)
		}
		res.State = model.Rewritten
		out = assemble(r.ed, unit)
	}
	res.State = model.Assembled

	res.Code = out
	res.Removed = r.removed
	res.Edits = r.ed.Len()
	res.State = model.Done

	t.log.Info("exported jsx",
		zap.String("file", file),
		zap.String("mode", res.Mode),
		zap.Strings("exports", exports.Names()))
	t.log.Debug("rewrite stats",
		zap.String("file", file),
		zap.Int("exports", exports.Len()),
		zap.Int("removed", res.Removed),
		zap.Int("edits", res.Edits))
	return res, nil
}

// Bundle transforms units one after another. Without KeepGoing the first
// failure ends the batch and the results so far are returned with it.
// With KeepGoing every unit is attempted and failures are joined.
func (t *Transformer) Bundle(ctx context.Context, units []model.Unit) ([]model.Result, error) {
	results := make([]model.Result, 0, len(units))
	var errs []error
	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := t.Transform(u.File, u.Code)
		results = append(results, res)
		if err != nil {
			if !t.opts.KeepGoing {
				return results, err
			}
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}
