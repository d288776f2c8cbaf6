// Package repl is an interactive prompt that transforms snippets as they
// are typed.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"aejsx/internal/model"
	"aejsx/internal/parse"
	"aejsx/internal/transform"
)

const (
	historyFile = ".aejsx_history"
	promptMain  = "aejsx> "
	promptCont  = "  ...> "
)

var commands = []string{":flat", ":wrap", ":format", ":help", ":quit"}

const helpText = `:flat     export properties directly (default)
:wrap     wrap the module in an accessor
:format   toggle formatting of wrapped output
:quit     leave
A blank line forces a snippet that does not parse yet.`

// Session holds the options a REPL runs with and the snippet being typed.
type Session struct {
	opts model.Options
	log  *zap.Logger
	buf  []string
}

// NewSession starts a session from opts.
func NewSession(opts model.Options, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{opts: opts, log: log}
}

// Mode returns the current mode.
func (s *Session) Mode() model.Mode {
	return s.opts.Mode
}

// Pending reports whether a snippet is waiting for more lines.
func (s *Session) Pending() bool {
	return len(s.buf) > 0
}

// Prompt returns the prompt for the next line.
func (s *Session) Prompt() string {
	if s.Pending() {
		return promptCont
	}
	return promptMain
}

// Feed consumes one input line. It returns the text to print, empty when
// the snippet needs more lines, and whether the session should end.
func (s *Session) Feed(line string) (string, bool) {
	if !s.Pending() && strings.HasPrefix(strings.TrimSpace(line), ":") {
		return s.command(strings.TrimSpace(line))
	}

	if strings.TrimSpace(line) == "" {
		if !s.Pending() {
			return "", false
		}
		// force the snippet through and report why it fails
		return s.flush(), false
	}

	s.buf = append(s.buf, line)
	src := strings.Join(s.buf, "\n")
	if _, err := parse.JavaScript([]byte(src)); err != nil && Incomplete(src, err) {
		return "", false
	}
	return s.flush(), false
}

func (s *Session) flush() string {
	src := strings.Join(s.buf, "\n")
	s.buf = nil

	res, err := transform.New(s.opts, transform.WithLogger(s.log)).Transform("repl", src)
	if err != nil {
		return "error: " + err.Error()
	}
	return res.Code
}

func (s *Session) command(cmd string) (string, bool) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return "", true
	case ":flat":
		s.opts.Mode = model.Flat
		return "mode: flat", false
	case ":wrap":
		s.opts.Mode = model.Wrapped
		return "mode: wrapped", false
	case ":format":
		s.opts.Format = !s.opts.Format
		return fmt.Sprintf("format: %t", s.opts.Format), false
	case ":help":
		return helpText, false
	}
	return "unknown command. Type :help for commands.", false
}

// Incomplete reports whether err means src stops in the middle of a
// construct, such as an unclosed brace, rather than being wrong.
func Incomplete(src string, err error) bool {
	var se *parse.SyntaxError
	if !errors.As(err, &se) {
		return false
	}
	if se.Missing || se.Offset >= len(strings.TrimRight(src, " \t\r\n")) {
		return true
	}
	return depth(src) > 0
}

// depth counts unclosed brackets outside strings and comments.
func depth(src string) int {
	n := 0
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return n + 1
			}
			i += end + 3
		case c == '{' || c == '(' || c == '[':
			n++
		case c == '}' || c == ')' || c == ']':
			n--
		}
	}
	if quote != 0 {
		n++
	}
	return n
}

// Run drives a session on the terminal until :quit or end of input.
func Run(opts model.Options, log *zap.Logger) error {
	fmt.Printf("aejsx %s (%s mode). Type :help for commands.\n", model.Version, opts.Mode)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		var out []string
		for _, c := range commands {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
		return out
	})

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	s := NewSession(opts, log)
	for {
		line, err := ln.Prompt(s.Prompt())
		switch {
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			// ctrl+c drops the pending snippet
			s.buf = nil
			continue
		case err != nil:
			return err
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		out, done := s.Feed(line)
		if done {
			return nil
		}
		if out != "" {
			fmt.Println(out)
		}
	}
}
