package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"
	"golang.org/x/term"

	"aejsx/internal/logging"
	"aejsx/internal/model"
	"aejsx/internal/repl"
	"aejsx/internal/report"
	"aejsx/internal/transform"
	"aejsx/internal/tui"
	"aejsx/internal/web"
)

const (
	repoOwner = "motiondeveloper"
	repoName  = "aejsx"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      repoOwner,
		Repository: repoName,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("👉 Download it from https://github.com/%s/%s/releases\n", repoOwner, repoName)
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: aejsx [options] [file.js ...]\n\n")
		fmt.Fprintf(os.Stderr, "aejsx rewrites bundled ES modules into a single object literal\n")
		fmt.Fprintf(os.Stderr, "for hosts that only evaluate plain object expressions.\n")
		fmt.Fprintf(os.Stderr, "Without files the bundle is read from stdin.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  aejsx dist/index.js          # Flat object on stdout\n")
		fmt.Fprintf(os.Stderr, "  aejsx -w -f dist/index.js    # Wrapped, formatted accessor\n")
		fmt.Fprintf(os.Stderr, "  aejsx -o out dist/*.js       # Write results into out/\n")
		fmt.Fprintf(os.Stderr, "  aejsx -r -k dist/*.js        # Diagnostic report, keep going on errors\n")
		fmt.Fprintf(os.Stderr, "  aejsx --repl                 # Interactive prompt\n")
	}

	wrapFlag := pflag.BoolP("wrap", "w", false, "Wrap the module in an accessor method instead of flat properties")
	accessorFlag := pflag.String("accessor", model.DefaultOptions().Accessor, "Accessor method name in wrapped mode")
	formatFlag := pflag.BoolP("format", "f", false, "Format the wrapped accessor")
	reservedFlag := pflag.StringSlice("reserved", nil, "Extra reserved globals never redeclared in wrapped mode")
	outFlag := pflag.StringP("out", "o", "", "Write each result into this directory")
	writeFlag := pflag.Bool("write", false, "Rewrite the input files in place")
	jsonFlag := pflag.BoolP("json", "j", false, "Output results as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Print a diagnostic report")
	exportsFlag := pflag.BoolP("exports", "e", false, "Only list the exports of every file")
	keepGoingFlag := pflag.BoolP("keep-going", "k", false, "Continue with the next file after a failure")
	webFlag := pflag.Bool("web", false, "Start the web playground")
	addrFlag := pflag.String("addr", "localhost:8080", "Listen address of the web playground")
	replFlag := pflag.Bool("repl", false, "Start an interactive prompt")
	tuiFlag := pflag.BoolP("tui", "t", false, "Browse the results in a terminal UI")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Log every transformation and include code in the report")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("aejsx version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	log, err := logging.New(*verboseFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logging.SetLogger(log)

	opts := model.DefaultOptions()
	if *wrapFlag {
		opts.Mode = model.Wrapped
	}
	opts.Accessor = *accessorFlag
	opts.Format = *formatFlag
	opts.Reserved = *reservedFlag
	opts.KeepGoing = *keepGoingFlag

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *webFlag {
		if err := web.NewServer(opts, log).ListenAndServe(ctx, *addrFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *replFlag {
		if err := repl.Run(opts, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	units, err := readUnits(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outputFlag := *jsonFlag || *reportFlag || *exportsFlag || *writeFlag || *outFlag != ""
	if *tuiFlag || (!outputFlag && len(units) > 1 && term.IsTerminal(int(os.Stdout.Fd()))) {
		runTuiMode(opts, units)
		return
	}

	tr := transform.New(opts, transform.WithLogger(log))

	results, bundleErr := tr.Bundle(ctx, units)

	switch {
	case *jsonFlag:
		err = writeJSON(os.Stdout, results)
	case *reportFlag:
		fmt.Print(report.Generate(results, *verboseFlag))
	case *exportsFlag:
		writeExports(os.Stdout, results)
	case *writeFlag:
		err = writeFiles(results, "", log)
	case *outFlag != "":
		err = writeFiles(results, *outFlag, log)
	default:
		writeCode(os.Stdout, results)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if bundleErr != nil {
		if !*reportFlag && !*jsonFlag {
			fmt.Fprintf(os.Stderr, "Error: %v\n", bundleErr)
		}
		os.Exit(1)
	}
}

// readUnits loads the named files, or stdin when there are none or the
// name is "-".
func readUnits(args []string) ([]model.Unit, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	units := make([]model.Unit, 0, len(args))
	for _, name := range args {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(os.Stdin)
			name = "<stdin>"
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		units = append(units, model.Unit{File: name, Code: string(data)})
	}
	return units, nil
}

func writeJSON(w io.Writer, results []model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeExports(w io.Writer, results []model.Result) {
	for _, r := range results {
		if !r.OK() {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", r.File, report.Exports(r.Exports))
	}
}

func writeCode(w io.Writer, results []model.Result) {
	for _, r := range results {
		if !r.OK() {
			continue
		}
		if len(results) > 1 {
			fmt.Fprintf(w, "// %s\n", r.File)
		}
		fmt.Fprintln(w, r.Code)
	}
}

// writeFiles stores every successful result in dir, or over its input
// when dir is empty.
func writeFiles(results []model.Result, dir string, log *zap.Logger) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	var errs []error
	for _, r := range results {
		if !r.OK() {
			continue
		}
		path := r.File
		if dir != "" {
			path = filepath.Join(dir, filepath.Base(r.File))
		} else if strings.HasPrefix(path, "<") {
			errs = append(errs, fmt.Errorf("cannot write %s in place", path))
			continue
		}
		if err := os.WriteFile(path, []byte(r.Code+"\n"), 0o644); err != nil {
			errs = append(errs, err)
			continue
		}
		log.Info("wrote output", zap.String("file", path))
	}
	return errors.Join(errs...)
}

func runTuiMode(opts model.Options, units []model.Unit) {
	m := tui.InitialModel(opts, units)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
