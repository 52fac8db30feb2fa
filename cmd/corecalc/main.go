package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/corecalc/internal/config"
	"github.com/funvibe/corecalc/internal/pipeline"
	"github.com/mattn/go-isatty"
)

const usage = `Usage: corecalc [flags] <command> <file>...

Commands:
  check FILE        type-check the document's expression
  eval FILE         type-check, then evaluate
  kinds FILE        list the expression kinds legal at the document's type
  dump FILE         print the decoded expression tree
  test PATH...      run documents (or directories of them) against their expect blocks
  help              show this message

Flags:
  -config PATH      use PATH instead of searching for corecalc.yaml
  -trace            log every checking rule and reduction to stderr
  -no-color         disable colored output
`

// options are the host-level flags shared by every command.
type options struct {
	configPath string
	trace      bool
	noColor    bool
}

// app is one CLI invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	trace  *log.Logger
	color  bool
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		fmt.Fprint(stderr, usage)
		return 2
	}

	if len(rest) == 0 || rest[0] == "help" || rest[0] == "-help" || rest[0] == "--help" {
		fmt.Fprint(stdout, usage)
		return 0
	}

	command, files := rest[0], rest[1:]
	if len(files) == 0 {
		fmt.Fprintf(stderr, "Usage: corecalc %s <file>\n", command)
		return 2
	}

	a, err := newApp(opts, files[0], stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}

	switch command {
	case "check":
		return a.handleCheck(files[0])
	case "eval":
		return a.handleEval(files[0])
	case "kinds":
		return a.handleKinds(files[0])
	case "dump":
		return a.handleDump(files[0])
	case "test":
		return a.handleTest(files)
	}

	fmt.Fprintf(stderr, "Unknown command: %s\n", command)
	fmt.Fprint(stderr, usage)
	return 2
}

func parseFlags(args []string) (options, []string, error) {
	var opts options
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-trace" || arg == "--trace":
			opts.trace = true
		case arg == "-no-color" || arg == "--no-color":
			opts.noColor = true
		case arg == "-config" || arg == "--config":
			if i+1 >= len(args) {
				return opts, nil, fmt.Errorf("%s requires a path", arg)
			}
			i++
			opts.configPath = args[i]
		case strings.HasPrefix(arg, "-config=") || strings.HasPrefix(arg, "--config="):
			opts.configPath = arg[strings.Index(arg, "=")+1:]
		case strings.HasPrefix(arg, "-") && arg != "-help" && arg != "--help":
			return opts, nil, fmt.Errorf("unknown flag %s", arg)
		default:
			rest = append(rest, arg)
		}
	}
	return opts, rest, nil
}

func newApp(opts options, firstFile string, stdout, stderr io.Writer) (*app, error) {
	cfg, err := loadConfig(opts.configPath, firstFile)
	if err != nil {
		return nil, err
	}

	a := &app{stdout: stdout, stderr: stderr, cfg: cfg}
	if opts.trace || cfg.Trace {
		a.trace = log.New(stderr, "trace: ", 0)
	}
	a.color = useColor(cfg.Color, opts.noColor, stdout)
	return a, nil
}

func loadConfig(explicit, firstFile string) (*config.Config, error) {
	if explicit != "" {
		return config.LoadConfig(explicit)
	}
	dir := firstFile
	if info, err := os.Stat(firstFile); err != nil || !info.IsDir() {
		dir = filepath.Dir(firstFile)
	}
	path, err := config.FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

// useColor decides whether to emit ANSI colors on out.
func useColor(mode string, disabled bool, out io.Writer) bool {
	if disabled || mode == config.ColorNever {
		return false
	}
	if mode == config.ColorAlways {
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

func (a *app) paint(color, s string) string {
	if !a.color {
		return s
	}
	return color + s + ansiReset
}

// process runs p over the document at path.
func (a *app) process(p *pipeline.Pipeline, path string, testMode bool) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext(nil)
	ctx.FilePath = path
	ctx.Config = a.cfg
	ctx.Trace = a.trace
	ctx.IsTestMode = testMode

	source, err := os.ReadFile(path)
	if err != nil {
		ctx.Errors = append(ctx.Errors, fmt.Errorf("reading %s: %w", path, err))
		return ctx
	}
	ctx.Source = source
	return p.Run(ctx)
}

func (a *app) reportErrors(ctx *pipeline.PipelineContext) {
	fmt.Fprintln(a.stderr, "Processing failed with errors:")
	for _, err := range ctx.Errors {
		fmt.Fprintf(a.stderr, "- %s\n", err)
	}
}
