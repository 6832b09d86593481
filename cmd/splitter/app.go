package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sir_venger/splitter/internal/app/console"
	"github.com/sir_venger/splitter/internal/config"
	"github.com/sir_venger/splitter/internal/models"
	"github.com/sir_venger/splitter/internal/usecase/splitsvc"
	"github.com/sir_venger/splitter/pkg/digest"
	"github.com/sir_venger/splitter/pkg/exitcodes"
)

const program = "splitter"

type streams struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool
}

type options struct {
	configPath string
	algo       string
	force      bool
	yes        bool
	keepParts  bool
	recover    bool
	quiet      bool
	noColor    bool
	logLevel   string
	help       bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(program, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "path to the YAML config (default $SPLITTER_CONFIG or ./splitter.yaml)")
	fs.StringVar(&opts.algo, "algo", "", "digest algorithm: "+strings.Join(digest.Algorithms(), ", "))
	fs.BoolVar(&opts.force, "force", false, "write parts into an existing non-empty parts directory")
	fs.BoolVarP(&opts.yes, "yes", "y", false, "delete the parts directory after a verified join without asking")
	fs.BoolVar(&opts.keepParts, "keep-parts", false, "never delete the parts directory after a join")
	fs.BoolVar(&opts.recover, "recover", false, "join every file of the directory when no parts are recognised")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "print only warnings and errors")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVarP(&opts.help, "help", "h", false, "show help")

	return fs
}

// run выполняет одну команду. Ошибка уже напечатана, когда run её возвращает.
func run(ctx context.Context, args []string, s streams) error {
	var opts options
	fs := newFlagSet(&opts)

	if err := fs.Parse(legacyArgs(args)); err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		console.PrintHelp(s.errOut, program, fs.FlagUsages())
		return usageError{msg: err.Error()}
	}

	positional := fs.Args()
	if opts.help || (len(positional) > 0 && positional[0] == "help") {
		console.PrintHelp(s.out, program, fs.FlagUsages())
		return nil
	}
	if len(positional) == 0 {
		console.PrintHelp(s.errOut, program, fs.FlagUsages())
		return usageError{msg: "no command given"}
	}

	cfg, err := loadConfig(fs, &opts)
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return err
	}

	level, err := console.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return fmt.Errorf("%w: %w", models.ErrInvalidArgument, err)
	}

	reporter := console.NewReporter(s.out, console.Options{
		Color:    cfg.Color,
		Quiet:    opts.quiet,
		Progress: console.IsTerminal(s.out),
	})
	app := &application{
		cfg:      cfg,
		opts:     opts,
		reporter: reporter,
		svc: splitsvc.New(splitsvc.Deps{
			Reporter:      reporter,
			Confirmer:     console.NewPrompt(s.in, s.out, s.interactive),
			Logger:        console.NewLogger(s.errOut, level).With("command", positional[0]),
			HashAlgorithm: cfg.HashAlgorithm,
		}),
	}

	if err := app.dispatch(ctx, positional[0], positional[1:]); err != nil {
		reporter.Errorf("%v", err)
		return err
	}

	return nil
}

// loadConfig читает конфигурацию и накладывает на неё флаги.
func loadConfig(fs *pflag.FlagSet, opts *options) (*config.Config, error) {
	if opts.yes && opts.keepParts {
		return nil, fmt.Errorf("%w: --yes and --keep-parts are mutually exclusive", models.ErrInvalidArgument)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if fs.Changed("algo") {
		cfg.HashAlgorithm = digest.Normalize(opts.algo)
	}
	if opts.yes {
		cfg.Cleanup = string(splitsvc.CleanupAlways)
	}
	if opts.keepParts {
		cfg.Cleanup = string(splitsvc.CleanupNever)
	}
	if fs.Changed("recover") {
		cfg.Recover = opts.recover
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(opts.logLevel)
	}
	if opts.noColor {
		cfg.Color = console.ColorNever
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type application struct {
	cfg      *config.Config
	opts     options
	reporter *console.Reporter
	svc      splitsvc.Service
}

func (a *application) dispatch(ctx context.Context, verb string, args []string) error {
	switch verb {
	case "split":
		if len(args) != 2 {
			return usage("split <file> <parts>")
		}
		parts, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return fmt.Errorf("%w: part count %q is not a number", models.ErrInvalidArgument, args[1])
		}
		res, err := a.svc.SplitByCount(ctx, splitsvc.SplitRequest{Path: args[0], Parts: parts, Force: a.opts.force})
		if err != nil {
			return err
		}
		a.joinHint(res)

	case "split-size":
		if len(args) != 2 {
			return usage("split-size <file> <size>")
		}
		res, err := a.svc.SplitBySize(ctx, splitsvc.SplitRequest{Path: args[0], SizeSpec: args[1], Force: a.opts.force})
		if err != nil {
			return err
		}
		a.joinHint(res)

	case "join":
		if len(args) < 1 || len(args) > 2 {
			return usage("join <parts-dir> [output]")
		}
		req := splitsvc.JoinRequest{
			Dir:     args[0],
			Cleanup: splitsvc.CleanupPolicy(a.cfg.Cleanup),
			Recover: a.cfg.Recover,
		}
		if len(args) == 2 {
			req.Output = args[1]
		}
		res, err := a.svc.Join(ctx, req)
		if errors.Is(err, models.ErrIntegrity) {
			a.reporter.Warnf("%s was kept for inspection, %s is untouched", res.Output, req.Dir)
		}
		return err

	case "inspect":
		if len(args) != 1 {
			return usage("inspect <parts-dir>")
		}
		res, err := a.svc.Inspect(ctx, args[0])
		if err != nil {
			return err
		}
		a.reporter.Inspect(res)

	default:
		return usageError{msg: fmt.Sprintf("unknown command %q, see %s help", verb, program)}
	}

	return nil
}

func (a *application) joinHint(res models.SplitResult) {
	a.reporter.Infof("Join back with: %s join %s", program, filepath.Clean(res.Dir))
}

// usageError сообщает о неверной командной строке. Код завершения берётся из ExitCode.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func (usageError) ExitCode() int { return exitcodes.InvalidArgument }

func usage(form string) error {
	return usageError{msg: fmt.Sprintf("usage: %s %s", program, form)}
}
