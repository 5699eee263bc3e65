package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/lsy641/notes2html"
	"github.com/lsy641/notes2html/internal/config"
	"github.com/lsy641/notes2html/internal/fileutil"
	"github.com/lsy641/notes2html/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

const (
	cmdConvert = "convert"
	cmdServe   = "serve"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"
)

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if slices.Contains(os.Args, "-v") || slices.Contains(os.Args, "--verbose") {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch {
	case isCommand(cmd):
	case cmd == "-h" || cmd == "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case looksLikeMarkdown(cmd):
		cmd, rest = cmdConvert, args[1:]
	default:
		fmt.Fprintf(env.Stderr, "Error: %v: %s\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := dispatch(ctx, cmd, rest, env); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func dispatch(ctx context.Context, cmd string, args []string, env *Environment) error {
	switch cmd {
	case cmdConvert:
		flags, positional, err := parseConvertFlags(args, env.Stdout)
		if err != nil {
			return usageError(err)
		}
		prepareEnv(env, flags.common)
		return runConvert(ctx, positional, flags, env)
	case cmdServe:
		flags, positional, err := parseServeFlags(args, env.Stdout)
		if err != nil {
			return usageError(err)
		}
		prepareEnv(env, flags.common)
		return runServe(ctx, positional, flags, env)
	case cmdDoctor:
		return runDoctor(args, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "notes2html %s\n", Version)
		return nil
	default:
		return runHelp(args, env)
	}
}

// errDoctorFailed carries a failed doctor run to the exit code; the report
// itself is already printed.
var errDoctorFailed = errors.New("environment not ready")

// prepareEnv sets up logging and warnings shared by convert and serve.
func prepareEnv(env *Environment, common commonFlags) {
	if env.Logger == nil {
		env.Logger = newLogger(env.Stderr, common.verbose)
	}
	if common.quiet {
		env.Stdout = io.Discard
		return
	}
	warnUnknownEnvVars(env.Stderr)
}

func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// isCommand reports whether s names a command. Matching is case-sensitive.
func isCommand(s string) bool {
	switch s {
	case cmdConvert, cmdServe, cmdDoctor, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// looksLikeMarkdown reports whether s is a markdown file path, which runs
// convert without naming it.
func looksLikeMarkdown(s string) bool {
	return fileutil.IsMarkdown(s)
}

// hintFor returns an actionable suffix for err, or "".
func hintFor(err error) string {
	var notFound *inputNotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForInputNotFound()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, notes2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(notes2html.Styles())
	case errors.Is(err, notes2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
