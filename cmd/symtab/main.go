// Command symtab builds, inspects and queries symbol table snapshots.
//
// Usage:
//
//	symtab build  [flags] FILE...   intern the tokens of FILEs and save a snapshot
//	symtab dump   [flags]           print every symbol of a snapshot
//	symtab lookup [flags] QUERY...  resolve strings to symbols, or symbols to strings with -s
//
// Snapshots are read from and written to a local directory, S3 or MinIO,
// selected with --store.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/symtab"
	"github.com/spf13/pflag"
)

const name = "symtab"

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *env, args []string) error
}

var commands = []command{
	{"build", "intern the tokens of files and save a snapshot", runBuild},
	{"dump", "print every symbol of a snapshot", runDump},
	{"lookup", "resolve strings or symbols against a snapshot", runLookup},
}

// env carries the process streams so commands can be tested in-process.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := &env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := run(ctx, e, os.Args[1:]); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, e *env, args []string) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(e.stderr)
		if len(args) == 0 {
			return errors.New("missing command")
		}
		return nil
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, e, args[1:])
		}
	}
	usage(e.stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [flags] [args]\n\nCommands:\n", name)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(w, "\nRun '%s <command> --help' for the flags of a command.\n", name)
}

func newFlagSet(e *env, cmd, args string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: %s %s [flags] %s\n\nFlags:\n", name, cmd, args)
		fs.PrintDefaults()
	}
	fs.SortFlags = false
	return fs
}

type logFlags struct {
	verbose *bool
	json    *bool
}

func addLogFlags(fs *pflag.FlagSet) logFlags {
	return logFlags{
		verbose: fs.BoolP("verbose", "v", false, "log progress"),
		json:    fs.Bool("log-json", false, "log JSON records instead of text"),
	}
}

// logger writes warnings, or everything with -v, to stderr.
func (f logFlags) logger(e *env) *symtab.Logger {
	level := slog.LevelWarn
	if *f.verbose {
		level = slog.LevelDebug
	}
	if *f.json {
		return symtab.NewJSONLogger(e.stderr, level)
	}
	return symtab.NewTextLogger(e.stderr, level)
}
