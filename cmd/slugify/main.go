// Command slugify prints slugs built from a pattern and key=value pairs, and
// backfills slug columns of Postgres tables or MongoDB collections.
//
//	slugify [-pattern P] [-sep S] key=value...
//	slugify "Some Title"
//	slugify backfill -driver pg|mongo -table T [-key K] [-display D] [-overwrite] [-migrate]
//	slugify lookup -driver pg|mongo -table T [SLUG]
//
// Defaults for pattern, field, separator and overwrite come from SLUG_* env
// variables; connection settings from PG_* and MONGODB_* variables. When
// REDIS_URL is set, lookups are served through a shared Redis cache, which a
// backfill invalidates. A .env file in the working directory is loaded when
// present.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/sluggable/pkg/logger"
)

var errUsage = errors.New("usage error")

const usage = `usage:
  slugify [-pattern P] [-sep S] key=value...
  slugify TEXT
  slugify backfill -table T [-driver pg|mongo] [-key K] [-display D]
                   [-pattern P] [-field F] [-sep S] [-overwrite] [-migrate]
  slugify lookup -table T [-driver pg|mongo] [-key K] [-display D] [-field F] [SLUG]`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type (
	commandKey struct{}
	tableKey   struct{}
)

// newLogger writes text to stderr unless APP_ENV or LOG_FORMAT say otherwise.
// LOG_LEVEL overrides the level picked for the environment.
func newLogger(stderr io.Writer, getenv func(string) string) *slog.Logger {
	opts := []logger.Option{logger.WithTextFormatter()}
	if env := getenv("APP_ENV"); env != "" {
		opts = append(opts, logger.WithEnvironment(env, "slugify"))
	}
	return logger.New(append(opts,
		logger.WithFormatName(getenv("LOG_FORMAT")),
		logger.WithLevelName(getenv("LOG_LEVEL")),
		logger.WithOutput(stderr),
		logger.WithAttr(logger.Component("slugify")),
		logger.WithContextValue("command", commandKey{}),
		logger.WithContextValue("table", tableKey{}),
	)...)
}

// withTable tags every record logged with the returned context with table.
func withTable(ctx context.Context, table string) context.Context {
	return context.WithValue(ctx, tableKey{}, table)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log := newLogger(stderr, os.Getenv)

	command := "generate"
	if len(args) > 0 && (args[0] == "backfill" || args[0] == "lookup") {
		command, args = args[0], args[1:]
	}
	ctx = context.WithValue(ctx, commandKey{}, command)

	var err error
	switch command {
	case "backfill":
		err = runBackfill(ctx, args, stdout, log)
	case "lookup":
		err = runLookup(ctx, args, stdout, log)
	default:
		err = runGenerate(args, stdout)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprintln(stdout, usage)
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, usage)
		return 2
	default:
		log.ErrorContext(ctx, "slugify failed", logger.Error(err))
		return 1
	}
}
