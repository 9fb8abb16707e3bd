package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrymomot/sluggable/pkg/config"
	"github.com/dmitrymomot/sluggable/pkg/sluggable"
)

func runGenerate(args []string, stdout io.Writer) error {
	cfg, err := loadSlugConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("slugify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pattern := fs.String("pattern", cfg.Pattern, "slug pattern with :placeholders")
	sep := fs.String("sep", cfg.Replacement, "word separator")
	if err := fs.Parse(args); err != nil {
		return errors.Join(errUsage, err)
	}

	rec, rest, err := parsePairs(fs.Args())
	if err != nil {
		return err
	}
	if len(rec) == 0 && len(rest) > 0 && !flagSet(fs, "pattern") {
		*pattern = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return errors.Join(errUsage, fmt.Errorf("unexpected argument %q, want key=value", rest[0]))
	}

	check := sluggable.NewConfig(sluggable.WithPattern(*pattern), sluggable.WithReplacement(*sep))
	if err := check.Validate(); err != nil {
		return errors.Join(errUsage, err)
	}

	_, err = fmt.Fprintln(stdout, sluggable.Generate(*pattern, rec, *sep))
	return err
}

// parsePairs splits key=value arguments into a record and returns the
// remaining arguments in order.
func parsePairs(args []string) (sluggable.Map, []string, error) {
	rec := sluggable.Map{}
	var rest []string
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			rest = append(rest, arg)
			continue
		}
		if key == "" {
			return nil, nil, errors.Join(errUsage, fmt.Errorf("empty key in %q", arg))
		}
		rec[key] = value
	}
	return rec, rest, nil
}

// loadSlugConfig reads SLUG_* variables on top of the package defaults.
func loadSlugConfig() (sluggable.Config, error) {
	cfg := sluggable.NewConfig()
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
