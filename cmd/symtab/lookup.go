package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/hupe1980/symtab"
	"github.com/hupe1980/symtab/snapshot"
)

// errNotFound is returned when at least one query did not resolve.
var errNotFound = errors.New("some queries were not found")

func runLookup(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "lookup", "QUERY...")

	var sf storeFlags
	sf.register(fs)
	snap := fs.StringP("name", "n", "symbols.symt", "snapshot name in the store")
	symbols := fs.BoolP("symbols", "s", false, "queries are symbols to resolve instead of strings")
	logs := addLogFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	queries := fs.Args()
	if len(queries) == 0 {
		fs.Usage()
		return errors.New("lookup: no queries")
	}

	logger := logs.logger(e)

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}
	r, err := snapshot.Load(ctx, store, *snap, snapshot.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("lookup: %s: %w", *snap, err)
	}

	missing := 0
	for _, q := range queries {
		if *symbols {
			sym, err := parseSymbol(q)
			if err != nil {
				return err
			}
			s, err := r.Resolve(sym)
			if err != nil {
				fmt.Fprintf(e.stderr, "%d: %v\n", sym, err)
				missing++
				continue
			}
			fmt.Fprintf(e.stdout, "%d\t%s\n", sym, s)
			continue
		}

		sym, ok := r.Get(q)
		if !ok {
			fmt.Fprintf(e.stderr, "%q: not found\n", q)
			missing++
			continue
		}
		fmt.Fprintf(e.stdout, "%s\t%d\n", q, sym)
	}

	if missing > 0 {
		return fmt.Errorf("lookup: %w (%d of %d)", errNotFound, missing, len(queries))
	}
	return nil
}

func parseSymbol(s string) (symtab.Symbol, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("lookup: invalid symbol %q", s)
	}
	return symtab.Symbol(v), nil
}
