package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hupe1980/symtab"
	"github.com/hupe1980/symtab/blobstore"
	"github.com/hupe1980/symtab/snapshot"
)

func runDump(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "dump", "")

	var sf storeFlags
	sf.register(fs)
	snap := fs.StringP("name", "n", "symbols.symt", "snapshot name in the store")
	header := fs.Bool("header", false, "print the snapshot header first")
	format := fs.String("format", "text", "output format: text (symbol<TAB>string) or json")
	quote := fs.BoolP("quote", "q", false, "quote strings in text output")
	logs := addLogFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "text" && *format != "json" {
		return fmt.Errorf("dump: unknown format %q", *format)
	}

	logger := logs.logger(e)

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}
	data, err := blobstore.ReadAll(ctx, store, *snap)
	if err != nil {
		return fmt.Errorf("dump: %s: %w", *snap, err)
	}

	if *header {
		h, err := snapshot.Inspect(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "# version=%d codec=%s compression=%s level=%d raw=%d payload=%d crc32c=%08x\n",
			h.Version, h.Codec, h.Compression, h.Level, h.RawLen, h.PayloadLen, h.Checksum)
	}

	r, err := snapshot.Decode(data, snapshot.WithResolverOptions(symtab.WithLogger(logger)))
	if err != nil {
		return fmt.Errorf("dump: %s: %w", *snap, err)
	}

	if *format == "json" {
		out, err := r.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(e.stdout, "%s\n", out)
		return err
	}

	for sym, s := range r.All() {
		if *quote {
			s = strconv.Quote(s)
		}
		if _, err := fmt.Fprintf(e.stdout, "%d\t%s\n", sym, s); err != nil {
			return err
		}
	}
	return nil
}
