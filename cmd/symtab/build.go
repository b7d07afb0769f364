package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/hupe1980/symtab"
	"github.com/hupe1980/symtab/snapshot"
	"golang.org/x/sync/errgroup"
)

func runBuild(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "build", "FILE...")

	var sf storeFlags
	sf.register(fs)
	out := fs.StringP("out", "o", "symbols.symt", "snapshot name in the store")
	split := fs.String("split", "ident", "tokenizer: ident, word or line")
	codecName := fs.String("codec", "binary", "payload codec: binary, json, go-json or jsoniter")
	compression := fs.String("compression", "zstd", "payload compression: none, lz4 or zstd")
	level := fs.Int("level", 0, "compression level (0 = default)")
	workers := fs.IntP("workers", "j", runtime.GOMAXPROCS(0), "files tokenized concurrently")
	limit := fs.Uint32("max-symbols", 0, "fail when more than this many distinct tokens are seen (0 = no limit)")
	logs := addLogFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	files := fs.Args()
	if len(files) == 0 {
		fs.Usage()
		return errors.New("build: no input files")
	}
	splitFn, ok := splitFuncs[*split]
	if !ok {
		return fmt.Errorf("build: unknown split mode %q", *split)
	}
	comp, err := snapshot.ParseCompression(*compression)
	if err != nil {
		return err
	}

	logger := logs.logger(e)

	// Tokenize concurrently, intern in argument order so symbols are
	// deterministic for a given input.
	tokens := make([][]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *workers))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			toks, err := tokenizeFile(e, path, splitFn)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			tokens[i] = toks
			logger.Debug("tokenized file", "path", path, "tokens", len(toks))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b := symtab.NewBuilder(
		symtab.WithLogger(logger),
		symtab.WithSymbolLimit(symtab.Symbol(*limit)),
	)
	total := 0
	for _, toks := range tokens {
		for _, tok := range toks {
			if _, err := b.GetOrIntern(tok); err != nil {
				return fmt.Errorf("build: %w", err)
			}
		}
		total += len(toks)
	}
	r := b.Build()

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}
	if err := snapshot.Save(ctx, store, *out, r,
		snapshot.WithCodec(*codecName),
		snapshot.WithCompression(comp),
		snapshot.WithCompressionLevel(*level),
		snapshot.WithLogger(logger),
	); err != nil {
		return err
	}

	st := r.Stats()
	fmt.Fprintf(e.stdout, "%s: %d tokens, %d symbols, %d arena bytes\n", *out, total, st.Entries-1, st.ArenaBytes)
	return nil
}

func tokenizeFile(e *env, path string, split func([]byte, bool) (int, []byte, error)) ([]string, error) {
	if path == "-" {
		return tokenize(e.stdin, split)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tokenize(f, split)
}
