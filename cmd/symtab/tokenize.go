package main

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

// splitFuncs maps the --split modes to scanners.
var splitFuncs = map[string]bufio.SplitFunc{
	"ident": scanIdents,
	"word":  bufio.ScanWords,
	"line":  bufio.ScanLines,
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// scanIdents is a bufio.SplitFunc returning runs of letters, digits and underscores.
func scanIdents(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		r, width := utf8.DecodeRune(data[start:])
		if isIdentRune(r) {
			break
		}
		start += width
	}
	for i := start; i < len(data); {
		r, width := utf8.DecodeRune(data[i:])
		if !isIdentRune(r) {
			return i + width, data[start:i], nil
		}
		i += width
	}
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}
	return start, nil, nil
}

// tokenize returns the tokens of r in order. Empty tokens are dropped.
func tokenize(r io.Reader, split bufio.SplitFunc) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(split)

	var tokens []string
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		tokens = append(tokens, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return tokens, nil
}
