// Package codec centralizes the text encodings of symbol tables.
//
// A symbol table is encoded as an ordered sequence of strings: position 0 is
// always the empty-string sentinel, positions 1..N are the interned strings in
// symbol order. Snapshots record the codec name in their header, so changing
// Default only affects newly written snapshots.
package codec

import (
	"fmt"
	"slices"
)

// BinaryName is the name snapshots record for the compact binary encoding of a
// resolver. It is not a Codec: that encoding is implemented by the resolver.
const BinaryName = "binary"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used for Resolver.MarshalJSON and new snapshots.
var Default Codec = GoJSON{}

var builtins = []Codec{JSON{}, GoJSON{}, JSONIter{}}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	i := slices.IndexFunc(builtins, func(c Codec) bool { return c.Name() == name })
	if i < 0 {
		return nil, false
	}
	return builtins[i], true
}

// Names returns the names of all built-in codecs.
func Names() []string {
	names := make([]string, len(builtins))
	for i, c := range builtins {
		names[i] = c.Name()
	}
	return names
}

// MarshalTable encodes a string table with c, or Default when c is nil.
func MarshalTable(c Codec, table []string) ([]byte, error) {
	if c == nil {
		c = Default
	}
	data, err := c.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("codec %s: encode table: %w", c.Name(), err)
	}
	return data, nil
}

// UnmarshalTable decodes a string table with c, or Default when c is nil.
// A JSON null decodes to an empty table.
func UnmarshalTable(c Codec, data []byte) ([]string, error) {
	if c == nil {
		c = Default
	}
	var table []string
	if err := c.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("codec %s: decode table: %w", c.Name(), err)
	}
	return table, nil
}
