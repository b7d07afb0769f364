package symtab

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symtab/testutil"
)

func TestFromStrings(t *testing.T) {
	r, err := FromStrings([]string{"", "Hello", "World"})
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())
	sym, ok := r.Get("World")
	assert.True(t, ok)
	assert.Equal(t, Symbol(2), sym)
	assert.Equal(t, "Hello", r.ResolveUnchecked(1))
}

func TestFromStrings_Empty(t *testing.T) {
	for _, values := range [][]string{nil, {""}} {
		r, err := FromStrings(values)
		require.NoError(t, err)
		assert.Equal(t, 1, r.Len())
		assert.Equal(t, "", r.ResolveUnchecked(Empty))
	}
}

func TestFromStrings_Duplicate(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		value    string
		position int
	}{
		{"repeated value", []string{"", "a", "b", "a"}, "a", 3},
		{"empty after sentinel", []string{"", "a", ""}, "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := FromStrings(tt.values)
			assert.Nil(t, r)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDuplicateValue))

			var de *DuplicateValueError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.value, de.Value)
			assert.Equal(t, tt.position, de.Position)
		})
	}
}

func TestFromStrings_SkipsPositionZero(t *testing.T) {
	r, err := FromStrings([]string{"x", "a"})
	require.NoError(t, err)

	sym, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, Symbol(1), sym)
	assert.Equal(t, "", r.ResolveUnchecked(Empty))
	assert.Equal(t, 2, r.Len())

	_, ok = r.Get("x")
	assert.False(t, ok)
}

func TestFromStrings_SymbolLimit(t *testing.T) {
	_, err := FromStrings([]string{"", "a", "b"}, WithSymbolLimit(1))
	assert.ErrorIs(t, err, ErrSymbolOverflow)
}

func TestFromStrings_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := FromStrings([]string{"", "a", "a"}, WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "symbol table decode failed")
	// The internal builder stays quiet.
	assert.NotContains(t, buf.String(), "symbol table built")
}

func TestResolver_JSONRoundTrip(t *testing.T) {
	r := buildResolver(t, "Hello", "World", "ünïcödé")

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `["","Hello","World","ünïcödé"]`, string(data))

	var decoded Resolver
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, r.Strings(), decoded.Strings())

	sym, ok := decoded.Get("World")
	assert.True(t, ok)
	assert.Equal(t, Symbol(2), sym)
}

func TestResolver_JSONDuplicate(t *testing.T) {
	var r Resolver
	err := json.Unmarshal([]byte(`["","a","a"]`), &r)
	assert.ErrorIs(t, err, ErrDuplicateValue)
	assert.Equal(t, 0, r.Len(), "no partial resolver")
}

func TestResolver_BinaryRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(4711)
	vocab := rng.DistinctIdentifiers(3000, 1, 200)
	r := buildResolver(t, vocab...)

	data, err := r.MarshalBinary()
	require.NoError(t, err)

	var decoded Resolver
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, r.Strings(), decoded.Strings())
	assert.Equal(t, r.Size(), decoded.Size())

	// The decoded resolver owns its strings.
	for i := range data {
		data[i] = 0
	}
	for i, v := range vocab {
		assert.Equal(t, v, decoded.ResolveUnchecked(Symbol(i+1)))
	}
}

func TestResolver_BinaryEmpty(t *testing.T) {
	data, err := NewBuilder().Build().MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, data)

	r, err := DecodeBinary(data)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	r, err = DecodeBinary([]byte{0})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestResolver_AppendBinary(t *testing.T) {
	r := buildResolver(t, "ab", "c")
	out, err := r.AppendBinary([]byte("xx"))
	require.NoError(t, err)
	assert.Equal(t, []byte{'x', 'x', 3, 2, 1, 'a', 'b', 'c'}, out)
}

func TestDecodeBinary_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", nil, ErrInvalidEncoding},
		{"truncated count", []byte{0x80}, ErrInvalidEncoding},
		{"count too large", []byte{10, 1}, ErrInvalidEncoding},
		{"truncated length", []byte{3, 1}, ErrInvalidEncoding},
		{"short arena", []byte{2, 3, 'a', 'b'}, ErrInvalidEncoding},
		{"trailing bytes", []byte{2, 1, 'a', 'b'}, ErrInvalidEncoding},
		{"trailing after zero count", []byte{0, 'a'}, ErrInvalidEncoding},
		{"duplicate", []byte{3, 1, 1, 'a', 'a'}, ErrDuplicateValue},
		{"empty entry", []byte{2, 0}, ErrDuplicateValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DecodeBinary(tt.data)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEncoding_OrderPreserved(t *testing.T) {
	values := []string{"", "zeta", "alpha", "mid"}
	r, err := FromStrings(values)
	require.NoError(t, err)
	assert.Equal(t, values, r.Strings())

	text, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(text), `["","zeta"`))
}
