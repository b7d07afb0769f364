package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hupe1980/symtab"
	"github.com/hupe1980/symtab/blobstore"
	"github.com/hupe1980/symtab/codec"
	"github.com/hupe1980/symtab/internal/hash"
	"github.com/hupe1980/symtab/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildResolver(t testing.TB, values []string) *symtab.Resolver {
	t.Helper()
	b := symtab.NewBuilder()
	for _, v := range values {
		_, err := b.GetOrIntern(v)
		require.NoError(t, err)
	}
	return b.Build()
}

func identifierResolver(t testing.TB, n int) *symtab.Resolver {
	rng := testutil.NewRNG(42)
	return buildResolver(t, rng.DistinctIdentifiers(n, 3, 24))
}

// qualifiedResolver interns package-qualified names, which share long
// prefixes and compress well with every algorithm.
func qualifiedResolver(t testing.TB, n int) *symtab.Resolver {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("github.com/acme/project/pkg%03d.Identifier%05d", i%50, i)
	}
	return buildResolver(t, values)
}

func requireSameTable(t *testing.T, want, got *symtab.Resolver) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for sym, s := range want.All() {
		resolved, err := got.Resolve(sym)
		require.NoError(t, err)
		assert.Equal(t, s, resolved)
	}
}

func TestRoundTrip(t *testing.T) {
	r := qualifiedResolver(t, 2000)

	codecs := append([]string{codec.BinaryName}, codec.Names()...)
	compressions := []Compression{None, LZ4, Zstd}

	for _, name := range codecs {
		for _, c := range compressions {
			t.Run(name+"/"+c.String(), func(t *testing.T) {
				data, err := Encode(r, WithCodec(name), WithCompression(c))
				require.NoError(t, err)

				h, err := Inspect(data)
				require.NoError(t, err)
				assert.Equal(t, Version, h.Version)
				assert.Equal(t, name, h.Codec)
				assert.Equal(t, c, h.Compression)

				got, err := Decode(data)
				require.NoError(t, err)
				requireSameTable(t, r, got)
			})
		}
	}
}

func TestRoundTrip_Levels(t *testing.T) {
	r := identifierResolver(t, 500)

	for _, tc := range []struct {
		c     Compression
		level int
	}{
		{LZ4, 1}, {LZ4, 9}, {LZ4, 42},
		{Zstd, 1}, {Zstd, 3}, {Zstd, 19},
	} {
		data, err := Encode(r, WithCompression(tc.c), WithCompressionLevel(tc.level))
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err, "%s level %d", tc.c, tc.level)
		requireSameTable(t, r, got)
	}
}

func TestRoundTrip_Empty(t *testing.T) {
	r := symtab.NewBuilder().Build()

	for _, c := range []Compression{None, LZ4, Zstd} {
		data, err := Encode(r, WithCompression(c))
		require.NoError(t, err)

		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Len())
		s, err := got.Resolve(symtab.Empty)
		require.NoError(t, err)
		assert.Equal(t, "", s)
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	r := buildResolver(t, []string{"x"})

	data, err := Encode(r, WithCompression(Zstd))
	require.NoError(t, err)

	h, err := Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, None, h.Compression)
	assert.Zero(t, h.Level)
}

func TestWriteRead(t *testing.T) {
	r := buildResolver(t, []string{"Hello", "World"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, r, WithCodec("go-json"), WithCompression(LZ4)))

	got, err := Read(&buf)
	require.NoError(t, err)
	requireSameTable(t, r, got)

	sym, ok := got.Get("World")
	require.True(t, ok)
	assert.Equal(t, symtab.Symbol(2), sym)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	r := identifierResolver(t, 300)

	stores := map[string]blobstore.Store{
		"memory":    blobstore.NewMemoryStore(),
		"local":     blobstore.NewLocalStore(t.TempDir()),
		"throttled": blobstore.NewThrottledStore(blobstore.NewMemoryStore(), 1<<20),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, Save(ctx, store, "tables/idents.symt", r, WithCompression(Zstd)))

			got, err := Load(ctx, store, "tables/idents.symt")
			require.NoError(t, err)
			requireSameTable(t, r, got)
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(context.Background(), blobstore.NewMemoryStore(), "missing.symt")
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))
}

func TestLoad_ResolverOptions(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	r := buildResolver(t, []string{"a", "b", "c"})
	require.NoError(t, Save(ctx, store, "t.symt", r))

	metrics := &symtab.BasicMetricsCollector{}
	_, err := Load(ctx, store, "t.symt", WithResolverOptions(symtab.WithMetricsCollector(metrics)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.GetStats().DecodeCount)

	_, err = Load(ctx, store, "t.symt", WithResolverOptions(symtab.WithSymbolLimit(2)))
	assert.ErrorIs(t, err, symtab.ErrSymbolOverflow)
}

func TestEncode_UnknownCodec(t *testing.T) {
	r := buildResolver(t, []string{"a"})
	_, err := Encode(r, WithCodec("xml"))
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestDecode_Errors(t *testing.T) {
	r := identifierResolver(t, 100)
	valid, err := Encode(r)
	require.NoError(t, err)
	h, err := Inspect(valid)
	require.NoError(t, err)

	mutate := func(f func([]byte)) []byte {
		data := bytes.Clone(valid)
		f(data)
		return data
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Empty", nil, ErrInvalidMagic},
		{"BadMagic", mutate(func(b []byte) { b[0] = 'X' }), ErrInvalidMagic},
		{"TruncatedHeader", valid[:10], ErrCorrupt},
		{"FutureVersion", mutate(func(b []byte) { binary.LittleEndian.PutUint16(b[4:], Version+1) }), ErrUnsupportedVersion},
		{"UnknownCompression", mutate(func(b []byte) { b[6] = 9 }), ErrUnknownCompression},
		{"UnknownCodec", mutate(func(b []byte) { copy(b[headerPrefixSize:], "zzzzzz") }), ErrUnknownCodec},
		{"TruncatedPayload", valid[:len(valid)-1], ErrCorrupt},
		{"FlippedPayloadByte", mutate(func(b []byte) { b[h.Size()+len(b[h.Size():])/2] ^= 0xff }), ErrChecksumMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_CorruptCompressed(t *testing.T) {
	r := qualifiedResolver(t, 1000)

	for _, c := range []Compression{LZ4, Zstd} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Encode(r, WithCompression(c))
			require.NoError(t, err)
			h, err := Inspect(data)
			require.NoError(t, err)
			require.Equal(t, c, h.Compression)

			data[h.Size()+10] ^= 0x55
			_, err = Decode(data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorrupt) || errors.Is(err, ErrChecksumMismatch), err.Error())
		})
	}
}

func TestDecode_ZstdOutputBoundedByRawLen(t *testing.T) {
	// 4 MiB of zeros compresses to a few hundred bytes.
	raw := make([]byte, 4<<20)
	payload, c, err := compress(raw, Zstd, 0)
	require.NoError(t, err)
	require.Equal(t, Zstd, c)

	for _, rawLen := range []int{16, len(raw) - 1, len(raw) + 1} {
		t.Run(fmt.Sprint(rawLen), func(t *testing.T) {
			_, err := decompress(payload, Zstd, rawLen)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}

	out, err := decompress(payload, Zstd, len(raw))
	require.NoError(t, err)
	assert.Len(t, out, len(raw))

	data, err := appendHeader(nil, Header{
		Version:     Version,
		Codec:       "json",
		Compression: Zstd,
		RawLen:      16,
		PayloadLen:  uint64(len(payload)),
		Checksum:    crc(raw[:16]),
	})
	require.NoError(t, err)
	_, err = Decode(append(data, payload...))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestDecode_DuplicateInJSONPayload(t *testing.T) {
	raw := []byte(`["","a","a"]`)
	data, err := appendHeader(nil, Header{
		Version:    Version,
		Codec:      "json",
		RawLen:     uint64(len(raw)),
		PayloadLen: uint64(len(raw)),
		Checksum:   crc(raw),
	})
	require.NoError(t, err)
	data = append(data, raw...)

	_, err = Decode(data)
	var dup *symtab.DuplicateValueError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "a", dup.Value)
	assert.Equal(t, 2, dup.Position)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{None, LZ4, Zstd} {
		got, err := ParseCompression(strings.ToUpper(c.String()))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "compression(7)", Compression(7).String())
}

func BenchmarkEncode(b *testing.B) {
	r := identifierResolver(b, 10_000)
	for _, c := range []Compression{None, LZ4, Zstd} {
		b.Run(c.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Encode(r, WithCompression(c)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecode(b *testing.B) {
	r := identifierResolver(b, 10_000)
	for _, c := range []Compression{None, LZ4, Zstd} {
		data, err := Encode(r, WithCompression(c))
		require.NoError(b, err)
		b.Run(c.String(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				if _, err := Decode(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func crc(b []byte) uint32 {
	return hash.CRC32C(b)
}
