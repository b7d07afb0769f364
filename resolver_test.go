package symtab

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/symtab/testutil"
)

func buildResolver(t testing.TB, values ...string) *Resolver {
	t.Helper()
	b := NewBuilder()
	for _, v := range values {
		_, err := b.GetOrIntern(v)
		require.NoError(t, err)
	}
	return b.Build()
}

func TestResolver_Get(t *testing.T) {
	r := buildResolver(t, "foo", "bar")

	sym, ok := r.Get("bar")
	assert.True(t, ok)
	assert.Equal(t, Symbol(2), sym)

	sym, ok = r.GetBytes([]byte("foo"))
	assert.True(t, ok)
	assert.Equal(t, Symbol(1), sym)

	_, ok = r.Get("baz")
	assert.False(t, ok)

	sym, ok = r.Get("")
	assert.True(t, ok)
	assert.Equal(t, Empty, sym)
}

func TestResolver_ForwardAndReverseAgree(t *testing.T) {
	rng := testutil.NewRNG(7)
	r := buildResolver(t, rng.DistinctIdentifiers(2000, 1, 12)...)

	require.Len(t, r.index, r.Len()-1)
	for i := 1; i < r.Len(); i++ {
		s := r.ResolveUnchecked(Symbol(i))
		sym, ok := r.Get(s)
		require.True(t, ok)
		require.Equal(t, Symbol(i), sym)
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := buildResolver(t, "a", "b")

	tests := []struct {
		name string
		sym  Symbol
		want string
		err  bool
	}{
		{"sentinel", Empty, "", false},
		{"first", 1, "a", false},
		{"last", 2, "b", false},
		{"one past end", 3, "", true},
		{"max", MaxSymbol, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.sym)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrSymbolOutOfRange))

				var re *RangeError
				require.ErrorAs(t, err, &re)
				assert.Equal(t, tt.sym, re.Symbol)
				assert.Equal(t, 3, re.Len)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, r.Contains(tt.sym))
		})
	}
}

func TestResolver_ResolveUnchecked_PanicsOutOfRange(t *testing.T) {
	r := buildResolver(t, "a")
	assert.Equal(t, "a", r.ResolveUnchecked(1))
	assert.Panics(t, func() { _ = r.ResolveUnchecked(5) })
}

func TestResolver_ResolveMany(t *testing.T) {
	r := buildResolver(t, "x", "y", "z")

	got, err := r.ResolveMany([]Symbol{3, 0, 1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "", "x", "x", "y"}, got)

	assert.Equal(t, got, r.ResolveManyUnchecked([]Symbol{3, 0, 1, 1, 2}))

	got, err = r.ResolveMany(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = r.ResolveMany([]Symbol{1, 4})
	assert.ErrorIs(t, err, ErrSymbolOutOfRange)
}

func TestResolver_AccessAfterMove(t *testing.T) {
	b := NewBuilder()
	hello, _ := b.GetOrIntern("Hello")
	world, _ := b.GetOrIntern("World")
	r := b.Build()
	b = nil

	assert.Equal(t, []string{"", "Hello", "World"}, r.Strings())

	moved := *r
	r = nil
	assert.Equal(t, []string{"", "Hello", "World"}, moved.Strings())
	assert.Equal(t, "Hello", moved.ResolveUnchecked(hello))
	assert.Equal(t, "World", moved.ResolveUnchecked(world))
}

func TestResolver_ViewsShareArena(t *testing.T) {
	r := buildResolver(t, "Hello", "World")

	assert.Equal(t, "HelloWorld", string(r.arena.Buffer()))
	assert.Equal(t, Stats{Entries: 3, ArenaBytes: 10}, r.Stats())
}

func TestResolver_All(t *testing.T) {
	r := buildResolver(t, "a", "b", "c")

	var syms []Symbol
	var strs []string
	for sym, s := range r.All() {
		syms = append(syms, sym)
		strs = append(strs, s)
	}
	assert.Equal(t, []Symbol{1, 2, 3}, syms)
	assert.Equal(t, []string{"a", "b", "c"}, strs)

	// Early break.
	count := 0
	for range r.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestResolver_StringsIsCopy(t *testing.T) {
	r := buildResolver(t, "a")
	strs := r.Strings()
	strs[1] = "changed"
	assert.Equal(t, "a", r.ResolveUnchecked(1))
}

func TestResolver_ConcurrentReaders(t *testing.T) {
	rng := testutil.NewRNG(99)
	vocab := rng.DistinctIdentifiers(500, 4, 10)
	r := buildResolver(t, vocab...)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, v := range vocab {
				sym, ok := r.Get(v)
				if !ok || sym != Symbol(i+1) {
					t.Errorf("lookup %q: got %d, %v", v, sym, ok)
					return
				}
				if got := r.ResolveUnchecked(sym); got != v {
					t.Errorf("resolve %d: got %q want %q", sym, got, v)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkResolver_Get(b *testing.B) {
	rng := testutil.NewRNG(4711)
	vocab := rng.DistinctIdentifiers(10_000, 4, 16)
	r := buildResolver(b, vocab...)

	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		for _, v := range vocab {
			if _, ok := r.Get(v); !ok {
				b.Fatal("missing")
			}
		}
	}
}

func BenchmarkResolver_ResolveUnchecked(b *testing.B) {
	rng := testutil.NewRNG(4711)
	vocab := rng.DistinctIdentifiers(10_000, 4, 16)
	r := buildResolver(b, vocab...)

	var sink string
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		for i := 1; i < r.Len(); i++ {
			sink = r.ResolveUnchecked(Symbol(i))
		}
	}
	_ = sink
}
