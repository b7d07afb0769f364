package symtab

import (
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/symtab/internal/arena"
	"github.com/hupe1980/symtab/internal/conv"
)

// Builder accumulates strings and assigns symbols.
//
// The zero value is not usable; create builders with NewBuilder. A Builder is
// not safe for concurrent use.
type Builder struct {
	// next is wider than Symbol so the limit check cannot wrap.
	next  uint64
	index map[string]Symbol
	// strs holds the interned strings in symbol order; strs[i] has symbol i+1.
	strs  []string
	built bool
	opts  options
}

// NewBuilder creates an empty builder. The first symbol it assigns is 1.
func NewBuilder(opts ...Option) *Builder {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Builder{
		next:  1,
		index: make(map[string]Symbol, o.capacity),
		strs:  make([]string, 0, o.capacity),
		opts:  o,
	}
}

// GetOrIntern returns the symbol for s, assigning the next free symbol if s
// has not been seen before. Repeated calls with equal strings return the same
// symbol. The empty string always maps to Empty.
//
// The builder stores its own copy of s, so callers may reuse the memory
// backing s afterwards.
func (b *Builder) GetOrIntern(s string) (Symbol, error) {
	if b.built {
		return Empty, ErrBuilderConsumed
	}
	if s == "" {
		return Empty, nil
	}
	if sym, ok := b.index[s]; ok {
		return sym, nil
	}
	return b.intern(strings.Clone(s))
}

// GetOrInternBytes is like GetOrIntern but takes a byte slice. Lookups of
// already interned strings do not allocate.
func (b *Builder) GetOrInternBytes(p []byte) (Symbol, error) {
	if b.built {
		return Empty, ErrBuilderConsumed
	}
	if len(p) == 0 {
		return Empty, nil
	}
	if sym, ok := b.index[string(p)]; ok {
		return sym, nil
	}
	return b.intern(string(p))
}

func (b *Builder) intern(s string) (Symbol, error) {
	if b.next > uint64(b.opts.limit) {
		b.opts.logger.LogOverflow(b.opts.limit)
		b.opts.metrics.RecordOverflow()
		return Empty, &OverflowError{Limit: b.opts.limit}
	}

	sym := Symbol(b.next)
	b.next++
	b.index[s] = sym
	b.strs = append(b.strs, s)
	return sym, nil
}

// Get returns the symbol for s without interning it.
func (b *Builder) Get(s string) (Symbol, bool) {
	if s == "" {
		return Empty, true
	}
	sym, ok := b.index[s]
	return sym, ok
}

// Len returns the number of entries a resolver built now would have: the
// number of distinct strings plus one for the sentinel. A consumed builder
// reports 0.
func (b *Builder) Len() int {
	if b.built {
		return 0
	}
	return len(b.strs) + 1
}

// Build freezes the builder into a Resolver.
//
// All strings are copied into a single arena sized to their exact total byte
// length. The builder is consumed: its maps are released and GetOrIntern
// returns ErrBuilderConsumed afterwards. Calling Build twice panics.
func (b *Builder) Build() *Resolver {
	if b.built {
		panic("symtab: Build called on a consumed Builder")
	}
	start := time.Now()

	strs := b.strs
	b.built = true
	b.index = nil
	b.strs = nil

	r := freeze(strs)

	elapsed := time.Since(start)
	b.opts.logger.LogBuild(len(strs), r.Size(), elapsed)
	b.opts.metrics.RecordBuild(len(strs), r.Size(), elapsed)
	return r
}

// freeze packs strs, given in symbol order starting at 1, into a Resolver.
func freeze(strs []string) *Resolver {
	// Every string is already resident, so this only fails on 32-bit
	// platforms holding more than MaxInt bytes.
	size, err := conv.SumLen(strs)
	if err != nil {
		panic(fmt.Errorf("symtab: arena size: %w", err))
	}

	a := arena.New(size)
	views := make([]string, len(strs)+1)
	index := make(map[string]Symbol, len(strs))

	for i, s := range strs {
		sp, err := a.Append(s)
		if err != nil {
			panic(fmt.Errorf("symtab: arena sized for %d bytes: %w", size, err))
		}
		view := a.String(sp)
		sym := Symbol(i + 1)
		views[sym] = view
		index[view] = sym
	}
	a.Freeze()

	return &Resolver{
		arena: a,
		strs:  views,
		index: index,
	}
}
