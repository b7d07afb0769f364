package symtab_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/symtab"
)

// Example demonstrates interning identifiers and freezing the table.
func Example() {
	b := symtab.NewBuilder()

	for _, ident := range []string{"Hello", "World", "Hello"} {
		sym, err := b.GetOrIntern(ident)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(ident, uint32(sym))
	}

	r := b.Build()

	world, _ := r.Get("World")
	hello, _ := r.Resolve(1)
	empty, _ := r.Resolve(symtab.Empty)
	fmt.Println(uint32(world), hello, fmt.Sprintf("%q", empty), r.Len())
	// Output:
	// Hello 1
	// World 2
	// Hello 1
	// 2 Hello "" 3
}

// ExampleResolver_ResolveMany resolves a slice of symbols in one call.
func ExampleResolver_ResolveMany() {
	b := symtab.NewBuilder()
	x, _ := b.GetOrIntern("x")
	y, _ := b.GetOrIntern("y")
	r := b.Build()

	strs, err := r.ResolveMany([]symtab.Symbol{y, x, y})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(strs)

	_, err = r.ResolveMany([]symtab.Symbol{42})
	fmt.Println(errors.Is(err, symtab.ErrSymbolOutOfRange))
	// Output:
	// [y x y]
	// true
}

// ExampleFromStrings decodes a persisted table.
func ExampleFromStrings() {
	var r symtab.Resolver
	if err := json.Unmarshal([]byte(`["","fn","let"]`), &r); err != nil {
		log.Fatal(err)
	}
	sym, _ := r.Get("let")
	fmt.Println(uint32(sym))

	_, err := symtab.FromStrings([]string{"", "fn", "fn"})
	fmt.Println(err)
	// Output:
	// 2
	// duplicate value "fn" at position 2
}
