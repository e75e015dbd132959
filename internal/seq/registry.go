package seq

import (
	"fmt"
	"math/big"
	"sort"
)

// Entry is one named sequence in a Registry catalog.
type Entry struct {
	Name        string
	Seq         Sequence
	Description string
	OEIS        string
	Traits      Trait
}

// Registry is the session-scoped identity table. It interns sequences by
// structural key so equal expressions share one handle, and it carries the
// named catalog the search strategies and the CLI draw primitives from.
//
// A Registry is built once per session and passed explicitly to whoever
// needs it; it is not safe for concurrent mutation.
type Registry struct {
	interned map[string]Sequence
	byName   map[string]*Entry
	names    []string // registration order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		interned: make(map[string]Sequence),
		byName:   make(map[string]*Entry),
	}
}

// Intern returns the canonical handle for s: the first sequence seen with
// s's structural key. Interning keeps scheduling maps and result dedup on
// pointer-cheap comparisons.
func (r *Registry) Intern(s Sequence) Sequence {
	key := s.Key()
	if canonical, ok := r.interned[key]; ok {
		return canonical
	}
	r.interned[key] = s
	return s
}

// Register adds a named sequence to the catalog. Re-registering a name is
// an error.
func (r *Registry) Register(e Entry) error {
	if _, dup := r.byName[e.Name]; dup {
		return fmt.Errorf("sequence %q already registered", e.Name)
	}
	e.Seq = r.Intern(e.Seq)
	stored := e
	r.byName[e.Name] = &stored
	r.names = append(r.names, e.Name)
	return nil
}

// Lookup returns the catalog entry for name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// Entries returns the catalog in registration order.
func (r *Registry) Entries() []*Entry {
	entries := make([]*Entry, len(r.names))
	for i, name := range r.names {
		entries[i] = r.byName[name]
	}
	return entries
}

// Names returns the catalog names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	sort.Strings(names)
	return names
}

// Default builds a registry pre-loaded with the core catalog.
func Default() *Registry {
	r := NewRegistry()
	core := []Entry{
		{Name: "i", Seq: Integer(), Description: "f(n) := n", OEIS: "A001477",
			Traits: TraitInjective | TraitPositive | TraitIncreasing},
		{Name: "n", Seq: Natural(), Description: "f(n) := n + 1", OEIS: "A000027",
			Traits: TraitInjective | TraitPositive | TraitNonZero | TraitIncreasing},
		{Name: "even", Seq: Arithmetic(big.NewInt(0), big.NewInt(2)),
			Description: "f(n) := 2 * n", OEIS: "A005843",
			Traits: TraitInjective | TraitPositive | TraitIncreasing},
		{Name: "odd", Seq: Arithmetic(big.NewInt(1), big.NewInt(2)),
			Description: "f(n) := 2 * n + 1", OEIS: "A005408",
			Traits: TraitInjective | TraitPositive | TraitNonZero | TraitIncreasing},
		{Name: "zero_one", Seq: ZeroOne(),
			Description: "f(n) := n % 2, [0, 1, 0, 1, ...]",
			Traits:      TraitPositive},
		{Name: "square", Seq: PowerOf(2), Description: "f(n) := n ** 2", OEIS: "A000290",
			Traits: TraitInjective | TraitPositive | TraitIncreasing},
		{Name: "cube", Seq: PowerOf(3), Description: "f(n) := n ** 3", OEIS: "A000578",
			Traits: TraitInjective | TraitPositive | TraitIncreasing},
		{Name: "power_of_2", Seq: Geometric(big.NewInt(2)),
			Description: "f(n) := 2 ** n", OEIS: "A000079",
			Traits: TraitInjective | TraitPositive | TraitNonZero | TraitIncreasing | TraitFastGrowing},
		{Name: "power_of_3", Seq: Geometric(big.NewInt(3)),
			Description: "f(n) := 3 ** n", OEIS: "A000244",
			Traits: TraitInjective | TraitPositive | TraitNonZero | TraitIncreasing | TraitFastGrowing},
		{Name: "power_of_10", Seq: Geometric(big.NewInt(10)),
			Description: "f(n) := 10 ** n", OEIS: "A011557",
			Traits: TraitInjective | TraitPositive | TraitNonZero | TraitIncreasing | TraitFastGrowing},
		{Name: "fib01", Seq: Fib(big.NewInt(0), big.NewInt(1), big.NewInt(1)),
			Description: "f(n) := f(n-1) + f(n-2), f(0) := 0, f(1) := 1", OEIS: "A000045",
			Traits: TraitPositive | TraitIncreasing},
		{Name: "fib11", Seq: Fib(big.NewInt(1), big.NewInt(1), big.NewInt(1)),
			Description: "f(n) := f(n-1) + f(n-2), f(0) := 1, f(1) := 1", OEIS: "A000045",
			Traits: TraitPositive | TraitNonZero | TraitIncreasing},
		{Name: "lucas", Seq: Fib(big.NewInt(2), big.NewInt(1), big.NewInt(1)),
			Description: "f(n) := f(n-1) + f(n-2), f(0) := 2, f(1) := 1", OEIS: "A000032",
			Traits: TraitPositive | TraitNonZero | TraitInjective},
		{Name: "pell", Seq: Fib(big.NewInt(0), big.NewInt(1), big.NewInt(2)),
			Description: "f(n) := 2 * f(n-1) + f(n-2), f(0) := 0, f(1) := 1", OEIS: "A000129",
			Traits: TraitInjective | TraitPositive | TraitIncreasing},
		{Name: "tribonacci", Seq: Trib(big.NewInt(0), big.NewInt(1), big.NewInt(1)),
			Description: "f(n) := f(n-1) + f(n-2) + f(n-3), f(0) := 0, f(1) := 1, f(2) := 1",
			OEIS:        "A000073",
			Traits:      TraitPositive | TraitIncreasing},
		{Name: "triangular", Seq: Polygonal(3),
			Description: "f(n) := the n-th triangular number", OEIS: "A000217",
			Traits: TraitInjective | TraitPositive | TraitIncreasing},
		{Name: "pentagonal", Seq: Polygonal(5),
			Description: "f(n) := the n-th pentagonal number", OEIS: "A000326",
			Traits: TraitInjective | TraitPositive | TraitIncreasing},
		{Name: "hexagonal", Seq: Polygonal(6),
			Description: "f(n) := the n-th hexagonal number", OEIS: "A000384",
			Traits: TraitInjective | TraitPositive | TraitIncreasing},
		{Name: "repunit", Seq: Repunit(big.NewInt(10)),
			Description: "f(n) := the base-10 repunit: 1, 11, 111, ...", OEIS: "A002275",
			Traits: TraitInjective | TraitPositive | TraitNonZero | TraitIncreasing | TraitFastGrowing},
		{Name: "factorial", Seq: Factorial(),
			Description: "f(n) := n * f(n-1), f(0) := 1", OEIS: "A000142",
			Traits: TraitPositive | TraitNonZero | TraitIncreasing | TraitFastGrowing},
		{Name: "catalan", Seq: Catalan(),
			Description: "f(n) := binomial(2n, n) / (n + 1)", OEIS: "A000108",
			Traits: TraitPositive | TraitNonZero | TraitIncreasing | TraitFastGrowing},
		{Name: "p", Seq: Prime(),
			Description: "f(n) := the n-th prime number", OEIS: "A000040",
			Traits: TraitInjective | TraitPositive | TraitNonZero | TraitIncreasing | TraitSlow},
	}
	for _, e := range core {
		if err := r.Register(e); err != nil {
			panic(err) // static catalog, duplicate names are a programming error
		}
	}
	return r
}
