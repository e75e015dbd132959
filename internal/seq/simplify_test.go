package seq

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplify_Identities(t *testing.T) {
	n := Natural()
	assert.Equal(t, "n", Simplify(Add(n, ConstInt(0))).Key())
	assert.Equal(t, "n", Simplify(Add(ConstInt(0), n)).Key())
	assert.Equal(t, "n", Simplify(Sub(n, ConstInt(0))).Key())
	assert.Equal(t, "n", Simplify(Mul(n, ConstInt(1))).Key())
	assert.Equal(t, "0", Simplify(Mul(n, ConstInt(0))).Key())
	assert.Equal(t, "n", Simplify(Div(n, ConstInt(1))).Key())
	assert.Equal(t, "n", Simplify(Pow(n, ConstInt(1))).Key())
	assert.Equal(t, "1", Simplify(Pow(n, ConstInt(0))).Key())
}

func TestSimplify_ConstantFolding(t *testing.T) {
	assert.Equal(t, "5", Simplify(Add(ConstInt(2), ConstInt(3))).Key())
	assert.Equal(t, "8", Simplify(Pow(ConstInt(2), ConstInt(3))).Key())
	assert.Equal(t, "-3", Simplify(Neg(ConstInt(3))).Key())
	assert.Equal(t, "3", Simplify(Abs(ConstInt(-3))).Key())
	// Folding never introduces an evaluation error.
	assert.Equal(t, "div(1,0)", Simplify(Div(ConstInt(1), ConstInt(0))).Key())
}

func TestSimplify_NegNeg(t *testing.T) {
	assert.Equal(t, "n", Simplify(Neg(Neg(Natural()))).Key())
}

func TestSimplify_Compose(t *testing.T) {
	n := Natural()
	assert.Equal(t, "n", Simplify(Compose(Integer(), n)).Key())
	assert.Equal(t, "7", Simplify(Compose(ConstInt(7), n)).Key())
	assert.Equal(t, "n", Simplify(Compose(n, Integer())).Key())
	assert.Equal(t, "4", Simplify(Compose(n, ConstInt(3))).Key())
}

func TestSimplify_DerivativeIntegral(t *testing.T) {
	n := Natural()
	assert.Equal(t, "n", Simplify(Derivative(Integral(n, big.NewInt(9)))).Key())
	// integral(derivative(n), start=1) recovers n since n(0) == 1.
	assert.Equal(t, "n", Simplify(Integral(Derivative(n), big.NewInt(1))).Key())
	// A different anchor recovers n with a constant shift.
	shifted := Simplify(Integral(Derivative(n), big.NewInt(4)))
	assert.Equal(t, "add(3,n)", shifted.Key())
	assertValues(t, shifted, 4, 5, 6, 7)
}

func TestSimplify_DerivativeOfShift(t *testing.T) {
	n := Natural()
	assert.Equal(t, Derivative(n).Key(), Simplify(Derivative(Add(ConstInt(5), n))).Key())
	assert.Equal(t, Derivative(n).Key(), Simplify(Derivative(Sub(n, ConstInt(5)))).Key())
	assert.Equal(t, "0", Simplify(Derivative(ConstInt(5))).Key())
}

func TestSimplify_PreservesValues(t *testing.T) {
	exprs := []Sequence{
		Add(Mul(ConstInt(1), Natural()), ConstInt(0)),
		Integral(Derivative(PowerOf(2)), big.NewInt(0)),
		Compose(PowerOf(2), Integer()),
	}
	for _, s := range exprs {
		simplified := Simplify(s)
		want := Values(s, 8)
		got := Values(simplified, 8)
		assert.Equal(t, len(want), len(got), "%s", s)
		for i := range want {
			assert.Zero(t, want[i].Cmp(got[i]), "%s at %d", s, i)
		}
	}
}

func TestEqual_ModuloSimplification(t *testing.T) {
	assert.True(t, Equal(Add(Natural(), ConstInt(0)), Natural()))
	assert.False(t, Equal(Natural(), Integer()))
}

func TestRegistry_Intern(t *testing.T) {
	r := NewRegistry()
	a := r.Intern(Add(Natural(), ConstInt(1)))
	b := r.Intern(Add(Natural(), ConstInt(1)))
	assert.Equal(t, a, b)
}

func TestRegistry_Default(t *testing.T) {
	r := Default()
	e, ok := r.Lookup("fib01")
	assert.True(t, ok)
	assert.Equal(t, "A000045", e.OEIS)
	assert.True(t, e.Traits.Has(TraitPositive|TraitIncreasing))

	_, ok = r.Lookup("nope")
	assert.False(t, ok)

	entries := r.Entries()
	assert.Equal(t, "i", entries[0].Name)
	assert.Len(t, entries, 22)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := Default()
	err := r.Register(Entry{Name: "i", Seq: Integer()})
	assert.Error(t, err)
}
