package seq

import (
	"fmt"
	"math/big"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Const is the constant sequence f(n) := value.
func Const(value *big.Int) Sequence { return constSeq{value: value} }

// ConstInt is Const for a machine-word value.
func ConstInt(value int64) Sequence { return constSeq{value: big.NewInt(value)} }

type constSeq struct {
	value *big.Int
}

func (c constSeq) At(int) (*big.Int, error) { return c.value, nil }
func (c constSeq) Iterator() Iterator       { return &atIterator{s: c} }
func (c constSeq) Children() []Sequence     { return nil }
func (c constSeq) Key() string              { return c.value.String() }
func (c constSeq) String() string           { return c.value.String() }

// Integer is the identity sequence f(n) := n.
func Integer() Sequence { return integerSeq{} }

type integerSeq struct{}

func (integerSeq) At(i int) (*big.Int, error) { return big.NewInt(int64(i)), nil }
func (s integerSeq) Iterator() Iterator       { return &atIterator{s: s} }
func (integerSeq) Children() []Sequence       { return nil }
func (integerSeq) Key() string                { return "i" }
func (integerSeq) String() string             { return "i" }

// Natural is the sequence f(n) := n + 1.
func Natural() Sequence { return naturalSeq{} }

type naturalSeq struct{}

func (naturalSeq) At(i int) (*big.Int, error) { return big.NewInt(int64(i) + 1), nil }
func (s naturalSeq) Iterator() Iterator       { return &atIterator{s: s} }
func (naturalSeq) Children() []Sequence       { return nil }
func (naturalSeq) Key() string                { return "n" }
func (naturalSeq) String() string             { return "n" }

// Arithmetic is f(n) := start + n * step.
func Arithmetic(start, step *big.Int) Sequence {
	return arithmeticSeq{start: start, step: step}
}

type arithmeticSeq struct {
	start, step *big.Int
}

func (a arithmeticSeq) At(i int) (*big.Int, error) {
	v := new(big.Int).Mul(a.step, big.NewInt(int64(i)))
	return v.Add(v, a.start), nil
}

func (a arithmeticSeq) Iterator() Iterator   { return &atIterator{s: a} }
func (arithmeticSeq) Children() []Sequence   { return nil }
func (a arithmeticSeq) Key() string {
	return fmt.Sprintf("arithmetic(%s,%s)", a.start, a.step)
}

func (a arithmeticSeq) String() string {
	switch {
	case a.start.Sign() == 0 && a.step.Cmp(bigTwo) == 0:
		return "even"
	case a.start.Cmp(bigOne) == 0 && a.step.Cmp(bigTwo) == 0:
		return "odd"
	}
	return fmt.Sprintf("arithmetic(%s, %s)", a.start, a.step)
}

// Geometric is f(n) := base ** n.
func Geometric(base *big.Int) Sequence { return geometricSeq{base: base} }

type geometricSeq struct {
	base *big.Int
}

func (g geometricSeq) At(i int) (*big.Int, error) {
	return new(big.Int).Exp(g.base, big.NewInt(int64(i)), nil), nil
}

func (g geometricSeq) Iterator() Iterator { return &geometricIterator{base: g.base, cur: big.NewInt(1)} }
func (geometricSeq) Children() []Sequence { return nil }
func (g geometricSeq) Key() string        { return fmt.Sprintf("geometric(%s)", g.base) }

func (g geometricSeq) String() string {
	if g.base.IsInt64() {
		switch g.base.Int64() {
		case 2:
			return "power_of_2"
		case 3:
			return "power_of_3"
		case 10:
			return "power_of_10"
		}
	}
	return fmt.Sprintf("geometric(%s)", g.base)
}

type geometricIterator struct {
	base, cur *big.Int
}

func (it *geometricIterator) Next() (*big.Int, error) {
	v := new(big.Int).Set(it.cur)
	it.cur = new(big.Int).Mul(it.cur, it.base)
	return v, nil
}

// PowerOf is f(n) := n ** power.
func PowerOf(power int) Sequence { return powerSeq{power: power} }

type powerSeq struct {
	power int
}

func (p powerSeq) At(i int) (*big.Int, error) {
	return new(big.Int).Exp(big.NewInt(int64(i)), big.NewInt(int64(p.power)), nil), nil
}

func (p powerSeq) Iterator() Iterator { return &atIterator{s: p} }
func (powerSeq) Children() []Sequence { return nil }
func (p powerSeq) Key() string        { return fmt.Sprintf("power(%d)", p.power) }

func (p powerSeq) String() string {
	switch p.power {
	case 2:
		return "square"
	case 3:
		return "cube"
	}
	return fmt.Sprintf("power(%d)", p.power)
}

// ZeroOne is f(n) := n % 2, the alternating 0/1 sequence.
func ZeroOne() Sequence { return zeroOneSeq{} }

type zeroOneSeq struct{}

func (zeroOneSeq) At(i int) (*big.Int, error) { return big.NewInt(int64(i % 2)), nil }
func (s zeroOneSeq) Iterator() Iterator       { return &atIterator{s: s} }
func (zeroOneSeq) Children() []Sequence       { return nil }
func (zeroOneSeq) Key() string                { return "zero_one" }
func (zeroOneSeq) String() string             { return "zero_one" }

// Fib is the generalized Fibonacci recurrence
// f(n) := scale * f(n-1) + f(n-2) with f(0) := first, f(1) := second.
// The classics are Fib(0,1,1) (fib01), Fib(1,1,1) (fib11), Fib(2,1,1)
// (lucas) and Fib(0,1,2) (pell).
func Fib(first, second, scale *big.Int) Sequence {
	return fibSeq{first: first, second: second, scale: scale}
}

type fibSeq struct {
	first, second, scale *big.Int
}

func (f fibSeq) At(i int) (*big.Int, error) { return iterateTo(f, i) }

func (f fibSeq) Iterator() Iterator {
	return &fibIterator{f: new(big.Int).Set(f.first), s: new(big.Int).Set(f.second), scale: f.scale}
}

func (fibSeq) Children() []Sequence { return nil }

func (f fibSeq) Key() string {
	return fmt.Sprintf("fib(%s,%s,%s)", f.first, f.second, f.scale)
}

func (f fibSeq) String() string {
	if f.scale.Cmp(bigOne) == 0 {
		switch {
		case f.first.Sign() == 0 && f.second.Cmp(bigOne) == 0:
			return "fib01"
		case f.first.Cmp(bigOne) == 0 && f.second.Cmp(bigOne) == 0:
			return "fib11"
		case f.first.Cmp(bigTwo) == 0 && f.second.Cmp(bigOne) == 0:
			return "lucas"
		}
	}
	if f.scale.Cmp(bigTwo) == 0 && f.first.Sign() == 0 && f.second.Cmp(bigOne) == 0 {
		return "pell"
	}
	return fmt.Sprintf("fib(%s, %s, %s)", f.first, f.second, f.scale)
}

type fibIterator struct {
	f, s, scale *big.Int
}

func (it *fibIterator) Next() (*big.Int, error) {
	v := new(big.Int).Set(it.f)
	next := new(big.Int).Mul(it.scale, it.s)
	next.Add(next, it.f)
	it.f = it.s
	it.s = next
	return v, nil
}

// Trib is the tribonacci recurrence f(n) := f(n-1) + f(n-2) + f(n-3)
// with f(0) := first, f(1) := second, f(2) := third.
func Trib(first, second, third *big.Int) Sequence {
	return tribSeq{first: first, second: second, third: third}
}

type tribSeq struct {
	first, second, third *big.Int
}

func (t tribSeq) At(i int) (*big.Int, error) { return iterateTo(t, i) }

func (t tribSeq) Iterator() Iterator {
	return &tribIterator{
		f: new(big.Int).Set(t.first),
		s: new(big.Int).Set(t.second),
		t: new(big.Int).Set(t.third),
	}
}

func (tribSeq) Children() []Sequence { return nil }

func (t tribSeq) Key() string {
	return fmt.Sprintf("trib(%s,%s,%s)", t.first, t.second, t.third)
}

func (t tribSeq) String() string {
	if t.first.Sign() == 0 && t.second.Cmp(bigOne) == 0 && t.third.Cmp(bigOne) == 0 {
		return "tribonacci"
	}
	return fmt.Sprintf("trib(%s, %s, %s)", t.first, t.second, t.third)
}

type tribIterator struct {
	f, s, t *big.Int
}

func (it *tribIterator) Next() (*big.Int, error) {
	v := new(big.Int).Set(it.f)
	next := new(big.Int).Add(it.f, it.s)
	next.Add(next, it.t)
	it.f, it.s, it.t = it.s, it.t, next
	return v, nil
}

// Polygonal is f(n) := n + (sides-2) * n * (n-1) / 2, the n-th
// sides-gonal number. Triangular is Polygonal(3), pentagonal Polygonal(5),
// hexagonal Polygonal(6).
func Polygonal(sides int) Sequence { return polygonalSeq{sides: sides} }

type polygonalSeq struct {
	sides int
}

func (p polygonalSeq) At(i int) (*big.Int, error) {
	n := big.NewInt(int64(i))
	v := new(big.Int).Mul(n, big.NewInt(int64(i)-1))
	v.Mul(v, big.NewInt(int64(p.sides)-2))
	v.Rsh(v, 1)
	return v.Add(v, n), nil
}

func (p polygonalSeq) Iterator() Iterator   { return &atIterator{s: p} }
func (polygonalSeq) Children() []Sequence   { return nil }
func (p polygonalSeq) Key() string          { return fmt.Sprintf("polygonal(%d)", p.sides) }

func (p polygonalSeq) String() string {
	switch p.sides {
	case 3:
		return "triangular"
	case 5:
		return "pentagonal"
	case 6:
		return "hexagonal"
	}
	return fmt.Sprintf("polygonal(%d)", p.sides)
}

// Repunit is f(n) := (base**(n+1) - 1) / (base - 1): 1, 11, 111, ... in
// the given base. The base must be >= 2.
func Repunit(base *big.Int) Sequence { return repunitSeq{base: base} }

type repunitSeq struct {
	base *big.Int
}

func (r repunitSeq) At(i int) (*big.Int, error) {
	v := new(big.Int).Exp(r.base, big.NewInt(int64(i)+1), nil)
	v.Sub(v, bigOne)
	return v.Div(v, new(big.Int).Sub(r.base, bigOne)), nil
}

func (r repunitSeq) Iterator() Iterator {
	return &repunitIterator{base: r.base, cur: big.NewInt(1), pow: new(big.Int).Set(r.base)}
}

func (repunitSeq) Children() []Sequence { return nil }
func (r repunitSeq) Key() string        { return fmt.Sprintf("repunit(%s)", r.base) }

func (r repunitSeq) String() string {
	if r.base.IsInt64() && r.base.Int64() == 10 {
		return "repunit"
	}
	return fmt.Sprintf("repunit(%s)", r.base)
}

type repunitIterator struct {
	base, cur, pow *big.Int
}

func (it *repunitIterator) Next() (*big.Int, error) {
	v := new(big.Int).Set(it.cur)
	it.cur = new(big.Int).Add(it.cur, it.pow)
	it.pow = new(big.Int).Mul(it.pow, it.base)
	return v, nil
}

// Factorial is f(n) := n!.
func Factorial() Sequence { return factorialSeq{} }

type factorialSeq struct{}

func (factorialSeq) At(i int) (*big.Int, error) {
	return new(big.Int).MulRange(1, int64(i)), nil
}

func (s factorialSeq) Iterator() Iterator { return &factorialIterator{cur: big.NewInt(1), n: 1} }
func (factorialSeq) Children() []Sequence { return nil }
func (factorialSeq) Key() string          { return "factorial" }
func (factorialSeq) String() string       { return "factorial" }

type factorialIterator struct {
	cur *big.Int
	n   int64
}

func (it *factorialIterator) Next() (*big.Int, error) {
	v := new(big.Int).Set(it.cur)
	it.cur = new(big.Int).Mul(it.cur, big.NewInt(it.n))
	it.n++
	return v, nil
}

// Catalan is f(n) := binomial(2n, n) / (n + 1).
func Catalan() Sequence { return catalanSeq{} }

type catalanSeq struct{}

func (catalanSeq) At(i int) (*big.Int, error) {
	n := int64(i)
	v := new(big.Int).Binomial(2*n, n)
	return v.Div(v, big.NewInt(n+1)), nil
}

func (s catalanSeq) Iterator() Iterator { return &atIterator{s: s} }
func (catalanSeq) Children() []Sequence { return nil }
func (catalanSeq) Key() string          { return "catalan" }
func (catalanSeq) String() string       { return "catalan" }

// Prime is f(n) := the n-th prime: 2, 3, 5, 7, 11, ...
func Prime() Sequence { return primeSeq{} }

type primeSeq struct{}

func (p primeSeq) At(i int) (*big.Int, error) { return iterateTo(p, i) }

func (primeSeq) Iterator() Iterator   { return &primeIterator{cur: big.NewInt(1)} }
func (primeSeq) Children() []Sequence { return nil }
func (primeSeq) Key() string          { return "p" }
func (primeSeq) String() string       { return "p" }

type primeIterator struct {
	cur *big.Int
}

func (it *primeIterator) Next() (*big.Int, error) {
	next := new(big.Int).Set(it.cur)
	for {
		next.Add(next, bigOne)
		if next.ProbablyPrime(32) {
			break
		}
	}
	it.cur = next
	return new(big.Int).Set(next), nil
}

// iterateTo evaluates index i for iterator-defined sequences.
func iterateTo(s Sequence, i int) (*big.Int, error) {
	if i < 0 {
		return nil, valueErr(s, i, "negative index")
	}
	it := s.Iterator()
	var v *big.Int
	var err error
	for k := 0; k <= i; k++ {
		v, err = it.Next()
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}
