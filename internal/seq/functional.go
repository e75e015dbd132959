package seq

import (
	"fmt"
	"math/big"
	"strings"
)

// Summation is f(n) := sum of a(0)..a(n).
func Summation(a Sequence) Sequence { return summationSeq{operand: a} }

type summationSeq struct {
	operand Sequence
}

func (s summationSeq) At(i int) (*big.Int, error) { return iterateTo(s, i) }

func (s summationSeq) Iterator() Iterator {
	return &foldIterator{operand: s.operand.Iterator(), acc: new(big.Int), add: true}
}

func (s summationSeq) Children() []Sequence { return []Sequence{s.operand} }
func (s summationSeq) Key() string          { return fmt.Sprintf("sum(%s)", s.operand.Key()) }
func (s summationSeq) String() string       { return fmt.Sprintf("summation(%s)", s.operand) }

// Product is f(n) := product of a(0)..a(n).
func Product(a Sequence) Sequence { return productSeq{operand: a} }

type productSeq struct {
	operand Sequence
}

func (p productSeq) At(i int) (*big.Int, error) { return iterateTo(p, i) }

func (p productSeq) Iterator() Iterator {
	return &foldIterator{operand: p.operand.Iterator(), acc: big.NewInt(1)}
}

func (p productSeq) Children() []Sequence { return []Sequence{p.operand} }
func (p productSeq) Key() string          { return fmt.Sprintf("prod(%s)", p.operand.Key()) }
func (p productSeq) String() string       { return fmt.Sprintf("product(%s)", p.operand) }

type foldIterator struct {
	operand Iterator
	acc     *big.Int
	add     bool
}

func (it *foldIterator) Next() (*big.Int, error) {
	v, err := it.operand.Next()
	if err != nil {
		return nil, err
	}
	if it.add {
		it.acc = new(big.Int).Add(it.acc, v)
	} else {
		it.acc = new(big.Int).Mul(it.acc, v)
	}
	return it.acc, nil
}

// Derivative is the first-difference sequence f(n) := a(n+1) - a(n).
func Derivative(a Sequence) Sequence { return derivativeSeq{operand: a} }

type derivativeSeq struct {
	operand Sequence
}

func (d derivativeSeq) At(i int) (*big.Int, error) { return iterateTo(d, i) }

func (d derivativeSeq) Iterator() Iterator {
	return &derivativeIterator{operand: d.operand.Iterator()}
}

func (d derivativeSeq) Children() []Sequence { return []Sequence{d.operand} }
func (d derivativeSeq) Key() string          { return fmt.Sprintf("diff(%s)", d.operand.Key()) }
func (d derivativeSeq) String() string       { return fmt.Sprintf("derivative(%s)", d.operand) }

type derivativeIterator struct {
	operand Iterator
	prev    *big.Int
}

func (it *derivativeIterator) Next() (*big.Int, error) {
	if it.prev == nil {
		v, err := it.operand.Next()
		if err != nil {
			return nil, err
		}
		it.prev = v
	}
	v, err := it.operand.Next()
	if err != nil {
		return nil, err
	}
	diff := new(big.Int).Sub(v, it.prev)
	it.prev = v
	return diff, nil
}

// Integral is the partial-sum sequence anchored at start:
// f(0) := start, f(n+1) := f(n) + a(n). It inverts Derivative up to the
// anchor value.
func Integral(a Sequence, start *big.Int) Sequence {
	return integralSeq{operand: a, start: start}
}

type integralSeq struct {
	operand Sequence
	start   *big.Int
}

func (s integralSeq) At(i int) (*big.Int, error) { return iterateTo(s, i) }

func (s integralSeq) Iterator() Iterator {
	return &integralIterator{operand: s.operand.Iterator(), acc: new(big.Int).Set(s.start)}
}

func (s integralSeq) Children() []Sequence { return []Sequence{s.operand} }

func (s integralSeq) Key() string {
	return fmt.Sprintf("int(%s,%s)", s.start, s.operand.Key())
}

func (s integralSeq) String() string {
	return fmt.Sprintf("integral(%s, start=%s)", s.operand, s.start)
}

type integralIterator struct {
	operand Iterator
	acc     *big.Int
	started bool
}

func (it *integralIterator) Next() (*big.Int, error) {
	if !it.started {
		it.started = true
		return new(big.Int).Set(it.acc), nil
	}
	v, err := it.operand.Next()
	if err != nil {
		return nil, err
	}
	it.acc = new(big.Int).Add(it.acc, v)
	return it.acc, nil
}

// Roundrobin interleaves its operands: f(k*len + j) := operands[j](k).
func Roundrobin(operands ...Sequence) Sequence {
	return roundrobinSeq{operands: operands}
}

type roundrobinSeq struct {
	operands []Sequence
}

func (r roundrobinSeq) At(i int) (*big.Int, error) {
	if i < 0 {
		return nil, valueErr(r, i, "negative index")
	}
	return r.operands[i%len(r.operands)].At(i / len(r.operands))
}

func (r roundrobinSeq) Iterator() Iterator {
	its := make([]Iterator, len(r.operands))
	for i, op := range r.operands {
		its[i] = op.Iterator()
	}
	return &roundrobinIterator{its: its}
}

func (r roundrobinSeq) Children() []Sequence { return r.operands }

func (r roundrobinSeq) Key() string {
	keys := make([]string, len(r.operands))
	for i, op := range r.operands {
		keys[i] = op.Key()
	}
	return fmt.Sprintf("rr(%s)", strings.Join(keys, ","))
}

func (r roundrobinSeq) String() string {
	parts := make([]string, len(r.operands))
	for i, op := range r.operands {
		parts[i] = op.String()
	}
	return fmt.Sprintf("roundrobin(%s)", strings.Join(parts, ", "))
}

type roundrobinIterator struct {
	its []Iterator
	i   int
}

func (it *roundrobinIterator) Next() (*big.Int, error) {
	v, err := it.its[it.i].Next()
	if err != nil {
		return nil, err
	}
	it.i = (it.i + 1) % len(it.its)
	return v, nil
}
