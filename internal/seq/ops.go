package seq

import (
	"fmt"
	"math/big"

	"github.com/seqwell/seqwell/internal/intmath"
)

// Expression builders. Building is explicit: Add(a, b) rather than operator
// syntax, so every node in a result tree is named at its construction site.

// Add is f(n) := a(n) + b(n).
func Add(a, b Sequence) Sequence { return binOp{op: opAdd, left: a, right: b} }

// Sub is f(n) := a(n) - b(n).
func Sub(a, b Sequence) Sequence { return binOp{op: opSub, left: a, right: b} }

// Mul is f(n) := a(n) * b(n).
func Mul(a, b Sequence) Sequence { return binOp{op: opMul, left: a, right: b} }

// Div is f(n) := a(n) // b(n), floor division. Evaluation fails with a
// *ValueError on a zero divisor.
func Div(a, b Sequence) Sequence { return binOp{op: opDiv, left: a, right: b} }

// Mod is f(n) := a(n) % b(n) with the sign of the divisor, matching Div.
func Mod(a, b Sequence) Sequence { return binOp{op: opMod, left: a, right: b} }

// Pow is f(n) := a(n) ** b(n). Evaluation fails on a negative exponent.
func Pow(a, b Sequence) Sequence { return binOp{op: opPow, left: a, right: b} }

// Neg is f(n) := -a(n).
func Neg(a Sequence) Sequence { return unOp{op: "-", operand: a} }

// Abs is f(n) := |a(n)|.
func Abs(a Sequence) Sequence { return unOp{op: "abs", operand: a} }

// Compose is f(n) := outer(index(n)). Evaluation fails when index produces
// a negative position or one too large to address.
func Compose(outer, index Sequence) Sequence {
	return composeSeq{outer: outer, index: index}
}

type binOpKind int

const (
	opAdd binOpKind = iota
	opSub
	opMul
	opDiv
	opMod
	opPow
)

func (k binOpKind) symbol() string {
	switch k {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "//"
	case opMod:
		return "%"
	default:
		return "**"
	}
}

func (k binOpKind) name() string {
	switch k {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	case opDiv:
		return "div"
	case opMod:
		return "mod"
	default:
		return "pow"
	}
}

type binOp struct {
	op          binOpKind
	left, right Sequence
}

func (b binOp) At(i int) (*big.Int, error) {
	l, err := b.left.At(i)
	if err != nil {
		return nil, err
	}
	r, err := b.right.At(i)
	if err != nil {
		return nil, err
	}
	return b.apply(i, l, r)
}

func (b binOp) apply(i int, l, r *big.Int) (*big.Int, error) {
	switch b.op {
	case opAdd:
		return new(big.Int).Add(l, r), nil
	case opSub:
		return new(big.Int).Sub(l, r), nil
	case opMul:
		return new(big.Int).Mul(l, r), nil
	case opDiv:
		q, err := intmath.FloorDiv(l, r)
		if err != nil {
			return nil, valueErr(b, i, "division by zero")
		}
		return q, nil
	case opMod:
		_, m, err := intmath.FloorDivMod(l, r)
		if err != nil {
			return nil, valueErr(b, i, "division by zero")
		}
		return m, nil
	default:
		if r.Sign() < 0 {
			return nil, valueErr(b, i, "negative exponent")
		}
		if !r.IsInt64() {
			return nil, valueErr(b, i, "exponent too large")
		}
		return new(big.Int).Exp(l, r, nil), nil
	}
}

func (b binOp) Iterator() Iterator {
	return &binOpIterator{op: b, left: b.left.Iterator(), right: b.right.Iterator()}
}

func (b binOp) Children() []Sequence { return []Sequence{b.left, b.right} }

func (b binOp) Key() string {
	return fmt.Sprintf("%s(%s,%s)", b.op.name(), b.left.Key(), b.right.Key())
}

func (b binOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.left, b.op.symbol(), b.right)
}

type binOpIterator struct {
	op          binOp
	left, right Iterator
	i           int
}

func (it *binOpIterator) Next() (*big.Int, error) {
	l, err := it.left.Next()
	if err != nil {
		return nil, err
	}
	r, err := it.right.Next()
	if err != nil {
		return nil, err
	}
	v, err := it.op.apply(it.i, l, r)
	if err != nil {
		return nil, err
	}
	it.i++
	return v, nil
}

type unOp struct {
	op      string
	operand Sequence
}

func (u unOp) At(i int) (*big.Int, error) {
	v, err := u.operand.At(i)
	if err != nil {
		return nil, err
	}
	return u.apply(v), nil
}

func (u unOp) apply(v *big.Int) *big.Int {
	if u.op == "-" {
		return new(big.Int).Neg(v)
	}
	return new(big.Int).Abs(v)
}

func (u unOp) Iterator() Iterator {
	return &unOpIterator{op: u, operand: u.operand.Iterator()}
}

func (u unOp) Children() []Sequence { return []Sequence{u.operand} }

func (u unOp) Key() string {
	if u.op == "-" {
		return fmt.Sprintf("neg(%s)", u.operand.Key())
	}
	return fmt.Sprintf("abs(%s)", u.operand.Key())
}

func (u unOp) String() string {
	if u.op == "-" {
		return fmt.Sprintf("-(%s)", u.operand)
	}
	return fmt.Sprintf("abs(%s)", u.operand)
}

type unOpIterator struct {
	op      unOp
	operand Iterator
}

func (it *unOpIterator) Next() (*big.Int, error) {
	v, err := it.operand.Next()
	if err != nil {
		return nil, err
	}
	return it.op.apply(v), nil
}

type composeSeq struct {
	outer, index Sequence
}

func (c composeSeq) At(i int) (*big.Int, error) {
	idx, err := c.index.At(i)
	if err != nil {
		return nil, err
	}
	return c.outerAt(i, idx)
}

func (c composeSeq) outerAt(i int, idx *big.Int) (*big.Int, error) {
	if idx.Sign() < 0 {
		return nil, valueErr(c, i, "negative inner index")
	}
	if !idx.IsInt64() || idx.Int64() > 1<<24 {
		return nil, valueErr(c, i, "inner index too large")
	}
	return c.outer.At(int(idx.Int64()))
}

func (c composeSeq) Iterator() Iterator {
	return &composeIterator{c: c, index: c.index.Iterator()}
}

func (c composeSeq) Children() []Sequence { return []Sequence{c.outer, c.index} }

func (c composeSeq) Key() string {
	return fmt.Sprintf("compose(%s,%s)", c.outer.Key(), c.index.Key())
}

func (c composeSeq) String() string {
	return fmt.Sprintf("(%s | %s)", c.outer, c.index)
}

type composeIterator struct {
	c     composeSeq
	index Iterator
	i     int
}

func (it *composeIterator) Next() (*big.Int, error) {
	idx, err := it.index.Next()
	if err != nil {
		return nil, err
	}
	v, err := it.c.outerAt(it.i, idx)
	if err != nil {
		return nil, err
	}
	it.i++
	return v, nil
}
