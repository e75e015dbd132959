// Package intmath provides arbitrary-precision integer helpers shared by the
// sequence model and the search algorithms.
//
// Division follows floor semantics (rounding toward negative infinity), not
// Go's native truncation toward zero. Several inversion algorithms depend on
// floor semantics when reconstructing operand runs from negative values, so
// every divide in this repository goes through FloorDiv/FloorDivMod.
package intmath

import (
	"fmt"
	"math/big"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// ErrDivisionByZero is returned by FloorDiv and FloorDivMod for a zero divisor.
var ErrDivisionByZero = fmt.Errorf("division by zero")

// FloorDiv returns a / b rounded toward negative infinity.
// Returns ErrDivisionByZero if b is zero.
func FloorDiv(a, b *big.Int) (*big.Int, error) {
	q, _, err := FloorDivMod(a, b)
	return q, err
}

// FloorDivMod returns the floor quotient and the matching non-negative-step
// remainder: a = q*b + r with 0 <= r < |b| when b > 0, and -|b| < r <= 0
// when b < 0 (Python divmod semantics).
func FloorDivMod(a, b *big.Int) (*big.Int, *big.Int, error) {
	if b.Sign() == 0 {
		return nil, nil, ErrDivisionByZero
	}
	q := new(big.Int)
	r := new(big.Int)
	q.QuoRem(a, b, r)
	// Truncated division rounds toward zero; adjust when signs differ and
	// there is a remainder.
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, one)
		r.Add(r, b)
	}
	return q, r, nil
}

// Gcd returns the greatest common divisor of the given values.
// Gcd() of an empty argument list is 0; the result is always non-negative.
func Gcd(values ...*big.Int) *big.Int {
	result := new(big.Int)
	for _, v := range values {
		result.GCD(nil, nil, result, new(big.Int).Abs(v))
		if result.Cmp(one) == 0 {
			break
		}
	}
	return result
}

// Lcm returns the least common multiple of the given values.
func Lcm(values ...*big.Int) *big.Int {
	result := new(big.Int).Set(one)
	for _, v := range values {
		if v.Sign() == 0 {
			return big.NewInt(0)
		}
		g := Gcd(result, v)
		result.Mul(result, new(big.Int).Abs(v))
		result.Div(result, g)
	}
	return result
}

// Factor is one prime power in a factorization.
type Factor struct {
	Prime *big.Int
	Power int
}

// Factorize returns the prime factorization of |n| in ascending prime order.
// Returns nil for 0 and ±1. Trial division: callers bound their inputs
// (the pow inverters cap candidate values) so this stays cheap.
func Factorize(n *big.Int) []Factor {
	n = new(big.Int).Abs(n)
	if n.Cmp(one) <= 0 {
		return nil
	}
	var factors []Factor
	rem := new(big.Int).Set(n)
	appendFactor := func(p *big.Int) {
		count := 0
		mod := new(big.Int)
		for {
			q, m := new(big.Int).QuoRem(rem, p, mod)
			if m.Sign() != 0 {
				break
			}
			rem.Set(q)
			count++
		}
		if count > 0 {
			factors = append(factors, Factor{Prime: new(big.Int).Set(p), Power: count})
		}
	}
	appendFactor(two)
	p := big.NewInt(3)
	sq := new(big.Int)
	for {
		sq.Mul(p, p)
		if sq.Cmp(rem) > 0 {
			break
		}
		appendFactor(p)
		p.Add(p, two)
	}
	if rem.Cmp(one) > 0 {
		factors = append(factors, Factor{Prime: new(big.Int).Set(rem), Power: 1})
	}
	return factors
}

// Divisors returns all positive divisors of |n| in ascending order.
// Divisors(0) and Divisors(±1) return [1].
func Divisors(n *big.Int) []*big.Int {
	divs := []*big.Int{big.NewInt(1)}
	for _, f := range Factorize(n) {
		var next []*big.Int
		pp := new(big.Int).Set(one)
		for e := 0; e <= f.Power; e++ {
			for _, d := range divs {
				next = append(next, new(big.Int).Mul(d, pp))
			}
			pp = new(big.Int).Mul(pp, f.Prime)
		}
		divs = next
	}
	sortBig(divs)
	return divs
}

// DivisorsOfInt is Divisors for a machine-word value.
func DivisorsOfInt(n int) []*big.Int {
	return Divisors(big.NewInt(int64(n)))
}

func sortBig(values []*big.Int) {
	// Insertion sort: divisor lists stay short.
	for i := 1; i < len(values); i++ {
		v := values[i]
		j := i - 1
		for j >= 0 && values[j].Cmp(v) > 0 {
			values[j+1] = values[j]
			j--
		}
		values[j+1] = v
	}
}

// PerfectPower reports n as root**power with power > 1, if such a
// representation exists. For negative n only odd powers qualify.
// Returns ok=false for 0, ±1 and for values that are not perfect powers.
func PerfectPower(n *big.Int) (root *big.Int, power int, ok bool) {
	if n.Sign() == 0 || n.CmpAbs(one) == 0 {
		return nil, 0, false
	}
	neg := n.Sign() < 0
	abs := new(big.Int).Abs(n)
	maxPower := abs.BitLen() // 2^bitlen > abs, so any power is below this
	for p := maxPower; p >= 2; p-- {
		if neg && p%2 == 0 {
			continue
		}
		r := nthRoot(abs, p)
		if r == nil {
			continue
		}
		if neg {
			r.Neg(r)
		}
		return r, p, true
	}
	return nil, 0, false
}

// nthRoot returns the exact p-th root of n, or nil if n is not a perfect
// p-th power. n must be positive and p >= 1.
func nthRoot(n *big.Int, p int) *big.Int {
	if p == 1 {
		return new(big.Int).Set(n)
	}
	// Binary search on the root.
	lo := big.NewInt(1)
	hi := new(big.Int).Lsh(one, uint(n.BitLen()/p+2))
	pp := big.NewInt(int64(p))
	mid := new(big.Int)
	pow := new(big.Int)
	for lo.Cmp(hi) <= 0 {
		mid.Add(lo, hi)
		mid.Rsh(mid, 1)
		pow.Exp(mid, pp, nil)
		switch pow.Cmp(n) {
		case 0:
			return new(big.Int).Set(mid)
		case -1:
			lo = new(big.Int).Add(mid, one)
		default:
			hi = new(big.Int).Sub(mid, one)
		}
	}
	return nil
}

// Pow returns base**exp for exp >= 0.
func Pow(base *big.Int, exp int) *big.Int {
	if exp < 0 {
		return big.NewInt(0)
	}
	return new(big.Int).Exp(base, big.NewInt(int64(exp)), nil)
}
