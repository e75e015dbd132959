// Package seq implements the symbolic sequence model: primitive integer
// sequences, expression nodes combining them, structural identity keys, an
// interning registry and a rule-based simplifier.
//
// A Sequence is an immutable expression tree. Evaluation is explicit and
// error-returning: arithmetic that cannot produce an integer (division with
// remainder, zero divisor, negative exponent, negative index) reports a
// *ValueError instead of panicking, so search strategies can discard a branch
// and move on.
package seq

import (
	"errors"
	"fmt"
	"math/big"
)

// Sequence is an immutable symbolic integer sequence.
type Sequence interface {
	// At returns the value at index i >= 0.
	At(i int) (*big.Int, error)
	// Iterator returns a fresh iterator positioned before index 0.
	Iterator() Iterator
	// Children returns the direct sub-expressions, nil for primitives.
	Children() []Sequence
	// Key returns the canonical structural identity. Two sequences with the
	// same key are structurally identical.
	Key() string
	// String returns the display rendering.
	String() string
}

// Iterator yields consecutive sequence values starting at index 0.
type Iterator interface {
	Next() (*big.Int, error)
}

// ValueError reports that a sequence value cannot be produced at some index.
// It rejects one evaluation branch; it is never fatal to a search.
type ValueError struct {
	Seq    string
	Index  int
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s at index %d: %s", e.Seq, e.Index, e.Reason)
}

// IsValueError reports whether err wraps a *ValueError.
func IsValueError(err error) bool {
	var ve *ValueError
	return errors.As(err, &ve)
}

func valueErr(s Sequence, i int, reason string) error {
	return &ValueError{Seq: s.String(), Index: i, Reason: reason}
}

// Values returns up to n leading values of s. It is error-tolerant: the
// first evaluation error truncates the result, so a partially known sequence
// yields its known prefix.
func Values(s Sequence, n int) []*big.Int {
	values := make([]*big.Int, 0, n)
	it := s.Iterator()
	for i := 0; i < n; i++ {
		v, err := it.Next()
		if err != nil {
			break
		}
		values = append(values, v)
	}
	return values
}

// Complexity returns the number of nodes in the expression tree. Lower is
// simpler; result ranking sorts by this.
func Complexity(s Sequence) int {
	count := 0
	Walk(s, func(Sequence) { count++ })
	return count
}

// Walk visits s and every sub-expression in depth-first pre-order.
func Walk(s Sequence, visit func(Sequence)) {
	visit(s)
	for _, c := range s.Children() {
		Walk(c, visit)
	}
}

// Equal reports whether a and b simplify to the same structural identity.
func Equal(a, b Sequence) bool {
	return Simplify(a).Key() == Simplify(b).Key()
}

// Matches reports whether the leading values of s are exactly want.
// Evaluation errors before len(want) values count as a mismatch.
func Matches(s Sequence, want []*big.Int) bool {
	it := s.Iterator()
	for _, w := range want {
		v, err := it.Next()
		if err != nil || v.Cmp(w) != 0 {
			return false
		}
	}
	return true
}

// atIterator adapts an indexed At into an Iterator, for closed-form nodes.
type atIterator struct {
	s Sequence
	i int
}

func (it *atIterator) Next() (*big.Int, error) {
	v, err := it.s.At(it.i)
	if err != nil {
		return nil, err
	}
	it.i++
	return v, nil
}
