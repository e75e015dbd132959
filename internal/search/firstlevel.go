package search

import (
	"math/big"

	"github.com/seqwell/seqwell/internal/intmath"
	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// affineSolve finds m, q with m*x[i] + q == y[i] for all i. When every x is
// the same value the degenerate solution y0 = m*x0 + q via floor divmod is
// used, provided every y agrees too.
func affineSolve(x, y []*big.Int) (m, q *big.Int, ok bool) {
	if len(x) != len(y) || len(x) == 0 {
		return nil, nil, false
	}
	i0, i1 := -1, -1
	for i := 1; i < len(x); i++ {
		if x[i].Cmp(x[0]) != 0 {
			i0, i1 = 0, i
			break
		}
	}
	if i0 < 0 {
		for _, yi := range y[1:] {
			if yi.Cmp(y[0]) != 0 {
				return nil, nil, false
			}
		}
		if x[0].Sign() == 0 {
			return nil, nil, false
		}
		m, q, err := intmath.FloorDivMod(y[0], x[0])
		if err != nil {
			return nil, nil, false
		}
		return m, q, true
	}
	dx := new(big.Int).Sub(x[i0], x[i1])
	dy := new(big.Int).Sub(y[i0], y[i1])
	m, rem, err := intmath.FloorDivMod(dy, dx)
	if err != nil || rem.Sign() != 0 {
		return nil, nil, false
	}
	q = new(big.Int).Mul(m, x[i0])
	q.Sub(y[i0], q)
	probe := new(big.Int)
	for i := range x {
		probe.Mul(m, x[i])
		probe.Add(probe, q)
		if probe.Cmp(y[i]) != 0 {
			return nil, nil, false
		}
	}
	return m, q, true
}

// affineApply builds q + m*s without trivial factors.
func affineApply(q, m *big.Int, s seq.Sequence) seq.Sequence {
	var parts []seq.Sequence
	if q.Sign() != 0 {
		parts = append(parts, seq.Const(q))
	}
	if m.Cmp(big.NewInt(1)) == 0 {
		parts = append(parts, s)
	} else if m.Sign() != 0 {
		parts = append(parts, seq.Mul(seq.Const(m), s))
	}
	if len(parts) == 0 {
		return seq.ConstInt(0)
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out = seq.Add(out, p)
	}
	return out
}

// affineInvert builds (s - q) // m.
func affineInvert(q, m *big.Int, s seq.Sequence) seq.Sequence {
	out := s
	if q.Sign() != 0 {
		out = seq.Sub(out, seq.Const(q))
	}
	switch {
	case m.Cmp(big.NewInt(1)) == 0:
		return out
	case m.Cmp(big.NewInt(-1)) == 0:
		return seq.Neg(out)
	default:
		return seq.Div(out, seq.Const(m))
	}
}

// CatalogAlgorithm resolves runs directly against the session catalog.
type CatalogAlgorithm struct{}

func (*CatalogAlgorithm) Name() string           { return NameCatalog }
func (*CatalogAlgorithm) MinItems() int          { return 1 }
func (*CatalogAlgorithm) AcceptsUndefined() bool { return true }

func (*CatalogAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	var out []seq.Sequence
	for _, s := range m.Catalog().MatchingSequences(run) {
		// The index covers only the first Size positions; check the rest.
		if m.Cache().Matches(s, run) {
			out = append(out, s)
		}
	}
	return out
}

// ConstAlgorithm resolves constant runs.
type ConstAlgorithm struct{}

func (*ConstAlgorithm) Name() string           { return NameConst }
func (*ConstAlgorithm) MinItems() int          { return 1 }
func (*ConstAlgorithm) AcceptsUndefined() bool { return false }

func (*ConstAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	for _, v := range values[1:] {
		if v.Cmp(values[0]) != 0 {
			return nil
		}
	}
	return []seq.Sequence{seq.Const(values[0])}
}

// ArithmeticAlgorithm resolves runs with a constant first difference.
type ArithmeticAlgorithm struct{}

func (*ArithmeticAlgorithm) Name() string           { return NameArithmetic }
func (*ArithmeticAlgorithm) MinItems() int          { return 3 }
func (*ArithmeticAlgorithm) AcceptsUndefined() bool { return false }

func (*ArithmeticAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	diffs := run.Derivative().Values()
	for _, d := range diffs[1:] {
		if d.Cmp(diffs[0]) != 0 {
			return nil
		}
	}
	start, step := run.Values()[0], diffs[0]
	var s seq.Sequence
	switch {
	case step.Sign() == 0:
		s = seq.Const(start)
	case start.Sign() == 0 && step.Cmp(big.NewInt(1)) == 0:
		s = seq.Integer()
	default:
		s = seq.Arithmetic(start, step)
	}
	return []seq.Sequence{s}
}

// GeometricAlgorithm resolves pure and affinely shifted geometric runs.
type GeometricAlgorithm struct{}

func (*GeometricAlgorithm) Name() string           { return NameGeometric }
func (*GeometricAlgorithm) MinItems() int          { return 3 }
func (*GeometricAlgorithm) AcceptsUndefined() bool { return false }

func (*GeometricAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	if base, ok := geometricBase(values); ok {
		return []seq.Sequence{seq.Geometric(base)}
	}
	// Solve a + b*c^n over the first three values:
	// a = (v0*v2 - v1^2) / (v0 - 2*v1 + v2), b = v0 - a, c = (v1-a)/(v0-a).
	v0, v1, v2 := values[0], values[1], values[2]
	den := new(big.Int).Sub(v0, new(big.Int).Lsh(v1, 1))
	den.Add(den, v2)
	if den.Sign() == 0 {
		return nil
	}
	num := new(big.Int).Mul(v0, v2)
	num.Sub(num, new(big.Int).Mul(v1, v1))
	a, rem, err := intmath.FloorDivMod(num, den)
	if err != nil || rem.Sign() != 0 || a.Cmp(v0) == 0 {
		return nil
	}
	b := new(big.Int).Sub(v0, a)
	c, rem, err := intmath.FloorDivMod(new(big.Int).Sub(v1, a), b)
	if err != nil || rem.Sign() != 0 || c.Cmp(big.NewInt(2)) < 0 {
		return nil
	}
	s := seq.Geometric(c)
	switch {
	case b.Cmp(big.NewInt(-1)) == 0:
		s = seq.Neg(s)
	case b.Cmp(big.NewInt(1)) != 0:
		s = seq.Mul(seq.Const(b), s)
	}
	if a.Sign() != 0 {
		s = seq.Add(seq.Const(a), s)
	}
	// Only three values were solved; the rest must agree.
	if !seq.Matches(s, values) {
		return nil
	}
	return []seq.Sequence{s}
}

func geometricBase(values []*big.Int) (*big.Int, bool) {
	if len(values) < 2 || values[0].Cmp(big.NewInt(1)) != 0 {
		return nil, false
	}
	base := values[1]
	probe := big.NewInt(1)
	for _, v := range values {
		if probe.Cmp(v) != 0 {
			return nil, false
		}
		probe = new(big.Int).Mul(probe, base)
	}
	return base, true
}

// AffineAlgorithm resolves affine transformations of cataloged sequences.
type AffineAlgorithm struct{}

func (*AffineAlgorithm) Name() string           { return NameAffine }
func (*AffineAlgorithm) MinItems() int          { return 2 }
func (*AffineAlgorithm) AcceptsUndefined() bool { return false }

func (*AffineAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	var out []seq.Sequence
	m.Catalog().EachEntry(func(entryValues []*big.Int, sequences []seq.Sequence) {
		if len(entryValues) < len(values) {
			return
		}
		entryValues = entryValues[:len(values)]
		if mul, add, ok := affineSolve(entryValues, values); ok {
			for _, s := range sequences {
				out = append(out, affineApply(add, mul, s))
			}
			return
		}
		if mul, add, ok := affineSolve(values, entryValues); ok && mul.Sign() != 0 {
			for _, s := range sequences {
				out = append(out, affineInvert(add, mul, s))
			}
		}
	})
	return out
}

// PowerAlgorithm resolves runs of the form n ** p.
type PowerAlgorithm struct{}

func (*PowerAlgorithm) Name() string           { return NamePower }
func (*PowerAlgorithm) MinItems() int          { return 3 }
func (*PowerAlgorithm) AcceptsUndefined() bool { return false }

func (*PowerAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	if values[0].Sign() != 0 || values[1].Cmp(big.NewInt(1)) != 0 {
		return nil
	}
	// values[2] == 2**p fixes the exponent.
	power := 0
	probe := new(big.Int).Set(values[2])
	for probe.Bit(0) == 0 && probe.Sign() > 0 {
		probe.Rsh(probe, 1)
		power++
	}
	if probe.Cmp(big.NewInt(1)) != 0 || power == 0 {
		return nil
	}
	for i, v := range values {
		if intmath.Pow(big.NewInt(int64(i)), power).Cmp(v) != 0 {
			return nil
		}
	}
	return []seq.Sequence{seq.PowerOf(power)}
}

// FibonacciAlgorithm resolves two-term linear recurrences
// f(n) = scale*f(n-1) + f(n-2).
type FibonacciAlgorithm struct{}

func (*FibonacciAlgorithm) Name() string           { return NameFibonacci }
func (*FibonacciAlgorithm) MinItems() int          { return 3 }
func (*FibonacciAlgorithm) AcceptsUndefined() bool { return false }

func (*FibonacciAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	if s, ok := plainFibonacci(values); ok {
		return []seq.Sequence{s}
	}
	if len(values) < 4 {
		return nil
	}
	// Scaled variant: v[i+2] - v[i+1] - v[i] == m * v[i+1] fixes the scale.
	diffs := make([]*big.Int, 0, len(values)-2)
	mids := make([]*big.Int, 0, len(values)-2)
	for i := 2; i < len(values); i++ {
		d := new(big.Int).Sub(values[i], values[i-1])
		d.Sub(d, values[i-2])
		diffs = append(diffs, d)
		mids = append(mids, values[i-1])
	}
	mul, add, ok := affineSolve(mids, diffs)
	if !ok || add.Sign() != 0 {
		return nil
	}
	scale := new(big.Int).Add(mul, big.NewInt(1))
	s := seq.Fib(values[0], values[1], scale)
	if !seq.Matches(s, values) {
		return nil
	}
	return []seq.Sequence{s}
}

// plainFibonacci detects f(n) = f(n-1) + f(n-2), factoring out the gcd of
// the two seeds so the scaled core is the canonical registry sequence.
func plainFibonacci(values []*big.Int) (seq.Sequence, bool) {
	for i := 2; i < len(values); i++ {
		sum := new(big.Int).Add(values[i-1], values[i-2])
		if sum.Cmp(values[i]) != 0 {
			return nil, false
		}
	}
	first, second := values[0], values[1]
	g := intmath.Gcd(first, second)
	if g.Cmp(big.NewInt(1)) > 0 {
		first, _ = intmath.FloorDiv(first, g)
		second, _ = intmath.FloorDiv(second, g)
	}
	core := seq.Fib(first, second, big.NewInt(1))
	if g.Cmp(big.NewInt(1)) > 0 {
		return seq.Mul(seq.Const(g), core), true
	}
	return core, true
}

// TribonacciAlgorithm resolves f(n) = f(n-1) + f(n-2) + f(n-3).
type TribonacciAlgorithm struct{}

func (*TribonacciAlgorithm) Name() string           { return NameTribonacci }
func (*TribonacciAlgorithm) MinItems() int          { return 4 }
func (*TribonacciAlgorithm) AcceptsUndefined() bool { return false }

func (*TribonacciAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	for i := 3; i < len(values); i++ {
		sum := new(big.Int).Add(values[i-1], values[i-2])
		sum.Add(sum, values[i-3])
		if sum.Cmp(values[i]) != 0 {
			return nil
		}
	}
	return []seq.Sequence{seq.Trib(values[0], values[1], values[2])}
}

// PolynomialAlgorithm resolves runs generated by integer polynomials in n.
type PolynomialAlgorithm struct {
	minDegree int
	maxDegree int
}

// NewPolynomialAlgorithm creates the strategy for degrees minDegree to
// maxDegree (in matrix-size terms: a degree-d fit uses d leading values).
func NewPolynomialAlgorithm(minDegree, maxDegree int) *PolynomialAlgorithm {
	if minDegree < 2 {
		minDegree = 2
	}
	return &PolynomialAlgorithm{minDegree: minDegree, maxDegree: maxDegree}
}

func (*PolynomialAlgorithm) Name() string           { return NamePolynomial }
func (*PolynomialAlgorithm) MinItems() int          { return 3 }
func (*PolynomialAlgorithm) AcceptsUndefined() bool { return false }

func (p *PolynomialAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	maxDegree := p.maxDegree
	if len(values)-1 < maxDegree {
		maxDegree = len(values) - 1
	}
	var out []seq.Sequence
	for degree := p.minDegree; degree <= maxDegree; degree++ {
		coeffs, ok := solveVandermonde(values[:degree])
		if !ok {
			continue
		}
		if coeffs[len(coeffs)-1].Sign() == 0 {
			break
		}
		s := polynomialSequence(coeffs)
		if s == nil {
			continue
		}
		s = seq.Simplify(s)
		// The fit used only degree values; the rest must agree.
		if seq.Matches(s, values) {
			out = append(out, s)
		}
	}
	return out
}

// solveVandermonde solves sum_j c_j * i^j == values[i] exactly. Returns
// false unless all coefficients are integers.
func solveVandermonde(values []*big.Int) ([]*big.Int, bool) {
	n := len(values)
	mat := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		mat[i] = make([]*big.Rat, n+1)
		for j := 0; j < n; j++ {
			mat[i][j] = new(big.Rat).SetInt(intmath.Pow(big.NewInt(int64(i)), j))
		}
		mat[i][n] = new(big.Rat).SetInt(values[i])
	}
	// Gaussian elimination with partial pivoting over exact rationals.
	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if mat[row][col].Sign() != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			return nil, false
		}
		mat[col], mat[pivot] = mat[pivot], mat[col]
		inv := new(big.Rat).Inv(mat[col][col])
		for j := col; j <= n; j++ {
			mat[col][j].Mul(mat[col][j], inv)
		}
		for row := 0; row < n; row++ {
			if row == col || mat[row][col].Sign() == 0 {
				continue
			}
			factor := new(big.Rat).Set(mat[row][col])
			for j := col; j <= n; j++ {
				term := new(big.Rat).Mul(factor, mat[col][j])
				mat[row][j].Sub(mat[row][j], term)
			}
		}
	}
	coeffs := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		if !mat[i][n].IsInt() {
			return nil, false
		}
		coeffs[i] = new(big.Int).Set(mat[i][n].Num())
	}
	return coeffs, true
}

// polynomialSequence builds c0 + c1*i + c2*i^2 + ... skipping zero terms.
func polynomialSequence(coeffs []*big.Int) seq.Sequence {
	var s seq.Sequence
	for power, coeff := range coeffs {
		if coeff.Sign() == 0 {
			continue
		}
		var term seq.Sequence
		switch power {
		case 0:
			term = seq.Const(coeff)
		case 1:
			term = monomial(coeff, seq.Integer())
		default:
			term = monomial(coeff, seq.Pow(seq.Integer(), seq.ConstInt(int64(power))))
		}
		if s == nil {
			s = term
		} else {
			s = seq.Add(s, term)
		}
	}
	return s
}

func monomial(coeff *big.Int, base seq.Sequence) seq.Sequence {
	if coeff.Cmp(big.NewInt(1)) == 0 {
		return base
	}
	if coeff.Cmp(big.NewInt(-1)) == 0 {
		return seq.Neg(base)
	}
	return seq.Mul(seq.Const(coeff), base)
}

// RepunitAlgorithm resolves repunit runs, possibly shifted by a constant.
type RepunitAlgorithm struct{}

func (*RepunitAlgorithm) Name() string           { return NameRepunit }
func (*RepunitAlgorithm) MinItems() int          { return 3 }
func (*RepunitAlgorithm) AcceptsUndefined() bool { return false }

func (*RepunitAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	base := new(big.Int).Sub(values[1], values[0])
	if base.Cmp(big.NewInt(2)) < 0 {
		return nil
	}
	var s seq.Sequence
	if values[0].Cmp(big.NewInt(1)) == 0 {
		s = seq.Repunit(base)
	} else {
		shift := new(big.Int).Sub(values[0], big.NewInt(1))
		s = seq.Add(seq.Const(shift), seq.Repunit(base))
	}
	if !seq.Matches(s, values) {
		return nil
	}
	return []seq.Sequence{s}
}
