package search

import (
	"fmt"

	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// Algorithm is one search strategy. Search either returns sequences
// matching the run directly, or decomposes the run, enqueues sub-runs with
// continuations on m, and returns nothing.
//
// The scheduler guarantees the run is at least MinItems long, and fully
// defined unless AcceptsUndefined; strategies never re-check either.
type Algorithm interface {
	Name() string
	MinItems() int
	AcceptsUndefined() bool
	Search(m *Manager, run *item.Items, rank int) []seq.Sequence
}

// Strategy names, also the identifiers accepted by configuration.
const (
	NameCatalog       = "catalog"
	NameConst         = "const"
	NameArithmetic    = "arithmetic"
	NameGeometric     = "geometric"
	NameAffine        = "affine"
	NamePower         = "power"
	NameFibonacci     = "fibonacci"
	NameTribonacci    = "tribonacci"
	NamePolynomial    = "polynomial"
	NameRepunit       = "repunit"
	NameConstPow      = "const-pow"
	NameAdd           = "add"
	NameSub           = "sub"
	NameMul           = "mul"
	NameDiv           = "div"
	NamePow           = "pow"
	NameCommonFactors = "common-factors"
	NameCompose       = "compose"
	NameSummation     = "summation"
	NameProduct       = "product"
	NameIntegral      = "integral"
	NameDerivative    = "derivative"
	NameRoundrobin    = "roundrobin"
)

// NewAlgorithm builds the named strategy with its default parameters.
func NewAlgorithm(name string) (Algorithm, error) {
	switch name {
	case NameCatalog:
		return &CatalogAlgorithm{}, nil
	case NameConst:
		return &ConstAlgorithm{}, nil
	case NameArithmetic:
		return &ArithmeticAlgorithm{}, nil
	case NameGeometric:
		return &GeometricAlgorithm{}, nil
	case NameAffine:
		return &AffineAlgorithm{}, nil
	case NamePower:
		return &PowerAlgorithm{}, nil
	case NameFibonacci:
		return &FibonacciAlgorithm{}, nil
	case NameTribonacci:
		return &TribonacciAlgorithm{}, nil
	case NamePolynomial:
		return NewPolynomialAlgorithm(3, 5), nil
	case NameRepunit:
		return &RepunitAlgorithm{}, nil
	case NameConstPow:
		return NewConstPowAlgorithm(), nil
	case NameAdd:
		return &AddAlgorithm{}, nil
	case NameSub:
		return &SubAlgorithm{}, nil
	case NameMul:
		return &MulAlgorithm{}, nil
	case NameDiv:
		return &DivAlgorithm{}, nil
	case NamePow:
		return NewPowAlgorithm(), nil
	case NameCommonFactors:
		return NewCommonFactorsAlgorithm(), nil
	case NameCompose:
		return NewComposeAlgorithm(), nil
	case NameSummation:
		return &SummationAlgorithm{}, nil
	case NameProduct:
		return &ProductAlgorithm{}, nil
	case NameIntegral:
		return &IntegralAlgorithm{}, nil
	case NameDerivative:
		return &DerivativeAlgorithm{}, nil
	case NameRoundrobin:
		return NewRoundrobinAlgorithm(), nil
	default:
		return nil, fmt.Errorf("unknown search algorithm %q", name)
	}
}

// DefaultAlgorithmNames returns the default strategy order. The order is a
// behavioral contract: direct lookups come first, decomposing strategies
// after, so cheap derivations win ties.
func DefaultAlgorithmNames() []string {
	return []string{
		NameCatalog,
		NameConst,
		NameArithmetic,
		NameGeometric,
		NameAffine,
		NamePower,
		NameFibonacci,
		NameTribonacci,
		NamePolynomial,
		NameRepunit,
		NameConstPow,
		NameAdd,
		NameSub,
		NameMul,
		NameDiv,
		NamePow,
		NameCommonFactors,
		NameCompose,
		NameSummation,
		NameProduct,
		NameIntegral,
		NameDerivative,
		NameRoundrobin,
	}
}

// DefaultAlgorithms builds the full default strategy list in order.
func DefaultAlgorithms() []Algorithm {
	names := DefaultAlgorithmNames()
	algorithms := make([]Algorithm, len(names))
	for i, name := range names {
		a, err := NewAlgorithm(name)
		if err != nil {
			panic(err) // names come from the static list above
		}
		algorithms[i] = a
	}
	return algorithms
}

// KnownAlgorithmName reports whether name is a valid strategy identifier.
func KnownAlgorithmName(name string) bool {
	for _, known := range DefaultAlgorithmNames() {
		if known == name {
			return true
		}
	}
	return false
}
