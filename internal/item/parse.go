package item

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ParseError reports a malformed constraint literal. Literal errors are
// fatal: they are raised before any search scheduling happens.
type ParseError struct {
	Literal string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid item %q: %s", e.Literal, e.Reason)
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ParseItem parses one constraint literal:
//
//	7        exact value
//	..       wildcard
//	3..7     closed interval
//	3..      lower bound
//	..7      upper bound
//	2,4,8    finite set
//
// Degenerate intervals and singleton sets simplify to Exact.
func ParseItem(literal string) (Item, error) {
	s := strings.TrimSpace(literal)
	if s == "" {
		return nil, &ParseError{Literal: literal, Reason: "empty literal"}
	}
	if s == ".." {
		return ANY, nil
	}
	if lo, hi, found := strings.Cut(s, ".."); found {
		return parseRange(literal, lo, hi)
	}
	if strings.Contains(s, ",") {
		return parseSet(literal, s)
	}
	v, err := parseInt(literal, s)
	if err != nil {
		return nil, err
	}
	return NewExact(v), nil
}

// ParseItems parses a sequence of constraint literals into a run.
// Literals containing spaces are split, so both
// ParseItems("1", "2", "..") and ParseItems("1 2 ..") work.
func ParseItems(literals ...string) (*Items, error) {
	var elems []Item
	for _, literal := range literals {
		for _, field := range strings.Fields(literal) {
			it, err := ParseItem(field)
			if err != nil {
				return nil, err
			}
			elems = append(elems, it)
		}
	}
	if len(elems) == 0 {
		return nil, &ParseError{Literal: strings.Join(literals, " "), Reason: "empty run"}
	}
	return &Items{elems: elems}, nil
}

func parseRange(literal, lo, hi string) (Item, error) {
	switch {
	case lo == "" && hi == "":
		return ANY, nil
	case hi == "":
		v, err := parseInt(literal, lo)
		if err != nil {
			return nil, err
		}
		return NewLowerBound(v), nil
	case lo == "":
		v, err := parseInt(literal, hi)
		if err != nil {
			return nil, err
		}
		return NewUpperBound(v), nil
	default:
		loV, err := parseInt(literal, lo)
		if err != nil {
			return nil, err
		}
		hiV, err := parseInt(literal, hi)
		if err != nil {
			return nil, err
		}
		if loV.Cmp(hiV) > 0 {
			return nil, &ParseError{Literal: literal, Reason: "interval bounds out of order"}
		}
		return NewInterval(loV, hiV), nil
	}
}

func parseSet(literal, s string) (Item, error) {
	parts := strings.Split(s, ",")
	values := make([]*big.Int, 0, len(parts))
	for _, part := range parts {
		v, err := parseInt(literal, part)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return NewSet(values...), nil
}

func parseInt(literal, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, &ParseError{Literal: literal, Reason: "not an integer"}
	}
	return v, nil
}
