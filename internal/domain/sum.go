package domain

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Policy decides what happens when a list contains a non-numeric element.
type Policy string

const (
	// PolicyReject stops at the first invalid element.
	PolicyReject Policy = "reject"
	// PolicySkip leaves invalid elements out of the total and records their indexes.
	PolicySkip Policy = "skip"
)

// ParsePolicy accepts "reject" or "skip" in any case; empty means PolicyReject.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unsupported policy %q (expected reject|skip): %w", s, ErrInvalidConfig)
	}
}

// SumResult is the outcome of summing one list.
type SumResult struct {
	Total   Value
	Count   int
	Skipped []int
}

// Sum adds values left to right, starting from int 0.
//
// int+int stays int, anything involving a float becomes float. Under
// PolicyReject the first invalid element aborts the sum with a
// KindIncompatibleType error and no partial total; under PolicySkip it is
// ignored. An int64 overflow is reported as KindOverflow.
func Sum(values []Value, policy Policy) (SumResult, error) {
	acc := IntValue(0)
	res := SumResult{}

	for i, v := range values {
		if !v.IsNumeric() {
			if policy == PolicySkip {
				res.Skipped = append(res.Skipped, i)
				continue
			}
			return SumResult{}, &OpError{
				Op:   "domain.sum",
				Kind: KindIncompatibleType,
				Err:  &ElementError{Index: i, Element: v, Accumulator: acc},
			}
		}

		next, err := add(acc, v)
		if err != nil {
			return SumResult{}, &OpError{
				Op:   "domain.sum",
				Kind: KindOverflow,
				Err:  fmt.Errorf("element %d: %s + %s: %w", i, acc, v, err),
			}
		}
		acc = next
		res.Count++
	}

	res.Total = acc
	return res, nil
}

func add(a, b Value) (Value, error) {
	if a.Kind == ValueInt && b.Kind == ValueInt {
		c := a.Int + b.Int
		if (b.Int > 0 && c < a.Int) || (b.Int < 0 && c > a.Int) {
			return Value{}, ErrOverflow
		}
		return IntValue(c), nil
	}
	return FloatValue(a.AsFloat() + b.AsFloat()), nil
}

// Number is the set of Go types SumOf accepts.
type Number interface {
	constraints.Integer | constraints.Float
}

// SumOf sums a homogeneous slice. Mixed element types are a compile error.
func SumOf[T Number](xs []T) T {
	var total T
	for _, x := range xs {
		total += x
	}
	return total
}
