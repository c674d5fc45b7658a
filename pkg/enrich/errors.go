package enrich

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the concrete error types below.
var (
	ErrOrdering    = errors.New("assay ordering violated")
	ErrComputation = errors.New("computation failed")
	ErrRange       = errors.New("target out of range")
)

// OrderingError reports assays that do not satisfy xp > xf > xw.
type OrderingError struct {
	Xp, Xf, Xw float64
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("assays must satisfy product > feed > tails (product %s, feed %s, tails %s)",
		pct(e.Xp), pct(e.Xf), pct(e.Xw))
}

func (e *OrderingError) Is(target error) bool { return target == ErrOrdering }

// ComputationError reports a derived mass or SWU that is non-positive or
// non-finite even though the ordering check passed.
type ComputationError struct {
	Quantity string
	Value    float64
	Reason   string
}

func (e *ComputationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s = %g: %s", e.Quantity, e.Value, e.Reason)
	}
	return fmt.Sprintf("derived %s = %g is not positive; assays are too close together", e.Quantity, e.Value)
}

func (e *ComputationError) Is(target error) bool { return target == ErrComputation }

// RangeError reports a target SWU that could not be bracketed.
type RangeError struct {
	Target float64
	Limit  float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("target SWU %g is unreachable: product mass would exceed %g", e.Target, e.Limit)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }

func pct(x float64) string {
	return fmt.Sprintf("%.4f%%", x*100)
}
