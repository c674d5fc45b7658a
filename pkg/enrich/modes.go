package enrich

import "math"

// Options controls the iterative searches.
type Options struct {
	MaxIterations int
	RelTolerance  float64
	MaxProduct    float64

	// BracketTolerance stops golden-section search once the bracket is
	// narrower than this. Zero runs the full iteration budget.
	BracketTolerance float64
}

// DefaultOptions returns the fixed-budget settings.
func DefaultOptions() Options {
	return Options{
		MaxIterations:    MaxIterations,
		RelTolerance:     RelTolerance,
		MaxProduct:       MaxProduct,
		BracketTolerance: 0,
	}
}

// Solver runs the search-based calculations with a given set of options.
// It holds no mutable state and is safe for concurrent use.
type Solver struct {
	opts Options
}

// NewSolver returns a Solver. Non-positive fields fall back to their defaults.
func NewSolver(opts Options) *Solver {
	def := DefaultOptions()
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = def.MaxIterations
	}
	if !positive(opts.RelTolerance) {
		opts.RelTolerance = def.RelTolerance
	}
	if !positive(opts.MaxProduct) {
		opts.MaxProduct = def.MaxProduct
	}
	if !positive(opts.BracketTolerance) {
		opts.BracketTolerance = 0
	}
	return &Solver{opts: opts}
}

// Options returns the effective options.
func (s *Solver) Options() Options { return s.opts }

var defaultSolver = NewSolver(DefaultOptions())

// PerUnitProduct computes feed, waste and SWU for one unit of product.
func PerUnitProduct(xp, xf, xw float64) (Stream, error) {
	return SWUFor(1, xp, xf, xw)
}

// FromProduct computes feed, waste and SWU for product mass p.
func FromProduct(p, xp, xf, xw float64) (Stream, error) {
	return SWUFor(p, xp, xf, xw)
}

// FromFeed computes product, waste and SWU obtainable from feed mass f.
func FromFeed(f, xp, xf, xw float64) (Stream, error) {
	if err := CheckOrdering(xp, xf, xw); err != nil {
		return Stream{}, err
	}

	p := f * (xf - xw) / (xp - xw)
	if !positive(p) {
		return Stream{}, &ComputationError{Quantity: "product", Value: p}
	}
	w := f - p
	if !positive(w) {
		return Stream{}, &ComputationError{Quantity: "waste", Value: w}
	}
	return stream(p, f, w, xp, xf, xw)
}

// FromSWU finds the product mass whose separative work equals target.
// See (*Solver).FromSWU.
func FromSWU(target, xp, xf, xw float64) (Stream, error) {
	return defaultSolver.FromSWU(target, xp, xf, xw)
}

// FromSWU finds the product mass whose separative work equals target by
// bracketing and bisection. The bracket doubles from one unit of product
// until it passes the target and fails with a *RangeError past MaxProduct.
func (s *Solver) FromSWU(target, xp, xf, xw float64) (Stream, error) {
	if err := CheckOrdering(xp, xf, xw); err != nil {
		return Stream{}, err
	}
	if !positive(target) {
		return Stream{}, &ComputationError{Quantity: "target SWU", Value: target, Reason: "must be positive and finite"}
	}

	hi := 1.0
	for {
		st, err := SWUFor(hi, xp, xf, xw)
		if err != nil {
			return Stream{}, err
		}
		if st.SWU > target {
			break
		}
		hi *= 2
		if hi > s.opts.MaxProduct {
			return Stream{}, &RangeError{Target: target, Limit: s.opts.MaxProduct}
		}
	}

	lo := hi / 2
	if hi == 1 {
		lo = 0
	}

	p := 0.0
	converged := false
	for i := 0; i < s.opts.MaxIterations; i++ {
		p = (lo + hi) / 2
		st, err := SWUFor(p, xp, xf, xw)
		if err != nil {
			return Stream{}, err
		}
		if math.Abs(st.SWU-target)/target < s.opts.RelTolerance {
			converged = true
			break
		}
		if st.SWU < target {
			lo = p
		} else {
			hi = p
		}
	}
	if !converged {
		p = (lo + hi) / 2
	}

	return SWUFor(p, xp, xf, xw)
}
