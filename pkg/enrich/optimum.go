package enrich

import "math"

// Optimum is the cost-minimizing tails assay and the per-unit-product
// quantities at that assay.
type Optimum struct {
	Tails          float64 `json:"tails"`
	FeedPerProduct float64 `json:"feed_per_product"`
	SWUPerProduct  float64 `json:"swu_per_product"`
	CostPerProduct float64 `json:"cost_per_product"`
	Iterations     int     `json:"iterations"`
}

// TailsDomain returns the interval of tails assays searched for a feed
// assay xf: from 1% of xf up to just below xf.
func TailsDomain(xf float64) (lo, hi float64) {
	lo = math.Max(Eps, 0.01*xf)
	hi = math.Max(lo+Eps, xf-Eps)
	return lo, hi
}

// Cost is the price of one unit of product at tails assay xw, given the
// price cf per unit of feed and cs per SWU.
func Cost(xw, xp, xf, cf, cs float64) (float64, error) {
	st, err := SWUFor(1, xp, xf, xw)
	if err != nil {
		return 0, err
	}
	return cf*st.Feed + cs*st.SWU, nil
}

// FindOptimumTails minimizes Cost over TailsDomain. See (*Solver).FindOptimumTails.
func FindOptimumTails(xp, xf, cf, cs float64) (Optimum, error) {
	return defaultSolver.FindOptimumTails(xp, xf, cf, cs)
}

// FindOptimumTails runs golden-section search over the tails domain. The
// cost is assumed unimodal there; a result costlier than the cheaper
// domain endpoint is reported as a *ComputationError.
func (s *Solver) FindOptimumTails(xp, xf, cf, cs float64) (Optimum, error) {
	if err := CheckProductAboveFeed(xp, xf); err != nil {
		return Optimum{}, err
	}
	if !positive(cf) {
		return Optimum{}, &ComputationError{Quantity: "feed cost", Value: cf, Reason: "must be positive and finite"}
	}
	if !positive(cs) {
		return Optimum{}, &ComputationError{Quantity: "SWU cost", Value: cs, Reason: "must be positive and finite"}
	}

	// failed evaluations lose every comparison
	cost := func(xw float64) float64 {
		c, err := Cost(xw, xp, xf, cf, cs)
		if err != nil {
			return math.Inf(1)
		}
		return c
	}

	lo, hi := TailsDomain(xf)
	a, b := lo, hi
	iter := 0
	for ; iter < s.opts.MaxIterations; iter++ {
		if s.opts.BracketTolerance > 0 && b-a < s.opts.BracketTolerance {
			break
		}
		x1 := b - (b-a)/Phi
		x2 := a + (b-a)/Phi
		if cost(x1) < cost(x2) {
			b = x2
		} else {
			a = x1
		}
	}

	xw := (a + b) / 2
	st, err := SWUFor(1, xp, xf, xw)
	if err != nil {
		return Optimum{}, err
	}
	c := cf*st.Feed + cs*st.SWU

	edge := math.Min(cost(lo), cost(hi))
	if c > edge+1e-9*math.Abs(edge) {
		return Optimum{}, &ComputationError{
			Quantity: "optimum cost",
			Value:    c,
			Reason:   "exceeds the cost at the edge of the tails domain; cost is not unimodal",
		}
	}

	return Optimum{
		Tails:          xw,
		FeedPerProduct: st.Feed,
		SWUPerProduct:  st.SWU,
		CostPerProduct: c,
		Iterations:     iter,
	}, nil
}
