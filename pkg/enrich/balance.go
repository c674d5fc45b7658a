package enrich

// Balance holds the feed and waste masses that produce a given product mass.
type Balance struct {
	Feed  float64 `json:"feed"`
	Waste float64 `json:"waste"`
}

// Stream describes all three streams of one enrichment cascade together
// with the separative work it takes.
type Stream struct {
	Product float64 `json:"product"`
	Feed    float64 `json:"feed"`
	Waste   float64 `json:"waste"`
	SWU     float64 `json:"swu"`
}

// CheckOrdering fails with an *OrderingError unless xp > xf > xw.
func CheckOrdering(xp, xf, xw float64) error {
	if xp > xf && xf > xw {
		return nil
	}
	return &OrderingError{Xp: xp, Xf: xf, Xw: xw}
}

// CheckProductAboveFeed is the two-assay form of CheckOrdering, for callers
// that are solving for the tails assay.
func CheckProductAboveFeed(xp, xf float64) error {
	if xp > xf {
		return nil
	}
	return &OrderingError{Xp: xp, Xf: xf, Xw: xf / 2}
}

// MassBalance derives feed and waste for product mass p from the total and
// isotope conservation laws.
func MassBalance(p, xp, xf, xw float64) (Balance, error) {
	if err := CheckOrdering(xp, xf, xw); err != nil {
		return Balance{}, err
	}

	f := p * (xp - xw) / (xf - xw)
	w := f - p
	if !positive(f) {
		return Balance{}, &ComputationError{Quantity: "feed", Value: f}
	}
	if !positive(w) {
		return Balance{}, &ComputationError{Quantity: "waste", Value: w}
	}
	return Balance{Feed: f, Waste: w}, nil
}

// SWUFor computes the separative work for product mass p.
func SWUFor(p, xp, xf, xw float64) (Stream, error) {
	b, err := MassBalance(p, xp, xf, xw)
	if err != nil {
		return Stream{}, err
	}
	return stream(p, b.Feed, b.Waste, xp, xf, xw)
}

// stream assembles a Stream from already-balanced masses.
func stream(p, f, w, xp, xf, xw float64) (Stream, error) {
	swu := p*ValueFunction(xp) + w*ValueFunction(xw) - f*ValueFunction(xf)
	if !positive(swu) {
		return Stream{}, &ComputationError{Quantity: "SWU", Value: swu}
	}
	return Stream{Product: p, Feed: f, Waste: w, SWU: swu}, nil
}
