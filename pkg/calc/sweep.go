package calc

import (
	"fmt"

	"github.com/bennyhartnett/swucalc/pkg/enrich"
)

// SweepPoint is the per-unit-product cost at one tails assay.
type SweepPoint struct {
	Tails float64 `json:"tails_assay"`
	Feed  float64 `json:"feed"`
	SWU   float64 `json:"swu"`
	Cost  float64 `json:"cost"`
}

// Sweep evaluates the tails cost curve on steps+1 evenly spaced assays
// across enrich.TailsDomain. Assays where the streams cannot be computed
// are left out.
func Sweep(req Request, steps int) ([]SweepPoint, error) {
	if steps < 1 {
		return nil, fmt.Errorf("sweep needs at least 1 step, got %d", steps)
	}
	if err := enrich.CheckProductAboveFeed(req.Xp, req.Xf); err != nil {
		return nil, err
	}

	lo, hi := enrich.TailsDomain(req.Xf)
	points := make([]SweepPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		xw := lo + (hi-lo)*float64(i)/float64(steps)
		st, err := enrich.PerUnitProduct(req.Xp, req.Xf, xw)
		if err != nil {
			continue
		}
		points = append(points, SweepPoint{
			Tails: xw,
			Feed:  st.Feed,
			SWU:   st.SWU,
			Cost:  req.FeedCost*st.Feed + req.SWUCost*st.SWU,
		})
	}
	return points, nil
}

// Cheapest returns the index of the lowest-cost point, or -1 for none.
func Cheapest(points []SweepPoint) int {
	best := -1
	for i, p := range points {
		if best < 0 || p.Cost < points[best].Cost {
			best = i
		}
	}
	return best
}
