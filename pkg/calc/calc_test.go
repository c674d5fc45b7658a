package calc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennyhartnett/swucalc/pkg/enrich"
)

func leu(mode string) Request {
	return Request{
		Name: "leu-" + mode,
		Mode: mode,
		Xp:   0.05,
		Xf:   0.00711,
		Xw:   0.003,
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"feed", "optimum", "product", "swu", "unit"}, Names())
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("annealing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode: annealing")
	assert.Contains(t, err.Error(), "optimum")
}

func TestModes_Describe(t *testing.T) {
	for _, name := range Names() {
		m, err := Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.Name())
		assert.NotEmpty(t, m.Describe())
	}
}

func TestRun_Unit(t *testing.T) {
	got, err := Run(leu("unit"))
	require.NoError(t, err)

	want := Result{
		Name: "leu-unit", Mode: "unit",
		Xp: 0.05, Xf: 0.00711, Xw: 0.003,
		Product: 1, Feed: 11.4355, Waste: 10.4355, SWU: 7.1983,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(1e-4, 0)); diff != "" {
		t.Errorf("unit mode mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, got.OK())
}

func TestRun_ProductFeedSWUAgree(t *testing.T) {
	req := leu("product")
	req.Product = 120
	req.FeedCost = 100
	req.SWUCost = 150
	prod, err := Run(req)
	require.NoError(t, err)
	assert.InDelta(t, 100*prod.Feed+150*prod.SWU, prod.Cost, 1e-9)

	req = leu("feed")
	req.Feed = prod.Feed
	feed, err := Run(req)
	require.NoError(t, err)

	req = leu("swu")
	req.SWU = prod.SWU
	swu, err := Run(req)
	require.NoError(t, err)

	opts := cmpopts.EquateApprox(1e-4, 0)
	ignore := cmpopts.IgnoreFields(Result{}, "Name", "Mode", "Cost")
	if diff := cmp.Diff(prod, feed, opts, ignore); diff != "" {
		t.Errorf("feed mode disagrees with product mode (-product +feed):\n%s", diff)
	}
	if diff := cmp.Diff(prod, swu, opts, ignore); diff != "" {
		t.Errorf("swu mode disagrees with product mode (-product +swu):\n%s", diff)
	}
}

func TestRun_Optimum(t *testing.T) {
	req := leu("optimum")
	req.Xw = 0
	req.FeedCost = 100
	req.SWUCost = 150

	got, err := Run(req)
	require.NoError(t, err)
	assert.Equal(t, "optimum", got.Mode)
	assert.Equal(t, 1.0, got.Product)
	assert.Greater(t, got.Xw, 0.0)
	assert.Less(t, got.Xw, req.Xf)
	assert.InDelta(t, got.Feed-1, got.Waste, 1e-12)
	assert.InDelta(t, 2214.606, got.Cost, 0.01)
}

func TestRun_ErrorsPassThrough(t *testing.T) {
	req := leu("product")
	req.Xf = req.Xp
	req.Product = 1
	_, err := Run(req)
	assert.ErrorIs(t, err, enrich.ErrOrdering)

	req = leu("swu")
	req.SWU = 1e15
	_, err = Run(req)
	assert.ErrorIs(t, err, enrich.ErrRange)

	req = leu("nope")
	_, err = Run(req)
	assert.Error(t, err)
}

func TestFailed(t *testing.T) {
	req := leu("feed")
	_, err := Run(req)
	require.Error(t, err)

	r := Failed(req, err)
	assert.False(t, r.OK())
	assert.Equal(t, "leu-feed", r.Name)
	assert.Equal(t, "feed", r.Mode)
	assert.Zero(t, r.Product)
	assert.Zero(t, r.SWU)
	assert.Equal(t, err.Error(), r.Err)
}

func TestSweep(t *testing.T) {
	req := leu("optimum")
	req.FeedCost = 100
	req.SWUCost = 150

	points, err := Sweep(req, 200)
	require.NoError(t, err)
	require.NotEmpty(t, points)

	lo, hi := enrich.TailsDomain(req.Xf)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Tails, lo)
		assert.LessOrEqual(t, p.Tails, hi)
	}

	best := points[Cheapest(points)]
	opt, err := enrich.FindOptimumTails(req.Xp, req.Xf, req.FeedCost, req.SWUCost)
	require.NoError(t, err)
	assert.LessOrEqual(t, opt.CostPerProduct, best.Cost*(1+1e-9))
	assert.InDelta(t, opt.Tails, best.Tails, (hi-lo)/200)
}

func TestSweep_Errors(t *testing.T) {
	req := leu("optimum")
	_, err := Sweep(req, 0)
	assert.Error(t, err)

	req.Xp = req.Xf
	_, err = Sweep(req, 10)
	assert.ErrorIs(t, err, enrich.ErrOrdering)

	assert.Equal(t, -1, Cheapest(nil))
}
