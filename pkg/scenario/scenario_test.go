package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennyhartnett/swucalc/pkg/calc"
	"github.com/bennyhartnett/swucalc/pkg/input"
)

var defaults = Units{Mass: "kg", Assay: "%", Work: "SWU"}

const sample = `
units:
  assay: "%"
scenarios:
  - name: leu per kg
    mode: unit
    product_assay: 5
    feed_assay: 0.711
    tails_assay: "0.3"
  - name: reactor reload
    mode: Product
    product_assay: 4.5
    feed_assay: 0.711
    tails_assay: 0.25
    product: 25
    units:
      mass: t
  - name: contract
    mode: swu
    product_assay: 50000
    feed_assay: 7110
    tails_assay: 3000
    swu: 120
    units:
      assay: ppm
      work: kSWU
  - name: best tails
    mode: optimum
    product_assay: 5
    feed_assay: 0.711
    feed_cost: 100
    swu_cost: 150
`

func TestParse_Requests(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, f.Scenarios, 4)
	assert.Equal(t, "product", f.Scenarios[1].Mode)

	reqs, err := f.Requests(defaults)
	require.NoError(t, err)
	require.Len(t, reqs, 4)

	assert.Equal(t, "leu per kg", reqs[0].Name)
	assert.InDelta(t, 0.05, reqs[0].Xp, 1e-12)
	assert.InDelta(t, 0.00711, reqs[0].Xf, 1e-12)
	assert.InDelta(t, 0.003, reqs[0].Xw, 1e-12)

	assert.InDelta(t, 25000, reqs[1].Product, 1e-9)
	assert.InDelta(t, 0.0025, reqs[1].Xw, 1e-12)

	assert.InDelta(t, 0.05, reqs[2].Xp, 1e-12)
	assert.InDelta(t, 120000, reqs[2].SWU, 1e-6)

	assert.Equal(t, 100.0, reqs[3].FeedCost)
	assert.Equal(t, 150.0, reqs[3].SWUCost)
	assert.Zero(t, reqs[3].Xw)

	for _, r := range reqs {
		_, err := calc.Run(r)
		assert.NoError(t, err, r.Name)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "scenarios: []", "no scenarios"},
		{"no name", "scenarios:\n  - mode: unit", "non-empty name"},
		{"duplicate", "scenarios:\n  - {name: a, mode: unit}\n  - {name: a, mode: unit}", "duplicate name"},
		{"bad mode", "scenarios:\n  - {name: a, mode: magic}", "unknown mode"},
		{"nested number", "scenarios:\n  - name: a\n    mode: unit\n    product_assay: [1, 2]", "expected a number"},
		{"bad yaml", "scenarios: [", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEntry_Request_Validation(t *testing.T) {
	e := Entry{Name: "x", Mode: "product", ProductAssay: "5", FeedAssay: "0.711", TailsAssay: "0.3"}
	_, err := e.Request(defaults)
	require.Error(t, err)
	var ve *input.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "product", ve.Field)

	e.Product = "-4"
	_, err = e.Request(defaults)
	assert.ErrorIs(t, err, input.ErrValidation)

	e.Product = "4"
	e.TailsAssay = "120"
	_, err = e.Request(defaults)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tails_assay", ve.Field)

	e.TailsAssay = "0.3"
	e.Units.Mass = "stone"
	_, err = e.Request(defaults)
	assert.ErrorContains(t, err, "unknown mass unit")
}

func TestFile_Requests_WrapsScenarioName(t *testing.T) {
	f, err := Parse([]byte("scenarios:\n  - {name: broken, mode: feed, product_assay: 5, feed_assay: 0.711, tails_assay: 0.3}"))
	require.NoError(t, err)
	_, err = f.Requests(defaults)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario "broken"`)
	assert.ErrorIs(t, err, input.ErrValidation)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Scenarios, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read scenario file")
}

func TestUnits_Over(t *testing.T) {
	got := Units{Work: "kSWU"}.Over(defaults)
	assert.Equal(t, Units{Mass: "kg", Assay: "%", Work: "kSWU"}, got)
}

func TestRequired(t *testing.T) {
	assert.Equal(t, []string{"product_assay", "feed_assay", "feed_cost", "swu_cost"}, Required("optimum"))
	assert.Nil(t, Required("bogus"))

	// callers get a copy
	r := Required("unit")
	r[0] = "changed"
	assert.Equal(t, "product_assay", Required("unit")[0])

	for _, name := range calc.Names() {
		assert.NotEmpty(t, Required(name), name)
	}
}
