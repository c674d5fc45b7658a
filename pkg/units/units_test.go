package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Aliases(t *testing.T) {
	tests := []struct {
		kind Kind
		in   string
		want string
	}{
		{Mass, "KG", "kg"},
		{Mass, " pounds ", "lb"},
		{Mass, "tonne", "t"},
		{Assay, "%", "%"},
		{Assay, "Percent", "%"},
		{Assay, "PPM", "ppm"},
		{Assay, "", "fraction"},
		{Work, "kswu", "kSWU"},
		{Work, "MSWU", "MSWU"},
	}
	for _, tc := range tests {
		u, err := Lookup(tc.kind, tc.in)
		require.NoError(t, err, "%s %q", tc.kind, tc.in)
		assert.Equal(t, tc.want, u.Name)
		assert.Equal(t, tc.kind, u.Kind)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup(Mass, "stone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kg, lb, t")

	_, err = Lookup(Kind("volume"), "l")
	assert.Error(t, err)

	// work has no implicit default
	_, err = Lookup(Work, "")
	assert.Error(t, err)
}

func TestConversions(t *testing.T) {
	assert.InDelta(t, 0.0072, MustLookup(Assay, "%").ToBase(0.72), 1e-15)
	assert.InDelta(t, 7200, MustLookup(Assay, "ppm").FromBase(0.0072), 1e-9)
	assert.InDelta(t, 453.59237, MustLookup(Mass, "g").FromBase(MustLookup(Mass, "lb").ToBase(1)), 1e-9)
	assert.InDelta(t, 2500, MustLookup(Mass, "kg").FromBase(MustLookup(Mass, "t").ToBase(2.5)), 1e-9)
	assert.InDelta(t, 0.12, MustLookup(Work, "MSWU").FromBase(MustLookup(Work, "kSWU").ToBase(120)), 1e-12)
}

func TestBase(t *testing.T) {
	assert.Equal(t, "kg", Base(Mass).Name)
	assert.Equal(t, "fraction", Base(Assay).Name)
	assert.Equal(t, "SWU", Base(Work).Name)
	for _, k := range []Kind{Mass, Assay, Work} {
		assert.Equal(t, 1.0, Base(k).Scale)
	}
}

func TestNames_Sorted(t *testing.T) {
	assert.Equal(t, []string{"%", "fraction", "ppm"}, Names(Assay))
	assert.Equal(t, []string{"MSWU", "SWU", "kSWU"}, Names(Work))
}
