package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennyhartnett/swucalc/pkg/scenario"
)

func TestApplyEnv(t *testing.T) {
	t.Run("overrides set variables", func(t *testing.T) {
		t.Setenv(EnvWorkers, "3")
		t.Setenv(EnvFormat, "json")
		t.Setenv(EnvMassUnit, "t")
		t.Setenv(EnvAssayUnit, "ppm")
		t.Setenv(EnvWorkUnit, "kSWU")

		cfg := DefaultConfig()
		require.NoError(t, cfg.ApplyEnv())
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, scenario.Units{Mass: "t", Assay: "ppm", Work: "kSWU"}, cfg.ScenarioUnits())
		assert.NoError(t, cfg.Validate())
	})

	t.Run("empty variables keep defaults", func(t *testing.T) {
		t.Setenv(EnvWorkers, "")
		t.Setenv(EnvFormat, " ")

		cfg := DefaultConfig()
		require.NoError(t, cfg.ApplyEnv())
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("bad worker count", func(t *testing.T) {
		t.Setenv(EnvWorkers, "many")
		cfg := DefaultConfig()
		assert.ErrorContains(t, cfg.ApplyEnv(), EnvWorkers)
	})
}

func TestApplyLookup(t *testing.T) {
	vars := map[string]string{EnvAssayUnit: "fraction", EnvWorkers: "2"}
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyLookup(func(k string) string { return vars[k] }))
	assert.Equal(t, "fraction", cfg.AssayUnit)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "kg", cfg.MassUnit)
}

func TestConfig_Units(t *testing.T) {
	mass, assay, work, err := DefaultConfig().Units()
	require.NoError(t, err)
	assert.Equal(t, "kg", mass.Name)
	assert.Equal(t, "%", assay.Name)
	assert.Equal(t, "SWU", work.Name)
}
