package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultEngineConfig()))
	require.NoError(t, ValidateConfig(Config))
}

func TestValidateConfigCatchesBadWeights(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.SeasonWeight = 0.5
	assert.Error(t, ValidateConfig(cfg), "factor weights no longer sum to 1.0")

	cfg = DefaultEngineConfig()
	cfg.SeasonRecordWeight = 0.30
	assert.Error(t, ValidateConfig(cfg), "season sub-weights no longer sum to the season weight")

	cfg = DefaultEngineConfig()
	cfg.TrendWeight = 0.05
	assert.Error(t, ValidateConfig(cfg), "recent form sub-weights no longer sum to the recent weight")
}

func TestValidateConfigBounds(t *testing.T) {
	cases := []func(*EngineConfig){
		func(c *EngineConfig) { c.HomeAdvantage = 1.0 },
		func(c *EngineConfig) { c.FormInfluence = 1.5 },
		func(c *EngineConfig) { c.DixonColesRho = 0.5 },
		func(c *EngineConfig) { c.MaxGoals = 3 },
		func(c *EngineConfig) { c.Simulations = 100 },
		func(c *EngineConfig) { c.RecentWindow = 1 },
		func(c *EngineConfig) { c.LambdaFloor = 0 },
		func(c *EngineConfig) { c.LambdaFloor = 5.0 },
		func(c *EngineConfig) { c.AnalyticWeight = -0.1 },
		func(c *EngineConfig) { c.ConfidenceFloor = 99.0 },
	}
	for i, mutate := range cases {
		cfg := DefaultEngineConfig()
		mutate(cfg)
		assert.Error(t, ValidateConfig(cfg), "case %d should be rejected", i)
	}
}

func TestUpdateConfigRejectsInvalid(t *testing.T) {
	original := Config
	defer func() { Config = original }()

	bad := DefaultEngineConfig()
	bad.HomeAdvantage = 0.9
	assert.Error(t, UpdateConfig(bad))
	assert.Same(t, original, Config, "a rejected update must not replace the global config")

	good := DefaultEngineConfig()
	good.DixonColesRho = -0.02
	require.NoError(t, UpdateConfig(good))
	assert.Equal(t, -0.02, GetDixonColesRho())
}
