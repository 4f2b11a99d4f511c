package config

import (
	"testing"

	"fractional/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		var cfg core.Config
		defaults(&cfg)

		assert.Equal(t, 9000, cfg.App.Port)
		assert.True(t, cfg.App.MinFunding.Equal(decimal.New(1, 0)))
		assert.Equal(t, int64(10), cfg.PriceOracle.CacheSeconds)
		assert.Equal(t, int64(60), cfg.PriceOracle.PollInterval)
	})

	t.Run("configured values kept", func(t *testing.T) {
		cfg := core.Config{}
		cfg.App.Port = 8080
		cfg.App.MinFunding = decimal.NewFromInt(5)
		defaults(&cfg)

		assert.Equal(t, 8080, cfg.App.Port)
		assert.True(t, cfg.App.MinFunding.Equal(decimal.NewFromInt(5)))
	})
}
