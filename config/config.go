package config

import (
	"fractional/core"

	configUtil "github.com/fox-one/pkg/config"
	"github.com/shopspring/decimal"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("FRACTIONAL")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)
	return nil
}

func defaults(config *core.Config) {
	if config.App.Port == 0 {
		config.App.Port = 9000
	}

	if config.App.MinFunding.LessThanOrEqual(decimal.Zero) {
		config.App.MinFunding = decimal.New(1, 0)
	}

	if config.PriceOracle.CacheSeconds == 0 {
		config.PriceOracle.CacheSeconds = 10
	}

	if config.PriceOracle.PollInterval == 0 {
		config.PriceOracle.PollInterval = 60
	}
}
