package core

import (
	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config fractional config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Admins      []string    `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	return govalidator.IsIn(userID, c.Admins...)
}

// App app config
type App struct {
	Port int `json:"port"`
	// minimum native funding accepted by create_asset_and_protocol
	MinFunding decimal.Decimal `json:"min_funding"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	// fixed rate used when no endpoint is configured
	FixedRate    decimal.Decimal `json:"fixed_rate"`
	CacheSeconds int64           `json:"cache_seconds"`
	PollInterval int64           `json:"poll_interval"`
}
