package domain

import "time"

// Default exchange rates used when no settings document exists yet
const (
	DefaultEURRate int64 = 17000
	DefaultUSDRate int64 = 15500
)

// Settings holds the global exchange rate configuration
type Settings struct {
	EURRate     int64     `bson:"eur_rate" json:"eur_rate"`
	USDRate     int64     `bson:"usd_rate" json:"usd_rate"`
	LastUpdated time.Time `bson:"last_updated,omitempty" json:"last_updated"`
}

// DefaultSettings returns the fallback rates
func DefaultSettings() Settings {
	return Settings{
		EURRate: DefaultEURRate,
		USDRate: DefaultUSDRate,
	}
}
