package config

import (
	"time"

	"github.com/spf13/viper"
)

// ResilienceSettings are the retry and circuit-breaker knobs for remote
// detail lookups.
type ResilienceSettings struct {
	MaxAttempts        int
	RetryWait          time.Duration
	ExponentialBackoff bool
	FailureRate        float64
	WindowSize         uint32
	Cooldown           time.Duration
}

// ResilienceProvider yields the current resilience settings. Like
// Features, values are read from viper at call time.
type ResilienceProvider interface {
	Settings() ResilienceSettings
}

type viperResilience struct{}

// NewResilienceProvider returns a ResilienceProvider backed by viper.
func NewResilienceProvider() ResilienceProvider {
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("RETRY_WAIT_MS", 100)
	viper.SetDefault("RETRY_EXPONENTIAL", false)
	viper.SetDefault("CB_FAILURE_RATE", 0.5)
	viper.SetDefault("CB_WINDOW_SIZE", 10)
	viper.SetDefault("CB_COOLDOWN_MS", 10000)
	return viperResilience{}
}

func (viperResilience) Settings() ResilienceSettings {
	return ResilienceSettings{
		MaxAttempts:        viper.GetInt("RETRY_MAX_ATTEMPTS"),
		RetryWait:          time.Duration(viper.GetInt("RETRY_WAIT_MS")) * time.Millisecond,
		ExponentialBackoff: viper.GetBool("RETRY_EXPONENTIAL"),
		FailureRate:        viper.GetFloat64("CB_FAILURE_RATE"),
		WindowSize:         viper.GetUint32("CB_WINDOW_SIZE"),
		Cooldown:           time.Duration(viper.GetInt("CB_COOLDOWN_MS")) * time.Millisecond,
	}
}
