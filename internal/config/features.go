package config

import "github.com/spf13/viper"

// Features exposes runtime feature flags. Values are read from viper on
// every call rather than captured at Load, so a flag flipped through the
// environment or config file takes effect between requests in the same
// process.
type Features interface {
	FetchDetailsEnabled() bool
}

type viperFeatures struct{}

// NewFeatures returns a Features provider backed by viper.
func NewFeatures() Features {
	viper.SetDefault("FETCH_DETAILS_ENABLED", true)
	return viperFeatures{}
}

// FetchDetailsEnabled reports whether read paths should hydrate
// cross-service references with remote detail lookups. Defaults to true
// when no configuration is present.
func (viperFeatures) FetchDetailsEnabled() bool {
	return viper.GetBool("FETCH_DETAILS_ENABLED")
}
