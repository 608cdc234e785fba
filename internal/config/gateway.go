package config

import "github.com/spf13/viper"

// GatewayConfig holds the upstream hosts the gateway proxies to.
// Each entry is a plain host URL; the request path is forwarded as-is.
type GatewayConfig struct {
	UserHost      string
	ProductHost   string
	OrderHost     string
	PaymentHost   string
	FavouriteHost string
	ShippingHost  string
}

// LoadGateway reads the gateway upstream table from the environment.
// Load must have been called first so viper is initialized.
func LoadGateway() GatewayConfig {
	viper.SetDefault("GATEWAY_USER_HOST", "http://localhost:8700")
	viper.SetDefault("GATEWAY_PRODUCT_HOST", "http://localhost:8500")
	viper.SetDefault("GATEWAY_ORDER_HOST", "http://localhost:8300")
	viper.SetDefault("GATEWAY_PAYMENT_HOST", "http://localhost:8400")
	viper.SetDefault("GATEWAY_FAVOURITE_HOST", "http://localhost:8800")
	viper.SetDefault("GATEWAY_SHIPPING_HOST", "http://localhost:8600")

	return GatewayConfig{
		UserHost:      viper.GetString("GATEWAY_USER_HOST"),
		ProductHost:   viper.GetString("GATEWAY_PRODUCT_HOST"),
		OrderHost:     viper.GetString("GATEWAY_ORDER_HOST"),
		PaymentHost:   viper.GetString("GATEWAY_PAYMENT_HOST"),
		FavouriteHost: viper.GetString("GATEWAY_FAVOURITE_HOST"),
		ShippingHost:  viper.GetString("GATEWAY_SHIPPING_HOST"),
	}
}
