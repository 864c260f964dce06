// internal/config/config.go
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL  string `mapstructure:"base_url"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Stripe struct {
		SecretKey  string `mapstructure:"secret_key"`
		SuccessURL string `mapstructure:"success_url"`
		CancelURL  string `mapstructure:"cancel_url"`
	} `mapstructure:"stripe"`
	Printify struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"printify"`
	ImageKit struct {
		PrivateKey string `mapstructure:"private_key"`
	} `mapstructure:"imagekit"`
	Frontend struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"frontend"`
}

func Load() Config {
	viper.SetDefault("printify.base_url", "https://api.printify.com/v1")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	_ = viper.ReadInConfig()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// explicit bindings
	_ = viper.BindEnv("base_url", "BASE_URL")
	_ = viper.BindEnv("database.url", "DATABASE_URL")
	_ = viper.BindEnv("stripe.secret_key", "STRIPE_SECRET_KEY")
	_ = viper.BindEnv("stripe.success_url", "STRIPE_SUCCESS_URL")
	_ = viper.BindEnv("stripe.cancel_url", "STRIPE_CANCEL_URL")
	_ = viper.BindEnv("printify.base_url", "PRINTIFY_BASE_URL")
	_ = viper.BindEnv("imagekit.private_key", "IMAGEKIT_PRIVATE_KEY")
	_ = viper.BindEnv("frontend.url", "FRONTEND_URL")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		panic("config error: " + err.Error())
	}
	if c.BaseURL == "" {
		panic("config error: base_url/BASE_URL required")
	}
	return c
}
