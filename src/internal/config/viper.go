package config

import (
	"strings"

	"github.com/spf13/viper"
)

// NewViper reads config.json from the working directory and overlays
// environment variables (COINVEST_MYSQL_HOST -> mysql.host).
func NewViper() *viper.Viper {
	config := viper.New()

	config.SetConfigName("config")
	config.SetConfigType("json")
	config.AddConfigPath("./")
	config.AddConfigPath("./../")

	config.SetEnvPrefix("COINVEST")
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	// config file is optional, env-only deployments are fine
	_ = config.ReadInConfig()

	return config
}
