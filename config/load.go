package config

import (
	"burrow/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("BURROW")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)
	return nil
}

func defaults(config *core.Config) {
	if config.Ledger.Batch <= 0 {
		config.Ledger.Batch = 500
	}
	if config.API.Port <= 0 {
		config.API.Port = 9000
	}
}
