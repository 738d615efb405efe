package cmd

import (
	"fmt"

	"github.com/spf13/viper"
)

// DBConfig is one entry of the `databases:` list in the config file. The
// entry marked active supplies the connection when no top-level
// database.dsn is set, and its name labels the report filename.
type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the single entry with active: true.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig
	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var active *DBConfig
	for i := range configs {
		if !configs[i].Active {
			continue
		}
		if active != nil {
			return nil, fmt.Errorf("multiple active databases found (only one can be active)")
		}
		active = &configs[i]
	}
	if active == nil {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	return active, nil
}

// resolveDSN picks the connection string and driver hint. The top-level
// database.dsn wins; otherwise the active databases entry supplies both.
func resolveDSN() (connStr, driver string, err error) {
	connStr = viper.GetString("database.dsn")
	driver = viper.GetString("database.driver")
	if connStr != "" {
		return connStr, driver, nil
	}

	active, err := GetActiveDBConfig()
	if err != nil {
		return "", "", fmt.Errorf("database.dsn is required (via flag, config, DB_DSN or an active databases entry): %w", err)
	}
	if active.DSN == "" {
		return "", "", fmt.Errorf("active database %q has no dsn", active.Name)
	}
	if driver == "" {
		driver = active.Driver
	}
	return active.DSN, driver, nil
}
