package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActiveDBConfig(t *testing.T) {
	t.Run("SingleActiveEntry", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("databases", []map[string]interface{}{
			{"name": "legacy", "driver": "mysql", "dsn": "root:pw@/legacy", "active": false},
			{"name": "shop", "driver": "postgres", "dsn": "postgres://localhost/shop", "active": true},
		})

		cfg, err := GetActiveDBConfig()
		require.NoError(t, err)
		assert.Equal(t, "shop", cfg.Name)
		assert.Equal(t, "postgres", cfg.Driver)
		assert.Equal(t, "postgres://localhost/shop", cfg.DSN)
	})

	t.Run("NoActiveEntry", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("databases", []map[string]interface{}{
			{"name": "legacy", "dsn": "root:pw@/legacy", "active": false},
		})

		_, err := GetActiveDBConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no active database")
	})

	t.Run("MultipleActiveEntries", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("databases", []map[string]interface{}{
			{"name": "a", "dsn": "x", "active": true},
			{"name": "b", "dsn": "y", "active": true},
		})

		_, err := GetActiveDBConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple active databases")
	})
}

func TestResolveDSN(t *testing.T) {
	t.Run("TopLevelDSNWins", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("database.dsn", "root:pw@/primary")
		viper.Set("databases", []map[string]interface{}{
			{"name": "shop", "driver": "postgres", "dsn": "postgres://localhost/shop", "active": true},
		})

		connStr, driver, err := resolveDSN()
		require.NoError(t, err)
		assert.Equal(t, "root:pw@/primary", connStr)
		assert.Empty(t, driver)
	})

	t.Run("FallsBackToActiveEntry", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("databases", []map[string]interface{}{
			{"name": "shop", "driver": "postgres", "dsn": "postgres://localhost/shop", "active": true},
		})

		connStr, driver, err := resolveDSN()
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/shop", connStr)
		assert.Equal(t, "postgres", driver)
	})

	t.Run("ExplicitDriverBeatsEntryDriver", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("database.driver", "mysql")
		viper.Set("databases", []map[string]interface{}{
			{"name": "shop", "driver": "postgres", "dsn": "postgres://localhost/shop", "active": true},
		})

		_, driver, err := resolveDSN()
		require.NoError(t, err)
		assert.Equal(t, "mysql", driver)
	})

	t.Run("ActiveEntryWithoutDSN", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.Set("databases", []map[string]interface{}{
			{"name": "shop", "active": true},
		})

		_, _, err := resolveDSN()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no dsn")
	})

	t.Run("NothingConfigured", func(t *testing.T) {
		viper.Reset()
		t.Cleanup(viper.Reset)

		_, _, err := resolveDSN()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.dsn is required")
	})
}
