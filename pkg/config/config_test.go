package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, "Clínica Dental", cfg.App.ClinicName)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Second, cfg.Ledger.TxTimeout)
	assert.Equal(t, 2, cfg.Ledger.MaxRetries)
	assert.False(t, cfg.JWT.Enabled())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_PORT", "6543")
	v.Set("STORE_DRIVER", "memory")
	v.Set("LEDGER_TX_TIMEOUT", "2s")
	v.Set("LEDGER_RETRY_BACKOFF", "120")
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, StoreDriverMemory, cfg.App.StoreDriver)
	assert.Equal(t, 2*time.Second, cfg.Ledger.TxTimeout)
	assert.Equal(t, 120*time.Millisecond, cfg.Ledger.RetryBackoff)
	assert.True(t, cfg.JWT.Enabled())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "sqlite")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "clinica", Password: "p@ss:word", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://clinica:p%40ss%3Aword@db:5432/inv?sslmode=disable", c.DSN())
}
