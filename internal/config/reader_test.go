package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("POSTGRES_USERNAME", "postgres")
	t.Setenv("POSTGRES_PASSWORD", "postgres")
	t.Setenv("POSTGRES_DATABASE", "todo")
}

func TestEnvReader_Read(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.Equal(t, "9090", cfg.HTTP.Port)
}

func TestEnvReader_Read_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, 10*time.Second, cfg.Postgres.ConnectTimeout)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestEnvReader_Read_MissingRequired(t *testing.T) {
	t.Setenv("ENV", EnvLocal)
	t.Setenv("POSTGRES_HOST", "localhost")
	// POSTGRES_USERNAME, POSTGRES_PASSWORD
	// and POSTGRES_DATABASE are left unset.

	_, err := NewEnvReader().Read()
	require.Error(t, err)
}

func TestGlobalConfig(t *testing.T) {
	cfg := &Config{Env: EnvDev}
	SetGlobal(cfg)
	assert.Same(t, cfg, Global())
}
