package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, cfg.Embedding.Dimension, cfg.Vector.Dimension)
}

func TestValidateRejectsDimensionMismatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Embedding.Dimension = 768

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match embedding dimension")
}

func TestValidateRejectsUnknownDrivers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Driver = "mongodb"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Cache.Driver = "memcached"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresPostgresDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.Driver = "postgres"
	assert.Error(t, cfg.Validate())

	cfg.Database.Postgres.DSN = "postgres://localhost/cricket?sslmode=disable"
	assert.NoError(t, cfg.Validate())
}
