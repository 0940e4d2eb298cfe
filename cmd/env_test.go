package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portscout/portscout/internal/config"
)

func baseConfig() *config.Config {
	c := &config.Config{}
	c.Overpass.Endpoint = "https://overpass-api.de/api/interpreter"
	c.Overpass.TimeoutSecs = 25
	c.Overpass.RatePerSecond = 1.0
	c.Nominatim.BaseURL = "https://nominatim.openstreetmap.org/search"
	c.Batch.Concurrency = 5
	c.Server.Port = 8080
	return c
}

func TestInitEnvValidatesMode(t *testing.T) {
	cfg = baseConfig()
	cfg.Batch.Concurrency = 0

	// Concurrency bounds only apply to the batch and serve modes.
	env, err := initEnv("score")
	require.NoError(t, err)
	assert.NotNil(t, env.Resolver)
	assert.NotNil(t, env.Engine)

	_, err = initEnv("batch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch.concurrency")

	_, err = initEnv("serve")
	require.Error(t, err)
}

func TestInitEnvWiring(t *testing.T) {
	cfg = baseConfig()

	env, err := initEnv("batch")
	require.NoError(t, err)
	assert.NotNil(t, env.newRunner(3))
}
