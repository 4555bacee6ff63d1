package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "model.json", cfg.Model.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_PortFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("PORT", "8443")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Server.Port)
}

func TestLoad_ModelPathFromEnv(t *testing.T) {
	viper.Reset()
	t.Setenv("MODEL_PATH", "/opt/models/ngfw.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/models/ngfw.json", cfg.Model.Path)
}
