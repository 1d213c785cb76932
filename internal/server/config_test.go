package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PREVIEW_PORT", "")
	t.Setenv("OUTPUT_BASE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "public", cfg.OutputRoot)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PREVIEW_PORT", "9000")
	t.Setenv("OUTPUT_BASE", "/srv/www")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/srv/www", cfg.OutputRoot)
}

func TestLoadConfigInvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "0", "70000"} {
		t.Setenv("PREVIEW_PORT", port)
		_, err := LoadConfig()
		require.Error(t, err)
	}
}
