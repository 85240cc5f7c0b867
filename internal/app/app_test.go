package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyblackwell/imagi-oasis/internal/config"
)

func TestNewApp(t *testing.T) {
	dir := t.TempDir()

	cfg := &config.Config{
		AppPort:              8000,
		DatabasePath:         filepath.Join(dir, "test.db"),
		ProjectsRoot:         dir,
		DefaultModel:         "claude-3-7-sonnet",
		VendorTimeoutSeconds: 5,
		LogLevel:             "DEBUG",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)

	defer func() { require.NoError(t, app.DB.Close()) }()

	assert.NotNil(t, app.DB)
	assert.NotNil(t, app.Server)
	assert.Equal(t, ":8000", app.Server.Addr)
}
