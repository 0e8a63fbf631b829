package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxos/internal/loader"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func emptyPaths(t *testing.T) Paths {
	return Paths{WorkDir: t.TempDir(), ConfigDir: t.TempDir()}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(NewViper(), emptyPaths(t))
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.ScreenLines)
	assert.Equal(t, 2*time.Second, cfg.InstallDelay)
	assert.Equal(t, loader.DefaultAllowedExtensions, cfg.AllowedExtensions)
	assert.Equal(t, uint64(loader.DefaultMaxSteps), cfg.MaxSteps)
	assert.Equal(t, "localhost:2323", cfg.SSHAddr)
	assert.Empty(t, cfg.DriveDir)
	assert.False(t, cfg.TestMode)
}

func TestLoad_Precedence(t *testing.T) {
	paths := emptyPaths(t)
	writeFile(t, paths.ConfigDir, ".env", "LUXOS_SCREEN_LINES=10\nLUXOS_DRIVE_DIR=/config-drive\nLUXOS_LOG_LEVEL=error\n")
	writeFile(t, paths.WorkDir, ".env", "LUXOS_SCREEN_LINES=12\nOTHER_KEY=ignored\n")
	writeFile(t, paths.WorkDir, "luxos.yaml", "install:\n  delay: 500ms\nlog:\n  level: info\n")
	t.Setenv("LUXOS_INSTALL_DELAY", "3s")

	cfg, err := Load(NewViper(), paths)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.ScreenLines, "local .env beats config dir .env")
	assert.Equal(t, "/config-drive", cfg.DriveDir)
	assert.Equal(t, "info", cfg.LogLevel, "config file beats .env")
	assert.Equal(t, 3*time.Second, cfg.InstallDelay, "environment beats config file")
}

func TestLoad_ConfigDirYAML(t *testing.T) {
	paths := emptyPaths(t)
	writeFile(t, paths.ConfigDir, "luxos.yaml", "module:\n  max_steps: 500\n  allowed_extensions: [.star, .json]\n")

	cfg, err := Load(NewViper(), paths)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), cfg.MaxSteps)
	assert.Equal(t, []string{".star", ".json"}, cfg.AllowedExtensions)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.yaml", "screen:\n  lines: 40\nssh:\n  addr: 0.0.0.0:2222\n")

	paths := emptyPaths(t)
	paths.ConfigFile = filepath.Join(dir, "custom.yaml")
	cfg, err := Load(NewViper(), paths)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.ScreenLines)
	assert.Equal(t, "0.0.0.0:2222", cfg.SSHAddr)

	paths.ConfigFile = filepath.Join(dir, "missing.yaml")
	_, err = Load(NewViper(), paths)
	assert.Error(t, err)
}

func TestLoad_EnvironmentList(t *testing.T) {
	t.Setenv("LUXOS_MODULE_ALLOWED_EXTENSIONS", ".star,.yaml")
	t.Setenv("LUXOS_TEST_MODE", "true")

	cfg, err := Load(NewViper(), emptyPaths(t))
	require.NoError(t, err)
	assert.Equal(t, []string{".star", ".yaml"}, cfg.AllowedExtensions)
	assert.True(t, cfg.TestMode)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero lines", "screen:\n  lines: 0\n"},
		{"negative delay", "install:\n  delay: -1s\n"},
		{"extension without dot", "module:\n  allowed_extensions: [star]\n"},
		{"malformed yaml", "screen: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := emptyPaths(t)
			writeFile(t, paths.WorkDir, "luxos.yaml", tt.yaml)
			_, err := Load(NewViper(), paths)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	paths := emptyPaths(t)
	writeFile(t, paths.WorkDir, ".env", "LUXOS_SCREEN_LINES='unterminated\n")

	_, err := Load(NewViper(), paths)
	assert.Error(t, err)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "LUXOS_MODULE_MAX_STEPS", EnvName(KeyMaxSteps))
	assert.Equal(t, "LUXOS_TEST_MODE", EnvName(KeyTestMode))
}
