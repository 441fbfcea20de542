package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "helmarr", "config.toml")

	err := WriteDefault(path)
	require.NoError(t, err, "WriteDefault failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read written file")

	assert.Contains(t, string(content), "[server]")
	assert.Contains(t, string(content), "[database]")
	assert.Contains(t, string(content), "[daemon]")
}

func TestWriteDefault_CreatesDir(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "deep", "config.toml")

	err := WriteDefault(path)
	require.NoError(t, err, "WriteDefault failed")

	_, err = os.Stat(path)
	assert.False(t, os.IsNotExist(err), "file was not created")
}

func TestWriteDefault_Loadable(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3003, cfg.Server.Port)
}

func TestConfig_Write(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 9000},
		Database: DatabaseConfig{Path: "/data/helmarr.db"},
	}

	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	err := cfg.Write(path)
	require.NoError(t, err, "Write failed")

	content, _ := os.ReadFile(path)
	assert.Contains(t, string(content), "127.0.0.1")
	assert.Contains(t, string(content), "9000")
	assert.Contains(t, string(content), "/data/helmarr.db")
}
