package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	content := `{
		"endpoint_addr": ":8081",
		"database_dsn": "postgres://u:p@host:5432/db",
		"private_key_file": "priv.pem",
		"private_key_passphrase": "secret",
		"public_key_file": "pub.pem",
		"lock_duration": "10m",
		"token_validity": "336h"
	}`

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", path}

	config := &Config{}
	require.NotPanics(t, func() { parseJson(config) })

	assert.Equal(t, ":8081", config.EndpointAddr)
	assert.Equal(t, "postgres://u:p@host:5432/db", config.DatabaseDSN)
	assert.Equal(t, "priv.pem", config.PrivateKeyFile)
	assert.Equal(t, "secret", config.PrivateKeyPassphrase)
	assert.Equal(t, "pub.pem", config.PublicKeyFile)
	assert.Equal(t, 10*time.Minute, config.LockDuration)
	assert.Equal(t, 336*time.Hour, config.TokenValidity)
}

func TestParseJson_NoFlagLeavesConfigUntouched(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd"}

	config := &Config{EndpointAddr: ":3000"}
	require.NotPanics(t, func() { parseJson(config) })
	assert.Equal(t, ":3000", config.EndpointAddr)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", filepath.Join(t.TempDir(), "nope.json")}

	config := &Config{}
	require.Panics(t, func() { parseJson(config) })
}
