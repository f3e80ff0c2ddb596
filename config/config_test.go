package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/cookievault/private"
)

func writeConfigFile(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600)
	require.NoError(t, err)
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfigFile(t, `
key: "AAECAwQFBgcICQoLDA0ODxAREhMUFRYXGBkaGxwdHh8="
suite: "chacha20-poly1305"
redis:
  host: "redis.internal"
  port: "6380"
  keyprefix: "sessions:"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "chacha20-poly1305", cfg.Suite)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, "sessions:", cfg.Redis.KeyPrefix)

	key, err := cfg.DecodeKey()
	require.NoError(t, err)
	assert.Len(t, key, private.KeyLen)
	assert.Equal(t, byte(0), key[0])
	assert.Equal(t, byte(31), key[31])
}

func TestDecodeKeyRejectsBadEncoding(t *testing.T) {
	cfg := &Config{Key: "not base64!!!"}
	_, err := cfg.DecodeKey()
	assert.Error(t, err)
}

func TestDecodeKeyRejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		cfg := &Config{Key: base64.StdEncoding.EncodeToString(make([]byte, n))}
		_, err := cfg.DecodeKey()
		assert.ErrorIs(t, err, private.ErrKeyLength, "key length %d", n)
	}
}
