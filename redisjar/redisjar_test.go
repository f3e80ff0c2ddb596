package redisjar

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/cookievault/cookie"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "6379", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "cookievault:", cfg.KeyPrefix)

	opts := cfg.options()
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Nil(t, opts.TLSConfig)
}

func TestConfigExplicitValuesKept(t *testing.T) {
	cfg := Config{
		Host:      "redis.internal",
		Port:      "6380",
		TLS:       true,
		KeyPrefix: "sessions:",
	}.withDefaults()

	assert.Equal(t, "sessions:", cfg.KeyPrefix)

	opts := cfg.options()
	assert.Equal(t, "redis.internal:6380", opts.Addr)
	require.NotNil(t, opts.TLSConfig)
}

func TestRecordRoundTrip(t *testing.T) {
	c := cookie.Cookie{
		Name:     "session",
		Value:    "c2VhbGVkIHZhbHVl",
		Path:     "/app",
		Domain:   "example.com",
		Expires:  time.Date(2027, 1, 2, 3, 4, 5, 0, time.UTC),
		MaxAge:   3600,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	raw, err := json.Marshal(newRecord(c))
	require.NoError(t, err)

	var rec record
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, c, rec.cookie())
}

func TestRecordOmitsEmptyAttributes(t *testing.T) {
	raw, err := json.Marshal(newRecord(cookie.New("n", "v")))
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"n","value":"v"}`, string(raw))
}
