package redisjar

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/quantumauth-io/cookievault/cookie"
	"github.com/quantumauth-io/cookievault/retry"
)

const (
	defaultKeyPrefix = "cookievault:"

	defaultMaxRetry = 5
)

type Config struct {
	Host         string        // "localhost"
	Port         string        // "6379"
	Username     string        // optional
	Password     string        // optional
	DB           int           // default 0
	TLS          bool          // enable TLS
	DialTimeout  time.Duration // default 5s
	ReadTimeout  time.Duration // default 3s
	WriteTimeout time.Duration // default 3s

	// KeyPrefix namespaces cookie records; default "cookievault:".
	KeyPrefix string
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = "localhost"
		c.Port = "6379"
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3 * time.Second
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = defaultKeyPrefix
	}
	return c
}

func (c Config) options() *redis.Options {
	opts := &redis.Options{
		Addr:         net.JoinHostPort(c.Host, c.Port),
		Username:     c.Username,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
	if c.TLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	return opts
}

// Jar is a cookie.Jar backed by Redis. Cookies are stored as JSON records
// under KeyPrefix + name; a positive MaxAge becomes the record's TTL, so
// expiry is delegated to the store. Remove matches by name only.
type Jar struct {
	rdb    *redis.Client
	prefix string
}

// record is the stored form of a cookie. Value holds whatever the caller
// wrote; for a private jar that is the sealed base64 text, never plaintext.
type record struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitzero"`
	MaxAge   int       `json:"max_age,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"http_only,omitempty"`
	SameSite int       `json:"same_site,omitempty"`
}

func newRecord(c cookie.Cookie) record {
	return record{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		Expires:  c.Expires,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
		SameSite: int(c.SameSite),
	}
}

func (r record) cookie() cookie.Cookie {
	return cookie.Cookie{
		Name:     r.Name,
		Value:    r.Value,
		Path:     r.Path,
		Domain:   r.Domain,
		Expires:  r.Expires,
		MaxAge:   r.MaxAge,
		Secure:   r.Secure,
		HttpOnly: r.HttpOnly,
		SameSite: http.SameSite(r.SameSite),
	}
}

// New creates a Jar, connecting to Redis and pinging it with bounded
// retries before returning.
func New(ctx context.Context, cfg Config) (*Jar, error) {
	cfg = cfg.withDefaults()

	rdb := redis.NewClient(cfg.options())

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxNumRetries = defaultMaxRetry
	retryCfg.MaxDelayBeforeRetrying = 2 * time.Second

	err := retry.Do(ctx, retryCfg,
		func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
		nil,
		"Redis ping",
	)
	if err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, "Failed to reach redis")
	}

	return &Jar{rdb: rdb, prefix: cfg.KeyPrefix}, nil
}

func (j *Jar) Close() error {
	return j.rdb.Close()
}

func (j *Jar) Get(ctx context.Context, name string) (*cookie.Cookie, error) {
	raw, err := j.rdb.Get(ctx, j.prefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cookie.ErrNoCookie
		}
		return nil, errors.Wrap(err, "Failed to read cookie record")
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrap(err, "Failed to decode cookie record")
	}

	c := rec.cookie()
	return &c, nil
}

func (j *Jar) Add(ctx context.Context, c cookie.Cookie) error {
	raw, err := json.Marshal(newRecord(c))
	if err != nil {
		return errors.Wrap(err, "Failed to encode cookie record")
	}

	var ttl time.Duration
	if c.MaxAge > 0 {
		ttl = time.Duration(c.MaxAge) * time.Second
	}

	if err := j.rdb.Set(ctx, j.prefix+c.Name, raw, ttl).Err(); err != nil {
		return errors.Wrap(err, "Failed to store cookie record")
	}
	return nil
}

func (j *Jar) Remove(ctx context.Context, c cookie.Cookie) error {
	if err := j.rdb.Del(ctx, j.prefix+c.Name).Err(); err != nil {
		return errors.Wrap(err, "Failed to delete cookie record")
	}
	return nil
}
