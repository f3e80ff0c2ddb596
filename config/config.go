package config

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/fatih/structs"
	"github.com/jeremywohl/flatten"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/quantumauth-io/cookievault/private"
	"github.com/quantumauth-io/cookievault/redisjar"
)

// Config is the library's file/env configuration surface.
type Config struct {
	// Key is the 32-byte master key in standard base64 with padding. The
	// caller owns generating it from a cryptographically secure source and
	// distributing it; this library never creates or stores long-term keys.
	Key string

	// Suite names the AEAD construction; empty selects AES-256-GCM.
	Suite string

	Redis redisjar.Config
}

// DecodeKey decodes and validates Key into raw key bytes.
func (c *Config) DecodeKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.Key)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to decode master key")
	}
	if len(key) != private.KeyLen {
		return nil, errors.Wrapf(private.ErrKeyLength, "decoded %d bytes", len(key))
	}
	return key, nil
}

// Load reads a Config from config.yaml in the given paths, with env
// variable overrides (KEY, SUITE, REDIS_HOST, ...).
func Load(configFilePaths ...string) (*Config, error) {
	return ParseConfig[Config](configFilePaths)
}

// ParseConfig loads config from disk (no embedded defaults). It just
// forwards to ParseConfigWithEmbedded with nil.
func ParseConfig[T interface{}](configFilePaths []string) (*T, error) {
	return ParseConfigWithEmbedded[T](configFilePaths, nil)
}

// ParseConfigWithEmbedded tries to load config from disk, and if the file
// is NOT found, falls back to embeddedYAML (if provided).
func ParseConfigWithEmbedded[T interface{}](configFilePaths []string, embeddedYAML []byte) (*T, error) {
	for _, v := range configFilePaths {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if err := bindAllConfigKeys[T](); err != nil {
		return nil, err
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var nfErr viper.ConfigFileNotFoundError
		if errors.As(err, &nfErr) && len(embeddedYAML) > 0 {
			if err2 := viper.ReadConfig(bytes.NewReader(embeddedYAML)); err2 != nil {
				return nil, errors.Wrap(err2, "failed to load embedded default config")
			}
		} else {
			return nil, err
		}
	}

	var c *T
	if err := viper.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "Unable to decode into struct")
	}

	return c, nil
}

// Workaround for major viper issue with env variables, documented here
// https://github.com/spf13/viper/issues/761
func bindAllConfigKeys[T interface{}]() error {
	var cd T
	// Transform config struct to map
	confMap := structs.Map(cd)

	// Flatten nested conf map
	flat, err := flatten.Flatten(confMap, "", flatten.DotStyle)
	if err != nil {
		return errors.Wrap(err, "Unable to flatten config")
	}

	// Bind each conf field to environment vars
	for key := range flat {
		if err := viper.BindEnv(key); err != nil {
			return errors.Wrapf(err, "Unable to bind env var: %s", key)
		}
	}
	return nil
}
