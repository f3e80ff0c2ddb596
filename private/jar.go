package private

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/quantumauth-io/cookievault/cookie"
	"github.com/quantumauth-io/cookievault/log"
)

// Unseal failures. Get never returns these: it collapses every failure
// into a nil cookie so the party supplying a stored value cannot learn
// which step rejected it. They surface only from Unseal and on the log
// side channel.
var (
	ErrBadEncoding = errors.New("private: value is not valid base64")
	ErrTooShort    = errors.New("private: decoded value not longer than nonce")
	ErrSealBroken  = errors.New("private: value failed authentication")
	ErrNotText     = errors.New("private: decrypted value is not valid UTF-8")
)

// Jar provides authenticated encryption for cookies stored in a parent
// jar. Values added through it are sealed under a fresh random nonce and
// stored as base64(nonce || ciphertext || tag); values read through it
// are verified and decrypted. Holders of the stored text can neither read
// nor forge cookie contents without the key.
//
// A Jar borrows its parent and is cheap to construct per use; it must not
// outlive the parent. It takes no lock of its own: callers that share the
// parent jar across goroutines must serialize Get/Add/Remove. The key is
// read only at construction and may be shared.
type Jar struct {
	parent cookie.Jar
	aead   cipher.AEAD
}

type options struct {
	suite Suite
}

type Option func(*options)

// WithSuite overrides the default AES-256-GCM construction. Sealing and
// unsealing must agree on the suite; it is never recorded in the stored
// text.
func WithSuite(s Suite) Option {
	return func(o *options) { o.suite = s }
}

// New returns a private jar over parent. The key must be exactly 32
// cryptographically random bytes supplied by the caller; anything else
// fails here with ErrKeyLength rather than at first use.
func New(parent cookie.Jar, key []byte, opts ...Option) (*Jar, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	aead, err := newAEAD(o.suite, key)
	if err != nil {
		return nil, err
	}
	return &Jar{parent: parent, aead: aead}, nil
}

// Get looks up name in the parent jar and returns the cookie with its
// value verified and decrypted. It returns nil when the cookie is absent
// and, deliberately, when the stored value fails to decode, authenticate,
// or decrypt: the reason is not distinguishable from absence through the
// return value. Failure detail goes to the debug log only.
func (j *Jar) Get(ctx context.Context, name string) *cookie.Cookie {
	c, err := j.parent.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, cookie.ErrNoCookie) {
			log.Debug("private: parent lookup failed", err, "name", name)
		}
		return nil
	}

	value, err := j.Unseal(c.Value)
	if err != nil {
		log.Debug("private: unseal failed", err, "name", name)
		return nil
	}

	out := *c
	out.Value = value
	return &out
}

// Add seals c's value and delegates storage to the parent jar. The
// plaintext never reaches the parent.
func (j *Jar) Add(ctx context.Context, c cookie.Cookie) error {
	sealed, err := j.Seal(c.Value)
	if err != nil {
		return err
	}
	c.Value = sealed
	return j.parent.Add(ctx, c)
}

// Remove delegates to the parent jar. Matching semantics (name, path,
// domain) are entirely the parent's and are unaffected by sealing.
func (j *Jar) Remove(ctx context.Context, c cookie.Cookie) error {
	return j.parent.Remove(ctx, c)
}

// Seal encrypts and authenticates value under a fresh random nonce and
// returns base64(nonce || ciphertext || tag).
func (j *Jar) Seal(value string) (string, error) {
	buf := make([]byte, NonceLen, NonceLen+len(value)+j.aead.Overhead())
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("private: nonce: %w", err)
	}

	sealed := j.aead.Seal(buf, buf[:NonceLen], []byte(value), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Unseal reverses Seal: decode, split off the nonce, verify and decrypt
// in place, and check the plaintext is text. Tampering, truncation, and a
// wrong key are indistinguishable: all return ErrSealBroken.
func (j *Jar) Unseal(value string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", ErrBadEncoding
	}
	if len(data) <= NonceLen {
		return "", ErrTooShort
	}

	nonce, sealed := data[:NonceLen], data[NonceLen:]
	plain, err := j.aead.Open(sealed[:0], nonce, sealed, nil)
	if err != nil {
		return "", ErrSealBroken
	}
	if !utf8.Valid(plain) {
		return "", ErrNotText
	}
	return string(plain), nil
}
