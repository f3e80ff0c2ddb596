package private

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Keep these in sync with the fixed algorithm parameters: both suites use
// a 256-bit key, a 96-bit nonce and a 16-byte tag.
const (
	KeyLen   = 32
	NonceLen = 12
)

// Suite names the AEAD construction used to seal cookie values. Both
// suites share the same envelope layout, so the stored text carries no
// algorithm id; the choice is out-of-band configuration and must match
// between sealing and unsealing.
type Suite string

const (
	SuiteAESGCM           Suite = "aes-256-gcm"
	SuiteChaCha20Poly1305 Suite = "chacha20-poly1305"
)

var (
	ErrKeyLength    = errors.New("private: key must be exactly 32 bytes")
	ErrUnknownSuite = errors.New("private: unknown cipher suite")
)

// newAEAD validates the key and builds the AEAD for suite. An empty suite
// selects AES-256-GCM.
func newAEAD(suite Suite, key []byte) (cipher.AEAD, error) {
	if len(key) != KeyLen {
		return nil, fmt.Errorf("%w, got %d", ErrKeyLength, len(key))
	}

	switch suite {
	case SuiteAESGCM, "":
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("private: block cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("private: gcm: %w", err)
		}
		return aead, nil
	case SuiteChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("private: chacha20poly1305: %w", err)
		}
		return aead, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuite, suite)
	}
}
