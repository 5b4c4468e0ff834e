package keymaterial

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signer signs ledger payloads with a single Ed25519 identity.
type Signer struct {
	key ed25519.PrivateKey
}

// NewSigner builds a signer from a hex encoded 32 byte seed. An empty seed
// generates an ephemeral identity.
func NewSigner(seedHex string) (*Signer, error) {
	if seedHex == "" {
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		return &Signer{key: key}, nil
	}

	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing seed: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signing seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &Signer{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// PublicKey returns the verification key.
func (s *Signer) PublicKey() []byte {
	return []byte(s.key.Public().(ed25519.PublicKey))
}

// Sign hashes payload and signs the digest.
func (s *Signer) Sign(payload []byte) (digest []byte, signature []byte) {
	sum := sha256.Sum256(payload)
	return sum[:], ed25519.Sign(s.key, sum[:])
}

// Verify checks that digest matches payload and that signature was made by
// publicKey over digest.
func Verify(publicKey, payload, digest, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	sum := sha256.Sum256(payload)
	if string(sum[:]) != string(digest) {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), digest, signature)
}

// TrustedKeys is the set of signer identities whose ledger events are
// accepted during verification.
type TrustedKeys struct {
	keys map[string]struct{}
}

// NewTrustedKeys builds a set from raw Ed25519 public keys. Keys of the wrong
// size are ignored.
func NewTrustedKeys(keys ...[]byte) *TrustedKeys {
	t := &TrustedKeys{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		if len(k) == ed25519.PublicKeySize {
			t.keys[string(k)] = struct{}{}
		}
	}
	return t
}

// ParseTrustedKeys decodes hex encoded Ed25519 public keys.
func ParseTrustedKeys(hexKeys []string) ([][]byte, error) {
	out := make([][]byte, 0, len(hexKeys))
	for _, h := range hexKeys {
		if h == "" {
			continue
		}
		k, err := hex.DecodeString(h)
		if err != nil {
			return nil, fmt.Errorf("failed to decode trusted key %q: %w", h, err)
		}
		if len(k) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("trusted key must be %d bytes, got %d", ed25519.PublicKeySize, len(k))
		}
		out = append(out, k)
	}
	return out, nil
}

// Contains reports whether key is trusted. A nil set trusts nothing.
func (t *TrustedKeys) Contains(key []byte) bool {
	if t == nil {
		return false
	}
	_, ok := t.keys[string(key)]
	return ok
}
