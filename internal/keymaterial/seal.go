package keymaterial

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const dataKeySize = 32

// Seal encrypts plaintext to the holder of publicPEM. The output is
// len(wrappedKey) as uint16 | wrappedKey | nonce | AES-GCM ciphertext.
func Seal(publicPEM, plaintext []byte) ([]byte, error) {
	pub, err := parsePublic(publicPEM)
	if err != nil {
		return nil, err
	}

	dataKey := make([]byte, dataKeySize)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, fmt.Errorf("failed to generate data key: %w", err)
	}

	wrapped, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, dataKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap data key: %w", err)
	}

	gcm, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 2, 2+len(wrapped)+len(nonce)+len(plaintext)+gcm.Overhead())
	binary.BigEndian.PutUint16(out, uint16(len(wrapped)))
	out = append(out, wrapped...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

// Open reverses Seal. Once the private key is shredded there is no way to
// call it, which is the point.
func Open(privatePEM, sealed []byte) ([]byte, error) {
	priv, err := parsePrivate(privatePEM)
	if err != nil {
		return nil, err
	}
	if len(sealed) < 2 {
		return nil, errors.New("sealed payload too short")
	}
	wrappedLen := int(binary.BigEndian.Uint16(sealed))
	rest := sealed[2:]
	if len(rest) < wrappedLen {
		return nil, errors.New("sealed payload truncated")
	}

	dataKey, err := rsa.DecryptOAEP(sha256.New(), nil, priv, rest[:wrappedLen], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap data key: %w", err)
	}
	rest = rest[wrappedLen:]

	gcm, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize() {
		return nil, errors.New("sealed payload missing nonce")
	}
	plaintext, err := gcm.Open(nil, rest[:gcm.NonceSize()], rest[gcm.NonceSize():], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt payload: %w", err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcm: %w", err)
	}
	return gcm, nil
}
