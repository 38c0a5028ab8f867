package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// WalletKeyMaterial is the output of a wallet key generation: the derived
// public address plus the secrets that must be stored server-side only.
type WalletKeyMaterial struct {
	Address        string
	PrivateKeyHex  string
	RecoverySecret string
}

// GenerateWalletKeys creates an ed25519 keypair and derives the wallet
// address from the public key: "gw" + hex of the first 20 bytes of
// SHA-256(pubkey). The address is stable and collision-resistant for the
// key's lifetime.
func GenerateWalletKeys() (*WalletKeyMaterial, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}

	digest := sha256.Sum256(pub)
	address := "gw" + hex.EncodeToString(digest[:20])

	recovery, err := randomHex(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recovery secret: %w", err)
	}

	return &WalletKeyMaterial{
		Address:        address,
		PrivateKeyHex:  hex.EncodeToString(priv),
		RecoverySecret: recovery,
	}, nil
}

// EncryptPrivateKey seals the private key with AES-256-GCM under a key
// derived from the recovery secret. Output is hex(nonce || ciphertext).
// The server never needs to decrypt; recovery hands the ciphertext back to
// a holder of the secret.
func EncryptPrivateKey(privateKeyHex, recoverySecret string) (string, error) {
	key := sha256.Sum256([]byte(recoverySecret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to init gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(privateKeyHex), nil)
	return hex.EncodeToString(sealed), nil
}

// GenerateTxHash produces the external reference shared by both sides of an
// internal transfer: 32 random bytes, hex encoded with a "tx" prefix.
func GenerateTxHash() (string, error) {
	s, err := randomHex(32)
	if err != nil {
		return "", err
	}
	return "tx" + s, nil
}

// randomHex returns n random bytes, hex encoded.
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}
