package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// EncryptedMessage is a secondary secret sealed with the derived key of a Crypto.
// It always uses aes-128-ctr with derivedKey[0:16] and a per-message nonce.
type EncryptedMessage struct {
	EncStr string `json:"encStr"`
	Nonce  string `json:"nonce"`
}

// NewEncryptedMessage seals message under derivedKey. A random 16-byte nonce is
// generated when nonce is nil.
func NewEncryptedMessage(derivedKey, message, nonce []byte) (*EncryptedMessage, error) {
	if nonce == nil {
		nonce = make([]byte, ivLen)
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			return nil, fmt.Errorf("failed to generate nonce: %w", err)
		}
	}
	enc, err := aesCrypt(CipherAES128CTR, derivedKey, nonce, message, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}
	return &EncryptedMessage{
		EncStr: hex.EncodeToString(enc),
		Nonce:  hex.EncodeToString(nonce),
	}, nil
}

// Valid reports whether both fields are present
func (m *EncryptedMessage) Valid() bool {
	return m != nil && m.EncStr != "" && m.Nonce != ""
}

// DecryptWithKey opens the message with an already verified derived key
func (m *EncryptedMessage) DecryptWithKey(derivedKey []byte) ([]byte, error) {
	nonce, err := hex.DecodeString(m.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}
	enc, err := hex.DecodeString(m.EncStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	return aesCrypt(CipherAES128CTR, derivedKey, nonce, enc, false)
}
