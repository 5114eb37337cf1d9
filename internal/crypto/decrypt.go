package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// ParseCrypto reads and validates a keystore crypto object.
// A missing field yields keystore_invalid; unknown algorithms and bad kdf
// parameters yield their dedicated errors.
func ParseCrypto(data []byte) (*Crypto, error) {
	var raw struct {
		Cipher       *string          `json:"cipher"`
		CipherText   *string          `json:"ciphertext"`
		CipherParams *json.RawMessage `json:"cipherparams"`
		KDF          *string          `json:"kdf"`
		KDFParams    *json.RawMessage `json:"kdfparams"`
		MAC          *string          `json:"mac"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, model.ErrKeystoreInvalid
	}
	if raw.Cipher == nil || raw.CipherText == nil || raw.CipherParams == nil ||
		raw.KDF == nil || raw.KDFParams == nil || raw.MAC == nil {
		return nil, model.ErrKeystoreInvalid
	}

	cipherName := Cipher(strings.ToLower(*raw.Cipher))
	if cipherName != CipherAES128CTR && cipherName != CipherAES128CBC {
		return nil, model.ErrKeystoreCipherUnsupported
	}
	kdf := KDF(strings.ToLower(*raw.KDF))
	if kdf != KDFScrypt && kdf != KDFPBKDF2 {
		return nil, model.ErrKeystoreKDFUnsupported
	}

	// iv defaults to empty when absent
	var params struct {
		IV string `json:"iv"`
	}
	if err := json.Unmarshal(*raw.CipherParams, &params); err != nil {
		return nil, model.ErrKeystoreInvalid
	}

	kdfParams, err := parseKDFParams(kdf, *raw.KDFParams)
	if err != nil {
		return nil, err
	}

	return &Crypto{
		Cipher:       cipherName,
		CipherText:   *raw.CipherText,
		CipherParams: CipherParams{IV: params.IV},
		KDF:          kdf,
		KDFParams:    kdfParams,
		MAC:          *raw.MAC,
	}, nil
}

// DeriveKey runs the KDF for password. The caller must clear the result.
// password must be []byte for security (caller should zero it after use)
func (c *Crypto) DeriveKey(password []byte) ([]byte, error) {
	if c.KDFParams == nil {
		return nil, model.ErrKeystoreKDFParamsInvalid
	}
	return c.KDFParams.DeriveKey(password)
}

// VerifyDerivedKey compares the stored MAC with the one computed from derivedKey
func (c *Crypto) VerifyDerivedKey(derivedKey []byte) bool {
	mac := c.macForDerivedKey(derivedKey)
	return mac != "" && strings.EqualFold(mac, c.MAC)
}

// Verify reports whether password opens this crypto
func (c *Crypto) Verify(password []byte) bool {
	derivedKey, err := c.DeriveKey(password)
	if err != nil {
		return false
	}
	defer clear(derivedKey)
	return c.VerifyDerivedKey(derivedKey)
}

// DecryptWithKey verifies the MAC for an already derived key and decrypts
func (c *Crypto) DecryptWithKey(derivedKey []byte) ([]byte, error) {
	if !c.VerifyDerivedKey(derivedKey) {
		return nil, model.ErrPasswordIncorrect
	}

	iv, err := hex.DecodeString(c.CipherParams.IV)
	if err != nil {
		return nil, fmt.Errorf("failed to decode iv: %w", model.ErrKeystoreInvalid)
	}
	ciphertext, err := hex.DecodeString(c.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", model.ErrKeystoreInvalid)
	}

	plaintext, err := aesCrypt(c.Cipher, derivedKey, iv, ciphertext, false)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", model.ErrKeystoreInvalid)
	}
	return plaintext, nil
}
