package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const ivLen = 16

// CipherParams holds the cipher IV as hex
type CipherParams struct {
	IV string `json:"iv"`
}

// Crypto is the password-protected envelope of a keystore secret
type Crypto struct {
	Cipher       Cipher
	CipherText   string
	CipherParams CipherParams
	KDF          KDF
	KDFParams    KDFParams
	MAC          string
}

type cryptoJSON struct {
	Cipher       string       `json:"cipher"`
	CipherText   string       `json:"ciphertext"`
	CipherParams CipherParams `json:"cipherparams"`
	KDF          string       `json:"kdf"`
	KDFParams    KDFParams    `json:"kdfparams"`
	MAC          string       `json:"mac"`
}

// NewCrypto encrypts plaintext under a fresh scrypt key with aes-128-ctr.
// The derived key is returned so the caller can protect further secrets
// (EncryptedMessage) without paying for the KDF again; the caller must clear it.
// password must be []byte for security (caller should zero it after use)
func NewCrypto(password, plaintext []byte) (*Crypto, []byte, error) {
	params, err := newScryptParams()
	if err != nil {
		return nil, nil, err
	}

	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	// Derive key from password
	derivedKey, err := params.DeriveKey(password)
	if err != nil {
		return nil, nil, err
	}

	ciphertext, err := aesCrypt(CipherAES128CTR, derivedKey, iv, plaintext, true)
	if err != nil {
		clear(derivedKey)
		return nil, nil, fmt.Errorf("failed to encrypt: %w", err)
	}

	c := &Crypto{
		Cipher:       CipherAES128CTR,
		CipherText:   hex.EncodeToString(ciphertext),
		CipherParams: CipherParams{IV: hex.EncodeToString(iv)},
		KDF:          KDFScrypt,
		KDFParams:    params,
	}
	c.MAC = c.macForDerivedKey(derivedKey)
	return c, derivedKey, nil
}

// NewCryptoWithDerivedKey encrypts plaintext under an already derived key and KDF params.
// It is used when re-encrypting a secret that shares the derivation of another Crypto.
func NewCryptoWithDerivedKey(params KDFParams, derivedKey, plaintext []byte) (*Crypto, error) {
	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("failed to generate iv: %w", err)
	}
	ciphertext, err := aesCrypt(CipherAES128CTR, derivedKey, iv, plaintext, true)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt: %w", err)
	}
	c := &Crypto{
		Cipher:       CipherAES128CTR,
		CipherText:   hex.EncodeToString(ciphertext),
		CipherParams: CipherParams{IV: hex.EncodeToString(iv)},
		KDF:          params.kdf(),
		KDFParams:    params,
	}
	c.MAC = c.macForDerivedKey(derivedKey)
	return c, nil
}

// macForDerivedKey is Keccak256(derivedKey[16:32] || ciphertext) as hex
func (c *Crypto) macForDerivedKey(derivedKey []byte) string {
	ciphertext, err := hex.DecodeString(c.CipherText)
	if err != nil || len(derivedKey) < 32 {
		return ""
	}
	return hex.EncodeToString(ethcrypto.Keccak256(derivedKey[16:32], ciphertext))
}

// MarshalJSON writes the Web3 Secret Storage crypto object
func (c *Crypto) MarshalJSON() ([]byte, error) {
	return json.Marshal(cryptoJSON{
		Cipher:       string(c.Cipher),
		CipherText:   c.CipherText,
		CipherParams: c.CipherParams,
		KDF:          string(c.KDF),
		KDFParams:    c.KDFParams,
		MAC:          c.MAC,
	})
}
