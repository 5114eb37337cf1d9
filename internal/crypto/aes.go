package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

// Cipher names the symmetric cipher of a keystore
type Cipher string

const (
	CipherAES128CTR Cipher = "aes-128-ctr"
	CipherAES128CBC Cipher = "aes-128-cbc"
)

const aesKeyLen = 16

// aesCrypt runs AES-128 in CTR or unpadded CBC mode. key must be at least 16 bytes,
// only the first 16 are used.
func aesCrypt(c Cipher, key, iv, data []byte, encrypt bool) ([]byte, error) {
	if len(key) < aesKeyLen {
		return nil, errors.New("aes key too short")
	}
	block, err := aes.NewCipher(key[:aesKeyLen])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("invalid iv length %d", len(iv))
	}

	out := make([]byte, len(data))
	switch c {
	case CipherAES128CTR:
		cipher.NewCTR(block, iv).XORKeyStream(out, data)
	case CipherAES128CBC:
		if len(data)%aes.BlockSize != 0 {
			return nil, errors.New("cbc input is not a multiple of the block size")
		}
		if encrypt {
			cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
		} else {
			cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)
		}
	default:
		return nil, fmt.Errorf("cipher %q: %w", c, errUnsupportedCipher)
	}
	return out, nil
}

var errUnsupportedCipher = errors.New("unsupported cipher")

// EncryptCBCPKCS7 encrypts data with AES-128-CBC and PKCS#7 padding
func EncryptCBCPKCS7(key, iv, data []byte) ([]byte, error) {
	padLen := aes.BlockSize - len(data)%aes.BlockSize
	padded := make([]byte, len(data), len(data)+padLen)
	copy(padded, data)
	padded = append(padded, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
	defer clear(padded)
	return aesCrypt(CipherAES128CBC, key, iv, padded, true)
}

// DecryptCBCPKCS7 decrypts AES-128-CBC data and strips PKCS#7 padding
func DecryptCBCPKCS7(key, iv, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty ciphertext")
	}
	plain, err := aesCrypt(CipherAES128CBC, key, iv, data, false)
	if err != nil {
		return nil, err
	}
	padLen := int(plain[len(plain)-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > len(plain) {
		return nil, errors.New("invalid padding")
	}
	for _, b := range plain[len(plain)-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("invalid padding")
		}
	}
	return plain[:len(plain)-padLen], nil
}
