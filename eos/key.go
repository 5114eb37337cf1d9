package eos

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"
)

const (
	publicKeyPrefix = "EOS"
	checksumLen     = 4
)

func ripemd160Checksum(parts ...[]byte) []byte {
	h := ripemd160.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)[:checksumLen]
}

// PublicKeyString encodes a compressed public key as "EOS" + base58(key || ripemd160(key)[:4])
func PublicKeyString(compressed []byte) string {
	return publicKeyPrefix + base58.Encode(append(append([]byte{}, compressed...), ripemd160Checksum(compressed)...))
}

// ParsePublicKey decodes an EOS public key string and verifies its checksum
func ParsePublicKey(s string) (*btcec.PublicKey, error) {
	if !strings.HasPrefix(s, publicKeyPrefix) {
		return nil, model.ErrEOSInvalidPublicKeyFormat
	}
	raw, err := base58.Decode(s[len(publicKeyPrefix):])
	if err != nil || len(raw) != btcec.PubKeyBytesLenCompressed+checksumLen {
		return nil, model.ErrEOSInvalidPublicKeyFormat
	}
	key, checksum := raw[:btcec.PubKeyBytesLenCompressed], raw[btcec.PubKeyBytesLenCompressed:]
	if !bytes.Equal(checksum, ripemd160Checksum(key)) {
		return nil, model.ErrEOSInvalidPublicKeyFormat
	}
	pub, err := btcec.ParsePubKey(key)
	if err != nil {
		return nil, model.ErrEOSInvalidPublicKeyFormat
	}
	return pub, nil
}

// PublicKeyFromPrivate returns the EOS public key string of a 32-byte private key
func PublicKeyFromPrivate(privateKey []byte) (string, error) {
	if len(privateKey) != btcec.PrivKeyBytesLen {
		return "", model.ErrPrivateKeyInvalid
	}
	_, pub := btcec.PrivKeyFromBytes(privateKey)
	return PublicKeyString(pub.SerializeCompressed()), nil
}

// PrivateKeyFromWIF decodes an EOS WIF into the raw 32-byte key
func PrivateKeyFromWIF(wif string) ([]byte, error) {
	decoded, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, model.ErrPrivateKeyInvalid
	}
	return decoded.PrivKey.Serialize(), nil
}

// WIF encodes a raw private key in the uncompressed mainnet form EOS uses
func WIF(privateKey []byte) (string, error) {
	if len(privateKey) != btcec.PrivKeyBytesLen {
		return "", model.ErrPrivateKeyInvalid
	}
	priv, _ := btcec.PrivKeyFromBytes(privateKey)
	wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, false)
	if err != nil {
		return "", fmt.Errorf("failed to encode wif: %w", err)
	}
	return wif.String(), nil
}
