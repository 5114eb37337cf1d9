package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/ethereum/go-ethereum/crypto"
)

// ParsePrivateKey decodes a 32-byte hex private key with an optional 0x prefix
func ParsePrivateKey(s string) ([]byte, error) {
	raw, err := common.DecodeHex(s)
	if err != nil || len(raw) != 32 {
		return nil, model.ErrPrivateKeyInvalid
	}
	return raw, nil
}

func toECDSA(privateKey []byte) (*ecdsa.PrivateKey, error) {
	key, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", model.ErrPrivateKeyInvalid)
	}
	return key, nil
}

// PrivateKeyToAddress returns the lowercase hex address (no 0x) of privateKey
func PrivateKeyToAddress(privateKey []byte) (string, error) {
	key, err := toECDSA(privateKey)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(crypto.PubkeyToAddress(key.PublicKey).Bytes()), nil
}

// PublicKeyToAddress hashes a 65-byte uncompressed public key into a lowercase address
func PublicKeyToAddress(publicKey []byte) (string, error) {
	pub, err := crypto.UnmarshalPubkey(publicKey)
	if err != nil {
		return "", fmt.Errorf("invalid public key: %w", model.ErrParam)
	}
	return hex.EncodeToString(crypto.PubkeyToAddress(*pub).Bytes()), nil
}

func sign(privateKey, hash []byte) ([]byte, error) {
	key, err := toECDSA(privateKey)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(hash, key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return sig, nil
}
