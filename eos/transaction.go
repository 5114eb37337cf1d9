package eos

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// KeyResolver finds the private key a keystore holds for an EOS public key
type KeyResolver interface {
	PrivateKeyFor(publicKey string) ([]byte, error)
}

// KeyResolverFunc adapts a function to KeyResolver
type KeyResolverFunc func(publicKey string) ([]byte, error)

// PrivateKeyFor calls f
func (f KeyResolverFunc) PrivateKeyFor(publicKey string) ([]byte, error) {
	return f(publicKey)
}

// TransactionDigest is SHA256(chainID || rawTx || 32 zero bytes)
func TransactionDigest(chainID, rawTx []byte) []byte {
	h := sha256.New()
	h.Write(chainID)
	h.Write(rawTx)
	h.Write(make([]byte, 32))
	return h.Sum(nil)
}

// SignTransaction signs tx once per requested public key. The reported hash is
// SHA256 of the raw transaction and is only meant for display.
func SignTransaction(tx model.EOSTransaction, resolver KeyResolver) (*model.EOSSignResult, error) {
	rawTx, err := common.DecodeHex(tx.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction data: %w", model.ErrParam)
	}
	chainID, err := common.DecodeHex(tx.ChainID)
	if err != nil {
		return nil, fmt.Errorf("invalid chain id: %w", model.ErrParam)
	}

	digest := TransactionDigest(chainID, rawTx)
	signs := make([]string, 0, len(tx.PublicKeys))
	for _, publicKey := range tx.PublicKeys {
		privateKey, err := resolver.PrivateKeyFor(publicKey)
		if err != nil {
			return nil, err
		}
		sig, err := Sign(privateKey, digest)
		clear(privateKey)
		if err != nil {
			return nil, err
		}
		signs = append(signs, EncodeSignature(sig))
	}

	hash := sha256.Sum256(rawTx)
	return &model.EOSSignResult{
		Hash:  hex.EncodeToString(hash[:]),
		Signs: signs,
	}, nil
}
