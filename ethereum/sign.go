package ethereum

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

// ECSignature is a recoverable signature with v = recid + 27
type ECSignature struct {
	V int    `json:"v"`
	R string `json:"r"`
	S string `json:"s"`
}

// String concatenates r, s and v into 130 hex characters
func (s ECSignature) String() string {
	return leftPad(s.R, 64) + leftPad(s.S, 64) + fmt.Sprintf("%02x", s.V)
}

func leftPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// HashPersonalMessage is Keccak256("\x19Ethereum Signed Message:\n" + len(msg) + msg)
func HashPersonalMessage(message []byte) []byte {
	return accounts.TextHash(message)
}

// PersonalSign signs the personal-message hash of message
func PersonalSign(privateKey []byte, message string) (*ECSignature, error) {
	return ECSign(privateKey, HashPersonalMessage([]byte(message)))
}

// ECSign signs a 32-byte hash
func ECSign(privateKey, hash []byte) (*ECSignature, error) {
	sig, err := sign(privateKey, hash)
	if err != nil {
		return nil, err
	}
	return &ECSignature{
		V: int(sig[crypto.RecoveryIDOffset]) + 27,
		R: hex.EncodeToString(sig[:32]),
		S: hex.EncodeToString(sig[32:64]),
	}, nil
}

// BatchECSign signs each hash in order
func BatchECSign(privateKey []byte, hashes [][]byte) ([]*ECSignature, error) {
	out := make([]*ECSignature, 0, len(hashes))
	for _, h := range hashes {
		sig, err := ECSign(privateKey, h)
		if err != nil {
			return nil, err
		}
		out = append(out, sig)
	}
	return out, nil
}

// UnpackSignature splits a 130-character r||s||v hex signature into the
// 64-byte r||s and the recovery id (v - 27)
func UnpackSignature(sig string) ([]byte, int, error) {
	sig = common.StripHexPrefix(sig)
	if len(sig) != 130 {
		return nil, 0, fmt.Errorf("signature must be 65 bytes: %w", model.ErrParam)
	}
	rs, err := hex.DecodeString(sig[:128])
	if err != nil {
		return nil, 0, fmt.Errorf("invalid signature hex: %w", model.ErrParam)
	}
	v, err := strconv.ParseUint(sig[128:], 16, 8)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid recovery byte: %w", model.ErrParam)
	}
	return rs, int(v) - 27, nil
}

// ECRecover returns the 65-byte uncompressed public key that produced rs over hash
func ECRecover(rs []byte, recID int, hash []byte) ([]byte, error) {
	if len(rs) != 64 || recID < 0 || recID > 3 {
		return nil, fmt.Errorf("invalid signature: %w", model.ErrParam)
	}
	sig := make([]byte, 65)
	copy(sig, rs)
	sig[crypto.RecoveryIDOffset] = byte(recID)
	pub, err := crypto.Ecrecover(hash, sig)
	if err != nil {
		return nil, fmt.Errorf("failed to recover public key: %w", model.ErrParam)
	}
	return pub, nil
}

// PersonalECRecover recovers the signer address of a PersonalSign signature
func PersonalECRecover(message, signature string) (string, error) {
	rs, recID, err := UnpackSignature(signature)
	if err != nil {
		return "", err
	}
	pub, err := ECRecover(rs, recID, HashPersonalMessage([]byte(message)))
	if err != nil {
		return "", err
	}
	return PublicKeyToAddress(pub)
}
