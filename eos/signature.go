package eos

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
)

const (
	signaturePrefix = "SIG_K1_"
	signatureLen    = 65

	// compact header of a signature made with a compressed key
	compactHeader = 27 + 4

	// bounds the canonical search; a canonical signature shows up
	// every few attempts on average
	maxSignAttempts = 1 << 16
)

var curveType = []byte("K1")

// Sign returns a canonical 65-byte compact signature of digest. Nonces come
// from RFC6979 starting at the second generated value and advancing until
// both r and s encode in 32 bytes without a sign bit.
func Sign(privateKey, digest []byte) ([]byte, error) {
	if len(privateKey) != secp256k1.PrivKeyBytesLen {
		return nil, model.ErrPrivateKeyInvalid
	}
	priv := secp256k1.PrivKeyFromBytes(privateKey)
	defer priv.Zero()

	var e secp256k1.ModNScalar
	e.SetByteSlice(digest)

	for counter := uint32(1); counter < maxSignAttempts; counter++ {
		k := secp256k1.NonceRFC6979(privateKey, digest, nil, nil, counter)

		var kG secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(k, &kG)
		kG.ToAffine()

		var r secp256k1.ModNScalar
		overflow := r.SetByteSlice(kG.X.Bytes()[:])
		if r.IsZero() {
			k.Zero()
			continue
		}
		recID := byte(0)
		if kG.Y.IsOdd() {
			recID |= 1
		}
		if overflow {
			recID |= 2
		}

		kInv := new(secp256k1.ModNScalar).InverseValNonConst(k)
		k.Zero()
		s := new(secp256k1.ModNScalar).Mul2(&priv.Key, &r).Add(&e).Mul(kInv)
		if s.IsZero() {
			continue
		}
		if s.IsOverHalfOrder() {
			s.Negate()
			recID ^= 1
		}

		sig := make([]byte, signatureLen)
		sig[0] = compactHeader + recID
		rBytes, sBytes := r.Bytes(), s.Bytes()
		copy(sig[1:33], rBytes[:])
		copy(sig[33:65], sBytes[:])
		if isCanonical(sig) {
			return sig, nil
		}
	}
	return nil, fmt.Errorf("no canonical signature after %d attempts", maxSignAttempts)
}

func isCanonical(sig []byte) bool {
	return sig[1]&0x80 == 0 &&
		!(sig[1] == 0 && sig[2]&0x80 == 0) &&
		sig[33]&0x80 == 0 &&
		!(sig[33] == 0 && sig[34]&0x80 == 0)
}

// EncodeSignature renders "SIG_K1_" + base58(sig || ripemd160(sig || "K1")[:4])
func EncodeSignature(sig []byte) string {
	payload := append(append([]byte{}, sig...), ripemd160Checksum(sig, curveType)...)
	return signaturePrefix + base58.Encode(payload)
}

// DecodeSignature parses a SIG_K1_ string and verifies its checksum
func DecodeSignature(s string) ([]byte, error) {
	if !strings.HasPrefix(s, signaturePrefix) {
		return nil, model.ErrEOSInvalidSignature
	}
	raw, err := base58.Decode(s[len(signaturePrefix):])
	if err != nil || len(raw) != signatureLen+checksumLen {
		return nil, model.ErrEOSInvalidSignature
	}
	sig, checksum := raw[:signatureLen], raw[signatureLen:]
	if !bytes.Equal(checksum, ripemd160Checksum(sig, curveType)) {
		return nil, model.ErrEOSInvalidSignature
	}
	return sig, nil
}

// Recover returns the EOS public key that produced sig over digest
func Recover(digest, sig []byte) (string, error) {
	pub, _, err := ecdsa.RecoverCompact(sig, digest)
	if err != nil {
		return "", fmt.Errorf("failed to recover public key: %w", model.ErrEOSInvalidSignature)
	}
	return PublicKeyString(pub.SerializeCompressed()), nil
}

// MessageDigest is the digest eosEcSign operates on: hex data is used as
// given, text is hashed with SHA256
func MessageDigest(data string, isHex bool) ([]byte, error) {
	if isHex {
		raw, err := common.DecodeHex(data)
		if err != nil {
			return nil, fmt.Errorf("data is not hex: %w", model.ErrParam)
		}
		return raw, nil
	}
	sum := sha256.Sum256([]byte(data))
	return sum[:], nil
}

// ECSign signs data and returns the SIG_K1_ string
func ECSign(privateKey []byte, data string, isHex bool) (string, error) {
	digest, err := MessageDigest(data, isHex)
	if err != nil {
		return "", err
	}
	sig, err := Sign(privateKey, digest)
	if err != nil {
		return "", err
	}
	return EncodeSignature(sig), nil
}

// ECRecover recovers the public key behind an ECSign signature
func ECRecover(data string, isHex bool, signature string) (string, error) {
	digest, err := MessageDigest(data, isHex)
	if err != nil {
		return "", err
	}
	sig, err := DecodeSignature(signature)
	if err != nil {
		return "", err
	}
	return Recover(digest, sig)
}
