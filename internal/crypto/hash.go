package crypto

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const merkleChunkSize = 1024

// HMACSHA256 returns HMAC-SHA256(key, data)
func HMACSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// MerkleRoot splits data into 1024-byte chunks and returns the bitcoin-style
// double-SHA256 merkle root over them (odd levels duplicate the last node).
func MerkleRoot(data []byte) []byte {
	var level [][]byte
	for i := 0; i < len(data); i += merkleChunkSize {
		end := min(i+merkleChunkSize, len(data))
		level = append(level, chainhash.DoubleHashB(data[i:end]))
	}
	if len(level) == 0 {
		return chainhash.DoubleHashB(nil)
	}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([][]byte, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			pair := make([]byte, 0, 2*chainhash.HashSize)
			pair = append(pair, level[i]...)
			pair = append(pair, level[i+1]...)
			next = append(next, chainhash.DoubleHashB(pair))
		}
		level = next
	}
	return level[0]
}
