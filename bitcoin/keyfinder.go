package bitcoin

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	lru "github.com/hashicorp/golang-lru"
)

const (
	// DefaultKeyCacheSize bounds the account script to path cache
	DefaultKeyCacheSize = 1024

	// maxScanIndex is the last child index tried on each branch
	maxScanIndex = 65535

	externalBranch = 0
	changeBranch   = 1
)

// KeyFinder resolves the account child key able to spend a UTXO. Scripts resolved
// by a scan are remembered per account in a bounded LRU cache.
type KeyFinder struct {
	cache    *lru.Cache
	maxIndex uint32
}

// cacheKey scopes a cached path to the account it was found under
type cacheKey struct {
	xpub   string
	script string
}

func newCacheKey(account *hdkeychain.ExtendedKey, script string) (cacheKey, error) {
	pub, err := account.Neuter()
	if err != nil {
		return cacheKey{}, fmt.Errorf("failed to neuter account key: %w", err)
	}
	return cacheKey{xpub: pub.String(), script: script}, nil
}

// NewKeyFinder creates a finder caching up to size script lookups
func NewKeyFinder(size int) (*KeyFinder, error) {
	if size <= 0 {
		size = DefaultKeyCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create key cache: %w", err)
	}
	return &KeyFinder{cache: cache, maxIndex: maxScanIndex}, nil
}

// KeyForUTXO derives the key at the UTXO's path when known, otherwise scans for it
func (f *KeyFinder) KeyForUTXO(account *hdkeychain.ExtendedKey, utxo model.UTXO, segWit bool) (*hdkeychain.ExtendedKey, error) {
	if utxo.DerivedPath != "" {
		return hd.DeriveExtendedKey(account, utxo.DerivedPath)
	}
	return f.FindByScript(account, utxo.ScriptPubKey, segWit)
}

// FindByScript scans 0/i and 1/i for i in [0, 65535] until the hash embedded in
// script matches. P2SH scripts are matched against the hash of the witness
// redeem script, P2PKH scripts against the hash of the public key.
func (f *KeyFinder) FindByScript(account *hdkeychain.ExtendedKey, script string, segWit bool) (*hdkeychain.ExtendedKey, error) {
	key, err := newCacheKey(account, script)
	if err != nil {
		return nil, err
	}
	if path, ok := f.cache.Get(key); ok {
		return hd.DeriveExtendedKey(account, path.(string))
	}

	target, err := scriptHash(script, segWit)
	if err != nil {
		return nil, err
	}

	external, err := account.Derive(externalBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to derive external branch: %w", err)
	}
	change, err := account.Derive(changeBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to derive change branch: %w", err)
	}

	for i := uint32(0); i <= f.maxIndex; i++ {
		for branchIndex, branch := range []*hdkeychain.ExtendedKey{external, change} {
			child, err := branch.Derive(i)
			if err != nil {
				// the rare invalid child index is skipped as BIP-32 prescribes
				continue
			}
			hash, err := pubKeyHash(child, segWit)
			if err != nil {
				return nil, err
			}
			if bytes.Equal(hash, target) {
				f.cache.Add(key, fmt.Sprintf("%d/%d", branchIndex, i))
				return child, nil
			}
		}
	}
	return nil, fmt.Errorf("no key in account for script %s: %w", script, model.ErrParam)
}

// scriptHash extracts the 20-byte hash of a P2SH (a914..87) or P2PKH (76a914..88ac) script
func scriptHash(script string, segWit bool) ([]byte, error) {
	raw, err := hex.DecodeString(script)
	if err != nil {
		return nil, fmt.Errorf("invalid script %q: %w", script, model.ErrParam)
	}
	if segWit {
		if len(raw) != 23 {
			return nil, fmt.Errorf("not a p2sh script %q: %w", script, model.ErrParam)
		}
		return raw[2:22], nil
	}
	if len(raw) != 25 {
		return nil, fmt.Errorf("not a p2pkh script %q: %w", script, model.ErrParam)
	}
	return raw[3:23], nil
}

func pubKeyHash(key *hdkeychain.ExtendedKey, segWit bool) ([]byte, error) {
	pub, err := key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %w", err)
	}
	serialized := pub.SerializeCompressed()
	if segWit {
		return btcutil.Hash160(WitnessRedeemScript(serialized)), nil
	}
	return btcutil.Hash160(serialized), nil
}

// ChildWIF returns the compressed WIF of a private extended key on network
func ChildWIF(key *hdkeychain.ExtendedKey, network model.Network) (*btcutil.WIF, error) {
	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}
	wif, err := btcutil.NewWIF(priv, NetParams(network), true)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wif: %w", err)
	}
	return wif, nil
}
