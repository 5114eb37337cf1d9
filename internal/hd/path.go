package hd

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip32"
)

// DerivationPath is a BIP-32 path as child indexes, hardened ones offset by 2^31
type DerivationPath []uint32

// ParsePath parses "m/44'/0'/0'" (absolute) or "0/1" (relative to whatever key
// it is applied to). "m" alone is the master key itself.
func ParsePath(path string) (DerivationPath, error) {
	components := strings.Split(strings.TrimSpace(path), "/")
	switch {
	case strings.TrimSpace(components[0]) == "":
		return nil, fmt.Errorf("ambiguous path %q: %w", path, model.ErrMnemonicPathInvalid)
	case strings.TrimSpace(components[0]) == "m":
		components = components[1:]
	}

	result := make(DerivationPath, 0, len(components))
	for _, component := range components {
		component = strings.TrimSpace(component)
		var value uint32

		if strings.HasSuffix(component, "'") {
			value = hdkeychain.HardenedKeyStart
			component = strings.TrimSpace(strings.TrimSuffix(component, "'"))
		}
		bigval, ok := new(big.Int).SetString(component, 10)
		if !ok {
			return nil, fmt.Errorf("invalid component %q: %w", component, model.ErrMnemonicPathInvalid)
		}
		limit := math.MaxUint32 - value
		if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(limit))) > 0 {
			return nil, fmt.Errorf("component %v out of range [0, %d]: %w", bigval, limit, model.ErrMnemonicPathInvalid)
		}
		value += uint32(bigval.Uint64())
		result = append(result, value)
	}
	return result, nil
}

// String converts the path to its canonical absolute form
func (p DerivationPath) String() string {
	var sb strings.Builder
	sb.WriteString("m")
	for _, component := range p {
		hardened := component >= hdkeychain.HardenedKeyStart
		if hardened {
			component -= hdkeychain.HardenedKeyStart
		}
		fmt.Fprintf(&sb, "/%d", component)
		if hardened {
			sb.WriteString("'")
		}
	}
	return sb.String()
}

// DeriveKey walks path from the BIP-32 master key of seed
func DeriveKey(seed []byte, path string) (*bip32.Key, error) {
	components, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	for _, n := range components {
		key, err = key.NewChildKey(n)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", components, err)
		}
	}
	return key, nil
}

// DerivePrivateKey returns the raw 32-byte private key at path. The caller must clear it.
func DerivePrivateKey(seed []byte, path string) ([]byte, error) {
	key, err := DeriveKey(seed, path)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(key.Key))
	copy(out, key.Key)
	clear(key.Key)
	return out, nil
}

// NewMasterExtendedKey creates the xprv/tprv master key of seed for net
func NewMasterExtendedKey(seed []byte, net *chaincfg.Params) (*hdkeychain.ExtendedKey, error) {
	master, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	return master, nil
}

// DeriveExtendedKey applies path to key. Absolute and relative paths are both
// treated as relative to key.
func DeriveExtendedKey(key *hdkeychain.ExtendedKey, path string) (*hdkeychain.ExtendedKey, error) {
	components, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	for _, n := range components {
		key, err = key.Derive(n)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", components, err)
		}
	}
	return key, nil
}
