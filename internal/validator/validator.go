package validator

import (
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/bitcoin"
	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var (
	eosAccountNameRegex = regexp.MustCompile(`^[1-5a-z.]{1,12}$`)
	walletIDRegex       = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-4[a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	ethAddressRegex     = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{40}$`)
)

const minPasswordLength = 8

// ValidatePassword requires at least 8 characters
// password must be []byte for security (caller should zero it after use)
func ValidatePassword(password []byte) error {
	if len(password) == 0 {
		return model.ErrPasswordBlank
	}
	if len([]rune(string(password))) < minPasswordLength || strings.ContainsAny(string(password), "\r\n") {
		return model.ErrPasswordWeak
	}
	return nil
}

// ValidateMnemonic classifies a bad mnemonic as length, word or checksum error
func ValidateMnemonic(mnemonic string) error {
	return hd.ValidateMnemonic(mnemonic)
}

// ValidateETHAddress accepts 40 hex chars with optional 0x. Mixed case must
// carry a valid EIP-55 checksum.
func ValidateETHAddress(address string) error {
	if !ethAddressRegex.MatchString(address) {
		return model.ErrAddressInvalid
	}
	body := common.StripHexPrefix(address)
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return nil
	}
	if ChecksumETHAddress(body) != body {
		return model.ErrAddressInvalid
	}
	return nil
}

// ChecksumETHAddress returns the EIP-55 mixed case form of a 40 hex char address (no prefix)
func ChecksumETHAddress(address string) string {
	lower := strings.ToLower(common.StripHexPrefix(address))
	hash := hex.EncodeToString(ethcrypto.Keccak256([]byte(lower)))
	out := []byte(lower)
	for i := range out {
		if out[i] >= 'a' && hash[i] >= '8' {
			out[i] -= 'a' - 'A'
		}
	}
	return string(out)
}

// ValidateBTCAddress decodes address and checks it belongs to network
func ValidateBTCAddress(address string, network model.Network) error {
	_, err := bitcoin.DecodeAddress(address, network)
	return err
}

// ValidateEOSAccountName accepts the empty name (not yet registered) or up to
// 12 chars of [1-5a-z.]
func ValidateEOSAccountName(name string) error {
	if name == "" || eosAccountNameRegex.MatchString(name) {
		return nil
	}
	return model.ErrEOSAccountNameInvalid
}

// ValidateWalletID requires a lowercase UUIDv4
func ValidateWalletID(id string) error {
	if !walletIDRegex.MatchString(id) {
		return model.ErrParam
	}
	return nil
}

// ValidatePrivateKey checks key for chain: a 32-byte hex scalar for ETH, a WIF
// on network for BTC (compressed when requireCompressed) and any WIF for EOS.
func ValidatePrivateKey(key string, chain model.ChainType, network model.Network, requireCompressed bool) error {
	switch chain {
	case model.ChainETH:
		return validateETHPrivateKey(key)
	case model.ChainBTC:
		return validateBTCPrivateKey(key, network, requireCompressed)
	case model.ChainEOS:
		wif, err := btcutil.DecodeWIF(key)
		if err != nil || wif.PrivKey == nil {
			return model.ErrPrivateKeyInvalid
		}
		return nil
	default:
		return model.ErrUnsupportedChain
	}
}

func validateETHPrivateKey(key string) error {
	raw, err := hex.DecodeString(common.StripHexPrefix(key))
	if err != nil || len(raw) != 32 {
		return model.ErrPrivateKeyInvalid
	}
	defer clear(raw)
	// ToECDSA rejects zero and values >= N
	if _, err := ethcrypto.ToECDSA(raw); err != nil {
		return model.ErrPrivateKeyInvalid
	}
	return nil
}

func validateBTCPrivateKey(key string, network model.Network, requireCompressed bool) error {
	wif, err := btcutil.DecodeWIF(key)
	if err != nil || wif.PrivKey == nil {
		return model.ErrWIFInvalid
	}
	if requireCompressed && !wif.CompressPubKey {
		return model.ErrPublicKeyNotCompressed
	}
	if !wif.IsForNet(bitcoin.NetParams(network)) {
		return model.ErrWIFWrongNetwork
	}
	return nil
}

// ValidateV3Keystore checks the minimal V3 structure: a crypto (or Crypto)
// object, version 3 and a non-empty address
func ValidateV3Keystore(data []byte) error {
	var raw struct {
		Version      *int            `json:"version"`
		Address      string          `json:"address"`
		Crypto       json.RawMessage `json:"crypto"`
		CryptoUpper  json.RawMessage `json:"Crypto"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.ErrKeystoreInvalid
	}
	if raw.Version == nil || *raw.Version != 3 || raw.Address == "" {
		return model.ErrKeystoreInvalid
	}
	if !isJSONObject(raw.Crypto) && !isJSONObject(raw.CryptoUpper) {
		return model.ErrKeystoreInvalid
	}
	return nil
}

func isJSONObject(raw json.RawMessage) bool {
	var obj map[string]json.RawMessage
	return len(raw) > 0 && json.Unmarshal(raw, &obj) == nil && obj != nil
}
