package model

import (
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/common"
)

// MetaRequest is the user supplied part of WalletMeta
type MetaRequest struct {
	Name         string    `json:"name"`
	PasswordHint string    `json:"passwordHint"`
	Chain        ChainType `json:"chainType"`
	Network      Network   `json:"network" example:"MAINNET"`
	SegWit       SegWit    `json:"segWit" example:"NONE"`
}

// WalletMeta builds fresh metadata from the request. An empty network means MAINNET.
func (r MetaRequest) WalletMeta(source Source) WalletMeta {
	network := r.Network
	if network == "" {
		network = NetworkMainnet
	}
	meta := NewWalletMeta(r.Chain, source, network)
	meta.Name = r.Name
	meta.PasswordHint = r.PasswordHint
	if r.SegWit != "" {
		meta.SegWit = r.SegWit
	}
	return meta
}

func (r MetaRequest) validate() error {
	if r.Network != "" && r.Network != NetworkMainnet && r.Network != NetworkTestnet {
		return fmt.Errorf("%w: network must be MAINNET or TESTNET", ErrParam)
	}
	if r.SegWit != "" && r.SegWit != SegWitNone && r.SegWit != SegWitP2WPKH {
		return fmt.Errorf("%w: segWit must be NONE or P2WPKH", ErrParam)
	}
	return nil
}

// IdentityRequest represents request for POST /identity/create and /identity/recover.
// Mnemonic is only read on recover.
type IdentityRequest struct {
	MetaRequest
	Mnemonic string `json:"mnemonic,omitempty"`
}

// Validate checks the request fields
func (r IdentityRequest) Validate() error {
	return r.MetaRequest.validate()
}

// IdentityResponse represents the public view of the identity
type IdentityResponse struct {
	Identifier string           `json:"identifier"`
	IPFSID     string           `json:"ipfsId"`
	Mnemonic   string           `json:"mnemonic,omitempty"`
	Wallets    []map[string]any `json:"wallets"`
}

// MnemonicResponse represents response for POST /identity/export
type MnemonicResponse struct {
	Mnemonic string `json:"mnemonic"`
	Path     string `json:"path,omitempty"`
}

// SuccessResponse represents response for operations without a result
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WalletsResponse represents response for GET /wallets and POST /wallets/derive
type WalletsResponse struct {
	Wallets []map[string]any `json:"wallets"`
}

// ImportKind selects the key material of an import
type ImportKind string

const (
	ImportMnemonic       ImportKind = "mnemonic"
	ImportPrivateKey     ImportKind = "privateKey"
	ImportKeystore       ImportKind = "keystore"
	ImportEOSMnemonic    ImportKind = "eosMnemonic"
	ImportEOSPrivateKeys ImportKind = "eosPrivateKeys"
)

// ImportRequest represents request for POST /wallets/import
type ImportRequest struct {
	MetaRequest
	Kind        ImportKind      `json:"kind" example:"mnemonic"`
	Mnemonic    string          `json:"mnemonic,omitempty"`
	Path        string          `json:"path,omitempty" example:"m/44'/60'/0'/0/0"`
	PrivateKey  string          `json:"privateKey,omitempty"`
	PrivateKeys []string        `json:"privateKeys,omitempty"`
	Keystore    json.RawMessage `json:"keystore,omitempty" swaggertype:"object"`
	AccountName string          `json:"accountName,omitempty"`
	Permissions []EOSPermission `json:"permissions,omitempty"`
}

// Validate checks that the fields required by Kind are present
func (r ImportRequest) Validate() error {
	if err := r.MetaRequest.validate(); err != nil {
		return err
	}
	if !r.Chain.Valid() {
		return fmt.Errorf("%w: chainType must be ETHEREUM, BITCOIN or EOS", ErrParam)
	}

	switch r.Kind {
	case ImportMnemonic, ImportEOSMnemonic:
		if r.Mnemonic == "" {
			return fmt.Errorf("%w: mnemonic is required", ErrParam)
		}
	case ImportPrivateKey:
		if r.PrivateKey == "" {
			return fmt.Errorf("%w: privateKey is required", ErrParam)
		}
	case ImportKeystore:
		if len(r.Keystore) == 0 {
			return fmt.Errorf("%w: keystore is required", ErrParam)
		}
	case ImportEOSPrivateKeys:
		if len(r.PrivateKeys) == 0 {
			return fmt.Errorf("%w: privateKeys is required", ErrParam)
		}
	default:
		return fmt.Errorf("%w: unknown import kind %q", ErrParam, r.Kind)
	}
	return nil
}

// WalletRequest represents a request that names a single wallet
type WalletRequest struct {
	WalletID string `json:"walletId"`
}

// DeriveRequest represents request for POST /wallets/derive
type DeriveRequest struct {
	Chains []ChainType `json:"chainTypes"`
}

// ExportKind selects what POST /wallets/export returns
type ExportKind string

const (
	ExportPrivateKey  ExportKind = "privateKey"
	ExportPrivateKeys ExportKind = "privateKeys"
	ExportMnemonic    ExportKind = "mnemonic"
	ExportKeystore    ExportKind = "keystore"
)

// ExportRequest represents request for POST /wallets/export
type ExportRequest struct {
	WalletID string     `json:"walletId"`
	Kind     ExportKind `json:"kind" example:"privateKey"`
}

// ExportResponse carries exactly the field matching the requested kind
type ExportResponse struct {
	PrivateKey string          `json:"privateKey,omitempty"`
	KeyPairs   []KeyPair       `json:"keyPairs,omitempty"`
	Mnemonic   string          `json:"mnemonic,omitempty"`
	Path       string          `json:"path,omitempty"`
	Keystore   json.RawMessage `json:"keystore,omitempty" swaggertype:"object"`
}

// QRResponse represents response for GET /wallets/qr
type QRResponse struct {
	WalletID string `json:"walletId"`
	Address  string `json:"address"`
	URI      string `json:"uri"`
	QRCode   string `json:"qrCode"`
}

// BTCModeRequest represents request for POST /wallets/btc/mode
type BTCModeRequest struct {
	WalletID string `json:"walletId"`
	SegWit   SegWit `json:"segWit" example:"P2WPKH"`
}

// EOSAccountRequest represents request for POST /wallets/eos/account
type EOSAccountRequest struct {
	WalletID    string `json:"walletId"`
	AccountName string `json:"accountName"`
}

// EOSSignRequest represents request for POST /wallets/eos/sign
type EOSSignRequest struct {
	WalletID     string           `json:"walletId"`
	Transactions []EOSTransaction `json:"transactions"`
}

// EOSECSignRequest represents request for POST /wallets/eos/ecsign
type EOSECSignRequest struct {
	WalletID  string `json:"walletId"`
	PublicKey string `json:"publicKey"`
	Data      string `json:"data"`
	IsHex     bool   `json:"isHex"`
}

// EOSECRecoverRequest represents request for POST /wallets/eos/ecrecover
type EOSECRecoverRequest struct {
	Data      string `json:"data"`
	IsHex     bool   `json:"isHex"`
	Signature string `json:"signature"`
}

// Validate rejects data flagged as hex that does not decode
func (r EOSECSignRequest) Validate() error {
	return validateSignData(r.Data, r.IsHex)
}

// Validate rejects data flagged as hex that does not decode
func (r EOSECRecoverRequest) Validate() error {
	return validateSignData(r.Data, r.IsHex)
}

func validateSignData(data string, isHex bool) error {
	if isHex && !common.IsHex(data) {
		return fmt.Errorf("%w: data is not hex", ErrParam)
	}
	return nil
}

// PublicKeyResponse represents response for POST /wallets/eos/ecrecover
type PublicKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

// ETHPersonalSignRequest represents request for POST /wallets/eth/personal-sign
type ETHPersonalSignRequest struct {
	WalletID string `json:"walletId"`
	Message  string `json:"message"`
}

// SignatureResponse represents a single signature result
type SignatureResponse struct {
	Signature string `json:"signature"`
}

// IPFSEncryptRequest represents request for POST /identity/ipfs/encrypt
type IPFSEncryptRequest struct {
	Content string `json:"content"`
}

// IPFSDecryptRequest represents request for POST /identity/ipfs/decrypt
type IPFSDecryptRequest struct {
	Payload string `json:"payload"`
}

// IPFSResponse carries the sealed payload or the opened content
type IPFSResponse struct {
	Content string `json:"content,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// AuthSignRequest represents request for POST /identity/auth/sign
type AuthSignRequest struct {
	AccessTime  int64  `json:"accessTime"`
	DeviceToken string `json:"deviceToken"`
}
