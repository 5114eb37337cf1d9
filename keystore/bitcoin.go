package keystore

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/AlexZinkM/multichain-wallet/bitcoin"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/validator"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const externalAddressPath = "0/1"

// BTCKeystore protects one imported WIF key
type BTCKeystore struct {
	base
}

// NewBTCKeystore validates wif for the network and address mode of meta and
// encrypts it under password
// password must be []byte for security (caller should zero it after use)
func NewBTCKeystore(password []byte, wif string, meta model.WalletMeta, id string) (*BTCKeystore, error) {
	if err := validator.ValidatePrivateKey(wif, model.ChainBTC, meta.Network, meta.IsSegWit()); err != nil {
		return nil, err
	}
	decoded, err := bitcoin.DecodeWIF(wif)
	if err != nil {
		return nil, err
	}
	address, err := bitcoin.WIFAddress(decoded, meta)
	if err != nil {
		return nil, err
	}

	c, derivedKey, err := crypto.NewCrypto(password, []byte(wif))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt wif: %w", err)
	}
	clear(derivedKey)

	return &BTCKeystore{base{
		id:      idOrNew(id),
		version: VersionV3,
		address: address,
		crypto:  c,
		meta:    meta,
	}}, nil
}

func parseBTC(raw *rawKeystore) (*BTCKeystore, error) {
	b, err := raw.parseBase(VersionV3, model.ChainBTC, model.SourceKeystore)
	if err != nil {
		return nil, err
	}
	return &BTCKeystore{b}, nil
}

// DecryptWIF returns the key encoded for the wallet network
func (k *BTCKeystore) DecryptWIF(s *crypto.Session) (string, error) {
	stored, err := decryptString(&k.base, s)
	if err != nil {
		return "", err
	}
	wif, err := bitcoin.DecodeWIF(stored)
	if err != nil {
		return "", model.ErrKeystoreContainsInvalidKey
	}
	wif, err = bitcoin.WIFForNetwork(wif, k.meta.Network)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

// ToMap returns the public view of the wallet
func (k *BTCKeystore) ToMap() map[string]any {
	m := k.baseMap()
	m["segWit"] = string(segWitOf(k.meta))
	return m
}

// MarshalJSON writes the persisted form
func (k *BTCKeystore) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.withMeta())
}

var (
	xpubMu  sync.RWMutex
	xpubKey = make([]byte, 16)
	xpubIV  = make([]byte, 16)
)

// SetXPubCipher sets the AES-128 key and iv used for encXPub. Both default to
// zero bytes.
func SetXPubCipher(key, iv []byte) error {
	if len(key) != 16 || len(iv) != 16 {
		return fmt.Errorf("xpub key and iv must be 16 bytes: %w", model.ErrParam)
	}
	xpubMu.Lock()
	defer xpubMu.Unlock()
	xpubKey = append([]byte{}, key...)
	xpubIV = append([]byte{}, iv...)
	return nil
}

// SetXPubCipherHex is SetXPubCipher for hex encoded values
func SetXPubCipherHex(key, iv string) error {
	rawKey, err := hex.DecodeString(key)
	if err != nil {
		return fmt.Errorf("invalid xpub key: %w", model.ErrParam)
	}
	rawIV, err := hex.DecodeString(iv)
	if err != nil {
		return fmt.Errorf("invalid xpub iv: %w", model.ErrParam)
	}
	return SetXPubCipher(rawKey, rawIV)
}

// BTCMnemonicKeystore protects a BIP-44 account extended key together with the mnemonic
type BTCMnemonicKeystore struct {
	base
	mnemonicPath string
	encMnemonic  *crypto.EncryptedMessage
	xpub         string
}

type btcMnemonicJSON struct {
	standardJSON
	MnemonicPath string                   `json:"mnemonicPath"`
	EncMnemonic  *crypto.EncryptedMessage `json:"encMnemonic"`
	XPub         string                   `json:"xpub"`
}

// NewBTCMnemonicKeystore derives the account key at path (m/44'/0'/0' style)
// for the network of meta. The address is the account's 0/0 child. An empty
// mnemonic is replaced by a fresh one.
// password must be []byte for security (caller should zero it after use)
func NewBTCMnemonicKeystore(password []byte, mnemonic, path string, meta model.WalletMeta, id string) (*BTCMnemonicKeystore, error) {
	if mnemonic == "" {
		var err error
		if mnemonic, err = hd.NewMnemonic(); err != nil {
			return nil, err
		}
	}
	mnemonic = hd.NormalizeMnemonic(mnemonic)
	seed, err := hd.Seed(mnemonic)
	if err != nil {
		return nil, err
	}
	defer clear(seed)

	master, err := hd.NewMasterExtendedKey(seed, bitcoin.NetParams(meta.Network))
	if err != nil {
		return nil, err
	}
	account, err := hd.DeriveExtendedKey(master, path)
	if err != nil {
		return nil, err
	}
	first, err := hd.DeriveExtendedKey(account, "0/0")
	if err != nil {
		return nil, err
	}
	address, err := extendedKeyAddress(first, meta)
	if err != nil {
		return nil, err
	}
	xpub, err := account.Neuter()
	if err != nil {
		return nil, fmt.Errorf("failed to neuter account key: %w", err)
	}

	c, derivedKey, err := crypto.NewCrypto(password, []byte(account.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt account key: %w", err)
	}
	defer clear(derivedKey)

	encMnemonic, err := crypto.NewEncryptedMessage(derivedKey, []byte(mnemonic), nil)
	if err != nil {
		return nil, err
	}

	return &BTCMnemonicKeystore{
		base: base{
			id:      idOrNew(id),
			version: VersionBTCMnemonic,
			address: address,
			crypto:  c,
			meta:    meta,
		},
		mnemonicPath: path,
		encMnemonic:  encMnemonic,
		xpub:         xpub.String(),
	}, nil
}

func parseBTCMnemonic(raw *rawKeystore) (*BTCMnemonicKeystore, error) {
	version := VersionBTCMnemonic
	if raw.Version != nil {
		version = *raw.Version
	}
	c, err := raw.parseCrypto(true)
	if err != nil {
		return nil, err
	}
	if raw.ID == nil || raw.MnemonicPath == nil || raw.EncMnemonic == nil || !raw.EncMnemonic.Valid() ||
		raw.Address == nil || raw.XPub == nil {
		return nil, model.ErrKeystoreInvalid
	}
	meta, err := raw.parseMeta(model.ChainBTC, model.SourceNewIdentity)
	if err != nil {
		return nil, err
	}
	return &BTCMnemonicKeystore{
		base: base{
			id:      *raw.ID,
			version: version,
			address: *raw.Address,
			crypto:  c,
			meta:    meta,
		},
		mnemonicPath: *raw.MnemonicPath,
		encMnemonic:  raw.EncMnemonic,
		xpub:         *raw.XPub,
	}, nil
}

// MnemonicPath is the account path
func (k *BTCMnemonicKeystore) MnemonicPath() string {
	return k.mnemonicPath
}

// XPub is the account extended public key
func (k *BTCMnemonicKeystore) XPub() string {
	return k.xpub
}

// DecryptXPrv returns the account extended private key
func (k *BTCMnemonicKeystore) DecryptXPrv(s *crypto.Session) (string, error) {
	return decryptString(&k.base, s)
}

// AccountKey returns the decrypted account extended key, used to sign spends
func (k *BTCMnemonicKeystore) AccountKey(s *crypto.Session) (*hdkeychain.ExtendedKey, error) {
	xprv, err := k.DecryptXPrv(s)
	if err != nil {
		return nil, err
	}
	key, err := hdkeychain.NewKeyFromString(xprv)
	if err != nil || !key.IsPrivate() {
		return nil, model.ErrKeystoreContainsInvalidKey
	}
	return key, nil
}

// DecryptMnemonic returns the mnemonic of the account
func (k *BTCMnemonicKeystore) DecryptMnemonic(s *crypto.Session) (string, error) {
	return decryptMnemonic(&k.base, k.encMnemonic, s)
}

// EncryptedXPub is base64(AES-128-CBC-PKCS7(xpub)) under the key set by SetXPubCipher
func (k *BTCMnemonicKeystore) EncryptedXPub() (string, error) {
	xpubMu.RLock()
	defer xpubMu.RUnlock()
	enc, err := crypto.EncryptCBCPKCS7(xpubKey, xpubIV, []byte(k.xpub))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt xpub: %w", err)
	}
	return base64.StdEncoding.EncodeToString(enc), nil
}

// CalcExternalAddress derives the address of the external chain child 0/index
// from the xpub alone
func (k *BTCMnemonicKeystore) CalcExternalAddress(index uint32) (string, error) {
	account, err := hdkeychain.NewKeyFromString(k.xpub)
	if err != nil {
		return "", fmt.Errorf("invalid xpub: %w", model.ErrKeystoreInvalid)
	}
	child, err := hd.DeriveExtendedKey(account, fmt.Sprintf("0/%d", index))
	if err != nil {
		return "", err
	}
	return extendedKeyAddress(child, k.meta)
}

// ToMap returns the public view of the wallet including the second external
// address and the encrypted xpub
func (k *BTCMnemonicKeystore) ToMap() map[string]any {
	m := k.baseMap()
	m["segWit"] = string(segWitOf(k.meta))
	if address, err := k.CalcExternalAddress(1); err == nil {
		m["externalAddress"] = map[string]any{
			"address":     address,
			"derivedPath": externalAddressPath,
			"type":        "EXTERNAL",
		}
	}
	if encXPub, err := k.EncryptedXPub(); err == nil {
		m["encXPub"] = encXPub
	}
	return m
}

// MarshalJSON writes the persisted form
func (k *BTCMnemonicKeystore) MarshalJSON() ([]byte, error) {
	return json.Marshal(btcMnemonicJSON{
		standardJSON: k.withMeta(),
		MnemonicPath: k.mnemonicPath,
		EncMnemonic:  k.encMnemonic,
		XPub:         k.xpub,
	})
}

func extendedKeyAddress(key *hdkeychain.ExtendedKey, meta model.WalletMeta) (string, error) {
	pub, err := key.ECPubKey()
	if err != nil {
		return "", fmt.Errorf("failed to get public key: %w", err)
	}
	return bitcoin.AddressForMeta(pub.SerializeCompressed(), meta)
}

func segWitOf(meta model.WalletMeta) model.SegWit {
	if meta.SegWit == "" {
		return model.SegWitNone
	}
	return meta.SegWit
}
