package keystore

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/ethereum"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// ETHKeystore protects one imported ethereum private key
type ETHKeystore struct {
	base
}

// NewETHKeystore encrypts a hex private key (0x optional) under password
// password must be []byte for security (caller should zero it after use)
func NewETHKeystore(password []byte, privateKey string, meta model.WalletMeta, id string) (*ETHKeystore, error) {
	key, err := ethereum.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	address, err := ethereum.PrivateKeyToAddress(key)
	if err != nil {
		return nil, err
	}

	c, derivedKey, err := crypto.NewCrypto(password, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %w", err)
	}
	clear(derivedKey)

	return &ETHKeystore{base{
		id:      idOrNew(id),
		version: VersionV3,
		address: address,
		crypto:  c,
		meta:    meta,
	}}, nil
}

// ParseETHKeystore reads a V3 keystore. Keystores written by other wallets have
// no imTokenMeta and default to an ethereum keystore import.
func ParseETHKeystore(data []byte) (*ETHKeystore, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	return parseETH(raw)
}

func parseETH(raw *rawKeystore) (*ETHKeystore, error) {
	b, err := raw.parseBase(VersionV3, model.ChainETH, model.SourceKeystore)
	if err != nil {
		return nil, err
	}
	return &ETHKeystore{b}, nil
}

// SetMeta replaces the metadata, used when a foreign keystore is imported
func (k *ETHKeystore) SetMeta(meta model.WalletMeta) {
	k.meta = meta
}

// RenewID replaces the id with a fresh UUIDv4. Foreign keystores may carry
// ids that cannot name a wallet record.
func (k *ETHKeystore) RenewID() {
	k.id = NewID()
}

// DecryptPrivateKey returns the private key as lowercase hex without 0x
func (k *ETHKeystore) DecryptPrivateKey(s *crypto.Session) (string, error) {
	return decryptHex(&k.base, s)
}

// ExportV3 writes the keystore without imTokenMeta
func (k *ETHKeystore) ExportV3() ([]byte, error) {
	return json.Marshal(k.standardJSON())
}

// ToMap returns the public view of the wallet
func (k *ETHKeystore) ToMap() map[string]any {
	return k.baseMap()
}

// MarshalJSON writes the persisted form
func (k *ETHKeystore) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.withMeta())
}

// ETHMnemonicKeystore protects the key at mnemonicPath together with the mnemonic
type ETHMnemonicKeystore struct {
	base
	mnemonicPath string
	encMnemonic  *crypto.EncryptedMessage
}

type ethMnemonicJSON struct {
	standardJSON
	MnemonicPath string                   `json:"mnemonicPath"`
	EncMnemonic  *crypto.EncryptedMessage `json:"encMnemonic"`
}

// NewETHMnemonicKeystore derives the key at path from mnemonic and encrypts it
// together with the mnemonic under one scrypt derivation
// password must be []byte for security (caller should zero it after use)
func NewETHMnemonicKeystore(password []byte, mnemonic, path string, meta model.WalletMeta, id string) (*ETHMnemonicKeystore, error) {
	mnemonic = hd.NormalizeMnemonic(mnemonic)
	seed, err := hd.Seed(mnemonic)
	if err != nil {
		return nil, err
	}
	defer clear(seed)

	key, err := hd.DerivePrivateKey(seed, path)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	address, err := ethereum.PrivateKeyToAddress(key)
	if err != nil {
		return nil, err
	}

	c, derivedKey, err := crypto.NewCrypto(password, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt private key: %w", err)
	}
	defer clear(derivedKey)

	encMnemonic, err := crypto.NewEncryptedMessage(derivedKey, []byte(mnemonic), nil)
	if err != nil {
		return nil, err
	}

	return &ETHMnemonicKeystore{
		base: base{
			id:      idOrNew(id),
			version: VersionV3,
			address: address,
			crypto:  c,
			meta:    meta,
		},
		mnemonicPath: path,
		encMnemonic:  encMnemonic,
	}, nil
}

func parseETHMnemonic(raw *rawKeystore) (*ETHMnemonicKeystore, error) {
	if raw.EncMnemonic == nil || !raw.EncMnemonic.Valid() || raw.MnemonicPath == nil {
		return nil, model.ErrKeystoreInvalid
	}
	b, err := raw.parseBase(VersionV3, model.ChainETH, model.SourceKeystore)
	if err != nil {
		return nil, err
	}
	return &ETHMnemonicKeystore{
		base:         b,
		mnemonicPath: *raw.MnemonicPath,
		encMnemonic:  raw.EncMnemonic,
	}, nil
}

// MnemonicPath is the path the key was derived at
func (k *ETHMnemonicKeystore) MnemonicPath() string {
	return k.mnemonicPath
}

// DecryptPrivateKey returns the private key as lowercase hex without 0x
func (k *ETHMnemonicKeystore) DecryptPrivateKey(s *crypto.Session) (string, error) {
	return decryptHex(&k.base, s)
}

// DecryptMnemonic returns the mnemonic the key was derived from
func (k *ETHMnemonicKeystore) DecryptMnemonic(s *crypto.Session) (string, error) {
	return decryptMnemonic(&k.base, k.encMnemonic, s)
}

// ExportV3 writes the keystore without imTokenMeta
func (k *ETHMnemonicKeystore) ExportV3() ([]byte, error) {
	return json.Marshal(k.standardJSON())
}

// ToMap returns the public view of the wallet
func (k *ETHMnemonicKeystore) ToMap() map[string]any {
	return k.baseMap()
}

// MarshalJSON writes the persisted form
func (k *ETHMnemonicKeystore) MarshalJSON() ([]byte, error) {
	return json.Marshal(ethMnemonicJSON{
		standardJSON: k.withMeta(),
		MnemonicPath: k.mnemonicPath,
		EncMnemonic:  k.encMnemonic,
	})
}

func decryptHex(b *base, s *crypto.Session) (string, error) {
	secret, err := b.decrypt(s)
	if err != nil {
		return "", err
	}
	defer clear(secret)
	return hex.EncodeToString(secret), nil
}

// decryptString returns the primary secret of b read as text
func decryptString(b *base, s *crypto.Session) (string, error) {
	secret, err := b.decrypt(s)
	if err != nil {
		return "", err
	}
	defer clear(secret)
	return string(secret), nil
}

func decryptMnemonic(b *base, encMnemonic *crypto.EncryptedMessage, s *crypto.Session) (string, error) {
	if !encMnemonic.Valid() {
		return "", model.ErrOperationUnsupported
	}
	if !s.Opens(b.crypto) {
		return "", model.ErrPasswordIncorrect
	}
	mnemonic, err := s.DecryptMessage(encMnemonic)
	if err != nil {
		return "", err
	}
	defer clear(mnemonic)
	return string(mnemonic), nil
}
