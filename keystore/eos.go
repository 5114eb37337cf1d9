package keystore

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/bitcoin"
	"github.com/AlexZinkM/multichain-wallet/eos"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/validator"
)

// EOSChainID is the chain id of the EOS mainnet
const EOSChainID = "aca376f206b8fc25a6ed44dbdc66547c36c6c33e3a119ffbeaef943642f0e906"

const (
	// sizes of the random filler the primary crypto of an EOS keystore protects
	mnemonicFillerLen   = 16
	privateKeyFillerLen = 128
)

// KeyPathPrivate is one encrypted EOS private key and where it came from
type KeyPathPrivate struct {
	Encrypted   *crypto.EncryptedMessage
	PublicKey   string
	Path        string
	DerivedMode string
}

type keyPathPrivateJSON struct {
	PrivateKey  *crypto.EncryptedMessage `json:"privateKey"`
	PublicKey   *string                  `json:"publicKey"`
	Path        *string                  `json:"path"`
	DerivedMode *string                  `json:"derivedMode"`
}

// MarshalJSON writes {privateKey, publicKey, path, derivedMode}
func (p KeyPathPrivate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PrivateKey  *crypto.EncryptedMessage `json:"privateKey"`
		PublicKey   string                   `json:"publicKey"`
		Path        string                   `json:"path"`
		DerivedMode string                   `json:"derivedMode"`
	}{p.Encrypted, p.PublicKey, p.Path, p.DerivedMode})
}

// EOSKeystore protects the keys of one EOS account, derived from a mnemonic or
// imported as WIFs. The address is the account name, empty until registered.
type EOSKeystore struct {
	base
	mnemonicPath    string
	encMnemonic     *crypto.EncryptedMessage
	keyPathPrivates []KeyPathPrivate
}

type eosJSON struct {
	standardJSON
	KeyPathPrivates []KeyPathPrivate         `json:"keyPathPrivates"`
	EncMnemonic     *crypto.EncryptedMessage `json:"encMnemonic"`
	MnemonicPath    string                   `json:"mnemonicPath"`
}

// NewEOSKeystoreFromMnemonic derives one key per comma separated path. Every
// owner or active permission must name one of the derived keys.
// password must be []byte for security (caller should zero it after use)
func NewEOSKeystoreFromMnemonic(password []byte, mnemonic, path, accountName string, permissions []model.EOSPermission, meta model.WalletMeta, id string) (*EOSKeystore, error) {
	if err := validator.ValidateEOSAccountName(accountName); err != nil {
		return nil, err
	}
	mnemonic = hd.NormalizeMnemonic(mnemonic)
	seed, err := hd.Seed(mnemonic)
	if err != nil {
		return nil, err
	}
	defer clear(seed)

	paths := strings.Split(path, hd.PathSeparator)
	keys := make([][]byte, 0, len(paths))
	defer func() {
		for _, k := range keys {
			clear(k)
		}
	}()
	for i, p := range paths {
		paths[i] = strings.TrimSpace(p)
		key, err := hd.DerivePrivateKey(seed, paths[i])
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	c, derivedKey, err := newFillerCrypto(password, mnemonicFillerLen)
	if err != nil {
		return nil, err
	}
	defer clear(derivedKey)

	encMnemonic, err := crypto.NewEncryptedMessage(derivedKey, []byte(mnemonic), nil)
	if err != nil {
		return nil, err
	}

	keyPathPrivates := make([]KeyPathPrivate, 0, len(keys))
	derived := make(map[string]bool, len(keys))
	for i, key := range keys {
		kp, err := newKeyPathPrivate(derivedKey, key, paths[i], DerivedModePath)
		if err != nil {
			return nil, err
		}
		derived[kp.PublicKey] = true
		keyPathPrivates = append(keyPathPrivates, kp)
	}
	for _, permission := range permissions {
		if permission.Permission != model.EOSPermissionOwner && permission.Permission != model.EOSPermissionActive {
			continue
		}
		if !derived[permission.PublicKey] {
			return nil, model.ErrEOSPrivatePublicNotMatch
		}
	}

	return &EOSKeystore{
		base: base{
			id:      idOrNew(id),
			version: VersionEOS,
			address: accountName,
			crypto:  c,
			meta:    meta,
		},
		mnemonicPath:    path,
		encMnemonic:     encMnemonic,
		keyPathPrivates: keyPathPrivates,
	}, nil
}

// NewEOSKeystoreFromPrivateKeys imports WIF keys. The public key of every WIF
// must appear in permissions.
// password must be []byte for security (caller should zero it after use)
func NewEOSKeystoreFromPrivateKeys(password []byte, wifs []string, accountName string, permissions []model.EOSPermission, meta model.WalletMeta, id string) (*EOSKeystore, error) {
	if err := validator.ValidateEOSAccountName(accountName); err != nil {
		return nil, err
	}
	permitted := make(map[string]bool, len(permissions))
	for _, permission := range permissions {
		permitted[permission.PublicKey] = true
	}

	keys := make([][]byte, 0, len(wifs))
	defer func() {
		for _, k := range keys {
			clear(k)
		}
	}()
	for _, wif := range wifs {
		key, err := eos.PrivateKeyFromWIF(wif)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		publicKey, err := eos.PublicKeyFromPrivate(key)
		if err != nil {
			return nil, err
		}
		if !permitted[publicKey] {
			return nil, model.ErrEOSPrivatePublicNotMatch
		}
	}

	c, derivedKey, err := newFillerCrypto(password, privateKeyFillerLen)
	if err != nil {
		return nil, err
	}
	defer clear(derivedKey)

	keyPathPrivates := make([]KeyPathPrivate, 0, len(keys))
	for _, key := range keys {
		kp, err := newKeyPathPrivate(derivedKey, key, "", DerivedModeImported)
		if err != nil {
			return nil, err
		}
		keyPathPrivates = append(keyPathPrivates, kp)
	}

	return &EOSKeystore{
		base: base{
			id:      idOrNew(id),
			version: VersionEOS,
			address: accountName,
			crypto:  c,
			meta:    meta,
		},
		encMnemonic:     &crypto.EncryptedMessage{},
		keyPathPrivates: keyPathPrivates,
	}, nil
}

// newFillerCrypto creates the primary crypto of an EOS keystore over random
// bytes. It only gates the password; the keys live in keyPathPrivates.
func newFillerCrypto(password []byte, size int) (*crypto.Crypto, []byte, error) {
	filler := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, filler); err != nil {
		return nil, nil, fmt.Errorf("failed to generate filler: %w", err)
	}
	defer clear(filler)
	c, derivedKey, err := crypto.NewCrypto(password, filler)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create crypto: %w", err)
	}
	return c, derivedKey, nil
}

func newKeyPathPrivate(derivedKey, key []byte, path, mode string) (KeyPathPrivate, error) {
	publicKey, err := eos.PublicKeyFromPrivate(key)
	if err != nil {
		return KeyPathPrivate{}, err
	}
	encrypted, err := crypto.NewEncryptedMessage(derivedKey, key, nil)
	if err != nil {
		return KeyPathPrivate{}, err
	}
	return KeyPathPrivate{
		Encrypted:   encrypted,
		PublicKey:   publicKey,
		Path:        path,
		DerivedMode: mode,
	}, nil
}

func parseEOS(raw *rawKeystore) (*EOSKeystore, error) {
	b, err := raw.parseBase(VersionEOS, model.ChainEOS, model.SourceKeystore)
	if err != nil {
		return nil, err
	}
	k := &EOSKeystore{
		base:        b,
		encMnemonic: &crypto.EncryptedMessage{},
	}
	if raw.MnemonicPath != nil {
		k.mnemonicPath = *raw.MnemonicPath
	}
	if raw.EncMnemonic != nil && raw.EncMnemonic.Valid() {
		k.encMnemonic = raw.EncMnemonic
	}

	// entries without a key or public key are skipped
	for _, item := range raw.KeyPathPrivates {
		var entry keyPathPrivateJSON
		if err := json.Unmarshal(item, &entry); err != nil || entry.PrivateKey == nil ||
			!entry.PrivateKey.Valid() || entry.PublicKey == nil {
			continue
		}
		kp := KeyPathPrivate{
			Encrypted: entry.PrivateKey,
			PublicKey: *entry.PublicKey,
		}
		if entry.Path != nil {
			kp.Path = *entry.Path
		}
		switch {
		case entry.DerivedMode != nil:
			kp.DerivedMode = *entry.DerivedMode
		case k.mnemonicPath == "":
			kp.DerivedMode = DerivedModeImported
		default:
			kp.DerivedMode = DerivedModeHD
		}
		k.keyPathPrivates = append(k.keyPathPrivates, kp)
	}
	return k, nil
}

// MnemonicPath is the comma separated list of derivation paths, empty for imported keys
func (k *EOSKeystore) MnemonicPath() string {
	return k.mnemonicPath
}

// KeyPathPrivates returns the encrypted keys
func (k *EOSKeystore) KeyPathPrivates() []KeyPathPrivate {
	return append([]KeyPathPrivate(nil), k.keyPathPrivates...)
}

// PublicKeys lists the public keys the keystore can sign for
func (k *EOSKeystore) PublicKeys() []string {
	out := make([]string, 0, len(k.keyPathPrivates))
	for _, kp := range k.keyPathPrivates {
		out = append(out, kp.PublicKey)
	}
	return out
}

// DecryptMnemonic returns the mnemonic of a mnemonic derived keystore
func (k *EOSKeystore) DecryptMnemonic(s *crypto.Session) (string, error) {
	return decryptMnemonic(&k.base, k.encMnemonic, s)
}

// DecryptPrivateKey returns the raw private key for publicKey. The caller must clear it.
func (k *EOSKeystore) DecryptPrivateKey(publicKey string, s *crypto.Session) ([]byte, error) {
	if !s.Opens(k.crypto) {
		return nil, model.ErrPasswordIncorrect
	}
	idx := slices.IndexFunc(k.keyPathPrivates, func(kp KeyPathPrivate) bool {
		return kp.PublicKey == publicKey
	})
	if idx < 0 {
		return nil, model.ErrEOSPrivatePublicNotMatch
	}
	return s.DecryptMessage(k.keyPathPrivates[idx].Encrypted)
}

// ExportKeyPairs decrypts every key as a WIF with its public key
func (k *EOSKeystore) ExportKeyPairs(s *crypto.Session) ([]model.KeyPair, error) {
	if !s.Opens(k.crypto) {
		return nil, model.ErrPasswordIncorrect
	}
	pairs := make([]model.KeyPair, 0, len(k.keyPathPrivates))
	for _, kp := range k.keyPathPrivates {
		key, err := s.DecryptMessage(kp.Encrypted)
		if err != nil {
			return nil, err
		}
		wif, err := eos.WIF(key)
		clear(key)
		if err != nil {
			return nil, model.ErrKeystoreContainsInvalidKey
		}
		pairs = append(pairs, model.KeyPair{PrivateKey: wif, PublicKey: kp.PublicKey})
	}
	return pairs, nil
}

// KeyResolver returns the signer key lookup of this keystore. It is valid
// until s is closed.
func (k *EOSKeystore) KeyResolver(s *crypto.Session) eos.KeyResolver {
	return eos.KeyResolverFunc(func(publicKey string) ([]byte, error) {
		return k.DecryptPrivateKey(publicKey, s)
	})
}

// SetAccountName binds the keystore to an account. A different name cannot
// replace one already set.
func (k *EOSKeystore) SetAccountName(name string) error {
	return setAccountName(&k.base, name)
}

// ToMap returns the public view of the wallet including its public keys
func (k *EOSKeystore) ToMap() map[string]any {
	m := k.baseMap()
	publicKeys := make([]map[string]any, 0, len(k.keyPathPrivates))
	for _, kp := range k.keyPathPrivates {
		publicKeys = append(publicKeys, map[string]any{
			"publicKey":   kp.PublicKey,
			"path":        kp.Path,
			"derivedMode": kp.DerivedMode,
		})
	}
	m["publicKeys"] = publicKeys
	return m
}

// MarshalJSON writes the persisted form
func (k *EOSKeystore) MarshalJSON() ([]byte, error) {
	keyPathPrivates := k.keyPathPrivates
	if keyPathPrivates == nil {
		keyPathPrivates = []KeyPathPrivate{}
	}
	return json.Marshal(eosJSON{
		standardJSON:    k.withMeta(),
		KeyPathPrivates: keyPathPrivates,
		EncMnemonic:     k.encMnemonic,
		MnemonicPath:    k.mnemonicPath,
	})
}

// EOSLegacyKeystore protects a single WIF imported before the EOS mainnet
// launch. The address is the account name.
type EOSLegacyKeystore struct {
	base
}

// NewEOSLegacyKeystore encrypts wif for accountName
// password must be []byte for security (caller should zero it after use)
func NewEOSLegacyKeystore(password []byte, wif, accountName string, meta model.WalletMeta, id string) (*EOSLegacyKeystore, error) {
	if err := validator.ValidatePrivateKey(wif, model.ChainEOS, meta.Network, false); err != nil {
		return nil, err
	}
	if err := validator.ValidateEOSAccountName(accountName); err != nil {
		return nil, err
	}
	c, derivedKey, err := crypto.NewCrypto(password, []byte(wif))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt wif: %w", err)
	}
	clear(derivedKey)

	return &EOSLegacyKeystore{base{
		id:      idOrNew(id),
		version: VersionV3,
		address: accountName,
		crypto:  c,
		meta:    meta,
	}}, nil
}

func parseEOSLegacy(raw *rawKeystore) (*EOSLegacyKeystore, error) {
	b, err := raw.parseBase(VersionV3, model.ChainEOS, model.SourceKeystore)
	if err != nil {
		return nil, err
	}
	return &EOSLegacyKeystore{b}, nil
}

// DecryptWIF returns the key as a mainnet WIF
func (k *EOSLegacyKeystore) DecryptWIF(s *crypto.Session) (string, error) {
	stored, err := decryptString(&k.base, s)
	if err != nil {
		return "", err
	}
	wif, err := bitcoin.DecodeWIF(stored)
	if err != nil {
		return "", model.ErrKeystoreContainsInvalidKey
	}
	wif, err = bitcoin.WIFForNetwork(wif, model.NetworkMainnet)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}

// ExportKeyPairs returns the single key with its EOS public key
func (k *EOSLegacyKeystore) ExportKeyPairs(s *crypto.Session) ([]model.KeyPair, error) {
	wif, err := k.DecryptWIF(s)
	if err != nil {
		return nil, err
	}
	key, err := eos.PrivateKeyFromWIF(wif)
	if err != nil {
		return nil, model.ErrKeystoreContainsInvalidKey
	}
	defer clear(key)
	publicKey, err := eos.PublicKeyFromPrivate(key)
	if err != nil {
		return nil, err
	}
	return []model.KeyPair{{PrivateKey: wif, PublicKey: publicKey}}, nil
}

// KeyResolver returns the stored key whatever public key is requested
func (k *EOSLegacyKeystore) KeyResolver(s *crypto.Session) eos.KeyResolver {
	return eos.KeyResolverFunc(func(string) ([]byte, error) {
		wif, err := k.DecryptWIF(s)
		if err != nil {
			return nil, err
		}
		return eos.PrivateKeyFromWIF(wif)
	})
}

// SetAccountName binds the keystore to an account
func (k *EOSLegacyKeystore) SetAccountName(name string) error {
	return setAccountName(&k.base, name)
}

// ToMap returns the public view of the wallet
func (k *EOSLegacyKeystore) ToMap() map[string]any {
	return k.baseMap()
}

// MarshalJSON writes the persisted form
func (k *EOSLegacyKeystore) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.withMeta())
}

// EOSKeyResolver is implemented by both EOS keystores
type EOSKeyResolver interface {
	KeyResolver(s *crypto.Session) eos.KeyResolver
}

func setAccountName(b *base, name string) error {
	if err := validator.ValidateEOSAccountName(name); err != nil {
		return err
	}
	if b.address != "" && b.address != name {
		return model.ErrEOSAccountNameAlreadySet
	}
	b.address = name
	return nil
}
