package keystore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/AlexZinkM/multichain-wallet/bitcoin"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	btcbase58 "github.com/btcsuite/btcd/btcutil/base58"
	"github.com/mr-tron/base58"
)

const (
	backupKeyMainnet   = "Automatic Backup Key Mainnet"
	backupKeyTestnet   = "Automatic Backup Key Testnet"
	authKeyLabel       = "Authentication Key"
	encryptionKeyLabel = "Encryption Key"

	// identifierMagic makes every identifier start with "im"
	identifierMagic   = "\x0f\xdc\x0c"
	identifierVersion = 0x02

	// multihash header of a sha2-256 digest
	multihashSHA256 = 0x12
	multihashLen    = 0x20
)

// IdentityKeystore is the master keystore of an identity: the BIP-32 root key,
// the mnemonic, the authentication key and the ids of the identity's wallets
type IdentityKeystore struct {
	base
	identifier  string
	ipfsID      string
	encKey      string
	encMnemonic *crypto.EncryptedMessage
	encAuthKey  *crypto.EncryptedMessage
	walletIDs   []string
}

type identityJSON struct {
	ID          string                   `json:"id"`
	Identifier  string                   `json:"identifier"`
	IPFSID      string                   `json:"ipfsId"`
	EncKey      string                   `json:"encKey"`
	Version     int                      `json:"version"`
	EncMnemonic *crypto.EncryptedMessage `json:"encMnemonic"`
	EncAuthKey  *crypto.EncryptedMessage `json:"encAuthKey"`
	Crypto      *crypto.Crypto           `json:"crypto"`
	WalletIDs   []string                 `json:"walletIds"`
	Meta        model.WalletMeta         `json:"imTokenMeta"`
}

// identityKeys are the keys derived from the master private key
type identityKeys struct {
	authKey *btcec.PrivateKey
	encKey  []byte
}

func deriveIdentityKeys(masterKey []byte, network model.Network) identityKeys {
	label := backupKeyMainnet
	if network == model.NetworkTestnet {
		label = backupKeyTestnet
	}
	backupKey := crypto.HMACSHA256(masterKey, []byte(label))
	defer clear(backupKey)

	authKey := crypto.HMACSHA256(backupKey, []byte(authKeyLabel))
	defer clear(authKey)
	priv, _ := btcec.PrivKeyFromBytes(authKey)

	return identityKeys{
		authKey: priv,
		encKey:  crypto.HMACSHA256(backupKey, []byte(encryptionKeyLabel)),
	}
}

// Identifier is Base58Check(magic || network || version || hash160(auth public key))
func Identifier(authPublicKey *btcec.PublicKey, network model.Network) string {
	var networkHeader byte
	if network == model.NetworkTestnet {
		networkHeader = 111
	}
	payload := make([]byte, 0, 24)
	payload = append(payload, identifierMagic[1:]...)
	payload = append(payload, networkHeader, identifierVersion)
	payload = append(payload, btcutil.Hash160(authPublicKey.SerializeCompressed())...)
	return btcbase58.CheckEncode(payload, identifierMagic[0])
}

// IPFSID is the base58 sha2-256 multihash of the uncompressed public key
func IPFSID(publicKey *btcec.PublicKey) string {
	digest := sha256.Sum256(publicKey.SerializeUncompressed())
	return base58.Encode(append([]byte{multihashSHA256, multihashLen}, digest[:]...))
}

// NewIdentityKeystore builds the master keystore of mnemonic for the network of meta
// password must be []byte for security (caller should zero it after use)
func NewIdentityKeystore(password []byte, mnemonic string, meta model.WalletMeta) (*IdentityKeystore, error) {
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
	masterPriv, err := master.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get master key: %w", err)
	}
	masterKey := masterPriv.Serialize()
	defer clear(masterKey)

	keys := deriveIdentityKeys(masterKey, meta.Network)
	defer clear(keys.encKey)
	authKey := keys.authKey.Serialize()
	defer clear(authKey)
	_, encPub := btcec.PrivKeyFromBytes(keys.encKey)

	c, derivedKey, err := crypto.NewCrypto(password, []byte(master.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt master key: %w", err)
	}
	defer clear(derivedKey)

	encMnemonic, err := crypto.NewEncryptedMessage(derivedKey, []byte(mnemonic), nil)
	if err != nil {
		return nil, err
	}
	encAuthKey, err := crypto.NewEncryptedMessage(derivedKey, authKey, nil)
	if err != nil {
		return nil, err
	}

	identifier := Identifier(keys.authKey.PubKey(), meta.Network)
	return &IdentityKeystore{
		base: base{
			id:      NewID(),
			version: VersionIdentity,
			address: identifier,
			crypto:  c,
			meta:    meta,
		},
		identifier:  identifier,
		ipfsID:      IPFSID(encPub),
		encKey:      hex.EncodeToString(keys.encKey),
		encMnemonic: encMnemonic,
		encAuthKey:  encAuthKey,
		walletIDs:   []string{},
	}, nil
}

// ParseIdentityKeystore reads a persisted identity keystore
func ParseIdentityKeystore(data []byte) (*IdentityKeystore, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	version := VersionIdentity
	if raw.Version != nil {
		version = *raw.Version
	}
	c, err := raw.parseCrypto(true)
	if err != nil {
		return nil, err
	}
	if raw.EncMnemonic == nil || !raw.EncMnemonic.Valid() || raw.EncAuthKey == nil || !raw.EncAuthKey.Valid() ||
		raw.Identifier == nil || raw.IPFSID == nil || raw.EncKey == nil || raw.WalletIDs == nil ||
		len(raw.Meta) == 0 {
		return nil, model.ErrKeystoreInvalid
	}
	var meta model.WalletMeta
	if err := json.Unmarshal(raw.Meta, &meta); err != nil {
		return nil, model.ErrKeystoreInvalid
	}
	id := ""
	if raw.ID != nil {
		id = *raw.ID
	}

	return &IdentityKeystore{
		base: base{
			id:      idOrNew(id),
			version: version,
			address: *raw.Identifier,
			crypto:  c,
			meta:    meta,
		},
		identifier:  *raw.Identifier,
		ipfsID:      *raw.IPFSID,
		encKey:      *raw.EncKey,
		encMnemonic: raw.EncMnemonic,
		encAuthKey:  raw.EncAuthKey,
		walletIDs:   raw.WalletIDs,
	}, nil
}

// Identifier is the "im..." Base58Check identity id
func (k *IdentityKeystore) Identifier() string {
	return k.identifier
}

// IPFSID is the id backups are published under
func (k *IdentityKeystore) IPFSID() string {
	return k.ipfsID
}

// EncKey returns the backup encryption key. The caller must clear it.
func (k *IdentityKeystore) EncKey() ([]byte, error) {
	key, err := hex.DecodeString(k.encKey)
	if err != nil || len(key) != sha256.Size {
		return nil, model.ErrKeystoreInvalid
	}
	return key, nil
}

// WalletIDs returns the ids of the identity's wallets in order
func (k *IdentityKeystore) WalletIDs() []string {
	return slices.Clone(k.walletIDs)
}

// AppendWalletID records a new wallet id
func (k *IdentityKeystore) AppendWalletID(id string) {
	k.walletIDs = append(k.walletIDs, id)
}

// RemoveWalletID drops id and reports whether it was present
func (k *IdentityKeystore) RemoveWalletID(id string) bool {
	idx := slices.Index(k.walletIDs, id)
	if idx < 0 {
		return false
	}
	k.walletIDs = slices.Delete(k.walletIDs, idx, idx+1)
	return true
}

// SetWalletIDs replaces the wallet id list
func (k *IdentityKeystore) SetWalletIDs(ids []string) {
	k.walletIDs = slices.Clone(ids)
}

// DecryptMnemonic returns the identity mnemonic
func (k *IdentityKeystore) DecryptMnemonic(s *crypto.Session) (string, error) {
	return decryptMnemonic(&k.base, k.encMnemonic, s)
}

// MnemonicPath is empty: the identity keeps the BIP-32 root
func (k *IdentityKeystore) MnemonicPath() string {
	return ""
}

// DecryptXPrv returns the master extended private key
func (k *IdentityKeystore) DecryptXPrv(s *crypto.Session) (string, error) {
	return decryptString(&k.base, s)
}

// DecryptAuthKey returns the raw authentication private key. The caller must clear it.
func (k *IdentityKeystore) DecryptAuthKey(s *crypto.Session) ([]byte, error) {
	if !s.Opens(k.crypto) {
		return nil, model.ErrPasswordIncorrect
	}
	return s.DecryptMessage(k.encAuthKey)
}

// ToMap returns the public identity view; wallets are added by the caller
func (k *IdentityKeystore) ToMap() map[string]any {
	return map[string]any{
		"identifier": k.identifier,
		"ipfsId":     k.ipfsID,
	}
}

// MarshalJSON writes the persisted form
func (k *IdentityKeystore) MarshalJSON() ([]byte, error) {
	walletIDs := k.walletIDs
	if walletIDs == nil {
		walletIDs = []string{}
	}
	return json.Marshal(identityJSON{
		ID:          k.id,
		Identifier:  k.identifier,
		IPFSID:      k.ipfsID,
		EncKey:      k.encKey,
		Version:     k.version,
		EncMnemonic: k.encMnemonic,
		EncAuthKey:  k.encAuthKey,
		Crypto:      k.crypto,
		WalletIDs:   walletIDs,
		Meta:        k.meta,
	})
}
