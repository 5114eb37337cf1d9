package keystore

import (
	"encoding/json"

	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/google/uuid"
)

// Keystore versions
const (
	VersionV3          = 3
	VersionBTCMnemonic = 44
	VersionIdentity    = 10000
	VersionEOS         = 10001
)

// EOS key derivation modes
const (
	DerivedModeImported = "IMPORTED"
	DerivedModePath     = "PATH_DIRECTLY"
	DerivedModeHD       = "HD_SHA256"
)

// Keystore is one of the persisted key containers of this package. The set is
// closed: every implementation lives here.
type Keystore interface {
	ID() string
	Version() int
	Address() string
	Meta() model.WalletMeta
	Crypto() *crypto.Crypto
	VerifyPassword(password []byte) bool
	Unlock(password []byte) (*crypto.Session, error)
	ToMap() map[string]any
	json.Marshaler

	sealed()
}

// The exporters below decrypt with a session opened by the keystore's own
// Unlock. A session of another keystore is rejected with ErrPasswordIncorrect.

// PrivateKeyExporter is implemented by keystores holding a raw ethereum key
type PrivateKeyExporter interface {
	DecryptPrivateKey(s *crypto.Session) (string, error)
}

// WIFExporter is implemented by keystores holding a single WIF key
type WIFExporter interface {
	DecryptWIF(s *crypto.Session) (string, error)
}

// XPrvExporter is implemented by keystores holding an extended private key
type XPrvExporter interface {
	DecryptXPrv(s *crypto.Session) (string, error)
}

// MnemonicExporter is implemented by keystores that keep their mnemonic
type MnemonicExporter interface {
	DecryptMnemonic(s *crypto.Session) (string, error)
	MnemonicPath() string
}

// KeyPairsExporter is implemented by EOS keystores
type KeyPairsExporter interface {
	ExportKeyPairs(s *crypto.Session) ([]model.KeyPair, error)
}

// V3Exporter writes the standard Web3 Secret Storage form, without metadata
type V3Exporter interface {
	ExportV3() ([]byte, error)
}

// AccountNamer is implemented by keystores whose address is an EOS account name
type AccountNamer interface {
	SetAccountName(name string) error
}

// NewID returns a fresh lowercase UUIDv4 keystore id
func NewID() string {
	return uuid.New().String()
}

func idOrNew(id string) string {
	if id == "" {
		return NewID()
	}
	return id
}

// base carries the fields every keystore shares
type base struct {
	id      string
	version int
	address string
	crypto  *crypto.Crypto
	meta    model.WalletMeta
}

func (b *base) ID() string { return b.id }
func (b *base) Version() int { return b.version }
func (b *base) Address() string { return b.address }
func (b *base) Meta() model.WalletMeta { return b.meta }
func (b *base) Crypto() *crypto.Crypto { return b.crypto }
func (b *base) sealed() {}

// VerifyPassword checks password against the MAC without decrypting anything
func (b *base) VerifyPassword(password []byte) bool {
	return b.crypto.Verify(password)
}

// Unlock verifies password and opens a session over the keystore crypto.
// The caller must Close it.
// password must be []byte for security (caller should zero it after use)
func (b *base) Unlock(password []byte) (*crypto.Session, error) {
	return crypto.OpenSession(b.crypto, password)
}

// decrypt returns the primary secret. The caller must clear it.
func (b *base) decrypt(s *crypto.Session) ([]byte, error) {
	if !s.Opens(b.crypto) {
		return nil, model.ErrPasswordIncorrect
	}
	return s.Decrypt()
}

func (b *base) standardJSON() standardJSON {
	return standardJSON{
		ID:      b.id,
		Version: b.version,
		Address: b.address,
		Crypto:  b.crypto,
	}
}

func (b *base) withMeta() standardJSON {
	out := b.standardJSON()
	meta := b.meta
	out.Meta = &meta
	return out
}

// baseMap is the public view every keystore starts its ToMap from
func (b *base) baseMap() map[string]any {
	return map[string]any{
		"id":        b.id,
		"address":   b.address,
		"createdAt": int64(b.meta.Timestamp),
		"source":    string(b.meta.Source),
		"chainType": string(b.meta.Chain),
	}
}

// standardJSON is the Web3 Secret Storage part of every persisted keystore
type standardJSON struct {
	ID      string            `json:"id"`
	Version int               `json:"version"`
	Address string            `json:"address"`
	Crypto  *crypto.Crypto    `json:"crypto"`
	Meta    *model.WalletMeta `json:"imTokenMeta,omitempty"`
}
