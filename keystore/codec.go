package keystore

import (
	"encoding/json"

	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// rawKeystore is the union of every persisted keystore field. Pointers tell a
// missing field from an empty one.
type rawKeystore struct {
	ID              *string                  `json:"id"`
	Version         *int                     `json:"version"`
	Address         *string                  `json:"address"`
	Crypto          json.RawMessage          `json:"crypto"`
	CryptoUpper     json.RawMessage          `json:"Crypto"`
	Meta            json.RawMessage          `json:"imTokenMeta"`
	MnemonicPath    *string                  `json:"mnemonicPath"`
	EncMnemonic     *crypto.EncryptedMessage `json:"encMnemonic"`
	XPub            *string                  `json:"xpub"`
	KeyPathPrivates []json.RawMessage        `json:"keyPathPrivates"`
	Identifier      *string                  `json:"identifier"`
	IPFSID          *string                  `json:"ipfsId"`
	EncKey          *string                  `json:"encKey"`
	EncAuthKey      *crypto.EncryptedMessage `json:"encAuthKey"`
	WalletIDs       []string                 `json:"walletIds"`
}

func decodeRaw(data []byte) (*rawKeystore, error) {
	var raw rawKeystore
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, model.ErrKeystoreInvalid
	}
	return &raw, nil
}

// parseCrypto reads "crypto", or "Crypto" when lowercaseOnly is false
func (r *rawKeystore) parseCrypto(lowercaseOnly bool) (*crypto.Crypto, error) {
	data := r.Crypto
	if len(data) == 0 && !lowercaseOnly {
		data = r.CryptoUpper
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, model.ErrKeystoreInvalid
	}
	return crypto.ParseCrypto(data)
}

// parseMeta decodes imTokenMeta or falls back to the given defaults
func (r *rawKeystore) parseMeta(chain model.ChainType, source model.Source) (model.WalletMeta, error) {
	if len(r.Meta) == 0 || string(r.Meta) == "null" {
		return model.NewWalletMeta(chain, source, model.NetworkMainnet), nil
	}
	var meta model.WalletMeta
	if err := json.Unmarshal(r.Meta, &meta); err != nil {
		return model.WalletMeta{}, model.ErrKeystoreInvalid
	}
	return meta, nil
}

// parseBase reads the fields of a keystore with a fixed version. A missing id
// is replaced by a fresh one.
func (r *rawKeystore) parseBase(version int, chain model.ChainType, source model.Source) (base, error) {
	if r.Version == nil || *r.Version != version {
		return base{}, model.ErrKeystoreInvalid
	}
	c, err := r.parseCrypto(false)
	if err != nil {
		return base{}, err
	}
	meta, err := r.parseMeta(chain, source)
	if err != nil {
		return base{}, err
	}
	b := base{
		version: version,
		crypto:  c,
		meta:    meta,
	}
	if r.ID != nil {
		b.id = *r.ID
	}
	b.id = idOrNew(b.id)
	if r.Address != nil {
		b.address = *r.Address
	}
	return b, nil
}

// mnemonicSources are the sources whose v3 ethereum keystores carry a mnemonic
var mnemonicSources = map[model.Source]bool{
	model.SourceMnemonic:          true,
	model.SourceNewIdentity:       true,
	model.SourceRecoveredIdentity: true,
}

// Parse decodes a persisted wallet keystore, choosing the variant from the
// version and, for version 3, from the chain and source in imTokenMeta. Any
// failure is reported as keystore_invalid.
func Parse(data []byte) (Keystore, error) {
	ks, err := parse(data)
	if err != nil {
		return nil, model.ErrKeystoreInvalid
	}
	return ks, nil
}

func parse(data []byte) (Keystore, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	if raw.Version == nil {
		return nil, model.ErrKeystoreInvalid
	}

	var meta struct {
		Chain  *string `json:"chain"`
		Source *string `json:"source"`
	}
	if len(raw.Meta) == 0 || json.Unmarshal(raw.Meta, &meta) != nil || meta.Chain == nil || meta.Source == nil {
		return nil, model.ErrKeystoreInvalid
	}
	chain := model.ChainType(*meta.Chain)
	source := model.Source(*meta.Source)

	switch *raw.Version {
	case VersionV3:
		switch chain {
		case model.ChainETH:
			if mnemonicSources[source] {
				return parseETHMnemonic(raw)
			}
			return parseETH(raw)
		case model.ChainBTC:
			return parseBTC(raw)
		case model.ChainEOS:
			return parseEOSLegacy(raw)
		}
		return nil, model.ErrKeystoreInvalid
	case VersionBTCMnemonic:
		return parseBTCMnemonic(raw)
	case VersionEOS:
		return parseEOS(raw)
	default:
		return nil, model.ErrKeystoreInvalid
	}
}

// Marshal writes the full persisted form of ks
func Marshal(ks Keystore) ([]byte, error) {
	return json.Marshal(ks)
}
