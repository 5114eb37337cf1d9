package wallet

import (
	"encoding/json"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/keystore"
)

// BasicWallet binds a wallet id to one keystore. The id is the keystore id.
type BasicWallet struct {
	keystore keystore.Keystore
}

// MnemonicExport is a decrypted mnemonic and the path the wallet derived from it
type MnemonicExport struct {
	Mnemonic string `json:"mnemonic"`
	Path     string `json:"path"`
}

func NewBasicWallet(ks keystore.Keystore) *BasicWallet {
	return &BasicWallet{keystore: ks}
}

// LoadWallet decodes a persisted keystore into a wallet
func LoadWallet(data []byte) (*BasicWallet, error) {
	ks, err := keystore.Parse(data)
	if err != nil {
		return nil, err
	}
	return NewBasicWallet(ks), nil
}

func (w *BasicWallet) WalletID() string {
	return w.keystore.ID()
}

func (w *BasicWallet) Keystore() keystore.Keystore {
	return w.keystore
}

func (w *BasicWallet) Meta() model.WalletMeta {
	return w.keystore.Meta()
}

func (w *BasicWallet) ChainType() model.ChainType {
	return w.keystore.Meta().Chain
}

func (w *BasicWallet) Address() string {
	return w.keystore.Address()
}

func (w *BasicWallet) VerifyPassword(password []byte) bool {
	return w.keystore.VerifyPassword(password)
}

func (w *BasicWallet) setKeystore(ks keystore.Keystore) {
	w.keystore = ks
}

// PrivateKey exports the single secret of the wallet: hex for ethereum keys,
// WIF for bitcoin and legacy EOS keys, the account xprv for bitcoin mnemonic
// wallets. EOS wallets with several keys export through PrivateKeys.
// password must be []byte for security (caller should zero it after use)
func (w *BasicWallet) PrivateKey(password []byte) (string, error) {
	session, err := w.keystore.Unlock(password)
	if err != nil {
		return "", err
	}
	defer session.Close()

	switch ks := w.keystore.(type) {
	case *keystore.ETHKeystore:
		return ks.DecryptPrivateKey(session)
	case *keystore.ETHMnemonicKeystore:
		return ks.DecryptPrivateKey(session)
	case *keystore.BTCKeystore:
		return ks.DecryptWIF(session)
	case *keystore.BTCMnemonicKeystore:
		return ks.DecryptXPrv(session)
	case *keystore.EOSLegacyKeystore:
		return ks.DecryptWIF(session)
	case *keystore.EOSKeystore, *keystore.IdentityKeystore:
		return "", model.ErrOperationUnsupported
	default:
		return "", model.ErrOperationUnsupported
	}
}

// PrivateKeys exports every EOS key pair of the wallet
// password must be []byte for security (caller should zero it after use)
func (w *BasicWallet) PrivateKeys(password []byte) ([]model.KeyPair, error) {
	exporter, ok := w.keystore.(keystore.KeyPairsExporter)
	if !ok {
		return nil, model.ErrOperationUnsupported
	}
	session, err := w.keystore.Unlock(password)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return exporter.ExportKeyPairs(session)
}

// ExportMnemonic returns the mnemonic of a mnemonic derived wallet
// password must be []byte for security (caller should zero it after use)
func (w *BasicWallet) ExportMnemonic(password []byte) (*MnemonicExport, error) {
	exporter, ok := w.keystore.(keystore.MnemonicExporter)
	if !ok {
		return nil, model.ErrOperationUnsupported
	}
	session, err := w.keystore.Unlock(password)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	mnemonic, err := exporter.DecryptMnemonic(session)
	if err != nil {
		return nil, err
	}
	return &MnemonicExport{Mnemonic: mnemonic, Path: exporter.MnemonicPath()}, nil
}

// ExportKeystore returns the standard V3 JSON of an ethereum wallet, without
// the wallet metadata
// password must be []byte for security (caller should zero it after use)
func (w *BasicWallet) ExportKeystore(password []byte) (string, error) {
	exporter, ok := w.keystore.(keystore.V3Exporter)
	if !ok {
		return "", model.ErrOperationUnsupported
	}
	if !w.keystore.VerifyPassword(password) {
		return "", model.ErrPasswordIncorrect
	}
	data, err := exporter.ExportV3()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CalcExternalAddress derives the external address at index of a bitcoin
// mnemonic wallet
func (w *BasicWallet) CalcExternalAddress(index uint32) (string, error) {
	ks, ok := w.keystore.(*keystore.BTCMnemonicKeystore)
	if !ok {
		return "", model.ErrOperationUnsupported
	}
	return ks.CalcExternalAddress(index)
}

// Serialize returns the public view of the wallet
func (w *BasicWallet) Serialize() map[string]any {
	return w.keystore.ToMap()
}

// MarshalJSON writes the persisted keystore
func (w *BasicWallet) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.keystore)
}
