package wallet

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/bitcoin"
	"github.com/AlexZinkM/multichain-wallet/eos"
	"github.com/AlexZinkM/multichain-wallet/ethereum"
	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/validator"
	"github.com/AlexZinkM/multichain-wallet/keystore"
)

// defaultChains are derived for every new or recovered identity
var defaultChains = []model.ChainType{model.ChainETH, model.ChainBTC}

// Identity is the master keystore of one mnemonic and the wallets recorded
// under it. It is not safe for concurrent use; Manager serializes access.
type Identity struct {
	keystore *keystore.IdentityKeystore
	wallets  []*BasicWallet
	storage  *Storage
}

// createIdentity builds the identity keystore for mnemonic, derives the
// default wallets and persists everything
func createIdentity(store *Storage, mnemonic string, password []byte, meta model.WalletMeta) (*Identity, error) {
	if err := validator.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validator.ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	ks, err := keystore.NewIdentityKeystore(password, mnemonic, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity keystore: %w", err)
	}

	identity := &Identity{keystore: ks, storage: store}
	if _, err := identity.deriveWallets(defaultChains, mnemonic, password); err != nil {
		return nil, err
	}
	if err := store.FlushIdentity(ks); err != nil {
		return nil, err
	}
	return identity, nil
}

// loadIdentity hydrates the stored identity and its wallets. It returns nil
// when no identity is stored. Wallets that cannot be loaded are dropped from
// the in-memory id list so ids and wallets stay parallel.
func loadIdentity(store *Storage) (*Identity, error) {
	ks, err := store.TryLoadIdentity()
	if err != nil || ks == nil {
		return nil, err
	}
	wallets := store.LoadWalletByIDs(ks.WalletIDs())
	ids := make([]string, 0, len(wallets))
	for _, w := range wallets {
		ids = append(ids, w.WalletID())
	}
	ks.SetWalletIDs(ids)
	return &Identity{keystore: ks, wallets: wallets, storage: store}, nil
}

func (i *Identity) Keystore() *keystore.IdentityKeystore {
	return i.keystore
}

func (i *Identity) Identifier() string {
	return i.keystore.Identifier()
}

func (i *Identity) IPFSID() string {
	return i.keystore.IPFSID()
}

// Wallets returns the wallets in creation order
func (i *Identity) Wallets() []*BasicWallet {
	return slices.Clone(i.wallets)
}

// VerifyPassword checks password against the identity keystore
func (i *Identity) VerifyPassword(password []byte) bool {
	return i.keystore.VerifyPassword(password)
}

// Export returns the identity mnemonic
// password must be []byte for security (caller should zero it after use)
func (i *Identity) Export(password []byte) (string, error) {
	session, err := i.keystore.Unlock(password)
	if err != nil {
		return "", err
	}
	defer session.Close()
	return i.keystore.DecryptMnemonic(session)
}

// Delete removes the identity and all of its wallets from storage
func (i *Identity) Delete(password []byte) error {
	if !i.keystore.VerifyPassword(password) {
		return model.ErrPasswordIncorrect
	}
	if err := i.storage.CleanStorage(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrDeleteWalletFailed, err)
	}
	return nil
}

// DeriveWallets derives one wallet per chain from the identity mnemonic
// password must be []byte for security (caller should zero it after use)
func (i *Identity) DeriveWallets(chains []model.ChainType, password []byte) ([]*BasicWallet, error) {
	mnemonic, err := i.Export(password)
	if err != nil {
		return nil, err
	}
	return i.deriveWallets(chains, mnemonic, password)
}

func (i *Identity) deriveWallets(chains []model.ChainType, mnemonic string, password []byte) ([]*BasicWallet, error) {
	identityMeta := i.keystore.Meta()
	wallets := make([]*BasicWallet, 0, len(chains))
	for _, chain := range chains {
		meta := model.NewWalletMeta(chain, identityMeta.Source, model.NetworkMainnet)
		meta.PasswordHint = identityMeta.PasswordHint

		var (
			w   *BasicWallet
			err error
		)
		switch chain {
		case model.ChainETH:
			meta.Name = "ETH"
			w, err = i.ImportFromMnemonic(mnemonic, meta, password, hd.PathETH)
		case model.ChainBTC:
			meta.Name = "BTC"
			meta.Network = identityMeta.Network
			meta.SegWit = identityMeta.SegWit
			w, err = i.ImportFromMnemonic(mnemonic, meta, password, hd.BTCPath(meta.Network, meta.SegWit))
		case model.ChainEOS:
			meta.Name = "EOS"
			w, err = i.ImportEOS(mnemonic, "", nil, meta, password, hd.PathEOSLedger)
		default:
			err = model.ErrUnsupportedChain
		}
		if err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, nil
}

// Append records a new wallet and persists it with the identity. A wallet
// with the same address on the same chain is rejected. When persisting
// fails the wallet is dropped again and the identity is left as it was.
func (i *Identity) Append(ks keystore.Keystore) (*BasicWallet, error) {
	if ks.Address() != "" && i.FindWalletByAddress(ks.Address(), ks.Meta().Chain) != nil {
		return nil, model.ErrAddressAlreadyExist
	}

	w := NewBasicWallet(ks)
	i.wallets = append(i.wallets, w)
	i.keystore.AppendWalletID(w.WalletID())

	if err := i.storage.FlushWallet(ks); err != nil {
		i.drop(w)
		return nil, fmt.Errorf("%w: %w", model.ErrImportFailed, err)
	}
	if err := i.storage.FlushIdentity(i.keystore); err != nil {
		i.drop(w)
		if delErr := i.storage.DeleteWalletByID(w.WalletID()); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return nil, fmt.Errorf("%w: %w", model.ErrImportFailed, err)
	}
	return w, nil
}

// drop forgets w in memory without touching storage
func (i *Identity) drop(w *BasicWallet) {
	i.wallets = slices.DeleteFunc(i.wallets, func(other *BasicWallet) bool {
		return other == w
	})
	i.keystore.RemoveWalletID(w.WalletID())
}

// RemoveWallet drops the wallet from the identity and persists the identity.
// The in-memory removal stands even when persisting fails.
func (i *Identity) RemoveWallet(walletID string) error {
	idx := slices.IndexFunc(i.wallets, func(w *BasicWallet) bool {
		return w.WalletID() == walletID
	})
	if idx < 0 {
		return model.ErrWalletNotFound
	}
	i.wallets = slices.Delete(i.wallets, idx, idx+1)
	i.keystore.RemoveWalletID(walletID)
	return i.storage.FlushIdentity(i.keystore)
}

// ImportFromMnemonic derives a bitcoin or ethereum wallet at path
// password must be []byte for security (caller should zero it after use)
func (i *Identity) ImportFromMnemonic(mnemonic string, meta model.WalletMeta, password []byte, path string) (*BasicWallet, error) {
	if path == "" {
		return nil, model.ErrMnemonicPathInvalid
	}
	if err := validator.ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}

	var (
		ks  keystore.Keystore
		err error
	)
	switch meta.Chain {
	case model.ChainBTC:
		ks, err = keystore.NewBTCMnemonicKeystore(password, mnemonic, path, meta, "")
	case model.ChainETH:
		ks, err = keystore.NewETHMnemonicKeystore(password, mnemonic, path, meta, "")
	case model.ChainEOS:
		return nil, model.ErrOperationUnsupported
	default:
		return nil, model.ErrUnsupportedChain
	}
	if err != nil {
		return nil, err
	}
	return i.Append(ks)
}

// ImportEOS derives the keys at the comma separated paths of an EOS wallet.
// Owner and active permissions must name derived keys.
// password must be []byte for security (caller should zero it after use)
func (i *Identity) ImportEOS(mnemonic, accountName string, permissions []model.EOSPermission, meta model.WalletMeta, password []byte, path string) (*BasicWallet, error) {
	if path == "" {
		return nil, model.ErrMnemonicPathInvalid
	}
	if meta.Chain != model.ChainEOS {
		return nil, model.ErrOperationUnsupported
	}
	if err := validator.ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	ks, err := keystore.NewEOSKeystoreFromMnemonic(password, mnemonic, path, accountName, permissions, meta, "")
	if err != nil {
		return nil, err
	}
	return i.Append(ks)
}

// ImportEOSPrivateKeys imports WIF keys whose public keys all appear in permissions
// password must be []byte for security (caller should zero it after use)
func (i *Identity) ImportEOSPrivateKeys(privateKeys []string, accountName string, permissions []model.EOSPermission, meta model.WalletMeta, password []byte) (*BasicWallet, error) {
	if meta.Chain != model.ChainEOS {
		return nil, model.ErrOperationUnsupported
	}
	ks, err := keystore.NewEOSKeystoreFromPrivateKeys(password, privateKeys, accountName, permissions, meta, "")
	if err != nil {
		return nil, err
	}
	return i.Append(ks)
}

// ImportFromKeystore imports an ethereum V3 keystore protected by password.
// The decrypted key must be valid and match the keystore address.
func (i *Identity) ImportFromKeystore(data []byte, password []byte, meta model.WalletMeta) (*BasicWallet, error) {
	ks, err := keystore.ParseETHKeystore(data)
	if err != nil {
		return nil, err
	}
	ks.SetMeta(meta)
	session, err := ks.Unlock(password)
	if errors.Is(err, model.ErrPasswordIncorrect) {
		return nil, model.ErrKeystoreMACUnmatch
	}
	if err != nil {
		return nil, err
	}
	privateKey, err := ks.DecryptPrivateKey(session)
	session.Close()
	if err != nil {
		return nil, err
	}
	if err := validator.ValidatePrivateKey(privateKey, model.ChainETH, meta.Network, false); err != nil {
		return nil, model.ErrKeystoreContainsInvalidKey
	}
	key, err := ethereum.ParsePrivateKey(privateKey)
	if err != nil {
		return nil, model.ErrKeystoreContainsInvalidKey
	}
	address, err := ethereum.PrivateKeyToAddress(key)
	clear(key)
	if err != nil {
		return nil, model.ErrKeystoreContainsInvalidKey
	}
	if !strings.EqualFold(address, common.StripHexPrefix(ks.Address())) {
		return nil, model.ErrPrivateKeyAddressUnmatch
	}

	if validator.ValidateWalletID(ks.ID()) != nil {
		ks.RenewID()
	}
	return i.Append(ks)
}

// ImportFromPrivateKey imports a raw key: hex for ethereum, WIF for bitcoin,
// and a WIF bound to accountName for legacy EOS wallets
// password must be []byte for security (caller should zero it after use)
func (i *Identity) ImportFromPrivateKey(privateKey string, password []byte, meta model.WalletMeta, accountName string) (*BasicWallet, error) {
	var (
		ks  keystore.Keystore
		err error
	)
	switch meta.Chain {
	case model.ChainBTC:
		ks, err = keystore.NewBTCKeystore(password, privateKey, meta, "")
	case model.ChainETH:
		if err := validator.ValidatePrivateKey(privateKey, model.ChainETH, meta.Network, false); err != nil {
			return nil, err
		}
		ks, err = keystore.NewETHKeystore(password, privateKey, meta, "")
	case model.ChainEOS:
		if accountName == "" {
			return nil, model.ErrParam
		}
		ks, err = keystore.NewEOSLegacyKeystore(password, privateKey, accountName, meta, "")
	default:
		return nil, model.ErrUnsupportedChain
	}
	if err != nil {
		return nil, err
	}
	return i.Append(ks)
}

// FindWalletByPrivateKey returns the wallet owning privateKey, or nil
func (i *Identity) FindWalletByPrivateKey(privateKey string, chain model.ChainType, network model.Network, segWit model.SegWit) (*BasicWallet, error) {
	switch chain {
	case model.ChainETH:
		key, err := ethereum.ParsePrivateKey(privateKey)
		if err != nil {
			return nil, model.ErrPrivateKeyInvalid
		}
		address, err := ethereum.PrivateKeyToAddress(key)
		clear(key)
		if err != nil {
			return nil, model.ErrPrivateKeyInvalid
		}
		return i.FindWalletByAddress(address, chain), nil
	case model.ChainBTC:
		wif, err := bitcoin.DecodeWIF(privateKey)
		if err != nil {
			return nil, model.ErrPrivateKeyInvalid
		}
		meta := model.NewWalletMeta(chain, model.SourceWIF, network)
		meta.SegWit = segWit
		address, err := bitcoin.WIFAddress(wif, meta)
		if err != nil {
			return nil, err
		}
		return i.FindWalletByAddress(address, chain), nil
	case model.ChainEOS:
		key, err := eos.PrivateKeyFromWIF(privateKey)
		if err != nil {
			return nil, model.ErrPrivateKeyInvalid
		}
		publicKey, err := eos.PublicKeyFromPrivate(key)
		clear(key)
		if err != nil {
			return nil, model.ErrPrivateKeyInvalid
		}
		return i.findWalletByEOSPublicKey(publicKey), nil
	default:
		return nil, model.ErrUnsupportedChain
	}
}

func (i *Identity) findWalletByEOSPublicKey(publicKey string) *BasicWallet {
	for _, w := range i.wallets {
		ks, ok := w.Keystore().(*keystore.EOSKeystore)
		if ok && slices.Contains(ks.PublicKeys(), publicKey) {
			return w
		}
	}
	return nil
}

// FindWalletByMnemonic returns the wallet derived from mnemonic at path, or
// nil. Bitcoin paths name the account; its 0/0 address is looked up.
func (i *Identity) FindWalletByMnemonic(mnemonic string, chain model.ChainType, path string, network model.Network, segWit model.SegWit) (*BasicWallet, error) {
	if path == "" {
		return nil, model.ErrMnemonicPathInvalid
	}
	if err := validator.ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	seed, err := hd.Seed(hd.NormalizeMnemonic(mnemonic))
	if err != nil {
		return nil, err
	}
	defer clear(seed)

	switch chain {
	case model.ChainETH:
		key, err := hd.DerivePrivateKey(seed, path)
		if err != nil {
			return nil, err
		}
		address, err := ethereum.PrivateKeyToAddress(key)
		clear(key)
		if err != nil {
			return nil, err
		}
		return i.FindWalletByAddress(address, chain), nil
	case model.ChainBTC:
		master, err := hd.NewMasterExtendedKey(seed, bitcoin.NetParams(network))
		if err != nil {
			return nil, err
		}
		first, err := hd.DeriveExtendedKey(master, path+"/0/0")
		if err != nil {
			return nil, err
		}
		pub, err := first.ECPubKey()
		if err != nil {
			return nil, fmt.Errorf("failed to get public key: %w", err)
		}
		meta := model.NewWalletMeta(chain, model.SourceMnemonic, network)
		meta.SegWit = segWit
		address, err := bitcoin.AddressForMeta(pub.SerializeCompressed(), meta)
		if err != nil {
			return nil, err
		}
		return i.FindWalletByAddress(address, chain), nil
	default:
		return nil, model.ErrUnsupportedChain
	}
}

// FindWalletByKeystore returns the wallet with the address of an ethereum V3
// keystore, or nil. The keystore password must be correct.
func (i *Identity) FindWalletByKeystore(data []byte, chain model.ChainType, password []byte) (*BasicWallet, error) {
	if chain != model.ChainETH {
		return nil, model.ErrUnsupportedChain
	}
	ks, err := keystore.ParseETHKeystore(data)
	if err != nil {
		return nil, err
	}
	if !ks.VerifyPassword(password) {
		return nil, model.ErrKeystoreMACUnmatch
	}
	return i.FindWalletByAddress(ks.Address(), chain), nil
}

// FindWalletByWalletID returns the wallet with id, or nil
func (i *Identity) FindWalletByWalletID(walletID string) *BasicWallet {
	idx := slices.IndexFunc(i.wallets, func(w *BasicWallet) bool {
		return w.WalletID() == walletID
	})
	if idx < 0 {
		return nil
	}
	return i.wallets[idx]
}

// FindWalletByAddress returns the wallet with address on chain, or nil.
// A 0x prefix is ignored; ethereum addresses compare case-insensitively.
func (i *Identity) FindWalletByAddress(address string, chain model.ChainType) *BasicWallet {
	address = common.StripHexPrefix(address)
	for _, w := range i.wallets {
		if w.ChainType() != chain {
			continue
		}
		candidate := common.StripHexPrefix(w.Address())
		if candidate == address || (chain == model.ChainETH && strings.EqualFold(candidate, address)) {
			return w
		}
	}
	return nil
}

// Serialize returns the public view of the identity and its wallets
func (i *Identity) Serialize() map[string]any {
	m := i.keystore.ToMap()
	wallets := make([]map[string]any, 0, len(i.wallets))
	for _, w := range i.wallets {
		wallets = append(wallets, w.Serialize())
	}
	m["wallets"] = wallets
	return m
}
