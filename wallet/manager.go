package wallet

import (
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/multichain-wallet/bitcoin"
	"github.com/AlexZinkM/multichain-wallet/eos"
	"github.com/AlexZinkM/multichain-wallet/ethereum"
	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"
	"github.com/AlexZinkM/multichain-wallet/internal/validator"
	"github.com/AlexZinkM/multichain-wallet/keystore"

	"github.com/btcsuite/btcd/btcutil"
	"go.uber.org/zap"
)

// BTCSignRequest describes one bitcoin payment. UTXOs are spent in order until
// they cover Amount plus Fee; change goes to the internal chain at ChangeIndex.
type BTCSignRequest struct {
	WalletID    string       `json:"walletId"`
	To          string       `json:"to"`
	Amount      int64        `json:"amount"`
	Fee         int64        `json:"fee"`
	UTXOs       []model.UTXO `json:"outputs"`
	ChangeIndex uint32       `json:"changeIdx"`
}

// ETHSignRequest describes one legacy ethereum transaction. Numeric fields
// are decimal or 0x-prefixed hex text.
type ETHSignRequest struct {
	WalletID string `json:"walletId"`
	Nonce    string `json:"nonce"`
	GasPrice string `json:"gasPrice"`
	GasLimit string `json:"gasLimit"`
	To       string `json:"to"`
	Value    string `json:"value"`
	Data     string `json:"data"`
	ChainID  int64  `json:"chainId"`
}

// Manager is the entry point of the wallet engine. It owns the current
// identity and serializes every operation on it.
type Manager struct {
	mu        sync.Mutex
	storage   *Storage
	identity  *Identity
	keyFinder *bitcoin.KeyFinder
	log       *zap.Logger
}

// NewManager creates a manager over backend. keyCacheSize bounds the bitcoin
// script lookup cache; zero selects the default.
func NewManager(backend storage.Backend, keyCacheSize int, log *zap.Logger) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	keyFinder, err := bitcoin.NewKeyFinder(keyCacheSize)
	if err != nil {
		return nil, err
	}
	return &Manager{
		storage:   NewStorage(backend, log),
		keyFinder: keyFinder,
		log:       log,
	}, nil
}

// currentIdentity loads the stored identity on first use. Callers hold mu.
func (m *Manager) currentIdentity() (*Identity, error) {
	if m.identity != nil {
		return m.identity, nil
	}
	identity, err := loadIdentity(m.storage)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, model.ErrInvalidIdentity
	}
	m.identity = identity
	m.log.Info("identity loaded",
		zap.String("identifier", identity.Identifier()),
		zap.Int("wallets", len(identity.wallets)),
	)
	return identity, nil
}

// findWallet returns the wallet with id in the current identity. Callers hold mu.
func (m *Manager) findWallet(walletID string) (*BasicWallet, error) {
	identity, err := m.currentIdentity()
	if err != nil {
		return nil, err
	}
	w := identity.FindWalletByWalletID(walletID)
	if w == nil {
		return nil, model.ErrWalletNotFound
	}
	return w, nil
}

// CurrentIdentity returns the identity in use, loading it from storage when needed
func (m *Manager) CurrentIdentity() (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentIdentity()
}

// CreateIdentity generates a mnemonic and makes its identity current. The
// mnemonic is returned once for the user to back up.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) CreateIdentity(meta model.WalletMeta, password []byte) (*Identity, string, error) {
	mnemonic, err := hd.NewMnemonic()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", model.ErrGenerateFailed, err)
	}
	meta.Source = model.SourceNewIdentity

	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := createIdentity(m.storage, mnemonic, password, meta)
	if err != nil {
		return nil, "", err
	}
	m.identity = identity
	m.log.Info("identity created", zap.String("identifier", identity.Identifier()))
	return identity, mnemonic, nil
}

// RecoverIdentity rebuilds the identity of mnemonic and makes it current
// password must be []byte for security (caller should zero it after use)
func (m *Manager) RecoverIdentity(mnemonic string, meta model.WalletMeta, password []byte) (*Identity, error) {
	meta.Source = model.SourceRecoveredIdentity

	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := createIdentity(m.storage, mnemonic, password, meta)
	if err != nil {
		return nil, err
	}
	m.identity = identity
	m.log.Info("identity recovered", zap.String("identifier", identity.Identifier()))
	return identity, nil
}

// ExportIdentity returns the identity mnemonic
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ExportIdentity(password []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return "", err
	}
	return identity.Export(password)
}

// DeleteIdentity wipes the identity and every wallet from storage
// password must be []byte for security (caller should zero it after use)
func (m *Manager) DeleteIdentity(password []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return err
	}
	if err := identity.Delete(password); err != nil {
		return err
	}
	m.identity = nil
	m.log.Info("identity deleted", zap.String("identifier", identity.Identifier()))
	return nil
}

// Wallets returns the wallets of the current identity
func (m *Manager) Wallets() ([]*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return nil, err
	}
	return identity.Wallets(), nil
}

func (m *Manager) FindWalletByID(walletID string) (*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findWallet(walletID)
}

func (m *Manager) FindWalletByAddress(address string, chain model.ChainType) (*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return nil, err
	}
	return foundOrNotFound(identity.FindWalletByAddress(address, chain), nil)
}

func (m *Manager) FindWalletByPrivateKey(privateKey string, chain model.ChainType, network model.Network, segWit model.SegWit) (*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return nil, err
	}
	return foundOrNotFound(identity.FindWalletByPrivateKey(privateKey, chain, network, segWit))
}

func (m *Manager) FindWalletByMnemonic(mnemonic string, chain model.ChainType, path string, network model.Network, segWit model.SegWit) (*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return nil, err
	}
	return foundOrNotFound(identity.FindWalletByMnemonic(mnemonic, chain, path, network, segWit))
}

func (m *Manager) FindWalletByKeystore(data []byte, chain model.ChainType, password []byte) (*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return nil, err
	}
	return foundOrNotFound(identity.FindWalletByKeystore(data, chain, password))
}

func foundOrNotFound(w *BasicWallet, err error) (*BasicWallet, error) {
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, model.ErrWalletNotFound
	}
	return w, nil
}

// VerifyPassword checks password against the wallet keystore
func (m *Manager) VerifyPassword(walletID string, password []byte) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return false, err
	}
	return w.VerifyPassword(password), nil
}

// ImportFromMnemonic derives a bitcoin or ethereum wallet at path
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ImportFromMnemonic(mnemonic string, meta model.WalletMeta, password []byte, path string) (*BasicWallet, error) {
	if err := validator.ValidatePassword(password); err != nil {
		return nil, err
	}
	meta.Source = model.SourceMnemonic
	return m.importWallet(func(identity *Identity) (*BasicWallet, error) {
		return identity.ImportFromMnemonic(mnemonic, meta, password, path)
	})
}

// ImportFromPrivateKey imports a raw key. accountName is required for EOS.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ImportFromPrivateKey(privateKey string, meta model.WalletMeta, password []byte, accountName string) (*BasicWallet, error) {
	if err := validator.ValidatePassword(password); err != nil {
		return nil, err
	}
	meta.Source = meta.Chain.PrivateKeySource()
	return m.importWallet(func(identity *Identity) (*BasicWallet, error) {
		return identity.ImportFromPrivateKey(privateKey, password, meta, accountName)
	})
}

// ImportFromKeystore imports an ethereum V3 keystore
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ImportFromKeystore(data []byte, meta model.WalletMeta, password []byte) (*BasicWallet, error) {
	if err := validator.ValidateV3Keystore(data); err != nil {
		return nil, err
	}
	meta.Source = model.SourceKeystore
	return m.importWallet(func(identity *Identity) (*BasicWallet, error) {
		return identity.ImportFromKeystore(data, password, meta)
	})
}

// ImportEOS derives an EOS wallet from mnemonic at the comma separated paths
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ImportEOS(mnemonic, accountName string, permissions []model.EOSPermission, meta model.WalletMeta, password []byte, path string) (*BasicWallet, error) {
	if err := validator.ValidatePassword(password); err != nil {
		return nil, err
	}
	meta.Source = model.SourceMnemonic
	return m.importWallet(func(identity *Identity) (*BasicWallet, error) {
		return identity.ImportEOS(mnemonic, accountName, permissions, meta, password, path)
	})
}

// ImportEOSPrivateKeys imports EOS WIF keys bound to the given permissions
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ImportEOSPrivateKeys(privateKeys []string, accountName string, permissions []model.EOSPermission, meta model.WalletMeta, password []byte) (*BasicWallet, error) {
	if err := validator.ValidatePassword(password); err != nil {
		return nil, err
	}
	meta.Source = model.SourceWIF
	return m.importWallet(func(identity *Identity) (*BasicWallet, error) {
		return identity.ImportEOSPrivateKeys(privateKeys, accountName, permissions, meta, password)
	})
}

func (m *Manager) importWallet(fn func(*Identity) (*BasicWallet, error)) (*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return nil, err
	}
	w, err := fn(identity)
	if err != nil {
		return nil, err
	}
	m.log.Info("wallet imported",
		zap.String("walletId", w.WalletID()),
		zap.String("chain", string(w.ChainType())),
		zap.String("source", string(w.Meta().Source)),
	)
	return w, nil
}

// DeriveWallets derives one wallet per chain from the identity mnemonic
// password must be []byte for security (caller should zero it after use)
func (m *Manager) DeriveWallets(chains []model.ChainType, password []byte) ([]*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return nil, err
	}
	return identity.DeriveWallets(chains, password)
}

// RemoveWallet drops a wallet from the identity and deletes its keystore
// password must be []byte for security (caller should zero it after use)
func (m *Manager) RemoveWallet(walletID string, password []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return err
	}
	if !w.VerifyPassword(password) {
		return model.ErrPasswordIncorrect
	}
	if err := m.identity.RemoveWallet(walletID); err != nil {
		return fmt.Errorf("%w: %w", model.ErrDeleteWalletFailed, err)
	}
	if err := m.storage.DeleteWalletByID(walletID); err != nil {
		return fmt.Errorf("%w: %w", model.ErrDeleteWalletFailed, err)
	}
	m.log.Info("wallet removed", zap.String("walletId", walletID))
	return nil
}

// ExportPrivateKey returns the single secret of a wallet
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ExportPrivateKey(walletID string, password []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return "", err
	}
	return w.PrivateKey(password)
}

// ExportPrivateKeys returns every key pair of an EOS wallet
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ExportPrivateKeys(walletID string, password []byte) ([]model.KeyPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return nil, err
	}
	return w.PrivateKeys(password)
}

// ExportMnemonic returns the mnemonic and path of a mnemonic wallet
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ExportMnemonic(walletID string, password []byte) (*MnemonicExport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return nil, err
	}
	return w.ExportMnemonic(password)
}

// ExportKeystore returns the standard V3 JSON of an ethereum wallet
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ExportKeystore(walletID string, password []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return "", err
	}
	return w.ExportKeystore(password)
}

// CalcExternalAddress derives a receive address of a bitcoin mnemonic wallet
func (m *Manager) CalcExternalAddress(walletID string, index uint32) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return "", err
	}
	return w.CalcExternalAddress(index)
}

// BTCSignTransaction selects UTXOs for the payment and signs them. Amounts
// below the dust threshold are rejected before funds are counted, and the
// selected UTXOs must cover the amount. A fee the UTXOs cannot fully cover
// is taken from what remains.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) BTCSignTransaction(req BTCSignRequest, password []byte) (*model.TransactionSignedResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(req.WalletID)
	if err != nil {
		return nil, err
	}
	if w.ChainType() != model.ChainBTC {
		return nil, model.ErrOperationUnsupported
	}
	meta := w.Meta()
	to, err := bitcoin.DecodeAddress(req.To, meta.Network)
	if err != nil {
		return nil, model.ErrAddressInvalid
	}
	session, err := w.Keystore().Unlock(password)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if req.Amount < bitcoin.DustThreshold {
		return nil, model.ErrAmountLessThanMinimum
	}
	utxos := selectUTXOs(req.UTXOs, req.Amount+req.Fee)
	if bitcoin.TotalSpend(utxos) < req.Amount {
		return nil, model.ErrInsufficientFunds
	}

	keys, change, err := m.spendKeys(w, utxos, req.ChangeIndex, session)
	if err != nil {
		return nil, err
	}
	signer, err := bitcoin.NewTransactionSigner(utxos, keys, req.Amount, req.Fee, to, change)
	if err != nil {
		return nil, err
	}

	var result *model.TransactionSignedResult
	if meta.IsSegWit() {
		result, err = signer.SignSegWit()
	} else {
		result, err = signer.Sign()
	}
	if err != nil {
		return nil, err
	}
	m.log.Info("bitcoin transaction signed",
		zap.String("walletId", req.WalletID),
		zap.String("amount", common.SatoshiToBTC(req.Amount)),
		zap.String("fee", common.SatoshiToBTC(req.Fee)),
		zap.Int("inputs", len(utxos)),
		zap.String("txHash", result.TxHash),
	)
	return result, nil
}

// selectUTXOs takes utxos in order until their sum reaches target
func selectUTXOs(utxos []model.UTXO, target int64) []model.UTXO {
	var total int64
	for i, u := range utxos {
		total += u.Amount
		if total >= target {
			return utxos[:i+1]
		}
	}
	return utxos
}

// spendKeys returns one signing key per utxo and the change address. WIF
// wallets sign and receive change with their only key.
func (m *Manager) spendKeys(w *BasicWallet, utxos []model.UTXO, changeIndex uint32, session *crypto.Session) ([]*btcutil.WIF, btcutil.Address, error) {
	meta := w.Meta()
	params := bitcoin.NetParams(meta.Network)
	keys := make([]*btcutil.WIF, 0, len(utxos))

	switch ks := w.Keystore().(type) {
	case *keystore.BTCKeystore:
		stored, err := ks.DecryptWIF(session)
		if err != nil {
			return nil, nil, err
		}
		wif, err := bitcoin.DecodeWIF(stored)
		if err != nil {
			return nil, nil, model.ErrKeystoreContainsInvalidKey
		}
		for range utxos {
			keys = append(keys, wif)
		}
		change, err := bitcoin.Address(wif.SerializePubKey(), params, meta.IsSegWit())
		if err != nil {
			return nil, nil, err
		}
		return keys, change, nil

	case *keystore.BTCMnemonicKeystore:
		account, err := ks.AccountKey(session)
		if err != nil {
			return nil, nil, err
		}
		changeKey, err := hd.DeriveExtendedKey(account, fmt.Sprintf("1/%d", changeIndex))
		if err != nil {
			return nil, nil, err
		}
		changePub, err := changeKey.ECPubKey()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get change key: %w", err)
		}
		change, err := bitcoin.Address(changePub.SerializeCompressed(), params, meta.IsSegWit())
		if err != nil {
			return nil, nil, err
		}
		for _, u := range utxos {
			key, err := m.keyFinder.KeyForUTXO(account, u, meta.IsSegWit())
			if err != nil {
				return nil, nil, err
			}
			wif, err := bitcoin.ChildWIF(key, meta.Network)
			if err != nil {
				return nil, nil, err
			}
			keys = append(keys, wif)
		}
		return keys, change, nil

	default:
		return nil, nil, model.ErrOperationUnsupported
	}
}

// SwitchBTCWalletMode re-derives a bitcoin wallet for the other address type
// under the same id. Mnemonic wallets move to the account path of the new mode.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) SwitchBTCWalletMode(walletID string, segWit model.SegWit, password []byte) (*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return nil, err
	}
	if w.ChainType() != model.ChainBTC {
		return nil, model.ErrOperationUnsupported
	}
	meta := w.Meta()
	if meta.SegWit.IsSegWit() == segWit.IsSegWit() {
		return w, nil
	}
	session, err := w.Keystore().Unlock(password)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	meta.SegWit = segWit

	var next keystore.Keystore
	switch ks := w.Keystore().(type) {
	case *keystore.BTCMnemonicKeystore:
		mnemonic, err := ks.DecryptMnemonic(session)
		if err != nil {
			return nil, err
		}
		next, err = keystore.NewBTCMnemonicKeystore(password, mnemonic, hd.BTCPath(meta.Network, segWit), meta, ks.ID())
		if err != nil {
			return nil, err
		}
	case *keystore.BTCKeystore:
		wif, err := ks.DecryptWIF(session)
		if err != nil {
			return nil, err
		}
		next, err = keystore.NewBTCKeystore(password, wif, meta, ks.ID())
		if err != nil {
			return nil, err
		}
	default:
		return nil, model.ErrOperationUnsupported
	}

	if existing := m.identity.FindWalletByAddress(next.Address(), model.ChainBTC); existing != nil && existing != w {
		return nil, model.ErrAddressAlreadyExist
	}
	w.setKeystore(next)
	if err := m.storage.FlushWallet(next); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreWalletFailed, err)
	}
	m.log.Info("bitcoin wallet mode switched",
		zap.String("walletId", walletID),
		zap.String("segWit", string(segWit)),
	)
	return w, nil
}

// SetEOSAccountName binds an EOS wallet derived without an account to name
func (m *Manager) SetEOSAccountName(walletID, name string) (*BasicWallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return nil, err
	}
	ks, ok := w.Keystore().(*keystore.EOSKeystore)
	if !ok {
		return nil, model.ErrOperationUnsupported
	}
	if err := ks.SetAccountName(name); err != nil {
		return nil, err
	}
	if err := m.storage.FlushWallet(ks); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreWalletFailed, err)
	}
	return w, nil
}

// EOSSignTransaction signs each transaction with the keys it names
// password must be []byte for security (caller should zero it after use)
func (m *Manager) EOSSignTransaction(walletID string, txs []model.EOSTransaction, password []byte) ([]*model.EOSSignResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return nil, err
	}
	ks, ok := w.Keystore().(keystore.EOSKeyResolver)
	if !ok {
		return nil, model.ErrEOSRequiredEOSWallet
	}
	session, err := w.Keystore().Unlock(password)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	resolver := ks.KeyResolver(session)
	results := make([]*model.EOSSignResult, 0, len(txs))
	for _, tx := range txs {
		result, err := eos.SignTransaction(tx, resolver)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// EOSECSign signs data with the wallet key behind publicKey. Legacy wallets
// hold one key and ignore publicKey.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) EOSECSign(walletID, publicKey, data string, isHex bool, password []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, err := m.findWallet(walletID)
	if err != nil {
		return "", err
	}
	session, err := w.Keystore().Unlock(password)
	if err != nil {
		return "", err
	}
	defer session.Close()

	var key []byte
	switch ks := w.Keystore().(type) {
	case *keystore.EOSKeystore:
		key, err = ks.DecryptPrivateKey(publicKey, session)
	case *keystore.EOSLegacyKeystore:
		var wif string
		if wif, err = ks.DecryptWIF(session); err == nil {
			key, err = eos.PrivateKeyFromWIF(wif)
		}
	default:
		return "", model.ErrEOSRequiredEOSWallet
	}
	if err != nil {
		return "", err
	}
	defer clear(key)
	return eos.ECSign(key, data, isHex)
}

// EOSECRecover returns the EOS public key that produced signature over data
func (m *Manager) EOSECRecover(data string, isHex bool, signature string) (string, error) {
	return eos.ECRecover(data, isHex, signature)
}

// ETHSignTransaction signs a legacy transaction, EIP-155 protected when ChainID is positive
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ETHSignTransaction(req ETHSignRequest, password []byte) (*model.TransactionSignedResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, err := m.ethPrivateKey(req.WalletID, password)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	tx := ethereum.NewTransaction(req.Nonce, req.GasPrice, req.GasLimit, req.To, req.Value, req.Data, req.ChainID)
	if err := tx.Sign(key); err != nil {
		return nil, err
	}
	result, err := tx.SignedResult()
	if err != nil {
		return nil, err
	}
	value, err := tx.ValueWei()
	if err != nil {
		return nil, err
	}
	m.log.Info("ethereum transaction signed",
		zap.String("walletId", req.WalletID),
		zap.Int64("chainId", req.ChainID),
		zap.String("value", common.WeiToETH(value)),
		zap.String("txHash", result.TxHash),
	)
	return result, nil
}

// ETHPersonalSign signs message with the personal message prefix and returns r||s||v hex
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ETHPersonalSign(walletID, message string, password []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, err := m.ethPrivateKey(walletID, password)
	if err != nil {
		return "", err
	}
	defer clear(key)

	sig, err := ethereum.PersonalSign(key, message)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

// ethPrivateKey decrypts the raw key of an ethereum wallet. Callers hold mu
// and clear the key.
func (m *Manager) ethPrivateKey(walletID string, password []byte) ([]byte, error) {
	w, err := m.findWallet(walletID)
	if err != nil {
		return nil, err
	}
	exporter, ok := w.Keystore().(keystore.PrivateKeyExporter)
	if !ok || w.ChainType() != model.ChainETH {
		return nil, model.ErrOperationUnsupported
	}
	session, err := w.Keystore().Unlock(password)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	hexKey, err := exporter.DecryptPrivateKey(session)
	if err != nil {
		return nil, err
	}
	return ethereum.ParsePrivateKey(hexKey)
}

// EncryptDataToIPFS seals content with the identity encryption key
func (m *Manager) EncryptDataToIPFS(content string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return "", err
	}
	return identity.EncryptDataToIPFS(content)
}

// DecryptDataFromIPFS opens an envelope sealed by this identity
func (m *Manager) DecryptDataFromIPFS(payload string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return "", err
	}
	return identity.DecryptDataFromIPFS(payload)
}

// SignAuthenticationMessage signs a login challenge with the identity authentication key
// password must be []byte for security (caller should zero it after use)
func (m *Manager) SignAuthenticationMessage(accessTime int64, deviceToken string, password []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, err := m.currentIdentity()
	if err != nil {
		return "", err
	}
	return identity.SignAuthenticationMessage(accessTime, deviceToken, password)
}

// IsNotFound reports whether err means the identity or wallet does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrWalletNotFound) || errors.Is(err, model.ErrInvalidIdentity)
}
