package wallet

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/storage"
	"github.com/AlexZinkM/multichain-wallet/internal/validator"
	"github.com/AlexZinkM/multichain-wallet/keystore"

	"go.uber.org/zap"
)

const identityRecord = "identity"

// Storage persists the identity keystore and the wallet keystores over a
// Backend. Every keystore is one record named by its id.
type Storage struct {
	backend storage.Backend
	log     *zap.Logger
}

func NewStorage(backend storage.Backend, log *zap.Logger) *Storage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Storage{backend: backend, log: log}
}

// TryLoadIdentity returns the stored identity keystore, or nil when none is stored
func (s *Storage) TryLoadIdentity() (*keystore.IdentityKeystore, error) {
	data, err := s.backend.Get(identityRecord)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}
	return keystore.ParseIdentityKeystore(data)
}

// LoadWalletByIDs loads the wallets in ids order. Missing or unreadable
// keystores are skipped.
func (s *Storage) LoadWalletByIDs(ids []string) []*BasicWallet {
	wallets := make([]*BasicWallet, 0, len(ids))
	for _, id := range ids {
		data, err := s.backend.Get(id)
		if err != nil {
			s.log.Warn("wallet keystore not loaded", zap.String("walletId", id), zap.Error(err))
			continue
		}
		w, err := LoadWallet(data)
		if err != nil {
			s.log.Warn("wallet keystore invalid", zap.String("walletId", id), zap.Error(err))
			continue
		}
		wallets = append(wallets, w)
	}
	return wallets
}

func (s *Storage) DeleteWalletByID(id string) error {
	if err := validator.ValidateWalletID(id); err != nil {
		return err
	}
	if err := s.backend.Delete(id); err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}
	return nil
}

// CleanStorage removes the identity and every wallet
func (s *Storage) CleanStorage() error {
	if err := s.backend.Clean(); err != nil {
		return fmt.Errorf("failed to clean storage: %w", err)
	}
	return nil
}

func (s *Storage) FlushIdentity(ks *keystore.IdentityKeystore) error {
	data, err := ks.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}
	if err := s.backend.Put(identityRecord, data); err != nil {
		return fmt.Errorf("failed to store identity: %w", err)
	}
	return nil
}

// FlushWallet stores a wallet keystore under its id, which must be a UUID
func (s *Storage) FlushWallet(ks keystore.Keystore) error {
	if err := validator.ValidateWalletID(ks.ID()); err != nil {
		return err
	}
	data, err := keystore.Marshal(ks)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %w", err)
	}
	if err := s.backend.Put(ks.ID(), data); err != nil {
		return fmt.Errorf("failed to store wallet: %w", err)
	}
	return nil
}
