package crypto

import (
	"sync"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
)

// Session holds the verified derived key of one Crypto for a single
// operation, so the KDF runs once however many secrets the operation opens.
// Close zeroes the key.
type Session struct {
	mu         sync.Mutex
	crypto     *Crypto
	derivedKey []byte
}

// OpenSession derives the key of c for password and checks it against the MAC
// password must be []byte for security (caller should zero it after use)
func OpenSession(c *Crypto, password []byte) (*Session, error) {
	derivedKey, err := c.DeriveKey(password)
	if err != nil {
		return nil, err
	}
	if !c.VerifyDerivedKey(derivedKey) {
		clear(derivedKey)
		return nil, model.ErrPasswordIncorrect
	}
	return &Session{crypto: c, derivedKey: derivedKey}, nil
}

// Opens reports whether the session was opened for c
func (s *Session) Opens(c *Crypto) bool {
	return s != nil && s.crypto == c
}

// DerivedKey returns a copy of the session key. The caller must clear it.
func (s *Session) DerivedKey() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.derivedKey == nil {
		return nil, model.ErrSessionClosed
	}
	out := make([]byte, len(s.derivedKey))
	copy(out, s.derivedKey)
	return out, nil
}

// Decrypt opens the session's Crypto without rerunning the KDF
func (s *Session) Decrypt() ([]byte, error) {
	key, err := s.DerivedKey()
	if err != nil {
		return nil, err
	}
	defer clear(key)
	return s.crypto.DecryptWithKey(key)
}

// DecryptMessage opens a message sealed under the session's key
func (s *Session) DecryptMessage(m *EncryptedMessage) ([]byte, error) {
	key, err := s.DerivedKey()
	if err != nil {
		return nil, err
	}
	defer clear(key)
	return m.DecryptWithKey(key)
}

// Close zeroes the cached key. Closing twice is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.derivedKey)
	s.derivedKey = nil
}
