package hd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/tyler-smith/go-bip39"
)

// entropyBits of newly generated mnemonics (12 words)
const entropyBits = 128

var validWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// NewMnemonic generates a fresh 12-word english mnemonic
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer clear(entropy)
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NormalizeMnemonic collapses any run of whitespace into a single space and trims the ends
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}

// ValidateMnemonic checks, in order, the word count, that every word is in the
// english list and the BIP-39 checksum
func ValidateMnemonic(mnemonic string) error {
	words := strings.Fields(mnemonic)
	if !validWordCounts[len(words)] {
		return model.ErrMnemonicLengthInvalid
	}
	for _, word := range words {
		if _, ok := bip39.GetWordIndex(word); !ok {
			return model.ErrMnemonicWordInvalid
		}
	}
	entropy, err := bip39.EntropyFromMnemonic(strings.Join(words, " "))
	if err != nil {
		if errors.Is(err, bip39.ErrChecksumIncorrect) {
			return model.ErrMnemonicChecksumInvalid
		}
		return model.ErrMnemonicWordInvalid
	}
	clear(entropy)
	return nil
}

// Seed validates mnemonic and returns its BIP-39 seed with an empty passphrase.
// The caller must clear the result.
func Seed(mnemonic string) ([]byte, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	return bip39.NewSeed(mnemonic, ""), nil
}
