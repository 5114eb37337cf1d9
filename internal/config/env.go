package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetPasswordBytes()
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	Storage       string `envconfig:"WALLET_STORAGE" default:"file"`
	Dir           string `envconfig:"WALLET_DIR" default:"./wallets"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	UTXOCacheSize int    `envconfig:"UTXO_CACHE_SIZE" default:"1024"`
	ScryptN       int    `envconfig:"WALLET_SCRYPT_N" default:"262144"`
	XPubKey       string `envconfig:"XPUB_KEY"`
	XPubIV        string `envconfig:"XPUB_IV"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.ScryptN < 2 || c.ScryptN&(c.ScryptN-1) != 0 {
		return fmt.Errorf("WALLET_SCRYPT_N must be a power of two greater than 1, got %d", c.ScryptN)
	}
	if (c.XPubKey == "") != (c.XPubIV == "") {
		return errors.New("XPUB_KEY and XPUB_IV must be set together")
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetStorage returns the storage backend kind: file, memory or leveldb
func GetStorage() string {
	return Get().Storage
}

// GetDir returns the directory wallets are stored in
func GetDir() string {
	return Get().Dir
}

func GetLogLevel() string {
	return Get().LogLevel
}

// GetUTXOCacheSize returns the size of the bitcoin script lookup cache
func GetUTXOCacheSize() int {
	return Get().UTXOCacheSize
}

// GetScryptN returns the scrypt cost used for new keystores
func GetScryptN() int {
	return Get().ScryptN
}

// GetXPubCipher returns the hex key and iv encXPub is sealed with. Both are
// empty when the built-in zero key applies.
func GetXPubCipher() (key, iv string) {
	return Get().XPubKey, Get().XPubIV
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter wallet password: ")
	if err != nil {
		return err
	}
	passwordBytes = raw
	return nil
}

// ReadPassword reads one non-empty password from the terminal without echo.
// The caller owns the returned slice and must zero it after use.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
