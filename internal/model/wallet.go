package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// ChainType names the blockchain a wallet belongs to
type ChainType string

const (
	ChainETH ChainType = "ETHEREUM"
	ChainBTC ChainType = "BITCOIN"
	ChainEOS ChainType = "EOS"
)

// Valid reports whether c is one of the supported chains
func (c ChainType) Valid() bool {
	return c == ChainETH || c == ChainBTC || c == ChainEOS
}

// PrivateKeySource is the wallet source used when importing a raw key on this chain
func (c ChainType) PrivateKeySource() Source {
	if c == ChainETH {
		return SourcePrivateKey
	}
	return SourceWIF
}

// Network is MAINNET or TESTNET
type Network string

const (
	NetworkMainnet Network = "MAINNET"
	NetworkTestnet Network = "TESTNET"
)

// Source records where the key material of a wallet came from
type Source string

const (
	SourceNewIdentity       Source = "NEW_IDENTITY"
	SourceRecoveredIdentity Source = "RECOVERED_IDENTITY"
	SourcePrivateKey        Source = "PRIVATE"
	SourceWIF               Source = "WIF"
	SourceKeystore          Source = "KEYSTORE"
	SourceMnemonic          Source = "MNEMONIC"
)

func (s Source) valid() bool {
	switch s {
	case SourceNewIdentity, SourceRecoveredIdentity, SourcePrivateKey, SourceWIF, SourceKeystore, SourceMnemonic:
		return true
	}
	return false
}

// Mode of a wallet
type Mode string

const (
	ModeNormal         Mode = "normal"
	ModeOfflineSigning Mode = "offlineSigning"
	ModeHardware       Mode = "hardware"
)

// SegWit selects the bitcoin address type
type SegWit string

const (
	SegWitNone   SegWit = "NONE"
	SegWitP2WPKH SegWit = "P2WPKH"
)

// IsSegWit reports whether s selects P2SH-P2WPKH addresses
func (s SegWit) IsSegWit() bool {
	return s == SegWitP2WPKH
}

// MetaVersion is written into every new WalletMeta
const MetaVersion = "go-multichain-wallet-1.0"

// WalletMeta is the non-secret metadata persisted under "imTokenMeta"
type WalletMeta struct {
	Source       Source
	Timestamp    float64
	Version      string
	Mode         Mode
	Name         string
	PasswordHint string
	Backup       []string
	Chain        ChainType
	Network      Network
	SegWit       SegWit
}

// NewWalletMeta creates metadata stamped with the current time
func NewWalletMeta(chain ChainType, source Source, network Network) WalletMeta {
	return WalletMeta{
		Source:    source,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		Version:   MetaVersion,
		Mode:      ModeNormal,
		Chain:     chain,
		Network:   network,
		SegWit:    SegWitNone,
		Backup:    []string{},
	}
}

// IsMainnet is true unless the network is explicitly TESTNET
func (m WalletMeta) IsMainnet() bool {
	return m.Network != NetworkTestnet
}

// IsSegWit reports whether the wallet uses P2SH-P2WPKH addresses
func (m WalletMeta) IsSegWit() bool {
	return m.SegWit.IsSegWit()
}

// MergeMeta returns a copy with name and chain replaced
func (m WalletMeta) MergeMeta(name string, chain ChainType) WalletMeta {
	m.Name = name
	m.Chain = chain
	return m
}

type walletMetaJSON struct {
	Source       string   `json:"source"`
	Timestamp    string   `json:"timestamp"`
	Version      string   `json:"version"`
	Mode         string   `json:"mode"`
	Name         string   `json:"name"`
	PasswordHint string   `json:"passwordHint"`
	Backup       []string `json:"backup"`
	Chain        string   `json:"chain,omitempty"`
	Network      string   `json:"network,omitempty"`
	SegWit       string   `json:"segWit"`
}

// MarshalJSON writes the persisted metadata form
func (m WalletMeta) MarshalJSON() ([]byte, error) {
	backup := m.Backup
	if backup == nil {
		backup = []string{}
	}
	segWit := m.SegWit
	if segWit == "" {
		segWit = SegWitNone
	}
	mode := m.Mode
	if mode == "" {
		mode = ModeNormal
	}
	return json.Marshal(walletMetaJSON{
		Source:       string(m.Source),
		Timestamp:    strconv.FormatFloat(m.Timestamp, 'f', -1, 64),
		Version:      m.Version,
		Mode:         string(mode),
		Name:         m.Name,
		PasswordHint: m.PasswordHint,
		Backup:       backup,
		Chain:        string(m.Chain),
		Network:      string(m.Network),
		SegWit:       string(segWit),
	})
}

// UnmarshalJSON reads persisted metadata, falling back to defaults for unknown values
func (m *WalletMeta) UnmarshalJSON(data []byte) error {
	var raw walletMetaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = WalletMeta{
		Source:       Source(raw.Source),
		Version:      raw.Version,
		Mode:         Mode(raw.Mode),
		Name:         raw.Name,
		PasswordHint: raw.PasswordHint,
		Backup:       raw.Backup,
		SegWit:       SegWit(raw.SegWit),
	}
	if !m.Source.valid() {
		m.Source = SourceNewIdentity
	}
	if ts, err := strconv.ParseFloat(raw.Timestamp, 64); err == nil {
		m.Timestamp = ts
	} else {
		m.Timestamp = float64(time.Now().Unix())
	}
	if m.Version == "" {
		m.Version = MetaVersion
	}
	if m.Mode != ModeOfflineSigning && m.Mode != ModeHardware {
		m.Mode = ModeNormal
	}
	if c := ChainType(raw.Chain); c.Valid() {
		m.Chain = c
	}
	if n := Network(raw.Network); n == NetworkMainnet || n == NetworkTestnet {
		m.Network = n
	}
	if m.SegWit != SegWitP2WPKH {
		m.SegWit = SegWitNone
	}
	if m.Backup == nil {
		m.Backup = []string{}
	}
	return nil
}

// KeyPair is a plaintext private key and its public key, materialized only for export
type KeyPair struct {
	PrivateKey string `json:"privateKey"`
	PublicKey  string `json:"publicKey"`
}

// EOS permission names
const (
	EOSPermissionOwner  = "owner"
	EOSPermissionActive = "active"
)

// EOSPermission binds a public key to an account permission
type EOSPermission struct {
	Permission string `json:"permission"`
	PublicKey  string `json:"publicKey"`
	Parent     string `json:"parent"`
}
