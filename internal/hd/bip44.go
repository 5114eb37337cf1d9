package hd

import "github.com/AlexZinkM/multichain-wallet/internal/model"

// BIP-44 derivation paths used by the wallets
const (
	PathETH           = "m/44'/60'/0'/0/0"
	PathIPFS          = "m/44'/99'/0'"
	PathBTCMainnet    = "m/44'/0'/0'"
	PathBTCTestnet    = "m/44'/1'/0'"
	PathBTCSegWit     = "m/49'/0'/0'"
	PathBTCSegWitTest = "m/49'/1'/0'"
	PathEOS           = "m/44'/194'"
	PathEOSLedger     = "m/44'/194'/0'/0/0"
)

// PathSeparator joins several paths when one wallet derives more than one key
const PathSeparator = ","

// BTCPath returns the account path for network and address mode.
// Anything but TESTNET is treated as mainnet.
func BTCPath(network model.Network, segWit model.SegWit) string {
	testnet := network == model.NetworkTestnet
	switch {
	case segWit.IsSegWit() && testnet:
		return PathBTCSegWitTest
	case segWit.IsSegWit():
		return PathBTCSegWit
	case testnet:
		return PathBTCTestnet
	default:
		return PathBTCMainnet
	}
}
