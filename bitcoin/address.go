package bitcoin

import (
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// NetParams maps a wallet network to chain parameters. Anything but TESTNET is mainnet.
func NetParams(network model.Network) *chaincfg.Params {
	if network == model.NetworkTestnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

// WitnessRedeemScript is OP_0 <hash160(pubKey)>, the P2WPKH program nested in P2SH
func WitnessRedeemScript(pubKey []byte) []byte {
	return append([]byte{txscript.OP_0, txscript.OP_DATA_20}, btcutil.Hash160(pubKey)...)
}

// Address returns the P2PKH address of pubKey, or its P2SH-P2WPKH address when
// segWit is set. SegWit requires a compressed key.
func Address(pubKey []byte, params *chaincfg.Params, segWit bool) (btcutil.Address, error) {
	if segWit {
		if len(pubKey) != btcec.PubKeyBytesLenCompressed {
			return nil, model.ErrPublicKeyNotCompressed
		}
		addr, err := btcutil.NewAddressScriptHash(WitnessRedeemScript(pubKey), params)
		if err != nil {
			return nil, fmt.Errorf("failed to build p2sh address: %w", err)
		}
		return addr, nil
	}
	addr, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKey), params)
	if err != nil {
		return nil, fmt.Errorf("failed to build p2pkh address: %w", err)
	}
	return addr, nil
}

// AddressForMeta derives the address of pubKey under the network and segWit policy of meta
func AddressForMeta(pubKey []byte, meta model.WalletMeta) (string, error) {
	addr, err := Address(pubKey, NetParams(meta.Network), meta.IsSegWit())
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

// WIFAddress derives the address of the key inside wif
func WIFAddress(wif *btcutil.WIF, meta model.WalletMeta) (string, error) {
	return AddressForMeta(wif.SerializePubKey(), meta)
}

// DecodeAddress parses a destination address and checks it belongs to network
func DecodeAddress(address string, network model.Network) (btcutil.Address, error) {
	params := NetParams(network)
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil || !addr.IsForNet(params) {
		return nil, model.ErrAddressInvalid
	}
	return addr, nil
}

// DecodeWIF parses a WIF string
func DecodeWIF(s string) (*btcutil.WIF, error) {
	wif, err := btcutil.DecodeWIF(s)
	if err != nil {
		return nil, model.ErrWIFInvalid
	}
	return wif, nil
}

// WIFForNetwork re-encodes the key of wif for network keeping its compression
func WIFForNetwork(wif *btcutil.WIF, network model.Network) (*btcutil.WIF, error) {
	out, err := btcutil.NewWIF(wif.PrivKey, NetParams(network), wif.CompressPubKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wif: %w", err)
	}
	return out, nil
}
