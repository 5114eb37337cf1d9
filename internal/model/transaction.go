package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DefaultSequence is the input sequence of a UTXO that does not set one
const DefaultSequence uint32 = 0xffffffff

// UTXO is an unspent bitcoin output offered for spending. A nil Sequence
// spends with DefaultSequence; zero is a valid explicit sequence.
type UTXO struct {
	TxHash       string
	Vout         uint32
	Amount       int64
	Address      string
	ScriptPubKey string
	DerivedPath  string
	Sequence     *uint32
}

// InputSequence is the sequence of the input spending u
func (u UTXO) InputSequence() uint32 {
	if u.Sequence == nil {
		return DefaultSequence
	}
	return *u.Sequence
}

type utxoJSON struct {
	TxHash       string  `json:"txHash"`
	Vout         uint32  `json:"vout"`
	Amount       string  `json:"amount"`
	Address      string  `json:"address"`
	ScriptPubKey string  `json:"scriptPubKey"`
	DerivedPath  string  `json:"derivedPath,omitempty"`
	Sequence     *uint32 `json:"sequence,omitempty"`
}

// blockchainUTXOJSON is the unspent output format of blockchain.info style explorers
type blockchainUTXOJSON struct {
	TxHash       string `json:"tx_hash_big_endian"`
	Vout         *int64 `json:"tx_output_n"`
	Value        *int64 `json:"value"`
	ScriptPubKey string `json:"script"`
}

// MarshalJSON writes the native UTXO form with the amount as a decimal string
func (u UTXO) MarshalJSON() ([]byte, error) {
	return json.Marshal(utxoJSON{
		TxHash:       u.TxHash,
		Vout:         u.Vout,
		Amount:       strconv.FormatInt(u.Amount, 10),
		Address:      u.Address,
		ScriptPubKey: u.ScriptPubKey,
		DerivedPath:  u.DerivedPath,
		Sequence:     u.Sequence,
	})
}

// UnmarshalJSON accepts the native form and falls back to the blockchain.info form
func (u *UTXO) UnmarshalJSON(data []byte) error {
	var native utxoJSON
	if err := json.Unmarshal(data, &native); err != nil {
		return err
	}
	if native.TxHash != "" {
		amount, err := strconv.ParseInt(native.Amount, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid utxo amount %q: %w", native.Amount, err)
		}
		if native.ScriptPubKey == "" {
			return fmt.Errorf("utxo %s:%d has no scriptPubKey", native.TxHash, native.Vout)
		}
		*u = UTXO{
			TxHash:       native.TxHash,
			Vout:         native.Vout,
			Amount:       amount,
			Address:      native.Address,
			ScriptPubKey: native.ScriptPubKey,
			DerivedPath:  native.DerivedPath,
			Sequence:     native.Sequence,
		}
		return nil
	}

	var explorer blockchainUTXOJSON
	if err := json.Unmarshal(data, &explorer); err != nil {
		return err
	}
	if explorer.TxHash == "" || explorer.Vout == nil || explorer.Value == nil || explorer.ScriptPubKey == "" {
		return fmt.Errorf("unrecognized utxo format")
	}
	*u = UTXO{
		TxHash:       explorer.TxHash,
		Vout:         uint32(*explorer.Vout),
		Amount:       *explorer.Value,
		ScriptPubKey: explorer.ScriptPubKey,
	}
	return nil
}

// TransactionSignedResult is the output of every transaction signer.
// WtxID is only set for segwit bitcoin transactions.
type TransactionSignedResult struct {
	SignedTx string `json:"signedTx"`
	TxHash   string `json:"txHash"`
	WtxID    string `json:"wtxId,omitempty"`
}

// EOSSignResult holds the display hash and the SIG_K1 signatures of one EOS transaction
type EOSSignResult struct {
	Hash  string   `json:"hash"`
	Signs []string `json:"signs"`
}

// EOSTransaction is one unsigned EOS transaction and the keys that must sign it
type EOSTransaction struct {
	Data       string   `json:"data"`
	PublicKeys []string `json:"publicKeys"`
	ChainID    string   `json:"chainId"`
}
