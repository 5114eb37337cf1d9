package bitcoin

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// DustThreshold is the smallest payment or change output the signer emits, in satoshi
const DustThreshold int64 = 2730

const (
	legacyTxVersion = 1
	segWitTxVersion = 2
)

// TransactionSigner builds and signs a payment spending every given UTXO.
// keys[i] signs utxos[i].
type TransactionSigner struct {
	utxos  []model.UTXO
	keys   []*btcutil.WIF
	amount int64
	fee    int64
	to     btcutil.Address
	change btcutil.Address
}

// NewTransactionSigner rejects amounts below the dust threshold before anything is built
func NewTransactionSigner(utxos []model.UTXO, keys []*btcutil.WIF, amount, fee int64, to, change btcutil.Address) (*TransactionSigner, error) {
	if amount < DustThreshold {
		return nil, model.ErrAmountLessThanMinimum
	}
	if len(keys) != len(utxos) {
		return nil, fmt.Errorf("%d keys for %d utxos: %w", len(keys), len(utxos), model.ErrParam)
	}
	return &TransactionSigner{
		utxos:  utxos,
		keys:   keys,
		amount: amount,
		fee:    fee,
		to:     to,
		change: change,
	}, nil
}

// TotalSpend sums the amounts of utxos
func TotalSpend(utxos []model.UTXO) int64 {
	var total int64
	for _, u := range utxos {
		total += u.Amount
	}
	return total
}

// Sign produces a version 1 transaction with P2PKH script signatures
func (s *TransactionSigner) Sign() (*model.TransactionSignedResult, error) {
	tx, prevOuts, err := s.build(legacyTxVersion)
	if err != nil {
		return nil, err
	}

	for i, in := range tx.TxIn {
		key := s.keys[i]
		sigScript, err := txscript.SignatureScript(tx, i, prevOuts[i].PkScript, txscript.SigHashAll, key.PrivKey, key.CompressPubKey)
		if err != nil {
			return nil, fmt.Errorf("failed to sign input %d: %w", i, err)
		}
		in.SignatureScript = sigScript
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return &model.TransactionSignedResult{
		SignedTx: hex.EncodeToString(buf.Bytes()),
		TxHash:   tx.TxHash().String(),
	}, nil
}

// SignSegWit produces a version 2 transaction spending P2SH-P2WPKH outputs.
// The result carries both the txid and the wtxid.
func (s *TransactionSigner) SignSegWit() (*model.TransactionSignedResult, error) {
	tx, prevOuts, err := s.build(segWitTxVersion)
	if err != nil {
		return nil, err
	}

	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, in := range tx.TxIn {
		fetcher.AddPrevOut(in.PreviousOutPoint, prevOuts[i])
	}
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)

	for i, in := range tx.TxIn {
		key := s.keys[i]
		if !key.CompressPubKey {
			return nil, model.ErrPublicKeyNotCompressed
		}
		witnessProgram := WitnessRedeemScript(key.SerializePubKey())
		witness, err := txscript.WitnessSignature(tx, sigHashes, i, prevOuts[i].Value, witnessProgram, txscript.SigHashAll, key.PrivKey, true)
		if err != nil {
			return nil, fmt.Errorf("failed to sign input %d: %w", i, err)
		}
		sigScript, err := txscript.NewScriptBuilder().AddData(witnessProgram).Script()
		if err != nil {
			return nil, fmt.Errorf("failed to build redeem script push: %w", err)
		}
		in.Witness = witness
		in.SignatureScript = sigScript
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return &model.TransactionSignedResult{
		SignedTx: hex.EncodeToString(buf.Bytes()),
		TxHash:   tx.TxHash().String(),
		WtxID:    tx.WitnessHash().String(),
	}, nil
}

// build adds one input per UTXO, the payment output and a change output when
// the change is not dust. Dust change is left to the fee.
func (s *TransactionSigner) build(version int32) (*wire.MsgTx, []*wire.TxOut, error) {
	total := TotalSpend(s.utxos)
	if total < s.amount {
		return nil, nil, model.ErrInsufficientFunds
	}

	tx := wire.NewMsgTx(version)
	prevOuts := make([]*wire.TxOut, 0, len(s.utxos))
	for _, u := range s.utxos {
		hash, err := chainhash.NewHashFromStr(u.TxHash)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid utxo hash %q: %w", u.TxHash, model.ErrParam)
		}
		pkScript, err := hex.DecodeString(u.ScriptPubKey)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid utxo script %q: %w", u.ScriptPubKey, model.ErrParam)
		}
		in := wire.NewTxIn(wire.NewOutPoint(hash, u.Vout), nil, nil)
		in.Sequence = u.InputSequence()
		tx.AddTxIn(in)
		prevOuts = append(prevOuts, wire.NewTxOut(u.Amount, pkScript))
	}

	toScript, err := txscript.PayToAddrScript(s.to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build output script: %w", err)
	}
	tx.AddTxOut(wire.NewTxOut(s.amount, toScript))

	if change := total - s.amount - s.fee; change >= DustThreshold {
		changeScript, err := txscript.PayToAddrScript(s.change)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build change script: %w", err)
		}
		tx.AddTxOut(wire.NewTxOut(change, changeScript))
	}
	return tx, prevOuts, nil
}
