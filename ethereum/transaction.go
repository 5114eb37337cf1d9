package ethereum

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// LegacyChainID signs without replay protection (v = recid + 27)
const LegacyChainID int64 = -4

// Transaction is a legacy ethereum transaction whose fields are kept as text
// and coerced to integers only when serialized. A transaction built with all
// of V, R and S set is considered signed and serializes nine fields.
type Transaction struct {
	Nonce    string `json:"nonce"`
	GasPrice string `json:"gasPrice"`
	GasLimit string `json:"gasLimit"`
	To       string `json:"to"`
	Value    string `json:"value"`
	Data     string `json:"data"`
	V        string `json:"v,omitempty"`
	R        string `json:"r,omitempty"`
	S        string `json:"s,omitempty"`

	chainID int64
}

// NewTransaction prepares an unsigned transaction. With a positive chainID the
// EIP-155 placeholders (chainID, 0, 0) take the signature slots.
func NewTransaction(nonce, gasPrice, gasLimit, to, value, data string, chainID int64) *Transaction {
	tx := &Transaction{
		Nonce:    nonce,
		GasPrice: gasPrice,
		GasLimit: gasLimit,
		To:       to,
		Value:    value,
		Data:     data,
		chainID:  chainID,
	}
	if chainID > 0 {
		tx.V = strconv.FormatInt(chainID, 10)
		tx.R = "0"
		tx.S = "0"
	}
	return tx
}

// ChainID returns the chain the transaction is bound to
func (tx *Transaction) ChainID() int64 {
	return tx.chainID
}

// ValueWei returns the transferred value in wei
func (tx *Transaction) ValueWei() (*big.Int, error) {
	n, err := parseBigNumber(tx.Value, false)
	if err != nil {
		return nil, err
	}
	return n.value, nil
}

func (tx *Transaction) isSigned() bool {
	return tx.V != "" && tx.R != "" && tx.S != ""
}

func (tx *Transaction) fields() ([][]byte, error) {
	type field struct {
		text    string
		padding bool
	}
	list := []field{
		{tx.Nonce, false},
		{tx.GasPrice, false},
		{tx.GasLimit, false},
		{tx.To, true},
		{tx.Value, false},
		{tx.Data, true},
	}
	if tx.isSigned() {
		list = append(list, field{tx.V, false}, field{tx.R, false}, field{tx.S, false})
	}

	out := make([][]byte, 0, len(list))
	for _, f := range list {
		n, err := parseBigNumber(f.text, f.padding)
		if err != nil {
			return nil, err
		}
		out = append(out, n.Bytes())
	}
	return out, nil
}

// Encode returns the RLP encoding of the current fields
func (tx *Transaction) Encode() ([]byte, error) {
	fields, err := tx.fields()
	if err != nil {
		return nil, err
	}
	encoded, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to rlp encode transaction: %w", err)
	}
	return encoded, nil
}

// SigningHash is the 0x-prefixed Keccak256 of the current encoding. Before
// signing it is the hash to sign, afterwards the transaction hash.
func (tx *Transaction) SigningHash() (string, error) {
	encoded, err := tx.Encode()
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(crypto.Keccak256(encoded)), nil
}

// Sign signs the signing hash with privateKey and stores v as decimal and
// r and s as 0x-prefixed hex
func (tx *Transaction) Sign(privateKey []byte) error {
	encoded, err := tx.Encode()
	if err != nil {
		return err
	}
	sig, err := sign(privateKey, crypto.Keccak256(encoded))
	if err != nil {
		return err
	}

	recID := int64(sig[crypto.RecoveryIDOffset])
	v := recID + 27
	if tx.chainID > 0 {
		v = recID + tx.chainID*2 + 35
	}
	tx.V = strconv.FormatInt(v, 10)
	tx.R = "0x" + hex.EncodeToString(sig[:32])
	tx.S = "0x" + hex.EncodeToString(sig[32:64])
	return nil
}

// SignedTransaction is the hex RLP of the signed transaction without 0x
func (tx *Transaction) SignedTransaction() (string, error) {
	encoded, err := tx.Encode()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(encoded), nil
}

// SignedResult must be called after Sign
func (tx *Transaction) SignedResult() (*model.TransactionSignedResult, error) {
	if !tx.isSigned() {
		return nil, fmt.Errorf("transaction is not signed: %w", model.ErrParam)
	}
	signed, err := tx.SignedTransaction()
	if err != nil {
		return nil, err
	}
	hash, err := tx.SigningHash()
	if err != nil {
		return nil, err
	}
	return &model.TransactionSignedResult{SignedTx: signed, TxHash: hash}, nil
}
