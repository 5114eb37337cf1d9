package wallet

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/AlexZinkM/multichain-wallet/bitcoin"
	"github.com/AlexZinkM/multichain-wallet/eos"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"
	"github.com/AlexZinkM/multichain-wallet/keystore"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// P2PKH scripts of the first two external addresses of the testnet account
	testBTCAddressScript  = "76a914383fb81cb0a3fc724b5e08cf8bbd404336d711f688ac"
	testBTCExternalScript = "76a914275ec2a233e5b23d43fa19e7bf9beb0cb399611788ac"

	testTxHashA = "983adf9d813a2b8057454cc6f36c6081948af849966f9b9a33e5b653b02f227a"
	testTxHashB = "45ef8ac7f78b3d7d5ce71ae7934aea02f4ece1af458773f12af8ca4d79a9b531"
)

// verifyTx runs every input script of signedTx against its previous output
func verifyTx(t *testing.T, signedTx string, utxos []model.UTXO) *wire.MsgTx {
	raw, err := hex.DecodeString(signedTx)
	require.NoError(t, err)
	tx := wire.NewMsgTx(wire.TxVersion)
	require.NoError(t, tx.Deserialize(bytes.NewReader(raw)))
	require.Len(t, tx.TxIn, len(utxos))

	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for i, u := range utxos {
		hash, err := chainhash.NewHashFromStr(u.TxHash)
		require.NoError(t, err)
		script, err := hex.DecodeString(u.ScriptPubKey)
		require.NoError(t, err)
		fetcher.AddPrevOut(*wire.NewOutPoint(hash, u.Vout), wire.NewTxOut(u.Amount, script))
		assert.Equal(t, *wire.NewOutPoint(hash, u.Vout), tx.TxIn[i].PreviousOutPoint)
	}
	sigHashes := txscript.NewTxSigHashes(tx, fetcher)
	for i, u := range utxos {
		script, err := hex.DecodeString(u.ScriptPubKey)
		require.NoError(t, err)
		vm, err := txscript.NewEngine(script, tx, i, txscript.StandardVerifyFlags, nil, sigHashes, u.Amount, fetcher)
		require.NoError(t, err)
		require.NoError(t, vm.Execute(), "input %d", i)
	}
	return tx
}

func TestBTCSignTransaction(t *testing.T) {
	m, _ := recoveredManager(t)
	btc := walletOf(t, m, model.ChainBTC)

	utxos := []model.UTXO{
		{TxHash: testTxHashA, Vout: 0, Amount: 200000000, ScriptPubKey: testBTCAddressScript, DerivedPath: "0/0"},
		{TxHash: testTxHashB, Vout: 1, Amount: 200000000, ScriptPubKey: testBTCExternalScript},
		{TxHash: testTxHashB, Vout: 2, Amount: 200000000, ScriptPubKey: testBTCExternalScript},
	}
	req := BTCSignRequest{
		WalletID: btc.WalletID(),
		To:       testBTCExternalAddress,
		Amount:   250000000,
		Fee:      10000,
		UTXOs:    utxos,
	}
	result, err := m.BTCSignTransaction(req, password())
	require.NoError(t, err)
	assert.Empty(t, result.WtxID)

	tx := verifyTx(t, result.SignedTx, utxos[:2])
	assert.Equal(t, tx.TxHash().String(), result.TxHash)
	assert.EqualValues(t, 1, tx.Version)
	require.Len(t, tx.TxOut, 2)
	assert.Equal(t, int64(250000000), tx.TxOut[0].Value)
	assert.Equal(t, int64(149990000), tx.TxOut[1].Value)

	changeAddress, err := btc.CalcExternalAddress(0)
	require.NoError(t, err)
	assert.Equal(t, testBTCAddress, changeAddress)
	changeScript, err := hex.DecodeString(testBTCAddressScript)
	require.NoError(t, err)
	// change goes to the internal chain, never back to 0/0
	assert.NotEqual(t, changeScript, tx.TxOut[1].PkScript)
}

func TestBTCSignTransactionErrors(t *testing.T) {
	m, _ := recoveredManager(t)
	btc := walletOf(t, m, model.ChainBTC)
	eth := walletOf(t, m, model.ChainETH)

	utxos := []model.UTXO{
		{TxHash: testTxHashA, Vout: 0, Amount: 100000, ScriptPubKey: testBTCAddressScript, DerivedPath: "0/0"},
	}
	req := BTCSignRequest{WalletID: btc.WalletID(), To: testBTCExternalAddress, Amount: 100001, Fee: 1000, UTXOs: utxos}

	_, err := m.BTCSignTransaction(req, password())
	assert.ErrorIs(t, err, model.ErrInsufficientFunds)

	bad := req
	bad.To = "1N3RC53vbaDNrziTdWmctBEeQ4fo4quNpq"
	_, err = m.BTCSignTransaction(bad, password())
	assert.ErrorIs(t, err, model.ErrAddressInvalid)

	dust := req
	dust.Amount = 1000
	_, err = m.BTCSignTransaction(dust, password())
	assert.ErrorIs(t, err, model.ErrAmountLessThanMinimum)

	// a dust amount is reported as such even when the utxos cannot cover it
	dust.Amount = 2000
	dust.UTXOs = []model.UTXO{{TxHash: testTxHashA, Vout: 0, Amount: 1000, ScriptPubKey: testBTCAddressScript, DerivedPath: "0/0"}}
	_, err = m.BTCSignTransaction(dust, password())
	assert.ErrorIs(t, err, model.ErrAmountLessThanMinimum)

	_, err = m.BTCSignTransaction(BTCSignRequest{WalletID: btc.WalletID(), To: testBTCExternalAddress, Amount: 5000, UTXOs: utxos}, []byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)

	wrongChain := req
	wrongChain.WalletID = eth.WalletID()
	_, err = m.BTCSignTransaction(wrongChain, password())
	assert.ErrorIs(t, err, model.ErrOperationUnsupported)
}

func TestBTCSignTransactionFeeFromRemainder(t *testing.T) {
	m, _ := recoveredManager(t)
	btc := walletOf(t, m, model.ChainBTC)

	utxos := []model.UTXO{
		{TxHash: testTxHashA, Vout: 0, Amount: 100000, ScriptPubKey: testBTCAddressScript, DerivedPath: "0/0"},
	}
	result, err := m.BTCSignTransaction(BTCSignRequest{
		WalletID: btc.WalletID(),
		To:       testBTCExternalAddress,
		Amount:   99500,
		Fee:      1000,
		UTXOs:    utxos,
	}, password())
	require.NoError(t, err)

	// the 500 satoshi left over is below dust and goes to the fee
	tx := verifyTx(t, result.SignedTx, utxos)
	require.Len(t, tx.TxOut, 1)
	assert.Equal(t, int64(99500), tx.TxOut[0].Value)
}

func TestBTCSignTransactionWIF(t *testing.T) {
	m, _ := recoveredManager(t)
	w, err := m.ImportFromPrivateKey(testBTCWIFTestnet, model.NewWalletMeta(model.ChainBTC, "", model.NetworkTestnet), password(), "")
	require.NoError(t, err)

	script := "76a9140e3f972ec0f1a5a23d757194e5b246eef3f01da188ac"
	utxos := []model.UTXO{
		{TxHash: testTxHashA, Vout: 0, Amount: 60000, ScriptPubKey: script},
		{TxHash: testTxHashB, Vout: 3, Amount: 60000, ScriptPubKey: script},
	}
	result, err := m.BTCSignTransaction(BTCSignRequest{
		WalletID: w.WalletID(),
		To:       testBTCAddress,
		Amount:   100000,
		Fee:      5000,
		UTXOs:    utxos,
	}, password())
	require.NoError(t, err)

	tx := verifyTx(t, result.SignedTx, utxos)
	require.Len(t, tx.TxOut, 2)
	scriptBytes, err := hex.DecodeString(script)
	require.NoError(t, err)
	assert.Equal(t, scriptBytes, tx.TxOut[1].PkScript)
	assert.Equal(t, int64(15000), tx.TxOut[1].Value)
}

func TestSwitchBTCWalletMode(t *testing.T) {
	m, backend := recoveredManager(t)
	btc := walletOf(t, m, model.ChainBTC)
	walletID := btc.WalletID()

	same, err := m.SwitchBTCWalletMode(walletID, model.SegWitNone, []byte("not checked"))
	require.NoError(t, err)
	assert.Equal(t, testBTCAddress, same.Address())

	_, err = m.SwitchBTCWalletMode(walletID, model.SegWitP2WPKH, []byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)

	switched, err := m.SwitchBTCWalletMode(walletID, model.SegWitP2WPKH, password())
	require.NoError(t, err)
	assert.Equal(t, walletID, switched.WalletID())
	assert.True(t, switched.Meta().IsSegWit())
	assert.True(t, strings.HasPrefix(switched.Address(), "2"))
	export, err := m.ExportMnemonic(walletID, password())
	require.NoError(t, err)
	assert.Equal(t, hd.PathBTCSegWitTest, export.Path)

	reloaded, err := newTestManager(t, backend).FindWalletByID(walletID)
	require.NoError(t, err)
	assert.Equal(t, switched.Address(), reloaded.Address())

	address, err := bitcoin.DecodeAddress(switched.Address(), model.NetworkTestnet)
	require.NoError(t, err)
	pkScript, err := txscript.PayToAddrScript(address)
	require.NoError(t, err)
	utxos := []model.UTXO{
		{TxHash: testTxHashA, Vout: 0, Amount: 1000000, ScriptPubKey: hex.EncodeToString(pkScript), DerivedPath: "0/0"},
		{TxHash: testTxHashB, Vout: 0, Amount: 1000000, ScriptPubKey: hex.EncodeToString(pkScript)},
	}
	result, err := m.BTCSignTransaction(BTCSignRequest{
		WalletID: walletID,
		To:       testBTCExternalAddress,
		Amount:   1500000,
		Fee:      20000,
		UTXOs:    utxos,
	}, password())
	require.NoError(t, err)
	assert.NotEmpty(t, result.WtxID)
	tx := verifyTx(t, result.SignedTx, utxos)
	assert.EqualValues(t, 2, tx.Version)

	back, err := m.SwitchBTCWalletMode(walletID, model.SegWitNone, password())
	require.NoError(t, err)
	assert.Equal(t, testBTCAddress, back.Address())

	eth := walletOf(t, m, model.ChainETH)
	_, err = m.SwitchBTCWalletMode(eth.WalletID(), model.SegWitP2WPKH, password())
	assert.ErrorIs(t, err, model.ErrOperationUnsupported)
}

func TestSwitchBTCWalletModeDuplicate(t *testing.T) {
	m, _ := recoveredManager(t)
	meta := model.NewWalletMeta(model.ChainBTC, "", model.NetworkTestnet)
	legacy, err := m.ImportFromPrivateKey(testBTCWIFTestnet, meta, password(), "")
	require.NoError(t, err)

	meta.SegWit = model.SegWitP2WPKH
	_, err = m.ImportFromPrivateKey(testBTCWIFTestnet, meta, password(), "")
	require.NoError(t, err)

	_, err = m.SwitchBTCWalletMode(legacy.WalletID(), model.SegWitP2WPKH, password())
	assert.ErrorIs(t, err, model.ErrAddressAlreadyExist)
	assert.Equal(t, testBTCWIFAddress, legacy.Address())
}

func TestEOSWallet(t *testing.T) {
	m, backend := recoveredManager(t)
	wallets, err := m.DeriveWallets([]model.ChainType{model.ChainEOS}, password())
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	w := wallets[0]

	ks, ok := w.Keystore().(*keystore.EOSKeystore)
	require.True(t, ok)
	assert.Equal(t, []string{testEOSLedgerPublic}, ks.PublicKeys())
	assert.Empty(t, w.Address())
	assert.Equal(t, "EOS", w.Meta().Name)

	_, err = m.DeriveWallets([]model.ChainType{model.ChainETH}, []byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)

	named, err := m.SetEOSAccountName(w.WalletID(), "inita")
	require.NoError(t, err)
	assert.Equal(t, "inita", named.Address())
	_, err = m.SetEOSAccountName(w.WalletID(), "initb")
	assert.ErrorIs(t, err, model.ErrEOSAccountNameAlreadySet)
	eth := walletOf(t, m, model.ChainETH)
	_, err = m.SetEOSAccountName(eth.WalletID(), "inita")
	assert.ErrorIs(t, err, model.ErrOperationUnsupported)

	reloaded, err := newTestManager(t, backend).FindWalletByID(w.WalletID())
	require.NoError(t, err)
	assert.Equal(t, "inita", reloaded.Address())

	pairs, err := m.ExportPrivateKeys(w.WalletID(), password())
	require.NoError(t, err)
	assert.Equal(t, []model.KeyPair{{PrivateKey: testEOSLedgerWIF, PublicKey: testEOSLedgerPublic}}, pairs)
	_, err = m.ExportPrivateKey(w.WalletID(), password())
	assert.ErrorIs(t, err, model.ErrOperationUnsupported)

	found, err := m.FindWalletByPrivateKey(testEOSLedgerWIF, model.ChainEOS, model.NetworkMainnet, model.SegWitNone)
	require.NoError(t, err)
	assert.Equal(t, w.WalletID(), found.WalletID())

	sig, err := m.EOSECSign(w.WalletID(), testEOSLedgerPublic, "imToken2017", false, password())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sig, "SIG_K1_"))
	recovered, err := m.EOSECRecover("imToken2017", false, sig)
	require.NoError(t, err)
	assert.Equal(t, testEOSLedgerPublic, recovered)

	_, err = m.EOSECSign(w.WalletID(), testEOSPublicKey, "imToken2017", false, password())
	assert.ErrorIs(t, err, model.ErrEOSPrivatePublicNotMatch)
	_, err = m.EOSECSign(eth.WalletID(), testEOSLedgerPublic, "imToken2017", false, password())
	assert.ErrorIs(t, err, model.ErrEOSRequiredEOSWallet)

	txs := []model.EOSTransaction{{
		Data:       "c578065b93aec6a7c811000000000100a6823403ea3055000000572d3ccdcd01000000602a48b37400000000a8ed323225000000602a48b374208410425c95b1ca80969800000000000453595300000000046d656d6f00",
		PublicKeys: []string{testEOSLedgerPublic},
		ChainID:    "aca376f206b8fc25a6ed44dbdc66547c36c6c33e3a119ffbeaef943642f0e906",
	}}
	results, err := m.EOSSignTransaction(w.WalletID(), txs, password())
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Signs, 1)

	data, err := hex.DecodeString(txs[0].Data)
	require.NoError(t, err)
	chainID, err := hex.DecodeString(txs[0].ChainID)
	require.NoError(t, err)
	signature, err := eos.DecodeSignature(results[0].Signs[0])
	require.NoError(t, err)
	signer, err := eos.Recover(eos.TransactionDigest(chainID, data), signature)
	require.NoError(t, err)
	assert.Equal(t, testEOSLedgerPublic, signer)

	_, err = m.EOSSignTransaction(eth.WalletID(), txs, password())
	assert.ErrorIs(t, err, model.ErrEOSRequiredEOSWallet)
}

func TestImportEOS(t *testing.T) {
	m, _ := recoveredManager(t)
	meta := model.NewWalletMeta(model.ChainEOS, "", model.NetworkMainnet)
	permissions := []model.EOSPermission{
		{Permission: model.EOSPermissionOwner, PublicKey: testEOSLedgerPublic},
	}

	w, err := m.ImportEOS(testMnemonic, "inita", permissions, meta, password(), hd.PathEOSLedger)
	require.NoError(t, err)
	assert.Equal(t, "inita", w.Address())

	_, err = m.ImportEOS(testMnemonic, "initb", permissions, meta, password(), "")
	assert.ErrorIs(t, err, model.ErrMnemonicPathInvalid)
	_, err = m.ImportEOS(testMnemonic, "initb", permissions, model.NewWalletMeta(model.ChainETH, "", model.NetworkMainnet), password(), hd.PathEOSLedger)
	assert.ErrorIs(t, err, model.ErrOperationUnsupported)

	keys, err := m.ImportEOSPrivateKeys([]string{testEOSWIF}, "initc", []model.EOSPermission{
		{Permission: model.EOSPermissionActive, PublicKey: testEOSPublicKey},
	}, meta, password())
	require.NoError(t, err)
	assert.Equal(t, model.SourceWIF, keys.Meta().Source)
	_, err = m.ImportEOSPrivateKeys([]string{testEOSWIF}, "initd", nil, meta, password())
	assert.ErrorIs(t, err, model.ErrEOSPrivatePublicNotMatch)
}

func TestEOSSignTransactionSeveralKeys(t *testing.T) {
	m, _ := recoveredManager(t)
	meta := model.NewWalletMeta(model.ChainEOS, "", model.NetworkMainnet)
	w, err := m.ImportEOSPrivateKeys([]string{testEOSWIF, testEOSLedgerWIF}, "inita", []model.EOSPermission{
		{Permission: model.EOSPermissionOwner, PublicKey: testEOSPublicKey},
		{Permission: model.EOSPermissionActive, PublicKey: testEOSLedgerPublic},
	}, meta, password())
	require.NoError(t, err)

	tx := model.EOSTransaction{
		Data:       "c578065b93aec6a7c811000000000100a6823403ea3055000000572d3ccdcd01000000602a48b37400000000a8ed323225000000602a48b374208410425c95b1ca80969800000000000453595300000000046d656d6f00",
		PublicKeys: []string{testEOSPublicKey, testEOSLedgerPublic},
		ChainID:    "aca376f206b8fc25a6ed44dbdc66547c36c6c33e3a119ffbeaef943642f0e906",
	}
	results, err := m.EOSSignTransaction(w.WalletID(), []model.EOSTransaction{tx, tx}, password())
	require.NoError(t, err)
	require.Len(t, results, 2)

	data, err := hex.DecodeString(tx.Data)
	require.NoError(t, err)
	chainID, err := hex.DecodeString(tx.ChainID)
	require.NoError(t, err)
	for _, result := range results {
		require.Len(t, result.Signs, 2)
		for i, sign := range result.Signs {
			signature, err := eos.DecodeSignature(sign)
			require.NoError(t, err)
			signer, err := eos.Recover(eos.TransactionDigest(chainID, data), signature)
			require.NoError(t, err)
			assert.Equal(t, tx.PublicKeys[i], signer)
		}
	}

	_, err = m.EOSSignTransaction(w.WalletID(), []model.EOSTransaction{tx}, []byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)
}

func TestImportEOSLegacy(t *testing.T) {
	m, _ := recoveredManager(t)
	meta := model.NewWalletMeta(model.ChainEOS, "", model.NetworkMainnet)

	_, err := m.ImportFromPrivateKey(testEOSWIF, meta, password(), "")
	assert.ErrorIs(t, err, model.ErrParam)

	w, err := m.ImportFromPrivateKey(testEOSWIF, meta, password(), "inita")
	require.NoError(t, err)
	wif, err := m.ExportPrivateKey(w.WalletID(), password())
	require.NoError(t, err)
	assert.Equal(t, testEOSWIF, wif)

	sig, err := m.EOSECSign(w.WalletID(), "", "imToken2017", false, password())
	require.NoError(t, err)
	recovered, err := m.EOSECRecover("imToken2017", false, sig)
	require.NoError(t, err)
	assert.Equal(t, testEOSPublicKey, recovered)

	_, err = m.SetEOSAccountName(w.WalletID(), "inita")
	assert.ErrorIs(t, err, model.ErrOperationUnsupported)
}

func TestETHSignTransaction(t *testing.T) {
	m, _ := recoveredManager(t)
	w, err := m.ImportFromPrivateKey("4646464646464646464646464646464646464646464646464646464646464646",
		model.NewWalletMeta(model.ChainETH, "", model.NetworkMainnet), password(), "")
	require.NoError(t, err)
	assert.Equal(t, model.SourcePrivateKey, w.Meta().Source)

	result, err := m.ETHSignTransaction(ETHSignRequest{
		WalletID: w.WalletID(),
		Nonce:    "9",
		GasPrice: "20000000000",
		GasLimit: "21000",
		To:       "0x3535353535353535353535353535353535353535",
		Value:    "1000000000000000000",
		ChainID:  1,
	}, password())
	require.NoError(t, err)
	assert.Equal(t, "f86c098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83", result.SignedTx)
	assert.Equal(t, "0x33469b22e9f636356c4160a87eb19df52b7412e8eac32a4a55ffe88ea8350788", result.TxHash)

	_, err = m.ETHSignTransaction(ETHSignRequest{WalletID: w.WalletID(), Nonce: "0x"}, []byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)

	btc := walletOf(t, m, model.ChainBTC)
	_, err = m.ETHSignTransaction(ETHSignRequest{WalletID: btc.WalletID()}, password())
	assert.ErrorIs(t, err, model.ErrOperationUnsupported)
}

func TestETHPersonalSign(t *testing.T) {
	m, _ := recoveredManager(t)
	w, err := m.ImportFromPrivateKey("6969696969696969696969696969696969696969696969696969696969696969",
		model.NewWalletMeta(model.ChainETH, "", model.NetworkMainnet), password(), "")
	require.NoError(t, err)

	sig, err := m.ETHPersonalSign(w.WalletID(), "hello world", password())
	require.NoError(t, err)
	assert.Equal(t, "ce909e8ea6851bc36c007a0072d0524b07a3ff8d4e623aca4c71ca8e57250c4d0a3fc38fa8fbaaa81ead4b9f6bd03356b6f8bf18bccad167d78891636e1d69561b", sig)
}

func TestManagerWithoutIdentity(t *testing.T) {
	m := newTestManager(t, storage.NewMemoryBackend())
	_, err := m.FindWalletByID("00000000-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, model.ErrInvalidIdentity)
	assert.True(t, IsNotFound(err))
}
