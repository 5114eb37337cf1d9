package keystore

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"testing"

	"github.com/AlexZinkM/multichain-wallet/eos"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/hd"
	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMnemonic = "inject kidney empty canal shadow pact comfort wife crush horse wife sketch"

	testIdentifier = "im18MDKM8hcTykvMmhLnov9m2BaFqsdjoA7cwNg"
	testIPFSID     = "QmSTTidyfa4np9ak9BZP38atuzkCHy4K59oif23f4dNAGU"
	testEncKey     = "9513617c9b398edebfb46080a8f0cf6cab6763866bb06daa63503722bea78907"
	testAuthKey    = "78949244183eab630f5648093d70ecd7342defb051aaea59589620cbe1c8999f"

	testETHAddress    = "6031564e7b2f5cc33737807b2e58daff870b590b"
	testETHPrivateKey = "cce64585e3b15a0e4ee601a467e050c9504a0db69a559d7ec416fa25ad3410c2"

	testBTCAddress         = "mkeNU5nVnozJiaACDELLCsVUc8Wxoh1rQN"
	testBTCExternalAddress = "mj78AbVtQ9SWnvbU7pcrueyE1krMmZtoUU"
	testBTCXPrv            = "tprv8g8UWPRHxaNWXZN3uoaiNpyYyaDr2j5Dvcj1vxLxKcEF653k7xcN9wq9eT73wBM1HzE9hmWJbAPXvDvaMXqGWm81UcVpHnmATfH2JJrfhGg"
	testBTCXPub            = "tpubDCpWeoTY6x4BR2PqoTFJnEdfYbjnC4G8VvKoDUPFjt2dvZJWkMRxLST1pbVW56P7zY3L5jq9MRSeff2xsLnvf9qBBN9AgvrhwfZgw5dJG6R"
	testEncXPub            = "z8mGJW10fGNvS5y4u5NJB2InBghTty10hbgM0EzPksr91LUDZqnbX8vINytLWeEqBW7knUNo9+SvDSAFi+gNEEmUUYzvsYYBfieuo6pANe8s/hHnrbqfL/PN9xtvIl57ZO5hMN3AMCX/NzSd8+WIQw=="

	testBTCWIFTestnet   = "cUieW64P5NYWe2JrxiHRMeE3xWZTdtTCh5DNWF1VVYBAmLJkBRWs"
	testBTCWIFMainnet   = "L2hfzPyVC1jWH7n2QLTe7tVTb6btg9smp5UVzhEBxLYaSFF7sCZB"
	testBTCSegWitP2SH   = "2NB53xvb7eociGEYThz5WZWvr4qZexH8LG7"
	testUncompressedWIF = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"

	testEOSWIF           = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"
	testEOSPublicKey     = "EOS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV"
	testEOSLedgerWIF     = "5KAigHMamRhN7uwHFnk3yz7vUTyQT1nmXoAA899XpZKJpkqsPFp"
	testEOSLedgerPublic  = "EOS88XhiiP7Cu5TmAUJqHbyuhyYgd6sei68AU266PyetDDAtjmYWF"
	testEOSSecondPublic  = "EOS6nMTsARzbN5r84Wu5fez9jdGarY8ZQmhZVPteRSzcFP6GbPDem"
	testEOSSecondKeyPath = "m/44'/194'/0'/0/1"

	testPassword = "Insecure Pa55w0rd"
)

// web3 secret storage pbkdf2 vector, password "testpassword"
const pbkdf2V3 = `{
  "crypto": {
    "cipher": "aes-128-ctr",
    "cipherparams": {"iv": "6087dab2f9fdbbfaddc31a909735c1e6"},
    "ciphertext": "5318b4d5bcd28de64ee5559e671353e16f075ecae9f99c7a79a38af5f869aa46",
    "kdf": "pbkdf2",
    "kdfparams": {
      "c": 262144,
      "dklen": 32,
      "prf": "hmac-sha256",
      "salt": "ae3cd4e7013836a3df6bd7241b12db061dbe2c6785853cce422d148a624ce0bd"
    },
    "mac": "517ead924a9d0dc3124507e3393d175ce3ff7c1e96529c6c555ce9e51205e9b2"
  },
  "id": "3198bc9c-6672-5ab3-d995-4942343ae5b6",
  "version": 3,
  "address": "008aeeda4d805471df9b2a5b0f38a0c3bcba786b"
}`

func TestMain(m *testing.M) {
	crypto.SetScryptN(1 << 10)
	if err := SetXPubCipherHex("11111111111111111111111111111111", "CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func password() []byte {
	return []byte(testPassword)
}

// unlock opens a session on ks with the test password, closed when t ends
func unlock(t *testing.T, ks Keystore) *crypto.Session {
	t.Helper()
	session, err := ks.Unlock(password())
	require.NoError(t, err)
	t.Cleanup(session.Close)
	return session
}

func roundTrip(t *testing.T, ks Keystore) Keystore {
	data, err := Marshal(ks)
	require.NoError(t, err)
	parsed, err := Parse(data)
	require.NoError(t, err)
	return parsed
}

func TestIdentityKeystore(t *testing.T) {
	meta := model.NewWalletMeta("", model.SourceNewIdentity, model.NetworkTestnet)
	ks, err := NewIdentityKeystore(password(), testMnemonic, meta)
	require.NoError(t, err)

	assert.Equal(t, testIdentifier, ks.Identifier())
	assert.Equal(t, testIPFSID, ks.IPFSID())
	assert.Equal(t, VersionIdentity, ks.Version())
	assert.Empty(t, ks.WalletIDs())

	encKey, err := ks.EncKey()
	require.NoError(t, err)
	assert.Equal(t, testEncKey, hex.EncodeToString(encKey))

	session := unlock(t, ks)
	authKey, err := ks.DecryptAuthKey(session)
	require.NoError(t, err)
	assert.Equal(t, testAuthKey, hex.EncodeToString(authKey))

	mnemonic, err := ks.DecryptMnemonic(session)
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, mnemonic)

	_, err = ks.Unlock([]byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)
	assert.False(t, ks.VerifyPassword([]byte("wrong password")))
	assert.True(t, ks.VerifyPassword(password()))
}

func TestIdentityKeystoreWalletIDs(t *testing.T) {
	meta := model.NewWalletMeta("", model.SourceNewIdentity, model.NetworkTestnet)
	ks, err := NewIdentityKeystore(password(), testMnemonic, meta)
	require.NoError(t, err)

	ks.AppendWalletID("a")
	ks.AppendWalletID("b")
	ks.AppendWalletID("c")
	assert.True(t, ks.RemoveWalletID("b"))
	assert.False(t, ks.RemoveWalletID("b"))
	assert.Equal(t, []string{"a", "c"}, ks.WalletIDs())

	data, err := json.Marshal(ks)
	require.NoError(t, err)
	parsed, err := ParseIdentityKeystore(data)
	require.NoError(t, err)

	assert.Equal(t, ks.ID(), parsed.ID())
	assert.Equal(t, testIdentifier, parsed.Identifier())
	assert.Equal(t, testIPFSID, parsed.IPFSID())
	assert.Equal(t, []string{"a", "c"}, parsed.WalletIDs())
	assert.Equal(t, model.NetworkTestnet, parsed.Meta().Network)

	mnemonic, err := parsed.DecryptMnemonic(unlock(t, parsed))
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, mnemonic)
}

func TestParseIdentityKeystoreRequiresFields(t *testing.T) {
	meta := model.NewWalletMeta("", model.SourceNewIdentity, model.NetworkMainnet)
	ks, err := NewIdentityKeystore(password(), testMnemonic, meta)
	require.NoError(t, err)
	data, err := json.Marshal(ks)
	require.NoError(t, err)

	for _, field := range []string{"encMnemonic", "encAuthKey", "identifier", "ipfsId", "encKey", "walletIds", "imTokenMeta", "crypto"} {
		var obj map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &obj))
		delete(obj, field)
		broken, err := json.Marshal(obj)
		require.NoError(t, err)

		_, err = ParseIdentityKeystore(broken)
		assert.ErrorIs(t, err, model.ErrKeystoreInvalid, field)
	}
}

func TestETHMnemonicKeystore(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainETH, model.SourceMnemonic, model.NetworkMainnet)
	ks, err := NewETHMnemonicKeystore(password(), testMnemonic, hd.PathETH, meta, "")
	require.NoError(t, err)

	assert.Equal(t, testETHAddress, ks.Address())
	assert.Equal(t, hd.PathETH, ks.MnemonicPath())
	assert.NotEmpty(t, ks.ID())

	key, err := ks.DecryptPrivateKey(unlock(t, ks))
	require.NoError(t, err)
	assert.Equal(t, testETHPrivateKey, key)

	parsed := roundTrip(t, ks)
	require.IsType(t, &ETHMnemonicKeystore{}, parsed)
	mnemonic, err := parsed.(MnemonicExporter).DecryptMnemonic(unlock(t, parsed))
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, mnemonic)
	assert.Equal(t, ks.ID(), parsed.ID())
}

func TestETHKeystoreExportV3(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainETH, model.SourcePrivateKey, model.NetworkMainnet)
	ks, err := NewETHKeystore(password(), "0x"+testETHPrivateKey, meta, "")
	require.NoError(t, err)
	assert.Equal(t, testETHAddress, ks.Address())

	data, err := ks.ExportV3()
	require.NoError(t, err)
	var obj map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.NotContains(t, obj, "imTokenMeta")
	assert.Contains(t, obj, "crypto")

	imported, err := ParseETHKeystore(data)
	require.NoError(t, err)
	assert.Equal(t, model.SourceKeystore, imported.Meta().Source)
	key, err := imported.DecryptPrivateKey(unlock(t, imported))
	require.NoError(t, err)
	assert.Equal(t, testETHPrivateKey, key)
}

func TestETHKeystorePBKDF2(t *testing.T) {
	ks, err := ParseETHKeystore([]byte(pbkdf2V3))
	require.NoError(t, err)
	assert.Equal(t, "3198bc9c-6672-5ab3-d995-4942343ae5b6", ks.ID())
	assert.Equal(t, model.ChainETH, ks.Meta().Chain)

	assert.True(t, ks.VerifyPassword([]byte("testpassword")))
	session, err := ks.Unlock([]byte("testpassword"))
	require.NoError(t, err)
	defer session.Close()
	key, err := ks.DecryptPrivateKey(session)
	require.NoError(t, err)
	assert.Equal(t, "7a28b5ba57c53603b0b07b56bba752f7784bf506fa95edc395f5cf6c7514fe9d", key)
}

func TestNewETHKeystoreInvalidKey(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainETH, model.SourcePrivateKey, model.NetworkMainnet)
	_, err := NewETHKeystore(password(), "not hex", meta, "")
	assert.Error(t, err)
}

func newTestBTCMnemonic(t *testing.T) *BTCMnemonicKeystore {
	meta := model.NewWalletMeta(model.ChainBTC, model.SourceMnemonic, model.NetworkTestnet)
	ks, err := NewBTCMnemonicKeystore(password(), testMnemonic, hd.PathBTCTestnet, meta, "")
	require.NoError(t, err)
	return ks
}

func TestBTCMnemonicKeystore(t *testing.T) {
	ks := newTestBTCMnemonic(t)

	assert.Equal(t, testBTCAddress, ks.Address())
	assert.Equal(t, testBTCXPub, ks.XPub())
	assert.Equal(t, VersionBTCMnemonic, ks.Version())

	session := unlock(t, ks)
	xprv, err := ks.DecryptXPrv(session)
	require.NoError(t, err)
	assert.Equal(t, testBTCXPrv, xprv)

	account, err := ks.AccountKey(session)
	require.NoError(t, err)
	assert.True(t, account.IsPrivate())

	external, err := ks.CalcExternalAddress(1)
	require.NoError(t, err)
	assert.Equal(t, testBTCExternalAddress, external)

	encXPub, err := ks.EncryptedXPub()
	require.NoError(t, err)
	assert.Equal(t, testEncXPub, encXPub)

	m := ks.ToMap()
	assert.Equal(t, testBTCAddress, m["address"])
	assert.Equal(t, "NONE", m["segWit"])
	assert.Equal(t, testEncXPub, m["encXPub"])
	assert.Equal(t, map[string]any{
		"address":     testBTCExternalAddress,
		"derivedPath": "0/1",
		"type":        "EXTERNAL",
	}, m["externalAddress"])
}

func TestBTCMnemonicKeystoreRoundTrip(t *testing.T) {
	ks := newTestBTCMnemonic(t)
	parsed := roundTrip(t, ks)

	btc, ok := parsed.(*BTCMnemonicKeystore)
	require.True(t, ok)
	assert.Equal(t, ks.ID(), btc.ID())
	assert.Equal(t, testBTCAddress, btc.Address())
	assert.Equal(t, hd.PathBTCTestnet, btc.MnemonicPath())
	assert.Equal(t, model.NetworkTestnet, btc.Meta().Network)

	mnemonic, err := btc.DecryptMnemonic(unlock(t, btc))
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, mnemonic)
}

func TestBTCMnemonicKeystoreGeneratesMnemonic(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainBTC, model.SourceMnemonic, model.NetworkMainnet)
	ks, err := NewBTCMnemonicKeystore(password(), "", hd.PathBTCMainnet, meta, "")
	require.NoError(t, err)

	mnemonic, err := ks.DecryptMnemonic(unlock(t, ks))
	require.NoError(t, err)
	assert.NoError(t, hd.ValidateMnemonic(mnemonic))
}

func TestBTCKeystore(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainBTC, model.SourceWIF, model.NetworkTestnet)
	meta.SegWit = model.SegWitP2WPKH
	ks, err := NewBTCKeystore(password(), testBTCWIFTestnet, meta, "")
	require.NoError(t, err)
	assert.Equal(t, testBTCSegWitP2SH, ks.Address())
	assert.Equal(t, "P2WPKH", ks.ToMap()["segWit"])

	wif, err := ks.DecryptWIF(unlock(t, ks))
	require.NoError(t, err)
	assert.Equal(t, testBTCWIFTestnet, wif)

	parsed := roundTrip(t, ks)
	require.IsType(t, &BTCKeystore{}, parsed)
	assert.Equal(t, testBTCSegWitP2SH, parsed.Address())
}

func TestBTCKeystoreValidation(t *testing.T) {
	testnet := model.NewWalletMeta(model.ChainBTC, model.SourceWIF, model.NetworkTestnet)
	_, err := NewBTCKeystore(password(), testBTCWIFMainnet, testnet, "")
	assert.ErrorIs(t, err, model.ErrWIFWrongNetwork)

	_, err = NewBTCKeystore(password(), "not a wif", testnet, "")
	assert.ErrorIs(t, err, model.ErrWIFInvalid)

	segWit := model.NewWalletMeta(model.ChainBTC, model.SourceWIF, model.NetworkMainnet)
	segWit.SegWit = model.SegWitP2WPKH
	_, err = NewBTCKeystore(password(), testUncompressedWIF, segWit, "")
	assert.ErrorIs(t, err, model.ErrPublicKeyNotCompressed)
}

func TestEOSKeystoreFromMnemonic(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainEOS, model.SourceMnemonic, model.NetworkMainnet)
	permissions := []model.EOSPermission{
		{Permission: model.EOSPermissionOwner, PublicKey: testEOSLedgerPublic},
		{Permission: model.EOSPermissionActive, PublicKey: testEOSSecondPublic},
	}
	path := hd.PathEOSLedger + "," + testEOSSecondKeyPath
	ks, err := NewEOSKeystoreFromMnemonic(password(), testMnemonic, path, "", permissions, meta, "")
	require.NoError(t, err)

	assert.Equal(t, []string{testEOSLedgerPublic, testEOSSecondPublic}, ks.PublicKeys())
	assert.Empty(t, ks.Address())
	for _, kp := range ks.KeyPathPrivates() {
		assert.Equal(t, DerivedModePath, kp.DerivedMode)
	}

	session := unlock(t, ks)
	key, err := ks.DecryptPrivateKey(testEOSLedgerPublic, session)
	require.NoError(t, err)
	wif, err := eos.WIF(key)
	require.NoError(t, err)
	assert.Equal(t, testEOSLedgerWIF, wif)

	_, err = ks.DecryptPrivateKey(testEOSPublicKey, session)
	assert.ErrorIs(t, err, model.ErrEOSPrivatePublicNotMatch)
	_, err = ks.Unlock([]byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)

	mnemonic, err := ks.DecryptMnemonic(session)
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, mnemonic)

	require.NoError(t, ks.SetAccountName("inita"))
	assert.Equal(t, "inita", ks.Address())
	assert.ErrorIs(t, ks.SetAccountName("initb"), model.ErrEOSAccountNameAlreadySet)
	assert.NoError(t, ks.SetAccountName("inita"))

	parsed := roundTrip(t, ks)
	restored, ok := parsed.(*EOSKeystore)
	require.True(t, ok)
	assert.Equal(t, "inita", restored.Address())
	assert.Equal(t, path, restored.MnemonicPath())
	pairs, err := restored.ExportKeyPairs(unlock(t, restored))
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, model.KeyPair{PrivateKey: testEOSLedgerWIF, PublicKey: testEOSLedgerPublic}, pairs[0])
}

func TestKeystoreSession(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainEOS, model.SourceWIF, model.NetworkMainnet)
	permissions := []model.EOSPermission{
		{Permission: model.EOSPermissionOwner, PublicKey: testEOSPublicKey},
		{Permission: model.EOSPermissionActive, PublicKey: testEOSLedgerPublic},
	}
	ks, err := NewEOSKeystoreFromPrivateKeys(password(), []string{testEOSWIF, testEOSLedgerWIF}, "inita", permissions, meta, "")
	require.NoError(t, err)
	other := newTestBTCMnemonic(t)

	session, err := ks.Unlock(password())
	require.NoError(t, err)

	// every key of the wallet opens under one unlock
	resolver := ks.KeyResolver(session)
	for _, publicKey := range []string{testEOSPublicKey, testEOSLedgerPublic, testEOSPublicKey} {
		key, err := resolver.PrivateKeyFor(publicKey)
		require.NoError(t, err)
		derived, err := eos.PublicKeyFromPrivate(key)
		require.NoError(t, err)
		assert.Equal(t, publicKey, derived)
	}

	_, err = ks.ExportKeyPairs(unlock(t, other))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)
	_, err = other.DecryptXPrv(session)
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)
	_, err = other.DecryptMnemonic(session)
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)

	session.Close()
	_, err = resolver.PrivateKeyFor(testEOSPublicKey)
	assert.ErrorIs(t, err, model.ErrSessionClosed)
	_, err = ks.ExportKeyPairs(session)
	assert.ErrorIs(t, err, model.ErrSessionClosed)
}

func TestEOSKeystoreFromMnemonicPermissionMismatch(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainEOS, model.SourceMnemonic, model.NetworkMainnet)
	permissions := []model.EOSPermission{
		{Permission: model.EOSPermissionOwner, PublicKey: testEOSPublicKey},
	}
	_, err := NewEOSKeystoreFromMnemonic(password(), testMnemonic, hd.PathEOSLedger, "", permissions, meta, "")
	assert.ErrorIs(t, err, model.ErrEOSPrivatePublicNotMatch)

	_, err = NewEOSKeystoreFromMnemonic(password(), testMnemonic, hd.PathEOSLedger, "INVALID", nil, meta, "")
	assert.ErrorIs(t, err, model.ErrEOSAccountNameInvalid)
}

func TestEOSKeystoreFromPrivateKeys(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainEOS, model.SourceWIF, model.NetworkMainnet)
	permissions := []model.EOSPermission{
		{Permission: model.EOSPermissionOwner, PublicKey: testEOSPublicKey},
		{Permission: model.EOSPermissionActive, PublicKey: testEOSLedgerPublic},
	}
	ks, err := NewEOSKeystoreFromPrivateKeys(password(), []string{testEOSWIF, testEOSLedgerWIF}, "inita", permissions, meta, "")
	require.NoError(t, err)
	assert.Equal(t, "inita", ks.Address())
	assert.Equal(t, DerivedModeImported, ks.KeyPathPrivates()[0].DerivedMode)

	session := unlock(t, ks)
	_, err = ks.DecryptMnemonic(session)
	assert.ErrorIs(t, err, model.ErrOperationUnsupported)

	resolver := ks.KeyResolver(session)
	key, err := resolver.PrivateKeyFor(testEOSPublicKey)
	require.NoError(t, err)
	wif, err := eos.WIF(key)
	require.NoError(t, err)
	assert.Equal(t, testEOSWIF, wif)

	_, err = NewEOSKeystoreFromPrivateKeys(password(), []string{testEOSWIF}, "inita", permissions[1:], meta, "")
	assert.ErrorIs(t, err, model.ErrEOSPrivatePublicNotMatch)
}

func TestEOSLegacyKeystore(t *testing.T) {
	meta := model.NewWalletMeta(model.ChainEOS, model.SourceWIF, model.NetworkMainnet)
	ks, err := NewEOSLegacyKeystore(password(), testEOSWIF, "inita", meta, "")
	require.NoError(t, err)
	assert.Equal(t, "inita", ks.Address())

	session := unlock(t, ks)
	pairs, err := ks.ExportKeyPairs(session)
	require.NoError(t, err)
	assert.Equal(t, []model.KeyPair{{PrivateKey: testEOSWIF, PublicKey: testEOSPublicKey}}, pairs)

	key, err := ks.KeyResolver(session).PrivateKeyFor("any key")
	require.NoError(t, err)
	publicKey, err := eos.PublicKeyFromPrivate(key)
	require.NoError(t, err)
	assert.Equal(t, testEOSPublicKey, publicKey)

	parsed := roundTrip(t, ks)
	require.IsType(t, &EOSLegacyKeystore{}, parsed)

	_, err = NewEOSLegacyKeystore(password(), "bad", "inita", meta, "")
	assert.ErrorIs(t, err, model.ErrPrivateKeyInvalid)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `nope`},
		{"no version", `{"crypto":{},"imTokenMeta":{"chain":"ETHEREUM","source":"KEYSTORE"}}`},
		{"no meta", pbkdf2V3},
		{"unknown version", `{"version":7,"crypto":{},"imTokenMeta":{"chain":"ETHEREUM","source":"KEYSTORE"}}`},
		{"unknown chain", `{"version":3,"crypto":{},"imTokenMeta":{"chain":"DOGE","source":"KEYSTORE"}}`},
		{"btc mnemonic without xpub", `{"version":44,"id":"x","address":"a","mnemonicPath":"m","crypto":{},"imTokenMeta":{"chain":"BITCOIN","source":"MNEMONIC"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, model.ErrKeystoreInvalid)
		})
	}
}

func TestParseDispatch(t *testing.T) {
	ethMeta := model.NewWalletMeta(model.ChainETH, model.SourcePrivateKey, model.NetworkMainnet)
	eth, err := NewETHKeystore(password(), testETHPrivateKey, ethMeta, "")
	require.NoError(t, err)
	assert.IsType(t, &ETHKeystore{}, roundTrip(t, eth))

	btc := newTestBTCMnemonic(t)
	assert.IsType(t, &BTCMnemonicKeystore{}, roundTrip(t, btc))

	eosMeta := model.NewWalletMeta(model.ChainEOS, model.SourceMnemonic, model.NetworkMainnet)
	eosKs, err := NewEOSKeystoreFromMnemonic(password(), testMnemonic, hd.PathEOSLedger, "", nil, eosMeta, "")
	require.NoError(t, err)
	assert.IsType(t, &EOSKeystore{}, roundTrip(t, eosKs))
}
