package validator

import (
	"testing"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/stretchr/testify/assert"
)

const (
	testWIF         = "L2hfzPyVC1jWH7n2QLTe7tVTb6btg9smp5UVzhEBxLYaSFF7sCZB"
	testWIFTestnet  = "cUieW64P5NYWe2JrxiHRMeE3xWZTdtTCh5DNWF1VVYBAmLJkBRWs"
	testPrivateKey  = "cce64585e3b15a0e4ee601a467e050c9504a0db69a559d7ec416fa25ad3410c2"
	testEOSKey      = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"
	uncompressedWIF = "5J1jV2CspMgKnS4N7zJJz8Xcej3Lngcu89WP53jXW4CXEGF9M3A"
)

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword([]byte("Insecure Pa55w0rd")))
	assert.ErrorIs(t, ValidatePassword(nil), model.ErrPasswordBlank)
	assert.ErrorIs(t, ValidatePassword([]byte("short")), model.ErrPasswordWeak)
	assert.ErrorIs(t, ValidatePassword([]byte("with\nnewline")), model.ErrPasswordWeak)
}

func TestValidateETHAddress(t *testing.T) {
	valid := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		"0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED",
	}
	for _, addr := range valid {
		assert.NoError(t, ValidateETHAddress(addr), addr)
	}

	invalid := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD",
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae",
		"0xzaaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		"",
	}
	for _, addr := range invalid {
		assert.ErrorIs(t, ValidateETHAddress(addr), model.ErrAddressInvalid, addr)
	}

	assert.Equal(t, "5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", ChecksumETHAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
}

func TestValidateBTCAddress(t *testing.T) {
	assert.NoError(t, ValidateBTCAddress("mkeNU5nVnozJiaACDELLCsVUc8Wxoh1rQN", model.NetworkTestnet))
	assert.NoError(t, ValidateBTCAddress("2N9wBy6f1KTUF5h2UUeqRdKnBT6oSMh4Whp", model.NetworkTestnet))
	assert.ErrorIs(t, ValidateBTCAddress("mkeNU5nVnozJiaACDELLCsVUc8Wxoh1rQN", model.NetworkMainnet), model.ErrAddressInvalid)
	assert.ErrorIs(t, ValidateBTCAddress("not-an-address", model.NetworkMainnet), model.ErrAddressInvalid)
}

func TestValidateEOSAccountName(t *testing.T) {
	for _, name := range []string{"", "imtoken1", "a.b.c", "123451234512"} {
		assert.NoError(t, ValidateEOSAccountName(name), name)
	}
	for _, name := range []string{"Oops", "imtoken6", "1234512345123", "with space"} {
		assert.ErrorIs(t, ValidateEOSAccountName(name), model.ErrEOSAccountNameInvalid, name)
	}
}

func TestValidateWalletID(t *testing.T) {
	assert.NoError(t, ValidateWalletID("0b6f9b52-5d0d-4b4f-8a8a-0e5b1e6c1f3a"))
	assert.ErrorIs(t, ValidateWalletID("0B6F9B52-5D0D-4B4F-8A8A-0E5B1E6C1F3A"), model.ErrParam)
	assert.ErrorIs(t, ValidateWalletID("0b6f9b52-5d0d-1b4f-8a8a-0e5b1e6c1f3a"), model.ErrParam)
}

func TestValidatePrivateKey(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		chain      model.ChainType
		network    model.Network
		compressed bool
		want       error
	}{
		{"btc mainnet", testWIF, model.ChainBTC, model.NetworkMainnet, false, nil},
		{"btc testnet", testWIFTestnet, model.ChainBTC, model.NetworkTestnet, true, nil},
		{"btc wrong network", testWIF, model.ChainBTC, model.NetworkTestnet, false, model.ErrWIFWrongNetwork},
		{"btc garbage", "abc", model.ChainBTC, model.NetworkMainnet, false, model.ErrWIFInvalid},
		{"btc segwit uncompressed", uncompressedWIF, model.ChainBTC, model.NetworkMainnet, true, model.ErrPublicKeyNotCompressed},
		{"eth", testPrivateKey, model.ChainETH, "", false, nil},
		{"eth prefixed", "0x" + testPrivateKey, model.ChainETH, "", false, nil},
		{"eth garbage", "abc", model.ChainETH, "", false, model.ErrPrivateKeyInvalid},
		{"eth zero", "0000000000000000000000000000000000000000000000000000000000000000", model.ChainETH, "", false, model.ErrPrivateKeyInvalid},
		{"eos", testEOSKey, model.ChainEOS, "", false, nil},
		{"eos garbage", "abc", model.ChainEOS, "", false, model.ErrPrivateKeyInvalid},
		{"unknown chain", testPrivateKey, "TRON", "", false, model.ErrUnsupportedChain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrivateKey(tt.key, tt.chain, tt.network, tt.compressed)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateV3Keystore(t *testing.T) {
	valid := `{"version":3,"address":"6031564e7b2f5cc33737807b2e58daff870b590b","crypto":{"cipher":"aes-128-ctr"}}`
	assert.NoError(t, ValidateV3Keystore([]byte(valid)))

	upper := `{"version":3,"address":"6031564e7b2f5cc33737807b2e58daff870b590b","Crypto":{"cipher":"aes-128-ctr"}}`
	assert.NoError(t, ValidateV3Keystore([]byte(upper)))

	invalid := []string{
		`{"version":44,"address":"abc","crypto":{}}`,
		`{"version":3,"address":"","crypto":{}}`,
		`{"version":3,"address":"abc"}`,
		`{"version":3,"address":"abc","crypto":"oops"}`,
		`not json`,
	}
	for _, data := range invalid {
		assert.ErrorIs(t, ValidateV3Keystore([]byte(data)), model.ErrKeystoreInvalid, data)
	}
}
