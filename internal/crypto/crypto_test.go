package crypto

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"testing"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pbkdf2Keystore = `{
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
}`

func TestMain(m *testing.M) {
	SetScryptN(1 << 10)
	os.Exit(m.Run())
}

func TestNewCryptoRoundTrip(t *testing.T) {
	password := []byte("Insecure Pa55w0rd")
	secret, _ := hex.DecodeString("cce64585e3b15a0e4ee601a467e050c9504a0db69a559d7ec416fa25ad3410c2")

	c, derivedKey, err := NewCrypto(password, secret)
	require.NoError(t, err)
	defer clear(derivedKey)

	assert.Equal(t, CipherAES128CTR, c.Cipher)
	assert.Equal(t, KDFScrypt, c.KDF)
	assert.Len(t, c.CipherParams.IV, 32)
	assert.True(t, c.VerifyDerivedKey(derivedKey))

	plain, err := decryptWith(c, password)
	require.NoError(t, err)
	assert.Equal(t, secret, plain)

	assert.True(t, c.Verify(password))
	assert.False(t, c.Verify([]byte("wrong password")))

	_, err = decryptWith(c, []byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)
}

func decryptWith(c *Crypto, password []byte) ([]byte, error) {
	session, err := OpenSession(c, password)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return session.Decrypt()
}

func TestCryptoJSONRoundTrip(t *testing.T) {
	password := []byte("Insecure Pa55w0rd")
	c, derivedKey, err := NewCrypto(password, []byte("secret material"))
	require.NoError(t, err)
	clear(derivedKey)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	parsed, err := ParseCrypto(data)
	require.NoError(t, err)
	assert.Equal(t, c.MAC, parsed.MAC)

	plain, err := decryptWith(parsed, password)
	require.NoError(t, err)
	assert.Equal(t, "secret material", string(plain))
}

func TestPBKDF2Keystore(t *testing.T) {
	c, err := ParseCrypto([]byte(pbkdf2Keystore))
	require.NoError(t, err)
	assert.Equal(t, KDFPBKDF2, c.KDF)

	plain, err := decryptWith(c, []byte("testpassword"))
	require.NoError(t, err)
	assert.Equal(t, "7a28b5ba57c53603b0b07b56bba752f7784bf506fa95edc395f5cf6c7514fe9d", hex.EncodeToString(plain))
}

func TestMACComparisonIgnoresCase(t *testing.T) {
	c, err := ParseCrypto([]byte(pbkdf2Keystore))
	require.NoError(t, err)
	c.MAC = "517EAD924A9D0DC3124507E3393D175CE3FF7C1E96529C6C555CE9E51205E9B2"
	assert.True(t, c.Verify([]byte("testpassword")))
}

func TestParseCryptoErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		err  error
	}{
		{"not json", `{"bad": "json"}`, model.ErrKeystoreInvalid},
		{
			"unsupported cipher",
			`{"cipher":"aes-256-gcm","ciphertext":"00","cipherparams":{},"kdf":"scrypt","kdfparams":{},"mac":"00"}`,
			model.ErrKeystoreCipherUnsupported,
		},
		{
			"unsupported kdf",
			`{"cipher":"aes-128-ctr","ciphertext":"00","cipherparams":{},"kdf":"argon2","kdfparams":{},"mac":"00"}`,
			model.ErrKeystoreKDFUnsupported,
		},
		{
			"scrypt dklen",
			`{"cipher":"aes-128-ctr","ciphertext":"00","cipherparams":{},"kdf":"scrypt","kdfparams":{"dklen":64,"n":1024,"r":8,"p":1,"salt":"ab"},"mac":"00"}`,
			model.ErrKeystoreKDFParamsInvalid,
		},
		{
			"scrypt missing salt",
			`{"cipher":"aes-128-ctr","ciphertext":"00","cipherparams":{},"kdf":"scrypt","kdfparams":{"dklen":32,"n":1024,"r":8,"p":1},"mac":"00"}`,
			model.ErrKeystoreKDFParamsInvalid,
		},
		{
			"pbkdf2 prf",
			`{"cipher":"aes-128-ctr","ciphertext":"00","cipherparams":{},"kdf":"pbkdf2","kdfparams":{"c":10,"dklen":32,"prf":"hmac-sha512","salt":"ab"},"mac":"00"}`,
			model.ErrKeystorePRFUnsupported,
		},
		{
			"pbkdf2 short dklen",
			`{"cipher":"aes-128-ctr","ciphertext":"00","cipherparams":{},"kdf":"pbkdf2","kdfparams":{"c":10,"dklen":16,"prf":"hmac-sha256","salt":"ab"},"mac":"00"}`,
			model.ErrKeystoreKDFParamsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCrypto([]byte(tt.json))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseCryptoUppercaseCipher(t *testing.T) {
	c, err := ParseCrypto([]byte(`{"cipher":"AES-128-CBC","ciphertext":"00","cipherparams":{},"kdf":"SCRYPT",` +
		`"kdfparams":{"dklen":32,"n":1024,"r":8,"p":1,"salt":"ab"},"mac":"00"}`))
	require.NoError(t, err)
	assert.Equal(t, CipherAES128CBC, c.Cipher)
	assert.Equal(t, "", c.CipherParams.IV)
}

func TestScryptVector(t *testing.T) {
	params := &ScryptParams{
		DKLen: 32,
		N:     262144,
		R:     1,
		P:     8,
		Salt:  "ab0c7876052600dd703518d6fc3fe8984592145b591fc8fb5c6d43190334ba19",
	}
	key, err := params.DeriveKey([]byte("testpassword"))
	require.NoError(t, err)
	assert.Equal(t, "fac192ceb5fd772906bea3e118a69e8bbb5cc24229e20d8766fd298291bba6bd", hex.EncodeToString(key))
}

func TestPBKDF2Vectors(t *testing.T) {
	tests := []struct {
		salt     string
		c        int
		dklen    int
		password string
		expected string
	}{
		{"salt", 4096, 32, "password", "c5e478d59288c841aa530db6845c4c8d962893a001ce4e11a4963873aa98134a"},
		{
			"saltSALTsaltSALTsaltSALTsaltSALTsalt", 4096, 40, "passwordPASSWORDpassword",
			"348c89dbcbd32b2f32d814b8116e84cf2b17347ebc1800181c4e2a1fb8dd53e1c635518c7dac47e9",
		},
	}
	for _, tt := range tests {
		params := &PBKDF2Params{C: tt.c, DKLen: tt.dklen, PRF: prfHMACSHA256, Salt: hex.EncodeToString([]byte(tt.salt))}
		key, err := params.DeriveKey([]byte(tt.password))
		require.NoError(t, err)
		assert.Equal(t, tt.expected, hex.EncodeToString(key))
	}
}

func TestAESVectors(t *testing.T) {
	key, _ := hex.DecodeString("f06d69cdc7da0faffb1008270bca38f5")
	iv, _ := hex.DecodeString("6087dab2f9fdbbfaddc31a909735c1e6")
	input, _ := hex.DecodeString("7a28b5ba57c53603b0b07b56bba752f7784bf506fa95edc395f5cf6c7514fe9d")
	out, err := aesCrypt(CipherAES128CTR, key, iv, input, true)
	require.NoError(t, err)
	assert.Equal(t, "5318b4d5bcd28de64ee5559e671353e16f075ecae9f99c7a79a38af5f869aa46", hex.EncodeToString(out))

	key, _ = hex.DecodeString("9fc409900f835bb38302e976e16c49e7")
	iv, _ = hex.DecodeString("16d67ba0ce5a339ff2f07951253e6ba8")
	input, _ = hex.DecodeString("cb19dce82bdb902efb5b5b75d0fe4c4c09dee0e99ef222af35dd8da136bde8995f7fd84acfb1679fe2e91de783a5e006")
	out, err = aesCrypt(CipherAES128CBC, key, iv, input, true)
	require.NoError(t, err)
	assert.Equal(t, "07533e172414bfa50e99dba4a0ce603f654ebfa1ff46277c3e0c577fdc87f6bb4e4fe16c5a94ce6ce14cfa069821ef9b", hex.EncodeToString(out))

	back, err := aesCrypt(CipherAES128CBC, key, iv, out, false)
	require.NoError(t, err)
	assert.Equal(t, input, back)
}

func TestCBCPKCS7(t *testing.T) {
	key, _ := hex.DecodeString("4A2B655485ABBAB54BD30298BB0A5B55")
	iv, _ := hex.DecodeString("73518399CB98DCD114D873E06EBF4BCC")

	enc, err := EncryptCBCPKCS7(key, iv, []byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "5c894d6f8ab3caf831b3f6acba4956c0", hex.EncodeToString(enc))

	dec, err := DecryptCBCPKCS7(key, iv, enc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(dec))
}

func TestEncryptedMessage(t *testing.T) {
	derivedKey, _ := hex.DecodeString("c759d83c4f0a5f3b4baeee6409bde0bc926069908850554cc24cb956630ead05")
	nonce, _ := hex.DecodeString("ad5b233114e84ebd04af292d043a75e7")

	msg, err := NewEncryptedMessage(derivedKey, []byte("hello world"), nonce)
	require.NoError(t, err)
	assert.Equal(t, "3bc0daa30c611807a58d83", msg.EncStr)
	assert.Equal(t, "ad5b233114e84ebd04af292d043a75e7", msg.Nonce)

	plain, err := msg.DecryptWithKey(derivedKey)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(plain))

	var parsed EncryptedMessage
	require.NoError(t, json.Unmarshal([]byte(`{"encStr":"aaaa","nonce":"bbbb","extra":"cccc"}`), &parsed))
	assert.True(t, parsed.Valid())
	assert.False(t, (&EncryptedMessage{EncStr: "aaaa"}).Valid())
}

func TestSession(t *testing.T) {
	password := []byte("Insecure Pa55w0rd")
	c, derivedKey, err := NewCrypto(password, []byte("primary"))
	require.NoError(t, err)
	defer clear(derivedKey)
	msg, err := NewEncryptedMessage(derivedKey, []byte("mnemonic words"), nil)
	require.NoError(t, err)

	_, err = OpenSession(c, []byte("wrong password"))
	assert.ErrorIs(t, err, model.ErrPasswordIncorrect)

	session, err := OpenSession(c, password)
	require.NoError(t, err)
	assert.True(t, session.Opens(c))

	other, otherKey, err := NewCrypto(password, []byte("secondary"))
	require.NoError(t, err)
	clear(otherKey)
	assert.False(t, session.Opens(other))

	key, err := session.DerivedKey()
	require.NoError(t, err)
	assert.Equal(t, derivedKey, key)

	// one session opens the envelope and its messages repeatedly
	for range 3 {
		plain, err := session.Decrypt()
		require.NoError(t, err)
		assert.Equal(t, "primary", string(plain))

		plain, err = session.DecryptMessage(msg)
		require.NoError(t, err)
		assert.Equal(t, "mnemonic words", string(plain))
	}

	session.Close()
	session.Close()
	_, err = session.DerivedKey()
	assert.ErrorIs(t, err, model.ErrSessionClosed)
	_, err = session.Decrypt()
	assert.ErrorIs(t, err, model.ErrSessionClosed)
	_, err = session.DecryptMessage(msg)
	assert.ErrorIs(t, err, model.ErrSessionClosed)
}

func TestHMACAndMerkleRoot(t *testing.T) {
	assert.Equal(t, "734cc62f32841568f45715aeb9f4d7891324e6d948e4c6c60c0621cdac48623a",
		hex.EncodeToString(HMACSHA256([]byte("secret"), []byte("hello world"))))

	cases := []struct {
		length   int
		expected string
	}{
		{1000, "3fa2b684fa9d80f04b70187e6c9ff1c8dd422ce1846beb79cf5e1546c7062d41"},
		{2000, "4b19aa611413ba9a6b89a2be7833bb835349b9e9e9872c5eacfc82daa2e5f08f"},
		{3000, "c9ec2ec071ed70d02802decd912a1e8d124420556789384efaab80fcb7ce7ecb"},
		{4000, "5cfa6745c50787e3d97a1322789713036f8cab7ba534d2a996bea015d811640c"},
		{5000, "233bc40f24c071507474a9c978f0f0099d0c457f9874326640be55a8a8b96325"},
		{1024, "5a6c9dcbec66882a3de754eb13e61d8908e6c0b67a23c9d524224ecd93746290"},
		{2048, "5ee830087937da00520c4ce3793c5c7b951d37771d69a098415ddf7d682a39d9"},
	}
	for _, tc := range cases {
		data := make([]byte, tc.length)
		for i := range data {
			data[i] = byte(i / 1024)
		}
		assert.Equal(t, tc.expected, hex.EncodeToString(MerkleRoot(data)), "length %d", tc.length)
	}
}
