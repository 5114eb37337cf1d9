package wallet

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/AlexZinkM/multichain-wallet/ethereum"
	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/keystore"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/wire"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	ipfsDataVersion = 0x03
	ipfsIVSize      = 16
	ipfsSigSize     = 65
	// ciphertexts are bounded by the varint read
	ipfsMaxCiphertext = 1 << 24
)

// EncryptDataToIPFS seals content for an IPFS backup. The envelope is
// version || timestamp || iv || varstr(ciphertext) || signature, hex encoded.
// The iv is derived from content so equal content yields equal ciphertext.
func (i *Identity) EncryptDataToIPFS(content string) (string, error) {
	encKey, err := i.keystore.EncKey()
	if err != nil {
		return "", err
	}
	defer clear(encKey)

	iv := crypto.HMACSHA256(encKey, []byte(content))[:ipfsIVSize]
	return encryptDataToIPFS(encKey, content, iv, time.Now().Unix())
}

func encryptDataToIPFS(encKey []byte, content string, iv []byte, timestamp int64) (string, error) {
	ciphertext, err := crypto.EncryptCBCPKCS7(encKey, iv, []byte(content))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt ipfs data: %w", err)
	}

	header := ipfsHeader(uint32(timestamp), iv)
	sig, err := ethereum.ECSign(encKey, ipfsSigningHash(header, ciphertext))
	if err != nil {
		return "", err
	}
	rawSig, err := hex.DecodeString(sig.String())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.Write(header)
	if err := wire.WriteVarBytes(&buf, 0, ciphertext); err != nil {
		return "", err
	}
	buf.Write(rawSig)
	return hex.EncodeToString(buf.Bytes()), nil
}

// DecryptDataFromIPFS opens an envelope written by EncryptDataToIPFS. The
// signature must recover to the public key behind the identity ipfsId.
func (i *Identity) DecryptDataFromIPFS(payload string) (string, error) {
	data, err := common.DecodeHex(payload)
	if err != nil {
		return "", model.ErrParam
	}
	headerSize := 1 + 4 + ipfsIVSize
	if len(data) < headerSize+1+ipfsSigSize {
		return "", model.ErrParam
	}
	if data[0] != ipfsDataVersion {
		return "", model.ErrUnsupportEncryptionDataVersion
	}

	header := data[:headerSize]
	iv := header[1+4:]
	r := bytes.NewReader(data[headerSize:])
	ciphertext, err := wire.ReadVarBytes(r, 0, ipfsMaxCiphertext, "ciphertext")
	if err != nil {
		return "", model.ErrParam
	}
	sig := make([]byte, ipfsSigSize)
	if n, _ := r.Read(sig); n != ipfsSigSize || r.Len() != 0 {
		return "", model.ErrParam
	}

	rs, recID, err := ethereum.UnpackSignature(hex.EncodeToString(sig))
	if err != nil {
		return "", model.ErrInvalidEncryptionDataSignature
	}
	pub, err := ethereum.ECRecover(rs, recID, ipfsSigningHash(header, ciphertext))
	if err != nil {
		return "", model.ErrInvalidEncryptionDataSignature
	}
	signer, err := btcec.ParsePubKey(pub)
	if err != nil || keystore.IPFSID(signer) != i.keystore.IPFSID() {
		return "", model.ErrInvalidEncryptionDataSignature
	}

	encKey, err := i.keystore.EncKey()
	if err != nil {
		return "", err
	}
	defer clear(encKey)
	content, err := crypto.DecryptCBCPKCS7(encKey, iv, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt ipfs data: %w", err)
	}
	return string(content), nil
}

// SignAuthenticationMessage signs "accessTime.identifier.deviceToken" with
// the identity authentication key and returns r||s||v hex
// password must be []byte for security (caller should zero it after use)
func (i *Identity) SignAuthenticationMessage(accessTime int64, deviceToken string, password []byte) (string, error) {
	session, err := i.keystore.Unlock(password)
	if err != nil {
		return "", err
	}
	defer session.Close()
	authKey, err := i.keystore.DecryptAuthKey(session)
	if err != nil {
		return "", err
	}
	defer clear(authKey)

	message := strconv.FormatInt(accessTime, 10) + "." + i.Identifier() + "." + deviceToken
	sig, err := ethereum.ECSign(authKey, ethcrypto.Keccak256([]byte(message)))
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}

func ipfsHeader(timestamp uint32, iv []byte) []byte {
	header := make([]byte, 5, 5+len(iv))
	header[0] = ipfsDataVersion
	binary.LittleEndian.PutUint32(header[1:], timestamp)
	return append(header, iv...)
}

// ipfsSigningHash is keccak256(header || merkleRoot(ciphertext))
func ipfsSigningHash(header, ciphertext []byte) []byte {
	return ethcrypto.Keccak256(header, crypto.MerkleRoot(ciphertext))
}
