package handler

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/AlexZinkM/multichain-wallet/internal/common"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/wallet"

	"github.com/skip2/go-qrcode"
)

// ListWallets handles GET /wallets
// @Summary      List wallets
// @Description  Returns the public view of every wallet of the current identity
// @Tags         wallets
// @Produce      json
// @Success      200  {object}  model.WalletsResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallets [get]
func (h *WalletHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	wallets, err := h.manager.Wallets()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.WalletsResponse{Wallets: serializeWallets(wallets)})
}

// FindWallet handles GET /wallets/find
// @Summary      Find wallet
// @Description  Looks a wallet up by id, or by address and chain type
// @Tags         wallets
// @Produce      json
// @Param        id         query     string  false  "Wallet ID"
// @Param        address    query     string  false  "Wallet address"
// @Param        chainType  query     string  false  "ETHEREUM, BITCOIN or EOS"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallets/find [get]
func (h *WalletHandler) FindWallet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query()
	var (
		found *wallet.BasicWallet
		err   error
	)
	switch {
	case query.Get("id") != "":
		found, err = h.manager.FindWalletByID(query.Get("id"))
	case query.Get("address") != "":
		found, err = h.manager.FindWalletByAddress(query.Get("address"), model.ChainType(query.Get("chainType")))
	default:
		err = fmt.Errorf("%w: id or address is required", model.ErrParam)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found.Serialize())
}

// QRCode handles GET /wallets/qr
// @Summary      Wallet address QR code
// @Description  Returns a base64 PNG QR code of the wallet payment URI. With index, a bitcoin mnemonic wallet encodes its external address at that index.
// @Tags         wallets
// @Produce      json
// @Param        id      query     string  true   "Wallet ID"
// @Param        index   query     int     false  "External address index"
// @Param        amount  query     string  false  "Requested amount in BTC or ETH"
// @Success      200  {object}  model.QRResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /wallets/qr [get]
func (h *WalletHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	walletID := r.URL.Query().Get("id")
	found, err := h.manager.FindWalletByID(walletID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	address := found.Address()
	if indexStr := r.URL.Query().Get("index"); indexStr != "" {
		index, err := strconv.ParseUint(indexStr, 10, 31)
		if err != nil {
			h.writeError(w, fmt.Errorf("%w: invalid index %q", model.ErrParam, indexStr))
			return
		}
		if address, err = h.manager.CalcExternalAddress(walletID, uint32(index)); err != nil {
			h.writeError(w, err)
			return
		}
	}
	if address == "" {
		h.writeError(w, fmt.Errorf("%w: wallet has no address yet", model.ErrAddressInvalid))
		return
	}

	uri, err := paymentURI(found.ChainType(), address, r.URL.Query().Get("amount"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	qr, err := generateQRCode(uri)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.QRResponse{
		WalletID: walletID,
		Address:  address,
		URI:      uri,
		QRCode:   qr,
	})
}

// paymentURI builds the BIP-21 or EIP-681 URI of address. amount is a decimal
// coin amount and may be empty. EOS accounts are encoded as is.
func paymentURI(chain model.ChainType, address, amount string) (string, error) {
	switch chain {
	case model.ChainBTC:
		uri := "bitcoin:" + address
		if amount == "" {
			return uri, nil
		}
		satoshi, err := common.BTCToSatoshi(amount)
		if err != nil || satoshi <= 0 {
			return "", fmt.Errorf("%w: invalid amount %q", model.ErrParam, amount)
		}
		btc := strings.TrimRight(strings.TrimRight(common.SatoshiToBTC(satoshi), "0"), ".")
		return uri + "?amount=" + btc, nil
	case model.ChainETH:
		uri := "ethereum:0x" + address
		if amount == "" {
			return uri, nil
		}
		wei, err := common.ETHToWei(amount)
		if err != nil || wei.Sign() <= 0 {
			return "", fmt.Errorf("%w: invalid amount %q", model.ErrParam, amount)
		}
		return uri + "?value=" + wei.String(), nil
	default:
		if amount != "" {
			return "", fmt.Errorf("%w: amount is not supported for %s", model.ErrOperationUnsupported, chain)
		}
		return address, nil
	}
}

// generateQRCode generates QR code of content in base64
func generateQRCode(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// ImportWallet handles POST /wallets/import
// @Summary      Import wallet
// @Description  Imports a wallet from a mnemonic, a private key, a V3 keystore or EOS keys
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Key material and metadata"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/import [post]
func (h *WalletHandler) ImportWallet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ImportRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	var (
		imported *wallet.BasicWallet
		err      error
	)
	switch req.Kind {
	case model.ImportMnemonic:
		imported, err = h.manager.ImportFromMnemonic(req.Mnemonic, req.WalletMeta(model.SourceMnemonic), passwordBytes, req.Path)
	case model.ImportPrivateKey:
		imported, err = h.manager.ImportFromPrivateKey(req.PrivateKey, req.WalletMeta(req.Chain.PrivateKeySource()), passwordBytes, req.AccountName)
	case model.ImportKeystore:
		imported, err = h.manager.ImportFromKeystore(req.Keystore, req.WalletMeta(model.SourceKeystore), passwordBytes)
	case model.ImportEOSMnemonic:
		imported, err = h.manager.ImportEOS(req.Mnemonic, req.AccountName, req.Permissions, req.WalletMeta(model.SourceMnemonic), passwordBytes, req.Path)
	case model.ImportEOSPrivateKeys:
		imported, err = h.manager.ImportEOSPrivateKeys(req.PrivateKeys, req.AccountName, req.Permissions, req.WalletMeta(model.SourceWIF), passwordBytes)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imported.Serialize())
}

// DeriveWallets handles POST /wallets/derive
// @Summary      Derive wallets
// @Description  Derives one wallet per chain type from the identity mnemonic
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.DeriveRequest  true  "Chain types"
// @Success      200      {object}  model.WalletsResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/derive [post]
func (h *WalletHandler) DeriveWallets(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.DeriveRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	wallets, err := h.manager.DeriveWallets(req.Chains, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.WalletsResponse{Wallets: serializeWallets(wallets)})
}

// RemoveWallet handles POST /wallets/remove
// @Summary      Remove wallet
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletRequest  true  "Wallet"
// @Success      200      {object}  model.SuccessResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallets/remove [post]
func (h *WalletHandler) RemoveWallet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.WalletRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	if err := h.manager.RemoveWallet(req.WalletID, passwordBytes); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "Wallet removed"})
}

// VerifyPassword handles POST /wallets/verify-password
// @Summary      Verify wallet password
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletRequest  true  "Wallet"
// @Success      200      {object}  model.SuccessResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallets/verify-password [post]
func (h *WalletHandler) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.WalletRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	valid, err := h.manager.VerifyPassword(req.WalletID, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	message := "Password matches"
	if !valid {
		message = "Password does not match"
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: valid, Message: message})
}

// ExportWallet handles POST /wallets/export
// @Summary      Export wallet secret
// @Description  Exports the private key, EOS key pairs, mnemonic or V3 keystore of a wallet
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExportRequest  true  "Wallet and export kind"
// @Success      200      {object}  model.ExportResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallets/export [post]
func (h *WalletHandler) ExportWallet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ExportRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	var (
		resp model.ExportResponse
		err  error
	)
	switch req.Kind {
	case model.ExportPrivateKey:
		resp.PrivateKey, err = h.manager.ExportPrivateKey(req.WalletID, passwordBytes)
	case model.ExportPrivateKeys:
		resp.KeyPairs, err = h.manager.ExportPrivateKeys(req.WalletID, passwordBytes)
	case model.ExportMnemonic:
		var exported *wallet.MnemonicExport
		if exported, err = h.manager.ExportMnemonic(req.WalletID, passwordBytes); err == nil {
			resp.Mnemonic, resp.Path = exported.Mnemonic, exported.Path
		}
	case model.ExportKeystore:
		var v3 string
		if v3, err = h.manager.ExportKeystore(req.WalletID, passwordBytes); err == nil {
			resp.Keystore = json.RawMessage(v3)
		}
	default:
		err = fmt.Errorf("%w: unknown export kind %q", model.ErrParam, req.Kind)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
