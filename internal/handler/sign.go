package handler

import (
	"net/http"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/wallet"
)

// SignBTC handles POST /wallets/btc/sign
// @Summary      Sign bitcoin transaction
// @Description  Selects UTXOs in order until they cover amount plus fee and signs a P2PKH or P2SH-P2WPKH transaction
// @Tags         bitcoin
// @Accept       json
// @Produce      json
// @Param        request  body      wallet.BTCSignRequest  true  "Payment"
// @Success      200      {object}  model.TransactionSignedResult
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallets/btc/sign [post]
func (h *WalletHandler) SignBTC(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req wallet.BTCSignRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	result, err := h.manager.BTCSignTransaction(req, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// SwitchBTCMode handles POST /wallets/btc/mode
// @Summary      Switch bitcoin address type
// @Description  Re-derives a bitcoin wallet as legacy (NONE) or P2SH-P2WPKH (P2WPKH) keeping its id
// @Tags         bitcoin
// @Accept       json
// @Produce      json
// @Param        request  body      model.BTCModeRequest  true  "Wallet and mode"
// @Success      200      {object}  map[string]interface{}
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallets/btc/mode [post]
func (h *WalletHandler) SwitchBTCMode(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.BTCModeRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	switched, err := h.manager.SwitchBTCWalletMode(req.WalletID, req.SegWit, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, switched.Serialize())
}

// SetEOSAccount handles POST /wallets/eos/account
// @Summary      Set EOS account name
// @Description  Binds an EOS wallet derived without an account to its account name
// @Tags         eos
// @Accept       json
// @Produce      json
// @Param        request  body      model.EOSAccountRequest  true  "Wallet and account name"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/eos/account [post]
func (h *WalletHandler) SetEOSAccount(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.EOSAccountRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	updated, err := h.manager.SetEOSAccountName(req.WalletID, req.AccountName)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated.Serialize())
}

// SignEOS handles POST /wallets/eos/sign
// @Summary      Sign EOS transactions
// @Description  Signs each serialized transaction with the wallet keys it names
// @Tags         eos
// @Accept       json
// @Produce      json
// @Param        request  body      model.EOSSignRequest  true  "Transactions"
// @Success      200      {array}   model.EOSSignResult
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/eos/sign [post]
func (h *WalletHandler) SignEOS(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.EOSSignRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	results, err := h.manager.EOSSignTransaction(req.WalletID, req.Transactions, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// ECSignEOS handles POST /wallets/eos/ecsign
// @Summary      Sign data with an EOS key
// @Tags         eos
// @Accept       json
// @Produce      json
// @Param        request  body      model.EOSECSignRequest  true  "Data and public key"
// @Success      200      {object}  model.SignatureResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/eos/ecsign [post]
func (h *WalletHandler) ECSignEOS(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.EOSECSignRequest
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

	sig, err := h.manager.EOSECSign(req.WalletID, req.PublicKey, req.Data, req.IsHex, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SignatureResponse{Signature: sig})
}

// ECRecoverEOS handles POST /wallets/eos/ecrecover
// @Summary      Recover EOS public key
// @Tags         eos
// @Accept       json
// @Produce      json
// @Param        request  body      model.EOSECRecoverRequest  true  "Data and signature"
// @Success      200      {object}  model.PublicKeyResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallets/eos/ecrecover [post]
func (h *WalletHandler) ECRecoverEOS(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.EOSECRecoverRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	publicKey, err := h.manager.EOSECRecover(req.Data, req.IsHex, req.Signature)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.PublicKeyResponse{PublicKey: publicKey})
}

// SignETH handles POST /wallets/eth/sign
// @Summary      Sign ethereum transaction
// @Description  Signs a legacy transaction, EIP-155 protected when chainId is positive
// @Tags         ethereum
// @Accept       json
// @Produce      json
// @Param        request  body      wallet.ETHSignRequest  true  "Transaction"
// @Success      200      {object}  model.TransactionSignedResult
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallets/eth/sign [post]
func (h *WalletHandler) SignETH(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req wallet.ETHSignRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	result, err := h.manager.ETHSignTransaction(req, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// PersonalSignETH handles POST /wallets/eth/personal-sign
// @Summary      Personal sign
// @Description  Signs a message with the ethereum signed message prefix and returns r||s||v hex
// @Tags         ethereum
// @Accept       json
// @Produce      json
// @Param        request  body      model.ETHPersonalSignRequest  true  "Message"
// @Success      200      {object}  model.SignatureResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallets/eth/personal-sign [post]
func (h *WalletHandler) PersonalSignETH(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ETHPersonalSignRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	sig, err := h.manager.ETHPersonalSign(req.WalletID, req.Message, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SignatureResponse{Signature: sig})
}
