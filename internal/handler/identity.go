package handler

import (
	"errors"
	"net/http"

	"github.com/AlexZinkM/multichain-wallet/internal/config"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/wallet"

	"go.uber.org/zap"
)

// WalletHandler serves the identity and wallet endpoints of one Manager
type WalletHandler struct {
	manager  *wallet.Manager
	log      *zap.Logger
	password func() ([]byte, error)
}

// NewWalletHandler creates a WalletHandler that signs with the password
// prompted at startup
func NewWalletHandler(manager *wallet.Manager, log *zap.Logger) (*WalletHandler, error) {
	if manager == nil {
		return nil, errors.New("wallet manager not set")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WalletHandler{
		manager:  manager,
		log:      log.Named("handler"),
		password: config.GetPasswordBytes,
	}, nil
}

// passwordBytes fetches the password and writes the error response when it
// is unavailable. The caller must clear the returned slice.
func (h *WalletHandler) passwordBytes(w http.ResponseWriter) ([]byte, bool) {
	passwordBytes, err := h.password()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return passwordBytes, true
}

func identityResponse(identity *wallet.Identity, mnemonic string) model.IdentityResponse {
	return model.IdentityResponse{
		Identifier: identity.Identifier(),
		IPFSID:     identity.IPFSID(),
		Mnemonic:   mnemonic,
		Wallets:    serializeWallets(identity.Wallets()),
	}
}

// GetIdentity handles GET /identity
// @Summary      Get identity
// @Description  Returns the identifier, IPFS id and wallets of the current identity
// @Tags         identity
// @Produce      json
// @Success      200  {object}  model.IdentityResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /identity [get]
func (h *WalletHandler) GetIdentity(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	identity, err := h.manager.CurrentIdentity()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identityResponse(identity, ""))
}

// CreateIdentity handles POST /identity/create
// @Summary      Create identity
// @Description  Generates a new mnemonic and derives the default ETH and BTC wallets. The mnemonic is returned once.
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        request  body      model.IdentityRequest  true  "Identity metadata"
// @Success      200      {object}  model.IdentityResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /identity/create [post]
func (h *WalletHandler) CreateIdentity(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.IdentityRequest
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

	identity, mnemonic, err := h.manager.CreateIdentity(req.WalletMeta(model.SourceNewIdentity), passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identityResponse(identity, mnemonic))
}

// RecoverIdentity handles POST /identity/recover
// @Summary      Recover identity
// @Description  Rebuilds the identity of a mnemonic and derives the default ETH and BTC wallets
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        request  body      model.IdentityRequest  true  "Mnemonic and identity metadata"
// @Success      200      {object}  model.IdentityResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /identity/recover [post]
func (h *WalletHandler) RecoverIdentity(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.IdentityRequest
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

	identity, err := h.manager.RecoverIdentity(req.Mnemonic, req.WalletMeta(model.SourceRecoveredIdentity), passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identityResponse(identity, ""))
}

// ExportIdentity handles POST /identity/export
// @Summary      Export identity mnemonic
// @Tags         identity
// @Produce      json
// @Success      200  {object}  model.MnemonicResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /identity/export [post]
func (h *WalletHandler) ExportIdentity(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	mnemonic, err := h.manager.ExportIdentity(passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MnemonicResponse{Mnemonic: mnemonic})
}

// DeleteIdentity handles POST /identity/delete
// @Summary      Delete identity
// @Description  Removes the identity and every wallet from storage
// @Tags         identity
// @Produce      json
// @Success      200  {object}  model.SuccessResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /identity/delete [post]
func (h *WalletHandler) DeleteIdentity(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	if err := h.manager.DeleteIdentity(passwordBytes); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SuccessResponse{Success: true, Message: "Identity deleted"})
}

// EncryptIPFS handles POST /identity/ipfs/encrypt
// @Summary      Encrypt data for IPFS
// @Description  Seals content with the identity encryption key and signs the envelope
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        request  body      model.IPFSEncryptRequest  true  "Plaintext"
// @Success      200      {object}  model.IPFSResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /identity/ipfs/encrypt [post]
func (h *WalletHandler) EncryptIPFS(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.IPFSEncryptRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	payload, err := h.manager.EncryptDataToIPFS(req.Content)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.IPFSResponse{Payload: payload})
}

// DecryptIPFS handles POST /identity/ipfs/decrypt
// @Summary      Decrypt data from IPFS
// @Description  Checks the envelope signature against the identity and opens it
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        request  body      model.IPFSDecryptRequest  true  "Hex envelope"
// @Success      200      {object}  model.IPFSResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /identity/ipfs/decrypt [post]
func (h *WalletHandler) DecryptIPFS(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.IPFSDecryptRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	content, err := h.manager.DecryptDataFromIPFS(req.Payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.IPFSResponse{Content: content})
}

// SignAuthentication handles POST /identity/auth/sign
// @Summary      Sign authentication message
// @Description  Signs "accessTime.identifier.deviceToken" with the identity authentication key
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        request  body      model.AuthSignRequest  true  "Challenge"
// @Success      200      {object}  model.SignatureResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /identity/auth/sign [post]
func (h *WalletHandler) SignAuthentication(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.AuthSignRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	passwordBytes, ok := h.passwordBytes(w)
	if !ok {
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	sig, err := h.manager.SignAuthenticationMessage(req.AccessTime, req.DeviceToken, passwordBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SignatureResponse{Signature: sig})
}
