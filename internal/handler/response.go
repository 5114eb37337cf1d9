package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/wallet"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps wallet errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case wallet.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, model.ErrPasswordIncorrect):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrAddressAlreadyExist):
		return http.StatusConflict
	}
	if _, ok := model.AsAppError(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *WalletHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	resp := model.ErrorResponse{Error: err.Error()}
	if appErr, ok := model.AsAppError(err); ok {
		resp.Code = appErr.Code
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, resp)
}

// decode reads a JSON body into v
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", model.ErrParam, err)
	}
	return nil
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func serializeWallets(wallets []*wallet.BasicWallet) []map[string]any {
	out := make([]map[string]any, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, w.Serialize())
	}
	return out
}
