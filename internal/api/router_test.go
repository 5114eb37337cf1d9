package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexZinkM/multichain-wallet/internal/handler"
	"github.com/AlexZinkM/multichain-wallet/internal/model"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"
	"github.com/AlexZinkM/multichain-wallet/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newRouter(t *testing.T) http.Handler {
	manager, err := wallet.NewManager(storage.NewMemoryBackend(), 0, zaptest.NewLogger(t))
	require.NoError(t, err)
	h, err := handler.NewWalletHandler(manager, zaptest.NewLogger(t))
	require.NoError(t, err)
	return SetupRouter(h)
}

func TestSetupRouter(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/identity", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errResp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid_identity", errResp.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wallets/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSwaggerDoc(t *testing.T) {
	router := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Contains(t, doc.Paths, "/wallets/btc/sign")
	assert.Contains(t, doc.Paths["/identity/recover"], "post")
}
