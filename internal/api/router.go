package api

import (
	"net/http"

	_ "github.com/AlexZinkM/multichain-wallet/docs"
	"github.com/AlexZinkM/multichain-wallet/internal/handler"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(walletHandler *handler.WalletHandler) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Identity endpoints
	mux.HandleFunc("/identity", walletHandler.GetIdentity)
	mux.HandleFunc("/identity/create", walletHandler.CreateIdentity)
	mux.HandleFunc("/identity/recover", walletHandler.RecoverIdentity)
	mux.HandleFunc("/identity/export", walletHandler.ExportIdentity)
	mux.HandleFunc("/identity/delete", walletHandler.DeleteIdentity)
	mux.HandleFunc("/identity/ipfs/encrypt", walletHandler.EncryptIPFS)
	mux.HandleFunc("/identity/ipfs/decrypt", walletHandler.DecryptIPFS)
	mux.HandleFunc("/identity/auth/sign", walletHandler.SignAuthentication)

	// Wallet endpoints
	mux.HandleFunc("/wallets", walletHandler.ListWallets)
	mux.HandleFunc("/wallets/find", walletHandler.FindWallet)
	mux.HandleFunc("/wallets/qr", walletHandler.QRCode)
	mux.HandleFunc("/wallets/import", walletHandler.ImportWallet)
	mux.HandleFunc("/wallets/derive", walletHandler.DeriveWallets)
	mux.HandleFunc("/wallets/remove", walletHandler.RemoveWallet)
	mux.HandleFunc("/wallets/verify-password", walletHandler.VerifyPassword)
	mux.HandleFunc("/wallets/export", walletHandler.ExportWallet)

	// Chain specific endpoints
	mux.HandleFunc("/wallets/btc/sign", walletHandler.SignBTC)
	mux.HandleFunc("/wallets/btc/mode", walletHandler.SwitchBTCMode)
	mux.HandleFunc("/wallets/eos/account", walletHandler.SetEOSAccount)
	mux.HandleFunc("/wallets/eos/sign", walletHandler.SignEOS)
	mux.HandleFunc("/wallets/eos/ecsign", walletHandler.ECSignEOS)
	mux.HandleFunc("/wallets/eos/ecrecover", walletHandler.ECRecoverEOS)
	mux.HandleFunc("/wallets/eth/sign", walletHandler.SignETH)
	mux.HandleFunc("/wallets/eth/personal-sign", walletHandler.PersonalSignETH)

	return mux
}
