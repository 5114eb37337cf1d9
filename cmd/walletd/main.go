package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/multichain-wallet/internal/api"
	"github.com/AlexZinkM/multichain-wallet/internal/config"
	"github.com/AlexZinkM/multichain-wallet/internal/crypto"
	"github.com/AlexZinkM/multichain-wallet/internal/handler"
	"github.com/AlexZinkM/multichain-wallet/internal/logger"
	"github.com/AlexZinkM/multichain-wallet/internal/storage"
	"github.com/AlexZinkM/multichain-wallet/keystore"
	"github.com/AlexZinkM/multichain-wallet/wallet"

	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[walletd] %v\n", err)
	os.Exit(1)
}

func main() {
	app := cli.NewApp()
	app.Name = "walletd"
	app.Usage = "multichain HD wallet service for Bitcoin, Ethereum and EOS"
	app.Before = func(c *cli.Context) error {
		if err := config.Init(); err != nil {
			return err
		}
		crypto.SetScryptN(config.GetScryptN())
		if key, iv := config.GetXPubCipher(); key != "" {
			return keystore.SetXPubCipherHex(key, iv)
		}
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "prompt for the wallet password and serve the HTTP API",
			Action: serve,
		},
		reencryptCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func serve(c *cli.Context) error {
	log, err := logger.New(config.GetLogLevel())
	if err != nil {
		return err
	}
	defer log.Sync()

	backend, err := storage.Open(storage.Kind(config.GetStorage()), config.GetDir())
	if err != nil {
		return fmt.Errorf("failed to open wallet storage: %w", err)
	}
	defer backend.Close()

	manager, err := wallet.NewManager(backend, config.GetUTXOCacheSize(), log)
	if err != nil {
		return err
	}

	if err := config.PromptForPassword(); err != nil {
		return err
	}

	walletHandler, err := handler.NewWalletHandler(manager, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           api.SetupRouter(walletHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("storage", config.GetStorage()),
			zap.String("dir", config.GetDir()),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
