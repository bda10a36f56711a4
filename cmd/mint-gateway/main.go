package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/vanagogh/mint-gateway/internal/adapter"
	"github.com/vanagogh/mint-gateway/internal/api/middleware"
	"github.com/vanagogh/mint-gateway/internal/api/rest"
	"github.com/vanagogh/mint-gateway/internal/api/server"
	"github.com/vanagogh/mint-gateway/internal/assets"
	"github.com/vanagogh/mint-gateway/internal/chainstate"
	"github.com/vanagogh/mint-gateway/internal/config"
	"github.com/vanagogh/mint-gateway/internal/logger"
	"github.com/vanagogh/mint-gateway/internal/messaging"
	"github.com/vanagogh/mint-gateway/internal/minting"
	ethprovider "github.com/vanagogh/mint-gateway/internal/providers/ethereum"
	"github.com/vanagogh/mint-gateway/internal/providers/explorer"
	"github.com/vanagogh/mint-gateway/internal/providers/jetstream"
	"github.com/vanagogh/mint-gateway/internal/ratelimit"
	"github.com/vanagogh/mint-gateway/internal/store"
	"github.com/vanagogh/mint-gateway/internal/wallet"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadGatewayConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "mint-gateway",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting mint gateway",
		zap.String("chain", cfg.Ethereum.ChainID.Name()),
		zap.String("contract", cfg.Ethereum.ContractAddress))

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.Explorer.HTTPTimeout)

	// Connect to the chain RPC
	dialer := adapter.NewEthClientDialer()
	ethClient, err := dialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.Fatal("Failed to connect to RPC", zap.Error(err), zap.String("url", cfg.Ethereum.RPCURL))
	}
	defer ethClient.Close()

	contractAddress := common.HexToAddress(cfg.Ethereum.ContractAddress)
	contractReader, err := ethprovider.NewContractReader(ethClient, contractAddress)
	if err != nil {
		logger.Fatal("Failed to create contract reader", zap.Error(err))
	}

	// Create the signing wallet
	if cfg.Wallet.PrivateKey == "" {
		logger.Fatal("Wallet private key not configured")
	}
	signer, err := wallet.NewKeyedWallet(ethClient, cfg.Wallet.PrivateKey, cfg.Ethereum.ChainID, contractAddress)
	if err != nil {
		logger.Fatal("Failed to create wallet", zap.Error(err))
	}
	walletAddress := signer.Address()
	logger.Info("Wallet connected", zap.String("address", walletAddress.Hex()))

	// Create the optional event publisher
	var publisher messaging.Publisher
	if cfg.EventsEnabled() {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		logger.Info("Connected to NATS", zap.String("stream", cfg.NATS.StreamName))
	} else {
		publisher = messaging.NewNoopPublisher()
	}
	defer publisher.Close()

	// Create the optional mint journal
	journal := store.NewNoopStore()
	if cfg.JournalEnabled() {
		db, err := store.OpenPG(cfg.Database.DSN())
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := store.ConfigureConnectionPool(db, 0, 0, 0, 0); err != nil {
			logger.Fatal("Failed to configure connection pool", zap.Error(err))
		}
		journal = store.NewPGStore(db)
		logger.Info("Mint journal enabled", zap.String("database", cfg.Database.DBName))
	}

	// Contract state polling
	pool := pond.NewPool(cfg.Poll.WorkerPoolSize, pond.WithQueueSize(cfg.Poll.WorkerPoolSize*4))
	reader := chainstate.NewReader(contractReader, pool, clock)
	holder := chainstate.NewHolder()
	holder.SetAccount(&walletAddress)

	poller := chainstate.NewPoller(reader, holder, clock, publisher, cfg.Ethereum.ChainID,
		cfg.Poll.FastInterval, cfg.Poll.SlowInterval)
	go func() {
		_ = poller.Run(ctx)
	}()

	// Mint submission
	submitter := minting.NewSubmitter(holder, poller, signer, clock, publisher, journal,
		cfg.Ethereum.ChainID, cfg.Poll.ReconcileDelay)

	// Asset browsing via the network's indexing API
	rateLimitProxy, err := ratelimit.NewProxy(ratelimit.Config{
		Providers: map[string]ratelimit.ProviderConfig{
			explorer.PROVIDER_NAME: {RequestsPerSecond: 5, Burst: 10},
		},
	})
	if err != nil {
		logger.Fatal("Failed to create rate limit proxy", zap.Error(err))
	}
	defer func() {
		if err := rateLimitProxy.Close(); err != nil {
			logger.Warn("Failed to close rate limit proxy", zap.Error(err))
		}
	}()

	explorerClient := explorer.NewClient(httpClient, rateLimitProxy, cfg.Ethereum.ChainID, jsonAdapter)
	browser := assets.NewBrowser(explorerClient, signer, clock, publisher, cfg.Ethereum.ChainID)

	// API server
	handler := rest.NewHandler(holder, submitter, browser, signer, journal, cfg.Ethereum.ChainID)
	srv := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}, handler)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.Error(err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Mint gateway stopped")
}
