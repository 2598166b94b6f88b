// Package main runs the chaingate HTTP server: a cached data endpoint
// over Cloud Storage plus a transfer-submission endpoint against an
// Ethereum node.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/chaingate-io/chaingate/internal/app"
	"github.com/chaingate-io/chaingate/internal/cache"
	redcache "github.com/chaingate-io/chaingate/internal/cache/redis"
	"github.com/chaingate-io/chaingate/internal/chain"
	"github.com/chaingate-io/chaingate/internal/config"
	"github.com/chaingate-io/chaingate/internal/httpapi"
	"github.com/chaingate-io/chaingate/internal/storage"
	"github.com/chaingate-io/chaingate/internal/storage/gcs"
	storagemem "github.com/chaingate-io/chaingate/internal/storage/memory"
	"github.com/chaingate-io/chaingate/pkg/logger"
)

func main() {
	// Optional .env file, same as the deployment scripts expect.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("chaingate", cfg.LogLevel)

	ctx := context.Background()

	var store storage.ObjectStore
	if cfg.GCPProjectID != "" {
		gcsStore, err := gcs.New(ctx, cfg.GCPProjectID, cfg.GCPBucketName, cfg.GCPKeyFile)
		if err != nil {
			log.WithError(err).Fatal("connect to cloud storage")
		}
		defer gcsStore.Close()
		store = gcsStore
		log.WithField("bucket", cfg.GCPBucketName).Info("using Google Cloud Storage bucket")
	} else {
		store = storagemem.New()
		log.Warn("GCP_PROJECT_ID not set; using in-memory object store")
	}

	var dataCache cache.Cache
	redisCache := redcache.New(cfg.RedisAddr())
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		// The data path degrades to the durable store on every miss, so
		// an unreachable Redis is not fatal.
		log.WithError(err).Warn("redis unreachable at startup")
	}
	dataCache = redisCache

	gateway, err := chain.NewEthGateway(cfg.EthereumNode, cfg.SubmitTimeout, log.WithField("service", "chain"))
	if err != nil {
		log.WithError(err).Fatal("connect to blockchain node")
	}
	log.WithField("node", cfg.EthereumNode).Info("connected to blockchain node")

	if cfg.ContractAddress != "" {
		if _, err := chain.LoadContractABI(cfg.ContractABIPath); err != nil {
			log.WithError(err).Warnf("contract %s configured but ABI artifact unusable", cfg.ContractAddress)
		} else {
			log.WithField("contract", cfg.ContractAddress).Info("contract ABI validated")
		}
	}

	application, err := app.New(app.Deps{
		Cache:   dataCache,
		Store:   store,
		Gateway: gateway,
		Log:     log,
	})
	if err != nil {
		log.WithError(err).Fatal("build application")
	}

	handler := httpapi.New(httpapi.Options{
		Data:         application.Data,
		Transactions: application.Transactions,
		QoS:          application.QoS,
		Health: httpapi.HealthInfo{
			BlockchainNetwork: cfg.EthereumNode,
			GCPBucket:         cfg.GCPBucketName,
			StartedAt:         time.Now(),
		},
		CORSOrigins: cfg.CORSAllowedOrigins,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("server stopped")
}
