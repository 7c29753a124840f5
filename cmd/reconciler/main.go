package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ticketpay/internal/application/dto"
	"ticketpay/internal/infrastructure/config"
	"ticketpay/internal/infrastructure/di"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)
	_ = godotenv.Load()

	cfg, cfgErr := config.LoadConfig()
	if cfgErr != nil {
		logger.Printf("startup config error code=%s message=%s metadata=%v", cfgErr.Code, cfgErr.Message, cfgErr.Metadata)
		os.Exit(1)
	}
	if cfg.ChainRPCURL == "" {
		logger.Printf("reconciler config error code=CONFIG_CHAIN_RPC_URL_REQUIRED message=CHAIN_RPC_URL is required for reconciler runtime")
		os.Exit(1)
	}

	container, buildErr := di.Build(cfg, logger)
	if buildErr != nil {
		logger.Printf("dependency wiring error: %v", buildErr)
		os.Exit(1)
	}
	defer func() {
		if container.Database == nil {
			return
		}
		if err := container.Database.Close(); err != nil {
			logger.Printf("database close warning error=%v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Printf("reconciler persistence initialization starting database_target=%s", cfg.DatabaseTarget)
	persistenceErr := container.InitializePersistenceUseCase.Execute(ctx, dto.InitializePersistenceCommand{
		ReadinessTimeout:       cfg.DBReadinessTimeout,
		ReadinessRetryInterval: cfg.DBReadinessRetryInterval,
	})
	if persistenceErr != nil {
		logger.Printf(
			"reconciler persistence initialization failed code=%s message=%s metadata=%v",
			persistenceErr.Code,
			persistenceErr.Message,
			persistenceErr.Details,
		)
		os.Exit(1)
	}
	logger.Printf("reconciler persistence initialization completed database_target=%s", cfg.DatabaseTarget)

	if !container.DepositReconcilerWorker.Enabled() {
		logger.Printf("reconciler startup failed code=RECONCILER_WORKER_NOT_ENABLED message=deposit reconciler is not enabled")
		os.Exit(1)
	}

	container.DepositReconcilerWorker.Start(ctx)
	logger.Printf("reconciler stopped")
}
