package di

import (
	"database/sql"
	"log"
	"os"
	"time"

	"ticketpay/internal/adapters/inbound/http/controllers"
	"ticketpay/internal/adapters/inbound/http/middleware"
	httpRouter "ticketpay/internal/adapters/inbound/http/router"
	"ticketpay/internal/adapters/outbound/chainreader/evmrpc"
	"ticketpay/internal/adapters/outbound/docs"
	localfilestore "ticketpay/internal/adapters/outbound/filestore/local"
	"ticketpay/internal/adapters/outbound/identity"
	postgresqlbootstrap "ticketpay/internal/adapters/outbound/persistence/postgresql/bootstrap"
	postgresqldepositintents "ticketpay/internal/adapters/outbound/persistence/postgresql/depositintents"
	postgresqlnotificationoutbox "ticketpay/internal/adapters/outbound/persistence/postgresql/notificationoutbox"
	postgresqlsettings "ticketpay/internal/adapters/outbound/persistence/postgresql/settings"
	postgresqlshared "ticketpay/internal/adapters/outbound/persistence/postgresql/shared"
	postgresqltickets "ticketpay/internal/adapters/outbound/persistence/postgresql/tickets"
	postgresqltransactions "ticketpay/internal/adapters/outbound/persistence/postgresql/transactions"
	postgresqlusers "ticketpay/internal/adapters/outbound/persistence/postgresql/users"
	postgresqlwallets "ticketpay/internal/adapters/outbound/persistence/postgresql/wallets"
	postgresqlwithdrawrequests "ticketpay/internal/adapters/outbound/persistence/postgresql/withdrawrequests"
	"ticketpay/internal/adapters/outbound/telegram"
	deterministicwallet "ticketpay/internal/adapters/outbound/wallet/deterministic"
	portsin "ticketpay/internal/application/ports/in"
	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/application/use_cases"
	"ticketpay/internal/infrastructure/config"
	"ticketpay/internal/infrastructure/depositreconciler"
	"ticketpay/internal/infrastructure/httpserver"
	"ticketpay/internal/infrastructure/notifier"
)

type Container struct {
	Database                     *sql.DB
	Server                       *httpserver.Server
	InitializePersistenceUseCase portsin.InitializePersistenceUseCase
	DispatchUseCase              portsin.DispatchNotificationsUseCase
	ReconcileUseCase             portsin.ReconcileDepositsUseCase
	NotifierWorker               *notifier.Worker
	DepositReconcilerWorker      *depositreconciler.Worker
}

func Build(cfg config.Config, logger *log.Logger) (Container, error) {
	clock := use_cases.NewSystemClock()

	persistenceGateway := postgresqlbootstrap.NewGateway(
		cfg.DatabaseURL,
		cfg.DatabaseTarget,
		cfg.MigrationsPath,
		logger,
	)
	initializePersistenceUseCase := use_cases.NewInitializePersistenceUseCase(persistenceGateway)
	databasePool := postgresqlshared.NewDatabasePool(cfg.DatabaseURL, logger)

	ticketRepository := postgresqltickets.NewRepository(databasePool)
	walletRepository := postgresqlwallets.NewRepository(databasePool)
	userRepository := postgresqlusers.NewRepository(databasePool)
	transactionRepository := postgresqltransactions.NewRepository(databasePool)
	settingsRepository := postgresqlsettings.NewRepository(databasePool)
	withdrawRequestRepository := postgresqlwithdrawrequests.NewRepository(databasePool)
	outboxRepository := postgresqlnotificationoutbox.NewRepository(databasePool)
	depositIntentRepository := postgresqldepositintents.NewRepository(databasePool)

	passwordHasher := identity.NewBcryptHasher(cfg.BcryptCost)
	tokenIssuer := identity.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	chainReader := evmrpc.NewReader(evmrpc.Config{
		RPCURL:        cfg.ChainRPCURL,
		TokenContract: cfg.TokenContract,
	}, nil)

	var walletProvisioner portsout.WalletProvisioner
	var depositAllocator portsout.DepositAddressAllocator
	if cfg.DepositXPub != "" {
		allocator, allocErr := deterministicwallet.NewAllocator(cfg.DepositXPub, cfg.DerivationPathTemplate)
		if allocErr != nil {
			return Container{}, allocErr
		}
		depositAllocator = allocator
		walletProvisioner = deterministicwallet.NewProvisioner(allocator, depositIntentRepository)
	}

	fileStore, storeErr := localfilestore.NewStore(cfg.UploadDir, cfg.UploadBaseURL)
	if storeErr != nil {
		return Container{}, storeErr
	}

	var notificationGateway portsout.NotificationGateway
	if cfg.TelegramBotToken != "" {
		gateway, telegramErr := telegram.NewGateway(cfg.TelegramBotToken, logger)
		if telegramErr != nil {
			return Container{}, telegramErr
		}
		notificationGateway = gateway
	}

	healthUseCase := use_cases.NewGetHealthUseCase()
	openAPIReadModel := docs.NewFileOpenAPISpecReadModel(cfg.OpenAPISpecPath)
	openAPIUseCase := use_cases.NewGetOpenAPISpecUseCase(openAPIReadModel)

	loginUseCase := use_cases.NewLoginUseCase(userRepository, passwordHasher, tokenIssuer, clock)
	registerUseCase := use_cases.NewRegisterUseCase(userRepository, passwordHasher, tokenIssuer, clock)
	resetPasswordUseCase := use_cases.NewResetPasswordUseCase(userRepository, passwordHasher)

	createTicketUseCase := use_cases.NewCreateTicketUseCase(ticketRepository, outboxRepository, clock, logger)
	listTicketsUseCase := use_cases.NewListTicketsUseCase(ticketRepository)
	listTicketsWithoutLimitUseCase := use_cases.NewListTicketsWithoutLimitUseCase(ticketRepository)
	getTicketUseCase := use_cases.NewGetTicketUseCase(ticketRepository)
	validateTicketUseCase := use_cases.NewValidateTicketUseCase(ticketRepository)
	declineTicketUseCase := use_cases.NewDeclineTicketUseCase(ticketRepository)
	claimTicketUseCase := use_cases.NewClaimTicketUseCase(ticketRepository)
	completeTicketUseCase := use_cases.NewCompleteTicketUseCase(
		ticketRepository,
		walletRepository,
		transactionRepository,
		outboxRepository,
		clock,
		logger,
	)
	reportTicketUseCase := use_cases.NewReportTicketUseCase(
		ticketRepository,
		walletRepository,
		outboxRepository,
		clock,
		logger,
	)

	getWalletUseCase := use_cases.NewGetWalletUseCase(walletRepository)
	listWalletsUseCase := use_cases.NewListWalletsUseCase(walletRepository)
	connectWalletUseCase := use_cases.NewConnectWalletUseCase(walletRepository, clock)
	createWalletUseCase := use_cases.NewCreateWalletUseCase(walletRepository, clock)
	createEthereumWalletUseCase := use_cases.NewCreateEthereumWalletUseCase(walletRepository, walletProvisioner, clock)
	depositToWalletUseCase := use_cases.NewDepositToWalletUseCase(walletRepository, transactionRepository, clock)
	withdrawFromWalletUseCase := use_cases.NewWithdrawFromWalletUseCase(walletRepository, transactionRepository, clock)
	listTransactionsUseCase := use_cases.NewListTransactionsUseCase(transactionRepository)
	updateTransactionUseCase := use_cases.NewUpdateTransactionUseCase(transactionRepository)
	groupPendingUseCase := use_cases.NewGroupPendingTransactionsUseCase(transactionRepository)

	resolveDepositAddressUseCase := use_cases.NewResolveDepositAddressUseCase(depositIntentRepository, depositAllocator, clock)
	reportDepositUseCase := use_cases.NewReportDepositUseCase(
		depositIntentRepository,
		walletRepository,
		transactionRepository,
		chainReader,
		clock,
	)
	reconcileDepositsUseCase := use_cases.NewReconcileDepositsUseCase(
		depositIntentRepository,
		walletRepository,
		transactionRepository,
		chainReader,
		clock,
	)
	createWithdrawRequestUseCase := use_cases.NewCreateWithdrawRequestUseCase(withdrawRequestRepository, walletRepository, clock)
	listWithdrawRequestsUseCase := use_cases.NewListWithdrawRequestsUseCase(withdrawRequestRepository)

	getSettingsUseCase := use_cases.NewGetSettingsUseCase(settingsRepository)
	updateSettingsUseCase := use_cases.NewUpdateSettingsUseCase(settingsRepository, clock)
	uploadFileUseCase := use_cases.NewUploadFileUseCase(fileStore)
	dispatchNotificationsUseCase := use_cases.NewDispatchNotificationsUseCase(outboxRepository, notificationGateway)

	notifierWorker := notifier.NewWorker(
		cfg.TelegramBotToken != "",
		cfg.DispatchInterval,
		cfg.DispatchBatchSize,
		workerID(),
		5,
		30*time.Second,
		cfg.DispatchInterval,
		dispatchNotificationsUseCase,
		logger,
	)
	reconcilerWorker := depositreconciler.NewWorker(
		cfg.ChainRPCURL != "",
		cfg.ReconcileInterval,
		cfg.ReconcileBatchSize,
		reconcileDepositsUseCase,
		logger,
	)

	authMiddleware := middleware.NewAuth(tokenIssuer)

	router := httpRouter.New(httpRouter.Dependencies{
		HealthController:  controllers.NewHealthController(healthUseCase, logger),
		SwaggerController: controllers.NewSwaggerController(openAPIUseCase, logger),
		AuthController: controllers.NewAuthController(
			loginUseCase,
			registerUseCase,
			resetPasswordUseCase,
			logger,
		),
		TicketsController: controllers.NewTicketsController(
			createTicketUseCase,
			listTicketsUseCase,
			listTicketsWithoutLimitUseCase,
			getTicketUseCase,
			validateTicketUseCase,
			declineTicketUseCase,
			claimTicketUseCase,
			completeTicketUseCase,
			reportTicketUseCase,
			logger,
		),
		WalletsController: controllers.NewWalletsController(
			getWalletUseCase,
			listWalletsUseCase,
			connectWalletUseCase,
			createWalletUseCase,
			createEthereumWalletUseCase,
			depositToWalletUseCase,
			withdrawFromWalletUseCase,
			listTransactionsUseCase,
			updateTransactionUseCase,
			groupPendingUseCase,
			logger,
		),
		SettlementController: controllers.NewSettlementController(
			resolveDepositAddressUseCase,
			reportDepositUseCase,
			createWithdrawRequestUseCase,
			listWithdrawRequestsUseCase,
			logger,
		),
		SettingsController: controllers.NewSettingsController(getSettingsUseCase, updateSettingsUseCase, logger),
		UploadsController:  controllers.NewUploadsController(uploadFileUseCase, logger),
		Auth:               authMiddleware,
		UploadDir:          cfg.UploadDir,
	})

	server := httpserver.New(cfg.Address(), router, logger)

	return Container{
		Database:                     databasePool,
		Server:                       server,
		InitializePersistenceUseCase: initializePersistenceUseCase,
		DispatchUseCase:              dispatchNotificationsUseCase,
		ReconcileUseCase:             reconcileDepositsUseCase,
		NotifierWorker:               notifierWorker,
		DepositReconcilerWorker:      reconcilerWorker,
	}, nil
}

func workerID() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "notifier"
	}

	return "notifier-" + hostname
}
