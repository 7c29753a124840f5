package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort                     = "8080"
	defaultOpenAPISpec              = "api/openapi.yaml"
	defaultShutdownTimeout          = 10 * time.Second
	defaultDBReadinessTimeout       = 30 * time.Second
	defaultDBReadinessRetryInterval = 2 * time.Second
	defaultMigrationsPath           = "migrations"
	defaultTokenTTL                 = 24 * time.Hour
	defaultDerivationPathTemplate   = "0/{index}"
	defaultChainID                  = int64(8453)
	defaultTokenContract            = "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
	defaultReconcileInterval        = 60 * time.Second
	defaultReconcileBatchSize       = 50
	defaultDispatchInterval         = 5 * time.Second
	defaultDispatchBatchSize        = 20
	defaultUploadDir                = "uploads"
	defaultUploadBaseURL            = "/files"
)

type ConfigError struct {
	Code     string
	Message  string
	Metadata map[string]string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

type Config struct {
	Port                     string
	OpenAPISpecPath          string
	ShutdownTimeout          time.Duration
	DatabaseURL              string
	DatabaseTarget           string
	DBReadinessTimeout       time.Duration
	DBReadinessRetryInterval time.Duration
	MigrationsPath           string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	TelegramBotToken string

	DepositXPub            string
	DerivationPathTemplate string

	ChainRPCURL   string
	ChainID       int64
	TokenContract string

	ReconcileInterval  time.Duration
	ReconcileBatchSize int
	DispatchInterval   time.Duration
	DispatchBatchSize  int

	UploadDir     string
	UploadBaseURL string
}

func LoadConfig() (Config, *ConfigError) {
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		return Config{}, &ConfigError{
			Code:    "CONFIG_DATABASE_URL_REQUIRED",
			Message: "DATABASE_URL is required",
		}
	}

	databaseTarget, parseErr := parseDatabaseTarget(databaseURL)
	if parseErr != nil {
		return Config{}, parseErr
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		return Config{}, &ConfigError{
			Code:    "CONFIG_JWT_SECRET_REQUIRED",
			Message: "JWT_SECRET is required",
		}
	}

	tokenTTL, ttlErr := durationEnv("JWT_TTL", defaultTokenTTL)
	if ttlErr != nil {
		return Config{}, ttlErr
	}

	bcryptCost, costErr := intEnv("BCRYPT_COST", 0)
	if costErr != nil {
		return Config{}, costErr
	}

	chainID, chainErr := int64Env("CHAIN_ID", defaultChainID)
	if chainErr != nil {
		return Config{}, chainErr
	}

	reconcileInterval, reconcileErr := durationEnv("DEPOSIT_RECONCILE_INTERVAL", defaultReconcileInterval)
	if reconcileErr != nil {
		return Config{}, reconcileErr
	}
	reconcileBatchSize, batchErr := intEnv("DEPOSIT_RECONCILE_BATCH_SIZE", defaultReconcileBatchSize)
	if batchErr != nil {
		return Config{}, batchErr
	}

	dispatchInterval, dispatchErr := durationEnv("NOTIFICATION_DISPATCH_INTERVAL", defaultDispatchInterval)
	if dispatchErr != nil {
		return Config{}, dispatchErr
	}
	dispatchBatchSize, dispatchBatchErr := intEnv("NOTIFICATION_DISPATCH_BATCH_SIZE", defaultDispatchBatchSize)
	if dispatchBatchErr != nil {
		return Config{}, dispatchBatchErr
	}

	return Config{
		Port:                     stringEnv("PORT", defaultPort),
		OpenAPISpecPath:          stringEnv("OPENAPI_SPEC_PATH", defaultOpenAPISpec),
		ShutdownTimeout:          defaultShutdownTimeout,
		DatabaseURL:              databaseURL,
		DatabaseTarget:           databaseTarget,
		DBReadinessTimeout:       defaultDBReadinessTimeout,
		DBReadinessRetryInterval: defaultDBReadinessRetryInterval,
		MigrationsPath:           stringEnv("MIGRATIONS_PATH", defaultMigrationsPath),
		JWTSecret:                jwtSecret,
		TokenTTL:                 tokenTTL,
		BcryptCost:               bcryptCost,
		TelegramBotToken:         strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		DepositXPub:              strings.TrimSpace(os.Getenv("DEPOSIT_XPUB")),
		DerivationPathTemplate:   stringEnv("DEPOSIT_DERIVATION_PATH_TEMPLATE", defaultDerivationPathTemplate),
		ChainRPCURL:              strings.TrimSpace(os.Getenv("CHAIN_RPC_URL")),
		ChainID:                  chainID,
		TokenContract:            stringEnv("TOKEN_CONTRACT", defaultTokenContract),
		ReconcileInterval:        reconcileInterval,
		ReconcileBatchSize:       reconcileBatchSize,
		DispatchInterval:         dispatchInterval,
		DispatchBatchSize:        dispatchBatchSize,
		UploadDir:                stringEnv("UPLOAD_DIR", defaultUploadDir),
		UploadBaseURL:            stringEnv("UPLOAD_BASE_URL", defaultUploadBaseURL),
	}, nil
}

func (c Config) Address() string {
	return ":" + c.Port
}

func parseDatabaseTarget(databaseURL string) (string, *ConfigError) {
	parsed, err := url.Parse(databaseURL)
	if err != nil {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_INVALID",
			Message: "DATABASE_URL is invalid",
		}
	}

	switch parsed.Scheme {
	case "postgres", "postgresql":
	default:
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_SCHEME_INVALID",
			Message: "DATABASE_URL must use postgres or postgresql scheme",
		}
	}

	if parsed.Host == "" {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_URL_HOST_MISSING",
			Message: "DATABASE_URL host is required",
		}
	}

	databaseName := strings.TrimPrefix(parsed.Path, "/")
	if databaseName == "" {
		return "", &ConfigError{
			Code:    "CONFIG_DATABASE_NAME_MISSING",
			Message: "DATABASE_URL database name is required",
		}
	}

	return parsed.Host + "/" + databaseName, nil
}

func stringEnv(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}

	return value
}

func durationEnv(name string, fallback time.Duration) (time.Duration, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, &ConfigError{
			Code:    "CONFIG_DURATION_INVALID",
			Message: name + " must be a positive duration",
			Metadata: map[string]string{
				"variable": name,
				"value":    raw,
			},
		}
	}

	return value, nil
}

func intEnv(name string, fallback int) (int, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, &ConfigError{
			Code:    "CONFIG_INTEGER_INVALID",
			Message: name + " must be a non-negative integer",
			Metadata: map[string]string{
				"variable": name,
				"value":    raw,
			},
		}
	}

	return value, nil
}

func int64Env(name string, fallback int64) (int64, *ConfigError) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, &ConfigError{
			Code:    "CONFIG_INTEGER_INVALID",
			Message: name + " must be a positive integer",
			Metadata: map[string]string{
				"variable": name,
				"value":    raw,
			},
		}
	}

	return value, nil
}
