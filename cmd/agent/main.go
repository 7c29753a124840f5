package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"ticketpay/internal/adapters/outbound/backendapi"
	"ticketpay/internal/adapters/outbound/telegram"
	walletdevtest "ticketpay/internal/adapters/outbound/walletprovider/devtest"
	"ticketpay/internal/domain/entities"
	"ticketpay/internal/fulfiller"
	"ticketpay/internal/infrastructure/config"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags|log.LUTC)
	_ = godotenv.Load()

	cfg, cfgErr := config.LoadAgentConfig()
	if cfgErr != nil {
		logger.Printf("startup config error code=%s message=%s metadata=%v", cfgErr.Code, cfgErr.Message, cfgErr.Metadata)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := backendapi.NewClient(backendapi.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
	})

	auth, loginErr := client.Login(ctx, cfg.Login, cfg.Password)
	if loginErr != nil {
		logger.Printf("login failed code=%s message=%s", loginErr.Code, loginErr.Message)
		os.Exit(1)
	}
	logger.Printf("login completed user_id=%d role=%s", auth.User.ID, auth.User.Role)

	role, roleErr := entities.ParseUserRole(auth.User.Role)
	if roleErr != nil {
		logger.Printf("unexpected role code=%s message=%s", roleErr.Code, roleErr.Message)
		os.Exit(1)
	}

	alerts := buildAlertSink(cfg, logger)
	provider := buildProvider(cfg)

	session := fulfiller.NewSession(fulfiller.SessionConfig{
		FulfillerID:         auth.User.ID,
		Role:                role,
		PartnerFulfillerIDs: cfg.PartnerFulfillerIDs,
		PollInterval:        cfg.PollInterval,
		AgingTick:           cfg.AgingTick,
		SoundAlertsEnabled:  cfg.SoundAlertsEnabled,
		ChainID:             cfg.ChainID,
		TokenContract:       cfg.TokenContract,
	}, client, provider, alerts, logger)

	if startErr := session.Start(ctx); startErr != nil {
		logger.Printf("session start failed code=%s message=%s", startErr.Code, startErr.Message)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Printf("agent stopped")
}

// buildProvider wires the development wallet when requested. Without a
// provider the session still runs; deposits just require connecting one
// first.
func buildProvider(cfg config.AgentConfig) fulfiller.Provider {
	if !strings.EqualFold(os.Getenv("AGENT_WALLET_PROVIDER"), "devtest") {
		return nil
	}

	return walletdevtest.NewProvider(walletdevtest.Config{
		ChainID:       cfg.ChainID,
		Accounts:      []string{os.Getenv("AGENT_WALLET_ACCOUNT")},
		NativeBalance: "0",
	})
}

func buildAlertSink(cfg config.AgentConfig, logger *log.Logger) fulfiller.AlertSink {
	if cfg.TelegramBotToken == "" || cfg.NotificationsChatID == "" {
		return logAlertSink{logger: logger}
	}

	gateway, gatewayErr := telegram.NewGateway(cfg.TelegramBotToken, logger)
	if gatewayErr != nil {
		logger.Printf("telegram alert sink unavailable code=%s message=%s", gatewayErr.Code, gatewayErr.Message)
		return logAlertSink{logger: logger}
	}

	return &telegramAlertSink{gateway: gateway, chatID: cfg.NotificationsChatID, logger: logger}
}

type logAlertSink struct {
	logger *log.Logger
}

func (s logAlertSink) Notify(message string) {
	s.logger.Printf("alert message=%q", message)
}

func (s logAlertSink) PlaySound() {
	s.logger.Printf("alert sound=new_tickets")
}

type telegramAlertSink struct {
	gateway *telegram.Gateway
	chatID  string
	logger  *log.Logger
}

func (s *telegramAlertSink) Notify(message string) {
	if appErr := s.gateway.SendText(context.Background(), s.chatID, message); appErr != nil {
		s.logger.Printf("alert delivery failed code=%s message=%s", appErr.Code, appErr.Message)
	}
}

func (s *telegramAlertSink) PlaySound() {
	s.Notify("New tickets are waiting")
}
