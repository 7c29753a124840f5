package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAgentPollInterval = 20 * time.Second
	defaultAgentAgingTick    = time.Second
	defaultAgentHTTPTimeout  = 10 * time.Second
)

// AgentConfig drives a headless fulfillment session against a running
// ticket API.
type AgentConfig struct {
	APIBaseURL string
	Login      string
	Password   string

	PartnerFulfillerIDs []int64
	PollInterval        time.Duration
	AgingTick           time.Duration
	HTTPTimeout         time.Duration
	SoundAlertsEnabled  bool

	ChainID       int64
	TokenContract string

	TelegramBotToken    string
	NotificationsChatID string
}

func LoadAgentConfig() (AgentConfig, *ConfigError) {
	apiBaseURL := stringEnv("AGENT_API_BASE_URL", "")
	if apiBaseURL == "" {
		return AgentConfig{}, &ConfigError{
			Code:    "CONFIG_AGENT_API_BASE_URL_REQUIRED",
			Message: "AGENT_API_BASE_URL environment variable is required",
		}
	}

	login := stringEnv("AGENT_LOGIN", "")
	if login == "" {
		return AgentConfig{}, &ConfigError{
			Code:    "CONFIG_AGENT_LOGIN_REQUIRED",
			Message: "AGENT_LOGIN environment variable is required",
		}
	}

	password := os.Getenv("AGENT_PASSWORD")
	if password == "" {
		return AgentConfig{}, &ConfigError{
			Code:    "CONFIG_AGENT_PASSWORD_REQUIRED",
			Message: "AGENT_PASSWORD environment variable is required",
		}
	}

	partnerIDs, err := int64ListEnv("AGENT_PARTNER_FULFILLER_IDS")
	if err != nil {
		return AgentConfig{}, err
	}

	pollInterval, err := durationEnv("AGENT_POLL_INTERVAL", defaultAgentPollInterval)
	if err != nil {
		return AgentConfig{}, err
	}

	agingTick, err := durationEnv("AGENT_AGING_TICK", defaultAgentAgingTick)
	if err != nil {
		return AgentConfig{}, err
	}

	httpTimeout, err := durationEnv("AGENT_HTTP_TIMEOUT", defaultAgentHTTPTimeout)
	if err != nil {
		return AgentConfig{}, err
	}

	chainID, err := int64Env("CHAIN_ID", defaultChainID)
	if err != nil {
		return AgentConfig{}, err
	}

	return AgentConfig{
		APIBaseURL:          strings.TrimRight(apiBaseURL, "/"),
		Login:               login,
		Password:            password,
		PartnerFulfillerIDs: partnerIDs,
		PollInterval:        pollInterval,
		AgingTick:           agingTick,
		HTTPTimeout:         httpTimeout,
		SoundAlertsEnabled:  boolEnv("AGENT_SOUND_ALERTS", true),
		ChainID:             chainID,
		TokenContract:       stringEnv("TOKEN_CONTRACT", defaultTokenContract),
		TelegramBotToken:    stringEnv("TELEGRAM_BOT_TOKEN", ""),
		NotificationsChatID: stringEnv("NOTIFICATIONS_CHAT_ID", ""),
	}, nil
}

func boolEnv(name string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func int64ListEnv(name string) ([]int64, *ConfigError) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, &ConfigError{
				Code:     "CONFIG_INTEGER_LIST_INVALID",
				Message:  name + " must be a comma-separated list of integers",
				Metadata: map[string]string{"value": value},
			}
		}
		ids = append(ids, id)
	}

	return ids, nil
}
