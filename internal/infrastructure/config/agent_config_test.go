package config

import (
	"testing"
	"time"
)

func setAgentEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AGENT_API_BASE_URL", "http://localhost:8080/")
	t.Setenv("AGENT_LOGIN", "worker1")
	t.Setenv("AGENT_PASSWORD", "secret")
}

func TestLoadAgentConfigDefaults(t *testing.T) {
	setAgentEnv(t)

	cfg, cfgErr := LoadAgentConfig()
	if cfgErr != nil {
		t.Fatalf("unexpected error: %v", cfgErr)
	}

	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Fatalf("expected trimmed base url, got %s", cfg.APIBaseURL)
	}
	if cfg.PollInterval != 20*time.Second {
		t.Fatalf("expected 20s poll interval, got %s", cfg.PollInterval)
	}
	if cfg.AgingTick != time.Second {
		t.Fatalf("expected 1s aging tick, got %s", cfg.AgingTick)
	}
	if !cfg.SoundAlertsEnabled {
		t.Fatal("expected sound alerts enabled by default")
	}
	if cfg.ChainID != 8453 {
		t.Fatalf("expected chain id 8453, got %d", cfg.ChainID)
	}
	if len(cfg.PartnerFulfillerIDs) != 0 {
		t.Fatalf("expected empty partner list, got %v", cfg.PartnerFulfillerIDs)
	}
}

func TestLoadAgentConfigRequiresCredentials(t *testing.T) {
	t.Setenv("AGENT_API_BASE_URL", "http://localhost:8080")
	t.Setenv("AGENT_LOGIN", "")
	t.Setenv("AGENT_PASSWORD", "")

	_, cfgErr := LoadAgentConfig()
	if cfgErr == nil || cfgErr.Code != "CONFIG_AGENT_LOGIN_REQUIRED" {
		t.Fatalf("expected CONFIG_AGENT_LOGIN_REQUIRED, got %v", cfgErr)
	}
}

func TestLoadAgentConfigParsesPartnerList(t *testing.T) {
	setAgentEnv(t)
	t.Setenv("AGENT_PARTNER_FULFILLER_IDS", "3, 17,42")

	cfg, cfgErr := LoadAgentConfig()
	if cfgErr != nil {
		t.Fatalf("unexpected error: %v", cfgErr)
	}

	want := []int64{3, 17, 42}
	if len(cfg.PartnerFulfillerIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.PartnerFulfillerIDs)
	}
	for i, id := range want {
		if cfg.PartnerFulfillerIDs[i] != id {
			t.Fatalf("expected %v, got %v", want, cfg.PartnerFulfillerIDs)
		}
	}
}

func TestLoadAgentConfigRejectsBadPartnerList(t *testing.T) {
	setAgentEnv(t)
	t.Setenv("AGENT_PARTNER_FULFILLER_IDS", "3,abc")

	_, cfgErr := LoadAgentConfig()
	if cfgErr == nil || cfgErr.Code != "CONFIG_INTEGER_LIST_INVALID" {
		t.Fatalf("expected CONFIG_INTEGER_LIST_INVALID, got %v", cfgErr)
	}
}

func TestLoadAgentConfigSoundToggle(t *testing.T) {
	setAgentEnv(t)
	t.Setenv("AGENT_SOUND_ALERTS", "false")

	cfg, cfgErr := LoadAgentConfig()
	if cfgErr != nil {
		t.Fatalf("unexpected error: %v", cfgErr)
	}
	if cfg.SoundAlertsEnabled {
		t.Fatal("expected sound alerts disabled")
	}
}
