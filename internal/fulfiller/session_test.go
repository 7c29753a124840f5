package fulfiller

import (
	"context"
	"sync"
	"testing"
	"time"

	"ticketpay/internal/application/dto"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

func TestSessionStartSeedsAcceptedAndBalance(t *testing.T) {
	mine := ticketFixture(1, "processing", "10.00")
	mineID := int64(7)
	mine.FulfillerID = &mineID

	theirs := ticketFixture(2, "processing", "20.00")
	theirsID := int64(8)
	theirs.FulfillerID = &theirsID

	var mu sync.Mutex
	var walletTypeSeen string
	backend := &fakeBackend{
		listWithoutLimit: func(statuses []string) ([]dto.TicketResource, *apperrors.AppError) {
			if len(statuses) == 1 && statuses[0] == "processing" {
				return []dto.TicketResource{mine, theirs}, nil
			}
			return nil, nil
		},
		getWallet: func(walletType string) (dto.WalletResource, *apperrors.AppError) {
			mu.Lock()
			walletTypeSeen = walletType
			mu.Unlock()
			return dto.WalletResource{Type: walletType, Balance: "42.5"}, nil
		},
	}

	session := NewSession(SessionConfig{
		FulfillerID:        7,
		Role:               entities.UserRoleFulfiller,
		PollInterval:       time.Minute,
		AgingTick:          time.Minute,
		SoundAlertsEnabled: true,
		ChainID:            baseChainID,
		TokenContract:      testUSDCContract,
	}, backend, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if appErr := session.Start(ctx); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}

	accepted := session.Board().Accepted()
	if len(accepted) != 1 || accepted[0].ID != 1 {
		t.Fatalf("expected only the session's own processing tickets, got %+v", accepted)
	}
	if session.Balance().Amount() != "42.5" {
		t.Fatalf("expected seeded balance 42.5, got %s", session.Balance().Amount())
	}

	mu.Lock()
	defer mu.Unlock()
	if walletTypeSeen != "FULFILLER" {
		t.Fatalf("expected fulfiller wallet, got %s", walletTypeSeen)
	}
}

func TestSessionStartFailsWhenBackendUnavailable(t *testing.T) {
	backend := &fakeBackend{
		listWithoutLimit: func([]string) ([]dto.TicketResource, *apperrors.AppError) {
			return nil, apperrors.NewInternal("backend_unreachable", "connection refused", nil)
		},
	}

	session := NewSession(SessionConfig{FulfillerID: 7, Role: entities.UserRoleFulfiller}, backend, nil, nil, nil)

	appErr := session.Start(context.Background())
	if appErr == nil || appErr.Code != "backend_unreachable" {
		t.Fatalf("expected backend_unreachable, got %v", appErr)
	}
}

func TestSessionSoundToggle(t *testing.T) {
	session := NewSession(SessionConfig{
		FulfillerID:        7,
		Role:               entities.UserRoleClient,
		SoundAlertsEnabled: false,
	}, &fakeBackend{}, nil, nil, nil)

	if session.soundsEnabled.Load() {
		t.Fatal("expected sounds disabled initially")
	}

	session.SetSoundAlerts(true)
	if !session.soundsEnabled.Load() {
		t.Fatal("expected sounds enabled after toggle")
	}
}
