package fulfiller

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"ticketpay/internal/application/dto"
	"ticketpay/internal/domain/entities"
	"ticketpay/internal/domain/policies"
	valueobjects "ticketpay/internal/domain/value_objects"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// SessionConfig carries the per-login knobs of a fulfillment session.
type SessionConfig struct {
	FulfillerID         int64
	Role                entities.UserRole
	PartnerFulfillerIDs []int64
	PollInterval        time.Duration
	AgingTick           time.Duration
	SoundAlertsEnabled  bool
	ChainID             int64
	TokenContract       string
}

// Session wires the board, poller, aging monitor, dispatcher, wallet
// connector and payment flow for one logged-in user and runs the
// background loops until the context is cancelled.
type Session struct {
	config     SessionConfig
	client     BackendClient
	board      *Board
	balance    *Balance
	poller     *Poller
	aging      *AgingMonitor
	dispatcher *Dispatcher
	connector  *Connector
	payment    *PaymentFlow
	logger     *log.Logger

	soundsEnabled atomic.Bool
}

func NewSession(
	config SessionConfig,
	client BackendClient,
	provider Provider,
	alerts AlertSink,
	logger *log.Logger,
) *Session {
	if alerts == nil {
		alerts = NopAlertSink{}
	}

	session := &Session{
		config:  config,
		client:  client,
		board:   NewBoard(),
		balance: NewBalance(),
		logger:  logger,
	}
	session.soundsEnabled.Store(config.SoundAlertsEnabled)

	routing := policies.NewRoutingPolicy(config.PartnerFulfillerIDs)
	session.poller = NewPoller(
		client,
		session.board,
		routing,
		config.FulfillerID,
		config.PollInterval,
		alerts,
		session.soundsEnabled.Load,
		logger,
	)
	session.aging = NewAgingMonitor(session.board, alerts, config.AgingTick, logger)
	session.dispatcher = NewDispatcher(
		client,
		session.board,
		session.aging,
		session.balance,
		alerts,
		session.poller.PollNow,
		logger,
	)
	session.connector = NewConnector(provider, config.ChainID, config.TokenContract, alerts, logger)
	session.payment = NewPaymentFlow(client, session.connector, session.balance, alerts, config.Role, logger)

	return session
}

// Start seeds the accepted list and the wallet balance, then launches
// the poll and aging loops. The accepted list is fetched once here;
// afterwards only the session's own actions move tickets in or out of
// it.
func (s *Session) Start(ctx context.Context) *apperrors.AppError {
	inProgress, appErr := s.client.ListTicketsWithoutLimit(ctx, []string{"processing"})
	if appErr != nil {
		return appErr
	}

	accepted := make([]dto.TicketResource, 0, len(inProgress))
	now := time.Now()
	for _, ticket := range inProgress {
		if ticket.FulfillerID == nil || *ticket.FulfillerID != s.config.FulfillerID {
			continue
		}
		accepted = append(accepted, ticket)
		s.aging.Track(ticket.ID, now)
	}
	s.board.SetAccepted(accepted)

	wallet, appErr := s.client.GetWallet(ctx, s.walletType())
	if appErr != nil {
		return appErr
	}
	if balanceErr := s.balance.SetAmount(wallet.Balance); balanceErr != nil {
		return balanceErr
	}

	go s.poller.Run(ctx)
	go s.aging.Run(ctx)

	s.logf("session started fulfiller_id=%d accepted=%d balance=%s", s.config.FulfillerID, len(accepted), wallet.Balance)
	return nil
}

func (s *Session) walletType() string {
	if s.config.Role == entities.UserRoleClient {
		return valueobjects.WalletTypeCustomer.String()
	}
	return valueobjects.WalletTypeFulfiller.String()
}

// SetSoundAlerts flips the new-ticket sound without touching anything
// else about the running poll loop.
func (s *Session) SetSoundAlerts(enabled bool) {
	s.soundsEnabled.Store(enabled)
}

func (s *Session) Board() *Board { return s.board }

func (s *Session) Balance() *Balance { return s.balance }

func (s *Session) Dispatcher() *Dispatcher { return s.dispatcher }

func (s *Session) Connector() *Connector { return s.connector }

func (s *Session) Payment() *PaymentFlow { return s.payment }

func (s *Session) Poller() *Poller { return s.poller }

func (s *Session) logf(format string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}
