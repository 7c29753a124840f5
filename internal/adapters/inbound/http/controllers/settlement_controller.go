package controllers

import (
	"log"
	"net/http"
	"strings"

	"ticketpay/internal/adapters/inbound/http/middleware"
	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type SettlementController struct {
	resolveAddressUseCase        portsin.ResolveDepositAddressUseCase
	reportDepositUseCase         portsin.ReportDepositUseCase
	createWithdrawRequestUseCase portsin.CreateWithdrawRequestUseCase
	listWithdrawRequestsUseCase  portsin.ListWithdrawRequestsUseCase
	logger                       *log.Logger
}

func NewSettlementController(
	resolveAddressUseCase portsin.ResolveDepositAddressUseCase,
	reportDepositUseCase portsin.ReportDepositUseCase,
	createWithdrawRequestUseCase portsin.CreateWithdrawRequestUseCase,
	listWithdrawRequestsUseCase portsin.ListWithdrawRequestsUseCase,
	logger *log.Logger,
) *SettlementController {
	return &SettlementController{
		resolveAddressUseCase:        resolveAddressUseCase,
		reportDepositUseCase:         reportDepositUseCase,
		createWithdrawRequestUseCase: createWithdrawRequestUseCase,
		listWithdrawRequestsUseCase:  listWithdrawRequestsUseCase,
		logger:                       logger,
	}
}

func (c *SettlementController) ResolveDepositAddress(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.PrincipalFromContext(r.Context()); !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	resource, appErr := c.resolveAddressUseCase.Execute(r.Context(), dto.ResolveDepositAddressQuery{
		Amount:      strings.TrimSpace(r.URL.Query().Get("amount")),
		AddressFrom: strings.TrimSpace(r.URL.Query().Get("address_from")),
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/deposit/address", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

type reportDepositPayload struct {
	TransactionHash string `json:"transaction_hash"`
}

func (c *SettlementController) ReportDeposit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	payload := reportDepositPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.reportDepositUseCase.Execute(r.Context(), dto.ReportDepositCommand{
		UserID:          principal.UserID,
		TransactionHash: payload.TransactionHash,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/deposit", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusAccepted, output)
}

type createWithdrawRequestPayload struct {
	Amount string `json:"amount"`
	To     string `json:"to"`
}

func (c *SettlementController) CreateWithdrawRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	payload := createWithdrawRequestPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := c.createWithdrawRequestUseCase.Execute(r.Context(), dto.CreateWithdrawRequestCommand{
		UserID: principal.UserID,
		Amount: payload.Amount,
		To:     payload.To,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/withdrawals", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusCreated, resource)
}

func (c *SettlementController) ListWithdrawRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	resources, appErr := c.listWithdrawRequestsUseCase.Execute(r.Context(), dto.ListWithdrawRequestsQuery{
		UserID: principal.UserID,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/withdrawals", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resources)
}

func (c *SettlementController) logRequestError(r *http.Request, path string, appErr *apperrors.AppError) {
	c.logger.Printf("request error path=%s method=%s code=%s message=%s", path, r.Method, appErr.Code, appErr.Message)
}
