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

type WalletsController struct {
	getUseCase               portsin.GetWalletUseCase
	listUseCase              portsin.ListWalletsUseCase
	connectUseCase           portsin.ConnectWalletUseCase
	createUseCase            portsin.CreateWalletUseCase
	createEthereumUseCase    portsin.CreateEthereumWalletUseCase
	depositUseCase           portsin.DepositToWalletUseCase
	withdrawUseCase          portsin.WithdrawFromWalletUseCase
	listTransactionsUseCase  portsin.ListTransactionsUseCase
	updateTransactionUseCase portsin.UpdateTransactionUseCase
	groupPendingUseCase      portsin.GroupPendingTransactionsUseCase
	logger                   *log.Logger
}

func NewWalletsController(
	getUseCase portsin.GetWalletUseCase,
	listUseCase portsin.ListWalletsUseCase,
	connectUseCase portsin.ConnectWalletUseCase,
	createUseCase portsin.CreateWalletUseCase,
	createEthereumUseCase portsin.CreateEthereumWalletUseCase,
	depositUseCase portsin.DepositToWalletUseCase,
	withdrawUseCase portsin.WithdrawFromWalletUseCase,
	listTransactionsUseCase portsin.ListTransactionsUseCase,
	updateTransactionUseCase portsin.UpdateTransactionUseCase,
	groupPendingUseCase portsin.GroupPendingTransactionsUseCase,
	logger *log.Logger,
) *WalletsController {
	return &WalletsController{
		getUseCase:               getUseCase,
		listUseCase:              listUseCase,
		connectUseCase:           connectUseCase,
		createUseCase:            createUseCase,
		createEthereumUseCase:    createEthereumUseCase,
		depositUseCase:           depositUseCase,
		withdrawUseCase:          withdrawUseCase,
		listTransactionsUseCase:  listTransactionsUseCase,
		updateTransactionUseCase: updateTransactionUseCase,
		groupPendingUseCase:      groupPendingUseCase,
		logger:                   logger,
	}
}

func (c *WalletsController) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	resource, appErr := c.getUseCase.Execute(r.Context(), dto.GetWalletQuery{
		UserID: principal.UserID,
		Type:   strings.TrimSpace(r.PathValue("type")),
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/wallet/{type}", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (c *WalletsController) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	resources, appErr := c.listUseCase.Execute(r.Context(), dto.ListWalletsQuery{
		UserID: principal.UserID,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/wallet/wallets", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resources)
}

type connectWalletPayload struct {
	Type      string `json:"type"`
	TokenType string `json:"token_type"`
	Address   string `json:"address"`
}

func (c *WalletsController) Connect(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	payload := connectWalletPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := c.connectUseCase.Execute(r.Context(), dto.ConnectWalletCommand{
		UserID:    principal.UserID,
		Type:      payload.Type,
		TokenType: payload.TokenType,
		Address:   payload.Address,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/wallet/connect", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

type createWalletPayload struct {
	Type      string `json:"type"`
	TokenType string `json:"token_type"`
	Address   string `json:"address,omitempty"`
}

func (c *WalletsController) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	payload := createWalletPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := c.createUseCase.Execute(r.Context(), dto.CreateWalletCommand{
		UserID:    principal.UserID,
		Type:      payload.Type,
		TokenType: payload.TokenType,
		Address:   payload.Address,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/wallet/create", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusCreated, resource)
}

func (c *WalletsController) CreateEthereum(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	output, appErr := c.createEthereumUseCase.Execute(r.Context(), dto.CreateEthereumWalletCommand{
		UserID: principal.UserID,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/wallet/create/ethereum", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

type walletTransferPayload struct {
	Amount          string `json:"amount"`
	TokenType       string `json:"token_type"`
	Description     string `json:"description,omitempty"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	AddressFrom     string `json:"address_from,omitempty"`
	AddressTo       string `json:"address_to,omitempty"`
}

func (c *WalletsController) Deposit(w http.ResponseWriter, r *http.Request) {
	c.transfer(w, r, "/v1/wallet/deposit", c.depositUseCase)
}

func (c *WalletsController) Withdraw(w http.ResponseWriter, r *http.Request) {
	c.transfer(w, r, "/v1/wallet/withdraw", c.withdrawUseCase)
}

func (c *WalletsController) transfer(w http.ResponseWriter, r *http.Request, path string, useCase portsin.DepositToWalletUseCase) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	payload := walletTransferPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := useCase.Execute(r.Context(), dto.WalletTransferCommand{
		UserID:          principal.UserID,
		Amount:          payload.Amount,
		TokenType:       payload.TokenType,
		Description:     payload.Description,
		TransactionHash: payload.TransactionHash,
		AddressFrom:     payload.AddressFrom,
		AddressTo:       payload.AddressTo,
	})
	if appErr != nil {
		c.logRequestError(r, path, appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (c *WalletsController) ListTransactions(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	resources, appErr := c.listTransactionsUseCase.Execute(r.Context(), dto.ListTransactionsQuery{
		UserID: principal.UserID,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/wallet/transactions", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resources)
}

type updateTransactionPayload struct {
	Status          string `json:"status"`
	TransactionHash string `json:"transaction_hash,omitempty"`
}

func (c *WalletsController) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.PrincipalFromContext(r.Context()); !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	id, appErr := pathID(r, "id")
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	payload := updateTransactionPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := c.updateTransactionUseCase.Execute(r.Context(), dto.UpdateTransactionCommand{
		TransactionID:   id,
		Status:          payload.Status,
		TransactionHash: payload.TransactionHash,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/wallet/transactions/{id}", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (c *WalletsController) GroupPendingTransactions(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	resources, appErr := c.groupPendingUseCase.Execute(r.Context(), dto.GroupPendingTransactionsQuery{
		UserID: principal.UserID,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/wallet/transactions/pending/grouped", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resources)
}

func (c *WalletsController) logRequestError(r *http.Request, path string, appErr *apperrors.AppError) {
	c.logger.Printf("request error path=%s method=%s code=%s message=%s", path, r.Method, appErr.Code, appErr.Message)
}
