package controllers

import (
	"log"
	"net/http"

	"ticketpay/internal/adapters/inbound/http/middleware"
	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type SettingsController struct {
	getUseCase    portsin.GetSettingsUseCase
	updateUseCase portsin.UpdateSettingsUseCase
	logger        *log.Logger
}

func NewSettingsController(
	getUseCase portsin.GetSettingsUseCase,
	updateUseCase portsin.UpdateSettingsUseCase,
	logger *log.Logger,
) *SettingsController {
	return &SettingsController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		logger:        logger,
	}
}

func (c *SettingsController) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	resource, appErr := c.getUseCase.Execute(r.Context(), dto.GetSettingsQuery{
		UserID: principal.UserID,
	})
	if appErr != nil {
		c.logRequestError(r, appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

type updateSettingsPayload struct {
	LowBalanceThreshold string `json:"low_balance_threshold"`
	SoundAlertsEnabled  bool   `json:"sound_alerts_enabled"`
	NotificationsChatID string `json:"notifications_chat_id,omitempty"`
}

func (c *SettingsController) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	payload := updateSettingsPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := c.updateUseCase.Execute(r.Context(), dto.UpdateSettingsCommand{
		UserID:              principal.UserID,
		LowBalanceThreshold: payload.LowBalanceThreshold,
		SoundAlertsEnabled:  payload.SoundAlertsEnabled,
		NotificationsChatID: payload.NotificationsChatID,
	})
	if appErr != nil {
		c.logRequestError(r, appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (c *SettingsController) logRequestError(r *http.Request, appErr *apperrors.AppError) {
	c.logger.Printf("request error path=/v1/settings method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
}
