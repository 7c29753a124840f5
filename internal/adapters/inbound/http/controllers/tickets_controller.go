package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"ticketpay/internal/adapters/inbound/http/middleware"
	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type TicketsController struct {
	createUseCase           portsin.CreateTicketUseCase
	listUseCase             portsin.ListTicketsUseCase
	listWithoutLimitUseCase portsin.ListTicketsWithoutLimitUseCase
	getUseCase              portsin.GetTicketUseCase
	validateUseCase         portsin.ValidateTicketUseCase
	declineUseCase          portsin.DeclineTicketUseCase
	claimUseCase            portsin.ClaimTicketUseCase
	completeUseCase         portsin.CompleteTicketUseCase
	reportUseCase           portsin.ReportTicketUseCase
	logger                  *log.Logger
}

func NewTicketsController(
	createUseCase portsin.CreateTicketUseCase,
	listUseCase portsin.ListTicketsUseCase,
	listWithoutLimitUseCase portsin.ListTicketsWithoutLimitUseCase,
	getUseCase portsin.GetTicketUseCase,
	validateUseCase portsin.ValidateTicketUseCase,
	declineUseCase portsin.DeclineTicketUseCase,
	claimUseCase portsin.ClaimTicketUseCase,
	completeUseCase portsin.CompleteTicketUseCase,
	reportUseCase portsin.ReportTicketUseCase,
	logger *log.Logger,
) *TicketsController {
	return &TicketsController{
		createUseCase:           createUseCase,
		listUseCase:             listUseCase,
		listWithoutLimitUseCase: listWithoutLimitUseCase,
		getUseCase:              getUseCase,
		validateUseCase:         validateUseCase,
		declineUseCase:          declineUseCase,
		claimUseCase:            claimUseCase,
		completeUseCase:         completeUseCase,
		reportUseCase:           reportUseCase,
		logger:                  logger,
	}
}

type createTicketPayload struct {
	FacebookName  string `json:"facebook_name"`
	Amount        string `json:"amount"`
	Game          string `json:"game"`
	GameID        string `json:"game_id,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	PaymentTag    string `json:"payment_tag,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	ImagePath     string `json:"image_path,omitempty"`
	DomainID      int64  `json:"domain_id,omitempty"`
	ChatGroupID   string `json:"chat_group_id,omitempty"`
}

func (c *TicketsController) Create(w http.ResponseWriter, r *http.Request) {
	payload := createTicketPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := c.createUseCase.Execute(r.Context(), dto.CreateTicketCommand{
		FacebookName:  payload.FacebookName,
		Amount:        payload.Amount,
		Game:          payload.Game,
		GameID:        payload.GameID,
		PaymentMethod: payload.PaymentMethod,
		PaymentTag:    payload.PaymentTag,
		AccountName:   payload.AccountName,
		ImagePath:     payload.ImagePath,
		DomainID:      payload.DomainID,
		ChatGroupID:   payload.ChatGroupID,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/tickets", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusCreated, resource)
}

func (c *TicketsController) List(w http.ResponseWriter, r *http.Request) {
	page, appErr := queryInt(r, "page", 1)
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}
	limit, appErr := queryInt(r, "limit", 0)
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.listUseCase.Execute(r.Context(), dto.ListTicketsQuery{
		Status: strings.TrimSpace(r.URL.Query().Get("status")),
		Page:   page,
		Limit:  limit,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/tickets", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (c *TicketsController) ListWithoutLimit(w http.ResponseWriter, r *http.Request) {
	statuses := []string{}
	for _, raw := range strings.Split(r.URL.Query().Get("status"), ",") {
		status := strings.TrimSpace(raw)
		if status != "" {
			statuses = append(statuses, status)
		}
	}

	output, appErr := c.listWithoutLimitUseCase.Execute(r.Context(), dto.ListTicketsWithoutLimitQuery{
		Statuses: statuses,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/tickets/withoutlimit", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (c *TicketsController) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := c.getUseCase.Execute(r.Context(), dto.GetTicketQuery{ID: id})
	if appErr != nil {
		c.logRequestError(r, "/v1/tickets/{id}", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (c *TicketsController) Validate(w http.ResponseWriter, r *http.Request) {
	c.review(w, r, "/v1/tickets/{id}/validate", c.validateUseCase.Execute)
}

func (c *TicketsController) Decline(w http.ResponseWriter, r *http.Request) {
	c.review(w, r, "/v1/tickets/{id}/decline", c.declineUseCase.Execute)
}

func (c *TicketsController) review(
	w http.ResponseWriter,
	r *http.Request,
	path string,
	execute func(ctx context.Context, command dto.ReviewTicketCommand) (dto.TicketResource, *apperrors.AppError),
) {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := execute(r.Context(), dto.ReviewTicketCommand{TicketID: id})
	if appErr != nil {
		c.logRequestError(r, path, appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (c *TicketsController) Claim(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	id, appErr := pathID(r, "id")
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	resource, appErr := c.claimUseCase.Execute(r.Context(), dto.ClaimTicketCommand{
		TicketID:    id,
		FulfillerID: principal.UserID,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/tickets/{id}/processing", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

type completeTicketPayload struct {
	Images []string `json:"images"`
}

func (c *TicketsController) Complete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	id, appErr := pathID(r, "id")
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	payload := completeTicketPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.completeUseCase.Execute(r.Context(), dto.CompleteTicketCommand{
		TicketID:    id,
		FulfillerID: principal.UserID,
		ImageURLs:   payload.Images,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/tickets/{id}/complete", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

type reportTicketPayload struct {
	Reason        string `json:"reason"`
	ScreenshotURL string `json:"screenshot_url,omitempty"`
}

func (c *TicketsController) Report(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	id, appErr := pathID(r, "id")
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	payload := reportTicketPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.reportUseCase.Execute(r.Context(), dto.ReportTicketCommand{
		TicketID:      id,
		FulfillerID:   principal.UserID,
		Reason:        payload.Reason,
		ScreenshotURL: payload.ScreenshotURL,
	})
	if appErr != nil {
		c.logRequestError(r, "/v1/tickets/{id}/report", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (c *TicketsController) logRequestError(r *http.Request, path string, appErr *apperrors.AppError) {
	c.logger.Printf("request error path=%s method=%s code=%s message=%s", path, r.Method, appErr.Code, appErr.Message)
}
