package controllers

import (
	"log"
	"net/http"

	"ticketpay/internal/adapters/inbound/http/middleware"
	"ticketpay/internal/application/dto"
	portsin "ticketpay/internal/application/ports/in"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type AuthController struct {
	loginUseCase         portsin.LoginUseCase
	registerUseCase      portsin.RegisterUseCase
	resetPasswordUseCase portsin.ResetPasswordUseCase
	logger               *log.Logger
}

func NewAuthController(
	loginUseCase portsin.LoginUseCase,
	registerUseCase portsin.RegisterUseCase,
	resetPasswordUseCase portsin.ResetPasswordUseCase,
	logger *log.Logger,
) *AuthController {
	return &AuthController{
		loginUseCase:         loginUseCase,
		registerUseCase:      registerUseCase,
		resetPasswordUseCase: resetPasswordUseCase,
		logger:               logger,
	}
}

type loginPayload struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	payload := loginPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.loginUseCase.Execute(r.Context(), dto.LoginCommand{
		Login:    payload.Login,
		Password: payload.Password,
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/auth/login method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	payload := registerPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.registerUseCase.Execute(r.Context(), dto.RegisterCommand{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     payload.Role,
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/auth/register method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// Logout is stateless: tokens expire on their own, the endpoint exists
// so clients can drop credentials symmetrically.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.PrincipalFromContext(r.Context()); !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type resetPasswordPayload struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeAppError(w, apperrors.NewUnauthorized("token_missing", "bearer token is required", nil))
		return
	}

	payload := resetPasswordPayload{}
	if appErr := decodeJSONBody(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.resetPasswordUseCase.Execute(r.Context(), dto.ResetPasswordCommand{
		UserID:      principal.UserID,
		OldPassword: payload.OldPassword,
		NewPassword: payload.NewPassword,
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/auth/reset method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
