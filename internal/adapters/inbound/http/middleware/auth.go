package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller attached to the request
// context by RequireAuth.
type Principal struct {
	UserID int64
	Role   string
}

type Auth struct {
	tokens portsout.TokenIssuer
}

func NewAuth(tokens portsout.TokenIssuer) *Auth {
	return &Auth{tokens: tokens}
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			writeUnauthorized(w, apperrors.NewUnauthorized(
				"token_missing",
				"bearer token is required",
				nil,
			))
			return
		}

		claims, appErr := a.tokens.Verify(strings.TrimSpace(token))
		if appErr != nil {
			writeUnauthorized(w, appErr)
			return
		}

		principal := Principal{
			UserID: claims.UserID,
			Role:   claims.Role,
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey, principal)))
	})
}

// RequireRole layers a role check on top of RequireAuth.
func (a *Auth) RequireRole(role string, next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok || principal.Role != role {
			writeUnauthorized(w, apperrors.NewUnauthorized(
				"role_forbidden",
				"caller role is not allowed for this operation",
				map[string]any{"required_role": role},
			))
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey).(Principal)
	return principal, ok
}

func writeUnauthorized(w http.ResponseWriter, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"details": appErr.Details,
		},
	})
}
