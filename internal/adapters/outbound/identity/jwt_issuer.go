package identity

import (
	"strconv"
	"time"

	portsout "ticketpay/internal/application/ports/out"
	"ticketpay/internal/domain/entities"
	apperrors "ticketpay/internal/shared_kernel/errors"

	"github.com/golang-jwt/jwt/v5"
)

type JWTIssuer struct {
	secret   []byte
	tokenTTL time.Duration
}

var _ portsout.TokenIssuer = (*JWTIssuer)(nil)

func NewJWTIssuer(secret string, tokenTTL time.Duration) *JWTIssuer {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &JWTIssuer{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (i *JWTIssuer) Issue(user entities.User, issuedAt time.Time) (string, *apperrors.AppError) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  issuedAt.UTC().Unix(),
		"exp":  issuedAt.UTC().Add(i.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", apperrors.NewInternal(
			"token_sign_failed",
			"failed to sign access token",
			map[string]any{"error": err.Error()},
		)
	}

	return token, nil
}

func (i *JWTIssuer) Verify(token string) (portsout.TokenClaims, *apperrors.AppError) {
	parsed, err := jwt.Parse(
		token,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return portsout.TokenClaims{}, apperrors.NewUnauthorized(
			"token_invalid",
			"access token is invalid or expired",
			nil,
		)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return portsout.TokenClaims{}, apperrors.NewUnauthorized(
			"token_invalid",
			"access token claims are invalid",
			nil,
		)
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return portsout.TokenClaims{}, apperrors.NewUnauthorized(
			"token_invalid",
			"access token subject is missing",
			nil,
		)
	}
	userID, convErr := strconv.ParseInt(subject, 10, 64)
	if convErr != nil || userID <= 0 {
		return portsout.TokenClaims{}, apperrors.NewUnauthorized(
			"token_invalid",
			"access token subject is invalid",
			nil,
		)
	}

	role, _ := claims["role"].(string)
	if _, appErr := entities.ParseUserRole(role); appErr != nil {
		return portsout.TokenClaims{}, apperrors.NewUnauthorized(
			"token_invalid",
			"access token role is invalid",
			nil,
		)
	}

	return portsout.TokenClaims{
		UserID: userID,
		Role:   role,
	}, nil
}
