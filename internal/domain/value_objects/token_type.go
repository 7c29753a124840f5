package valueobjects

import apperrors "ticketpay/internal/shared_kernel/errors"

type TokenType string

const (
	TokenTypeUSDC TokenType = "USDC"
	TokenTypeUSDT TokenType = "USDT"
	TokenTypeETH  TokenType = "ETH"
)

func ParseTokenType(raw string) (TokenType, *apperrors.AppError) {
	switch raw {
	case string(TokenTypeUSDC):
		return TokenTypeUSDC, nil
	case string(TokenTypeUSDT):
		return TokenTypeUSDT, nil
	case string(TokenTypeETH):
		return TokenTypeETH, nil
	default:
		return "", apperrors.NewValidation(
			"invalid_request",
			"token_type is invalid",
			map[string]any{"token_type": raw},
		)
	}
}

func (t TokenType) String() string {
	return string(t)
}

type WalletType string

const (
	WalletTypeCustomer  WalletType = "CUSTOMER"
	WalletTypeFulfiller WalletType = "FULFILLER"
	WalletTypeETH       WalletType = "ETH"
)

func ParseWalletType(raw string) (WalletType, *apperrors.AppError) {
	switch raw {
	case string(WalletTypeCustomer):
		return WalletTypeCustomer, nil
	case string(WalletTypeFulfiller):
		return WalletTypeFulfiller, nil
	case string(WalletTypeETH):
		return WalletTypeETH, nil
	default:
		return "", apperrors.NewValidation(
			"invalid_request",
			"wallet type is invalid",
			map[string]any{"type": raw},
		)
	}
}

func (t WalletType) String() string {
	return string(t)
}
