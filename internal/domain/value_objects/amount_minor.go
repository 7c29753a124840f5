package valueobjects

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperrors "ticketpay/internal/shared_kernel/errors"
)

// USDC amounts are carried as int64 minor units (6 decimals) and cross
// API boundaries as decimal strings.
const USDCDecimals = 6

var amountDecimalPattern = regexp.MustCompile(`^[0-9]{1,13}(\.[0-9]{1,6})?$`)

func ParseAmountMinor(raw string) (int64, *apperrors.AppError) {
	value := strings.TrimSpace(raw)
	if !amountDecimalPattern.MatchString(value) {
		return 0, apperrors.NewValidation(
			"invalid_request",
			"amount must be a decimal with at most 6 fractional digits",
			map[string]any{"field": "amount"},
		)
	}

	whole, frac, _ := strings.Cut(value, ".")
	frac = frac + strings.Repeat("0", USDCDecimals-len(frac))

	wholeUnits, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidation(
			"invalid_request",
			"amount is out of range",
			map[string]any{"field": "amount"},
		)
	}

	fracUnits, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidation(
			"invalid_request",
			"amount is out of range",
			map[string]any{"field": "amount"},
		)
	}

	return wholeUnits*1_000_000 + fracUnits, nil
}

func FormatAmountMinor(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	whole := minor / 1_000_000
	frac := minor % 1_000_000
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}

	fracText := strings.TrimRight(fmt.Sprintf("%06d", frac), "0")

	return fmt.Sprintf("%s%d.%s", sign, whole, fracText)
}
