package valueobjects

import (
	"regexp"
	"strings"

	apperrors "ticketpay/internal/shared_kernel/errors"

	"golang.org/x/crypto/sha3"
)

var evmAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// NormalizeAddressForStorage canonicalizes an EVM address to the
// lowercase 0x form used in the database and in equality checks.
func NormalizeAddressForStorage(address string) (string, *apperrors.AppError) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return "", apperrors.NewValidation(
			"invalid_request",
			"address is required",
			map[string]any{"field": "address"},
		)
	}

	if !evmAddressPattern.MatchString(trimmed) {
		return "", apperrors.NewValidation(
			"invalid_request",
			"address is invalid",
			map[string]any{"field": "address"},
		)
	}

	return "0x" + strings.ToLower(strings.TrimPrefix(trimmed, "0x")), nil
}

// FormatAddressForResponse renders the canonical form with the EIP-55
// mixed-case checksum for API responses.
func FormatAddressForResponse(canonical string) (string, *apperrors.AppError) {
	return ToEIP55Checksum(canonical)
}

func ToEIP55Checksum(canonical string) (string, *apperrors.AppError) {
	normalized := "0x" + strings.ToLower(strings.TrimSpace(strings.TrimPrefix(canonical, "0x")))
	if !evmAddressPattern.MatchString(normalized) {
		return "", apperrors.NewInternal(
			"address_canonical_invalid",
			"canonical address is invalid",
			map[string]any{"address": canonical},
		)
	}

	hexPart := strings.TrimPrefix(normalized, "0x")
	hash := sha3.NewLegacyKeccak256()
	if _, err := hash.Write([]byte(hexPart)); err != nil {
		return "", apperrors.NewInternal(
			"address_checksum_hash_failed",
			"failed to hash address for checksum",
			map[string]any{"error": err.Error()},
		)
	}
	checksumBytes := hash.Sum(nil)

	out := make([]byte, len(hexPart))
	for i := 0; i < len(hexPart); i++ {
		ch := hexPart[i]
		if ch >= '0' && ch <= '9' {
			out[i] = ch
			continue
		}

		var nibble byte
		if i%2 == 0 {
			nibble = (checksumBytes[i/2] >> 4) & 0x0f
		} else {
			nibble = checksumBytes[i/2] & 0x0f
		}

		if nibble >= 8 {
			out[i] = byte(strings.ToUpper(string(ch))[0])
		} else {
			out[i] = ch
		}
	}

	return "0x" + string(out), nil
}

func NormalizeTokenContract(raw string) (string, *apperrors.AppError) {
	normalized, appErr := NormalizeAddressForStorage(raw)
	if appErr != nil {
		return "", apperrors.NewValidation(
			"invalid_request",
			"token_contract is invalid",
			map[string]any{"field": "token_contract"},
		)
	}

	return normalized, nil
}

// ShortAddress renders "0xAbCd...1234" for log lines and alerts.
func ShortAddress(address string) string {
	if len(address) < 10 {
		return address
	}

	return address[:6] + "..." + address[len(address)-4:]
}
