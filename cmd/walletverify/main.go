package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"ticketpay/internal/infrastructure/walletkeys"
)

type verifyInput struct {
	ExtendedPublicKey      string
	DerivationPathTemplate string
	DerivationIndex        int64
	ExpectedAddress        string
}

type verifyResult struct {
	Match           bool   `json:"match"`
	DerivationIndex int64  `json:"derivation_index"`
	ExpectedAddress string `json:"expected_address"`
	DerivedAddress  string `json:"derived_address"`
	Reason          string `json:"reason,omitempty"`
	ErrorCode       string `json:"error_code,omitempty"`
}

func main() {
	var input verifyInput
	flag.StringVar(&input.ExtendedPublicKey, "extended-public-key", "", "account-level extended public key (xpub/tpub)")
	flag.StringVar(&input.DerivationPathTemplate, "derivation-path-template", "0/{index}", "derivation path template")
	flag.Int64Var(&input.DerivationIndex, "index", 0, "derivation index to verify")
	flag.StringVar(&input.ExpectedAddress, "expected-address", "", "expected EVM address for the index")
	flag.Parse()

	result, exitCode := verifyDerivedAddress(input)
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"match\":false,\"reason\":\"failed to encode result\",\"error_code\":\"result_encode_failed\"}\n")
		os.Exit(2)
	}

	fmt.Println(string(encoded))
	os.Exit(exitCode)
}

func verifyDerivedAddress(input verifyInput) (verifyResult, int) {
	extendedPublicKey := strings.TrimSpace(input.ExtendedPublicKey)
	expectedAddress := strings.TrimSpace(input.ExpectedAddress)

	result := verifyResult{
		Match:           false,
		DerivationIndex: input.DerivationIndex,
		ExpectedAddress: expectedAddress,
	}

	if extendedPublicKey == "" || expectedAddress == "" {
		result.Reason = "missing required fields: extended-public-key, expected-address"
		result.ErrorCode = "invalid_input"
		return result, 2
	}
	if input.DerivationIndex < 0 {
		result.Reason = "derivation index must not be negative"
		result.ErrorCode = "invalid_input"
		return result, 2
	}

	derivedAddress, keyErr := deriveAddress(extendedPublicKey, input.DerivationPathTemplate, input.DerivationIndex)
	if keyErr != nil {
		result.Reason = keyErr.Message
		result.ErrorCode = mapKeyErrorCode(keyErr)
		return result, 2
	}

	result.DerivedAddress = strings.ToLower(derivedAddress)
	if strings.ToLower(expectedAddress) != result.DerivedAddress {
		result.Reason = "derived address does not match expected address"
		result.ErrorCode = "address_mismatch"
		return result, 3
	}

	result.Match = true
	return result, 0
}

func deriveAddress(rawKey, pathTemplate string, index int64) (string, *walletkeys.KeyError) {
	key, _, keyErr := walletkeys.NormalizeEVMKeyset(rawKey)
	if keyErr != nil {
		return "", keyErr
	}
	if keyErr := walletkeys.ValidateAccountLevelPolicy(key); keyErr != nil {
		return "", keyErr
	}
	if keyErr := walletkeys.ValidateDerivationPathTemplate(pathTemplate); keyErr != nil {
		return "", keyErr
	}

	return walletkeys.DeriveEVMAddress(key, pathTemplate, index)
}

func mapKeyErrorCode(keyErr *walletkeys.KeyError) string {
	if keyErr == nil {
		return "address_derivation_failed"
	}

	switch keyErr.Code {
	case walletkeys.CodeInvalidKeyMaterialFormat:
		return "invalid_key_material_format"
	case walletkeys.CodeInvalidConfiguration:
		return "invalid_configuration"
	case walletkeys.CodeUnsupportedTarget:
		return "unsupported_target"
	default:
		return "address_derivation_failed"
	}
}
