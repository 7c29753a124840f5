package evmrpc

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"strings"
	"time"

	portsout "ticketpay/internal/application/ports/out"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

// Topic hash of Transfer(address,address,uint256).
const transferEventTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"

type Config struct {
	RPCURL        string
	TokenContract string
	HTTPTimeout   time.Duration
}

// Reader resolves ERC-20 transfers of the configured token by looking
// up the transaction receipt and decoding its Transfer log.
type Reader struct {
	rpcURL        string
	tokenContract string
	rpcClient     *jsonRPCClient
}

var _ portsout.TokenTransferReader = (*Reader)(nil)

func NewReader(cfg Config, httpClient *http.Client) *Reader {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Reader{
		rpcURL:        strings.TrimSpace(cfg.RPCURL),
		tokenContract: normalizeHexAddress(cfg.TokenContract),
		rpcClient:     newJSONRPCClient(httpClient, timeout),
	}
}

type receiptLog struct {
	Address string   `json:"address"`
	Topics  []string `json:"topics"`
	Data    string   `json:"data"`
}

type transactionReceipt struct {
	TransactionHash string       `json:"transactionHash"`
	Status          string       `json:"status"`
	BlockNumber     string       `json:"blockNumber"`
	Logs            []receiptLog `json:"logs"`
}

func (r *Reader) GetTokenTransfer(ctx context.Context, transactionHash string) (portsout.TokenTransfer, bool, *apperrors.AppError) {
	hash := strings.ToLower(strings.TrimSpace(transactionHash))
	if r.rpcURL == "" {
		return portsout.TokenTransfer{}, false, apperrors.NewInternal(
			"chain_read_failed",
			"rpc endpoint is not configured",
			nil,
		)
	}

	result, appErr := r.rpcClient.Call(ctx, r.rpcURL, "eth_getTransactionReceipt", []any{hash})
	if appErr != nil {
		return portsout.TokenTransfer{}, false, appErr
	}
	if len(result) == 0 || string(result) == "null" {
		return portsout.TokenTransfer{}, false, nil
	}

	receipt := transactionReceipt{}
	if err := json.Unmarshal(result, &receipt); err != nil {
		return portsout.TokenTransfer{}, false, apperrors.NewInternal(
			"chain_read_failed",
			"failed to decode transaction receipt",
			map[string]any{"error": err.Error(), "transaction_hash": hash},
		)
	}

	transfer, found, appErr := r.decodeTransferLog(receipt)
	if appErr != nil {
		return portsout.TokenTransfer{}, false, appErr
	}
	if !found {
		return portsout.TokenTransfer{}, false, nil
	}

	transfer.TransactionHash = hash
	transfer.Confirmed = receipt.Status == "0x1" && receipt.BlockNumber != ""
	return transfer, true, nil
}

func (r *Reader) decodeTransferLog(receipt transactionReceipt) (portsout.TokenTransfer, bool, *apperrors.AppError) {
	for _, entry := range receipt.Logs {
		if normalizeHexAddress(entry.Address) != r.tokenContract {
			continue
		}
		if len(entry.Topics) != 3 || strings.ToLower(entry.Topics[0]) != transferEventTopic {
			continue
		}

		amount, appErr := parseHexQuantity(entry.Data)
		if appErr != nil {
			return portsout.TokenTransfer{}, false, appErr
		}
		if !amount.IsInt64() {
			return portsout.TokenTransfer{}, false, apperrors.NewInternal(
				"chain_read_failed",
				"transfer amount exceeds supported range",
				map[string]any{"amount": amount.String()},
			)
		}

		return portsout.TokenTransfer{
			TokenContract: r.tokenContract,
			AddressFrom:   topicToAddress(entry.Topics[1]),
			AddressTo:     topicToAddress(entry.Topics[2]),
			AmountMinor:   amount.Int64(),
		}, true, nil
	}

	return portsout.TokenTransfer{}, false, nil
}

func parseHexQuantity(raw string) (*big.Int, *apperrors.AppError) {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), "0x")
	if cleaned == "" {
		return big.NewInt(0), nil
	}

	value, ok := new(big.Int).SetString(cleaned, 16)
	if !ok {
		return nil, apperrors.NewInternal(
			"chain_read_failed",
			"failed to parse hex quantity",
			map[string]any{"raw": raw},
		)
	}

	return value, nil
}

// topicToAddress extracts the address from a 32-byte indexed topic.
func topicToAddress(topic string) string {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(topic)), "0x")
	if len(cleaned) < 40 {
		return ""
	}

	return "0x" + cleaned[len(cleaned)-40:]
}

func normalizeHexAddress(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return ""
	}
	if !strings.HasPrefix(cleaned, "0x") {
		cleaned = "0x" + cleaned
	}

	return cleaned
}
