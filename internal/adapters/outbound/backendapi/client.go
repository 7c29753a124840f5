package backendapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ticketpay/internal/application/dto"
	"ticketpay/internal/fulfiller"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBodyBytes  = 4096
)

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client is a typed wrapper over the ticket API. Every call carries the
// bearer token and the request context; non-2xx responses are decoded
// from the API error envelope back into application errors.
type Client struct {
	baseURL string
	client  *nethttp.Client

	mu    sync.Mutex
	token string
}

var _ fulfiller.BackendClient = (*Client)(nil)

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:   strings.TrimSpace(cfg.Token),
		client: &nethttp.Client{
			Timeout: timeout,
		},
	}
}

// SetToken swaps the bearer token, used after login and on refresh.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, login, password string) (dto.AuthOutput, *apperrors.AppError) {
	output := dto.AuthOutput{}
	appErr := c.do(ctx, nethttp.MethodPost, "/v1/auth/login", loginRequest{Login: login, Password: password}, &output)
	if appErr != nil {
		return dto.AuthOutput{}, appErr
	}

	c.SetToken(output.AccessToken)
	return output, nil
}

func (c *Client) ListTicketsWithoutLimit(ctx context.Context, statuses []string) ([]dto.TicketResource, *apperrors.AppError) {
	path := "/v1/tickets/withoutlimit"
	if len(statuses) > 0 {
		path += "?status=" + url.QueryEscape(strings.Join(statuses, ","))
	}

	output := dto.TicketListOutput{}
	if appErr := c.do(ctx, nethttp.MethodGet, path, nil, &output); appErr != nil {
		return nil, appErr
	}
	return output.Data, nil
}

func (c *Client) ClaimTicket(ctx context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError) {
	resource := dto.TicketResource{}
	appErr := c.do(ctx, nethttp.MethodPut, fmt.Sprintf("/v1/tickets/%d/processing", ticketID), nil, &resource)
	return resource, appErr
}

type completeTicketRequest struct {
	Images []string `json:"images"`
}

func (c *Client) CompleteTicket(ctx context.Context, ticketID int64, imageURLs []string) (dto.CompleteTicketOutput, *apperrors.AppError) {
	output := dto.CompleteTicketOutput{}
	appErr := c.do(ctx, nethttp.MethodPut, fmt.Sprintf("/v1/tickets/%d/complete", ticketID), completeTicketRequest{Images: imageURLs}, &output)
	return output, appErr
}

type reportTicketRequest struct {
	Reason        string `json:"reason"`
	ScreenshotURL string `json:"screenshot_url,omitempty"`
}

func (c *Client) ReportTicket(ctx context.Context, ticketID int64, reason, screenshotURL string) (dto.ReportTicketOutput, *apperrors.AppError) {
	output := dto.ReportTicketOutput{}
	appErr := c.do(ctx, nethttp.MethodPut, fmt.Sprintf("/v1/tickets/%d/report", ticketID), reportTicketRequest{
		Reason:        reason,
		ScreenshotURL: screenshotURL,
	}, &output)
	return output, appErr
}

func (c *Client) ValidateTicket(ctx context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError) {
	resource := dto.TicketResource{}
	appErr := c.do(ctx, nethttp.MethodPut, fmt.Sprintf("/v1/tickets/%d/validate", ticketID), nil, &resource)
	return resource, appErr
}

func (c *Client) DeclineTicket(ctx context.Context, ticketID int64) (dto.TicketResource, *apperrors.AppError) {
	resource := dto.TicketResource{}
	appErr := c.do(ctx, nethttp.MethodPut, fmt.Sprintf("/v1/tickets/%d/decline", ticketID), nil, &resource)
	return resource, appErr
}

func (c *Client) GetWallet(ctx context.Context, walletType string) (dto.WalletResource, *apperrors.AppError) {
	resource := dto.WalletResource{}
	appErr := c.do(ctx, nethttp.MethodGet, "/v1/wallet/"+url.PathEscape(walletType), nil, &resource)
	return resource, appErr
}

type withdrawRequest struct {
	Amount    string `json:"amount"`
	TokenType string `json:"token_type"`
	AddressTo string `json:"address_to,omitempty"`
}

func (c *Client) Withdraw(ctx context.Context, amount, tokenType, addressTo string) (dto.WalletResource, *apperrors.AppError) {
	resource := dto.WalletResource{}
	appErr := c.do(ctx, nethttp.MethodPost, "/v1/wallet/withdraw", withdrawRequest{
		Amount:    amount,
		TokenType: tokenType,
		AddressTo: addressTo,
	}, &resource)
	return resource, appErr
}

type uploadManyResponse struct {
	URLs []string `json:"urls"`
}

// UploadFiles streams local files as one multipart request and returns
// the served URLs in the same order.
func (c *Client) UploadFiles(ctx context.Context, paths []string) ([]string, *apperrors.AppError) {
	if len(paths) == 0 {
		return nil, apperrors.NewValidation("upload_paths_required", "at least one file path is required", nil)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, path := range paths {
		if appErr := appendFilePart(writer, path); appErr != nil {
			return nil, appErr
		}
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.NewInternal("upload_encode_failed", "failed to encode upload request", map[string]any{"error": err.Error()})
	}

	request, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, c.baseURL+"/v1/uploads", body)
	if err != nil {
		return nil, apperrors.NewInternal("request_build_failed", "failed to build upload request", map[string]any{"error": err.Error()})
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())
	if token := c.bearerToken(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return nil, apperrors.NewInternal("backend_unreachable", "failed to reach the ticket api", map[string]any{"error": err.Error()})
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, decodeAPIError(response)
	}

	uploaded := uploadManyResponse{}
	if err := json.NewDecoder(response.Body).Decode(&uploaded); err != nil {
		return nil, apperrors.NewInternal("response_decode_failed", "failed to decode upload response", map[string]any{"error": err.Error()})
	}
	return uploaded.URLs, nil
}

func (c *Client) ResolveDepositAddress(ctx context.Context, amount, addressFrom string) (dto.DepositAddressResource, *apperrors.AppError) {
	query := url.Values{}
	query.Set("amount", amount)
	query.Set("address_from", addressFrom)

	resource := dto.DepositAddressResource{}
	appErr := c.do(ctx, nethttp.MethodGet, "/v1/deposit/address?"+query.Encode(), nil, &resource)
	return resource, appErr
}

type reportDepositRequest struct {
	TransactionHash string `json:"transaction_hash"`
}

func (c *Client) ReportDeposit(ctx context.Context, transactionHash string) (dto.ReportDepositOutput, *apperrors.AppError) {
	output := dto.ReportDepositOutput{}
	appErr := c.do(ctx, nethttp.MethodPost, "/v1/deposit", reportDepositRequest{TransactionHash: transactionHash}, &output)
	return output, appErr
}

type createWithdrawRequestBody struct {
	Amount string `json:"amount"`
	To     string `json:"to"`
}

func (c *Client) CreateWithdrawRequest(ctx context.Context, amount, to string) (dto.WithdrawRequestResource, *apperrors.AppError) {
	resource := dto.WithdrawRequestResource{}
	appErr := c.do(ctx, nethttp.MethodPost, "/v1/withdrawals", createWithdrawRequestBody{Amount: amount, To: to}, &resource)
	return resource, appErr
}

func (c *Client) do(ctx context.Context, method, path string, payload any, out any) *apperrors.AppError {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return apperrors.NewInternal("request_encode_failed", "failed to encode request body", map[string]any{"error": err.Error()})
		}
		body = bytes.NewReader(encoded)
	}

	request, err := nethttp.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperrors.NewInternal("request_build_failed", "failed to build api request", map[string]any{"error": err.Error()})
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearerToken(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return apperrors.NewInternal("backend_unreachable", "failed to reach the ticket api", map[string]any{"error": err.Error()})
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return decodeAPIError(response)
	}

	if out == nil || response.StatusCode == nethttp.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return apperrors.NewInternal("response_decode_failed", "failed to decode api response", map[string]any{"error": err.Error()})
	}
	return nil
}

func appendFilePart(writer *multipart.Writer, path string) *apperrors.AppError {
	file, err := os.Open(path)
	if err != nil {
		return apperrors.NewValidation("upload_file_unreadable", "failed to open upload file", map[string]any{"path": path, "error": err.Error()})
	}
	defer file.Close()

	part, err := writer.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return apperrors.NewInternal("upload_encode_failed", "failed to encode upload part", map[string]any{"error": err.Error()})
	}
	if _, err := io.Copy(part, file); err != nil {
		return apperrors.NewInternal("upload_encode_failed", "failed to read upload file", map[string]any{"path": path, "error": err.Error()})
	}
	return nil
}

type errorResponse struct {
	Error errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func decodeAPIError(response *nethttp.Response) *apperrors.AppError {
	raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyBytes))

	envelope := errorResponse{}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		return &apperrors.AppError{
			Type:    errorTypeForStatus(response.StatusCode),
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
			Details: envelope.Error.Details,
		}
	}

	return &apperrors.AppError{
		Type:    errorTypeForStatus(response.StatusCode),
		Code:    "unexpected_response",
		Message: fmt.Sprintf("the ticket api returned status %d", response.StatusCode),
		Details: map[string]any{"body": strings.TrimSpace(string(raw))},
	}
}

func errorTypeForStatus(status int) apperrors.Type {
	switch status {
	case nethttp.StatusBadRequest:
		return apperrors.TypeValidation
	case nethttp.StatusUnauthorized:
		return apperrors.TypeUnauthorized
	case nethttp.StatusNotFound:
		return apperrors.TypeNotFound
	case nethttp.StatusConflict:
		return apperrors.TypeConflict
	default:
		return apperrors.TypeInternal
	}
}
