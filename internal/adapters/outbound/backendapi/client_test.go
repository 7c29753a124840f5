package backendapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ticketpay/internal/application/dto"
	apperrors "ticketpay/internal/shared_kernel/errors"
)

func TestClientSendsBearerTokenAndDecodesList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tickets/withoutlimit" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("status") != "validated,error" {
			t.Fatalf("unexpected status query %q", r.URL.Query().Get("status"))
		}
		if r.Header.Get("Authorization") != "Bearer session-token" {
			t.Fatalf("unexpected authorization header %q", r.Header.Get("Authorization"))
		}

		_ = json.NewEncoder(w).Encode(dto.TicketListOutput{
			Data: []dto.TicketResource{{ID: 1, Status: "validated"}, {ID: 2, Status: "error"}},
			Meta: dto.ListMeta{Total: 2},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "session-token"})

	tickets, appErr := client.ListTicketsWithoutLimit(context.Background(), []string{"validated", "error"})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(tickets) != 2 || tickets[0].ID != 1 {
		t.Fatalf("unexpected tickets %+v", tickets)
	}
}

func TestClientDecodesErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"ticket_already_assigned","message":"This ticket is already assigned"}}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "session-token"})

	_, appErr := client.ClaimTicket(context.Background(), 5)
	if appErr == nil {
		t.Fatal("expected conflict error")
	}
	if appErr.Type != apperrors.TypeConflict {
		t.Fatalf("expected conflict type, got %s", appErr.Type)
	}
	if appErr.Code != "ticket_already_assigned" {
		t.Fatalf("expected ticket_already_assigned, got %s", appErr.Code)
	}
	if appErr.Message != "This ticket is already assigned" {
		t.Fatalf("expected server message verbatim, got %q", appErr.Message)
	}
}

func TestClientHandlesNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	_, appErr := client.GetWallet(context.Background(), "FULFILLER")
	if appErr == nil || appErr.Code != "unexpected_response" {
		t.Fatalf("expected unexpected_response, got %v", appErr)
	}
	if appErr.Type != apperrors.TypeInternal {
		t.Fatalf("expected internal type, got %s", appErr.Type)
	}
}

func TestClientLoginStoresToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/login":
			payload := map[string]string{}
			_ = json.NewDecoder(r.Body).Decode(&payload)
			if payload["login"] != "worker1" || payload["password"] != "secret" {
				t.Fatalf("unexpected credentials %v", payload)
			}
			_ = json.NewEncoder(w).Encode(dto.AuthOutput{AccessToken: "fresh-token"})
		case "/v1/wallet/FULFILLER":
			if r.Header.Get("Authorization") != "Bearer fresh-token" {
				t.Fatalf("expected fresh token, got %q", r.Header.Get("Authorization"))
			}
			_ = json.NewEncoder(w).Encode(dto.WalletResource{Balance: "10"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	if _, appErr := client.Login(context.Background(), "worker1", "secret"); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if _, appErr := client.GetWallet(context.Background(), "FULFILLER"); appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
}

func TestClientUploadFilesSendsMultipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proof.png")
	if err := os.WriteFile(path, []byte("image-bytes"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/uploads" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		files := r.MultipartForm.File["files"]
		if len(files) != 1 || files[0].Filename != "proof.png" {
			t.Fatalf("unexpected files %+v", files)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"urls":["/files/proof.png"]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Token: "session-token"})

	urls, appErr := client.UploadFiles(context.Background(), []string{path})
	if appErr != nil {
		t.Fatalf("unexpected error: %v", appErr)
	}
	if len(urls) != 1 || urls[0] != "/files/proof.png" {
		t.Fatalf("unexpected urls %v", urls)
	}
}
