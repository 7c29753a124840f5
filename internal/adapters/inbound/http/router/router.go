package router

import (
	"net/http"

	"ticketpay/internal/adapters/inbound/http/controllers"
	"ticketpay/internal/adapters/inbound/http/middleware"
)

type Dependencies struct {
	HealthController     *controllers.HealthController
	SwaggerController    *controllers.SwaggerController
	AuthController       *controllers.AuthController
	TicketsController    *controllers.TicketsController
	WalletsController    *controllers.WalletsController
	SettlementController *controllers.SettlementController
	SettingsController   *controllers.SettingsController
	UploadsController    *controllers.UploadsController
	Auth                 *middleware.Auth
	UploadDir            string
}

func New(deps Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	auth := deps.Auth

	mux.HandleFunc("GET /healthz", deps.HealthController.GetHealth)
	mux.HandleFunc("GET /swagger", deps.SwaggerController.RedirectToIndex)
	mux.HandleFunc("GET /swagger/openapi.yaml", deps.SwaggerController.GetOpenAPISpec)
	mux.HandleFunc("GET /swagger/", deps.SwaggerController.ServeUI)

	mux.HandleFunc("POST /v1/auth/login", deps.AuthController.Login)
	mux.HandleFunc("POST /v1/auth/register", deps.AuthController.Register)
	mux.Handle("POST /v1/auth/logout", auth.RequireAuth(http.HandlerFunc(deps.AuthController.Logout)))
	mux.Handle("POST /v1/auth/reset", auth.RequireAuth(http.HandlerFunc(deps.AuthController.ResetPassword)))

	mux.HandleFunc("POST /v1/tickets", deps.TicketsController.Create)
	mux.Handle("GET /v1/tickets", auth.RequireAuth(http.HandlerFunc(deps.TicketsController.List)))
	mux.Handle("GET /v1/tickets/withoutlimit", auth.RequireAuth(http.HandlerFunc(deps.TicketsController.ListWithoutLimit)))
	mux.Handle("GET /v1/tickets/{id}", auth.RequireAuth(http.HandlerFunc(deps.TicketsController.Get)))
	mux.Handle("PUT /v1/tickets/{id}/validate", auth.RequireAuth(http.HandlerFunc(deps.TicketsController.Validate)))
	mux.Handle("PUT /v1/tickets/{id}/decline", auth.RequireAuth(http.HandlerFunc(deps.TicketsController.Decline)))
	mux.Handle("PUT /v1/tickets/{id}/processing", auth.RequireAuth(http.HandlerFunc(deps.TicketsController.Claim)))
	mux.Handle("PUT /v1/tickets/{id}/complete", auth.RequireAuth(http.HandlerFunc(deps.TicketsController.Complete)))
	mux.Handle("PUT /v1/tickets/{id}/report", auth.RequireAuth(http.HandlerFunc(deps.TicketsController.Report)))

	mux.Handle("GET /v1/wallet/{type}", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.Get)))
	mux.Handle("GET /v1/wallet/wallets", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.List)))
	mux.Handle("POST /v1/wallet/connect", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.Connect)))
	mux.Handle("POST /v1/wallet/create", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.Create)))
	mux.Handle("POST /v1/wallet/create/ethereum", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.CreateEthereum)))
	mux.Handle("POST /v1/wallet/deposit", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.Deposit)))
	mux.Handle("POST /v1/wallet/withdraw", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.Withdraw)))
	mux.Handle("GET /v1/wallet/transactions", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.ListTransactions)))
	mux.Handle("PATCH /v1/wallet/transactions/{id}", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.UpdateTransaction)))
	mux.Handle("GET /v1/wallet/transactions/pending/grouped", auth.RequireAuth(http.HandlerFunc(deps.WalletsController.GroupPendingTransactions)))

	mux.Handle("GET /v1/deposit/address", auth.RequireAuth(http.HandlerFunc(deps.SettlementController.ResolveDepositAddress)))
	mux.Handle("POST /v1/deposit", auth.RequireAuth(http.HandlerFunc(deps.SettlementController.ReportDeposit)))
	mux.Handle("POST /v1/withdrawals", auth.RequireAuth(http.HandlerFunc(deps.SettlementController.CreateWithdrawRequest)))
	mux.Handle("GET /v1/withdrawals", auth.RequireAuth(http.HandlerFunc(deps.SettlementController.ListWithdrawRequests)))

	mux.Handle("GET /v1/settings", auth.RequireAuth(http.HandlerFunc(deps.SettingsController.Get)))
	mux.Handle("POST /v1/settings", auth.RequireAuth(http.HandlerFunc(deps.SettingsController.Update)))

	mux.Handle("POST /v1/upload", auth.RequireAuth(http.HandlerFunc(deps.UploadsController.UploadOne)))
	mux.Handle("POST /v1/uploads", auth.RequireAuth(http.HandlerFunc(deps.UploadsController.UploadMany)))

	if deps.UploadDir != "" {
		mux.Handle("GET /files/", http.StripPrefix("/files/", http.FileServer(http.Dir(deps.UploadDir))))
	}

	return mux
}
