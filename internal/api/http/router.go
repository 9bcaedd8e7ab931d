package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Munazil1/centswise/internal/config"
	"github.com/Munazil1/centswise/internal/logger"
	"github.com/Munazil1/centswise/internal/service"
)

// HealthChecker reports on the ledger service.
type HealthChecker interface {
	Health(ctx context.Context) (map[string]any, error)
}

// Handler serves the dashboard JSON API.
type Handler struct {
	auth     service.AuthService
	money    service.MoneyService
	property service.PropertyService
	receipts service.ReceiptService
	health   HealthChecker
}

func NewHandler(
	auth service.AuthService,
	money service.MoneyService,
	property service.PropertyService,
	receipts service.ReceiptService,
	health HealthChecker,
) *Handler {
	return &Handler{
		auth:     auth,
		money:    money,
		property: property,
		receipts: receipts,
		health:   health,
	}
}

// NewRouter registers every dashboard route behind request logging and the
// session check from config.RouteSecurityConfig.
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(logRequests, h.requireSession)
	RegisterRoutes(router, h)
	return router
}

func RegisterRoutes(router *mux.Router, h *Handler) {
	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", h.CurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/auth/change-password", h.ChangePassword).Methods(http.MethodPost)

	api.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	api.HandleFunc("/refresh", h.Refresh).Methods(http.MethodPost)

	api.HandleFunc("/credits", h.ListCredits).Methods(http.MethodGet)
	api.HandleFunc("/credits", h.RecordCredit).Methods(http.MethodPost)
	api.HandleFunc("/credits/{id}/receipt", h.IssueReceipt).Methods(http.MethodPost)
	api.HandleFunc("/receipts", h.ListReceipts).Methods(http.MethodGet)
	api.HandleFunc("/receipts/next-number", h.NextReceiptNumber).Methods(http.MethodGet)
	api.HandleFunc("/receipts/{serial}/pdf", h.ReceiptPDF).Methods(http.MethodGet)
	api.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	api.HandleFunc("/expenses", h.RecordExpense).Methods(http.MethodPost)

	api.HandleFunc("/items", h.ListItems).Methods(http.MethodGet)
	api.HandleFunc("/items", h.AddItem).Methods(http.MethodPost)
	api.HandleFunc("/distributions", h.ListDistributions).Methods(http.MethodGet)
	api.HandleFunc("/distributions", h.Distribute).Methods(http.MethodPost)
	api.HandleFunc("/distributions/{id}/return", h.ReturnDistribution).Methods(http.MethodPost)
}

func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tmpl := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if t, err := route.GetPathTemplate(); err == nil {
				tmpl = t
			}
		}
		if config.RouteSecurity(r.Method, tmpl) == config.SecuritySession && !h.auth.Authenticated() {
			writeError(w, http.StatusUnauthorized, service.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
