package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"financepro/internal/auth"
	"financepro/internal/log"
	"financepro/internal/notify"
	"financepro/internal/store"
)

type Server struct {
	http.Server
	store   *store.Store
	auth    *auth.Service
	trigger *notify.Trigger

	rateLimiter  *rateLimiter
	accessLogger *log.AccessLogger
	startedAt    time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and returns a ready-to-run http.Server. The
// trigger may be nil when no notification sink is configured.
func NewServer(addr string, st *store.Store, authsvc *auth.Service, trigger *notify.Trigger, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:        st,
		auth:         authsvc,
		trigger:      trigger,
		rateLimiter:  newRateLimiter(60),
		accessLogger: log.NewAccessLogger(logger.WithComponent(log.ComponentHTTP)),
		startedAt:    time.Now(),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/data", s.wrap(s.handleGetData))

	mux.HandleFunc("POST /api/incomes", s.wrap(s.handleAddIncome))
	mux.HandleFunc("DELETE /api/incomes/{id}", s.wrap(s.handleDeleteIncome))
	mux.HandleFunc("POST /api/expenses", s.wrap(s.handleAddExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.wrap(s.handleDeleteExpense))

	mux.HandleFunc("POST /api/financings", s.wrap(s.handleAddFinancing))
	mux.HandleFunc("DELETE /api/financings/{id}", s.wrap(s.handleDeleteFinancing))
	mux.HandleFunc("GET /api/financings/{id}/summary", s.wrap(s.handleFinancingSummary))
	mux.HandleFunc("POST /api/financings/{id}/payments", s.wrap(s.handleAddPayment))
	mux.HandleFunc("DELETE /api/financings/{id}/payments/{paymentID}", s.wrap(s.handleDeletePayment))

	mux.HandleFunc("GET /api/goals", s.wrap(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.wrap(s.handleAddGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.wrap(s.handleDeleteGoal))
	mux.HandleFunc("POST /api/wishes", s.wrap(s.handleAddWish))
	mux.HandleFunc("DELETE /api/wishes/{id}", s.wrap(s.handleDeleteWish))

	mux.HandleFunc("POST /api/investments", s.wrap(s.handleAddInvestment))
	mux.HandleFunc("DELETE /api/investments/{id}", s.wrap(s.handleDeleteInvestment))
	mux.HandleFunc("POST /api/investments/{id}/contributions", s.wrap(s.handleAddContribution))
	mux.HandleFunc("DELETE /api/investments/{id}/contributions/{contributionID}", s.wrap(s.handleDeleteContribution))

	mux.HandleFunc("GET /api/dashboard", s.wrap(s.handleDashboard))

	mux.HandleFunc("GET /api/settings", s.wrap(s.handleGetSettings))
	mux.HandleFunc("PUT /api/settings", s.wrap(s.handleUpdateSettings))
	mux.HandleFunc("POST /api/notifications/permission", s.wrap(s.handleGrantNotifications))

	mux.HandleFunc("GET /api/backup", s.wrap(s.handleExportBackup))
	mux.HandleFunc("POST /api/backup", s.wrap(s.handleImportBackup))

	mux.HandleFunc("POST /api/auth/register", s.wrap(s.handleRegister))
	mux.HandleFunc("POST /api/auth/login", s.wrap(s.handleLogin))
	mux.HandleFunc("POST /api/auth/google", s.wrap(s.handleGoogleLogin))
	mux.HandleFunc("POST /api/auth/reset-password", s.wrap(s.handleResetPassword))
	mux.HandleFunc("POST /api/auth/logout", s.wrap(s.handleLogout))
	mux.HandleFunc("GET /api/auth/session", s.wrap(s.handleSession))
	mux.HandleFunc("GET /api/auth/diagnosis", s.wrap(s.handleDiagnosis))

	return s
}

// wrap adds security headers, rate limiting, and access logging to a handler
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)

		// Mutations are rate limited per client
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.accessLogger.LogRequest(r.Context(), r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]string{"store": "ok", "auth": "ok"}

	if s.store == nil {
		checks["store"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}
	if s.auth == nil {
		checks["auth"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]any{"status": status, "checks": checks})
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
