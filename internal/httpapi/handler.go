// Package httpapi exposes the dashboard API: an action-dispatch surface
// under /api/query and /api/command plus the plain REST routes the
// frontend also calls.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Hozaifa-Bhutta/agri-vision/internal/app"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/httputil"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/metrics"
	"github.com/Hozaifa-Bhutta/agri-vision/internal/middleware"
	"github.com/Hozaifa-Bhutta/agri-vision/pkg/logger"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app      *app.Application
	log      *logger.Logger
	queries  map[string]queryFunc
	commands map[string]commandFunc
}

// NewHandler returns a router exposing the full API.
func NewHandler(application *app.Application, log *logger.Logger) http.Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	h := &handler{app: application, log: log}
	h.queries = h.queryRegistry()
	h.commands = h.commandRegistry()

	r := mux.NewRouter()
	r.Use(middleware.Logging(log))
	r.Use(metrics.InstrumentHandler)

	r.HandleFunc("/api/query", h.query).Methods(http.MethodGet)
	r.HandleFunc("/api/command", h.command).Methods(http.MethodPost)

	r.HandleFunc("/api/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/api/signup", h.signup).Methods(http.MethodPost)
	r.HandleFunc("/api/users", h.getUser).Methods(http.MethodGet)
	r.HandleFunc("/api/users", h.updateUser).Methods(http.MethodPost)
	r.HandleFunc("/api/counties", h.counties).Methods(http.MethodGet)
	r.HandleFunc("/api/audit-logs", h.auditLogs).Methods(http.MethodGet)
	r.HandleFunc("/api/cropyields", h.listYields).Methods(http.MethodGet)
	r.HandleFunc("/api/cropyields", h.createYield).Methods(http.MethodPost)
	r.HandleFunc("/api/cropyields/{id}", h.deleteYieldByID).Methods(http.MethodDelete)

	r.HandleFunc("/healthz", h.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	cors := middleware.NewCORSMiddleware([]string{"*"})
	return cors.Handler(r)
}

func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// REST Routes
// =============================================================================

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httputil.ReadJSON(r, &payload); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		httputil.WriteError(w, http.StatusBadRequest, "missing username or password")
		return
	}

	_, ok, err := h.app.Users.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	httputil.WriteSuccess(w, map[string]string{"message": "login successful"})
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		CountyState string `json:"county_state"`
	}
	if err := httputil.ReadJSON(r, &payload); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.app.Users.Register(r.Context(), payload.Username, payload.Password, payload.CountyState); err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Envelope{
		Success: true,
		Result:  map[string]string{"message": "user registered successfully"},
	})
}

func (h *handler) getUser(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		httputil.WriteError(w, http.StatusBadRequest, "missing username")
		return
	}

	acct, err := h.app.Users.Get(r.Context(), username)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, acct)
}

func (h *handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username    string `json:"username"`
		CountyState string `json:"county_state"`
	}
	if err := httputil.ReadJSON(r, &payload); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.app.Users.UpdateCounty(r.Context(), payload.Username, payload.CountyState); err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, map[string]string{"message": "user updated successfully"})
}

func (h *handler) counties(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Reference.Counties(r.Context())
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, list)
}

func (h *handler) auditLogs(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		httputil.WriteError(w, http.StatusBadRequest, "missing username")
		return
	}

	logs, err := h.app.Yields.AuditLogs(r.Context(), username, intParam(r, "limit", 10))
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, logs)
}

func (h *handler) listYields(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		httputil.WriteError(w, http.StatusBadRequest, "username query parameter is required")
		return
	}

	list, err := h.app.Yields.ListByUser(r.Context(), username)
	if err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteSuccess(w, list)
}

func (h *handler) createYield(w http.ResponseWriter, r *http.Request) {
	var payload yieldParams
	if err := httputil.ReadJSON(r, &payload); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.app.Yields.Create(r.Context(), payload.record()); err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Envelope{
		Success: true,
		Result:  payload,
	})
}

func (h *handler) deleteYieldByID(w http.ResponseWriter, r *http.Request) {
	id, err := int64Var(r, "id")
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid yield id format")
		return
	}

	if _, err := h.app.Yields.DeleteByID(r.Context(), id); err != nil {
		httputil.WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
