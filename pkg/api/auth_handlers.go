package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/httputil"
	"github.com/Gudini108/tasktracker/pkg/observability"
)

// AuthHandlers handles signup and login requests
type AuthHandlers struct {
	service *auth.Service
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(service *auth.Service, logger *observability.Logger, metrics *observability.Metrics) *AuthHandlers {
	return &AuthHandlers{service: service, logger: logger, metrics: metrics}
}

// RegisterRoutes registers the public authentication routes
func (h *AuthHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/signup", h.signup).Methods("POST")
	router.HandleFunc("/login", h.login).Methods("POST")
}

// signup handles POST /api/v1/signup
func (h *AuthHandlers) signup(w http.ResponseWriter, r *http.Request) {
	var draft auth.AccountDraft
	if !httputil.ParseJSONOrError(w, r, &draft) {
		return
	}

	if draft.Username == "" {
		httputil.WriteBadRequest(w, "username is required")
		return
	}
	if draft.FirstName == "" {
		httputil.WriteBadRequest(w, "first_name is required")
		return
	}
	if len(draft.Password) < 6 {
		httputil.WriteBadRequest(w, "password must be at least 6 characters")
		return
	}

	_, err := h.service.Register(r.Context(), draft)
	if err != nil {
		h.countRegistration("failure")
		if !errors.Is(err, auth.ErrDuplicateUser) {
			h.logger.WithError(err).Error("registration failed")
			h.countStorageError("register")
		}
		writeDomainError(w, err)
		return
	}

	h.countRegistration("success")
	httputil.WriteSuccess(w, messageResponse{Message: "Registration complete!"})
}

// login handles POST /api/v1/login
func (h *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	token, tokenType, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.countLogin("failure")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.WithError(err).Error("login failed")
			h.countStorageError("login")
		}
		writeDomainError(w, err)
		return
	}

	h.countLogin("success")
	httputil.WriteSuccess(w, tokenResponse{AccessToken: token, TokenType: tokenType})
}

func (h *AuthHandlers) countLogin(status string) {
	if h.metrics != nil {
		h.metrics.LoginsTotal.WithLabelValues(status).Inc()
	}
}

func (h *AuthHandlers) countRegistration(status string) {
	if h.metrics != nil {
		h.metrics.RegistrationsTotal.WithLabelValues(status).Inc()
	}
}

func (h *AuthHandlers) countStorageError(operation string) {
	if h.metrics != nil {
		h.metrics.StorageErrorsTotal.WithLabelValues(operation).Inc()
	}
}
