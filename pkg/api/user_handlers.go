package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/httputil"
)

// UserHandlers handles user listing requests
type UserHandlers struct {
	service *auth.Service
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(service *auth.Service) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes registers the user routes
func (h *UserHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/users", h.listUsers).Methods("GET")
}

// listUsers handles GET /api/v1/users
func (h *UserHandlers) listUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	users := make([]userOut, 0, len(accounts))
	for _, account := range accounts {
		users = append(users, userOut{ID: account.ID, Username: account.Username})
	}
	httputil.WriteSuccess(w, users)
}
