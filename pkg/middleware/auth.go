package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/contextkeys"
	"github.com/Gudini108/tasktracker/pkg/httputil"
)

// Auth authenticates requests from a Bearer token in the Authorization
// header. It verifies the token, resolves the subject to an account and puts
// the account into the request context. Requests failing any step get 401.
type Auth struct {
	service *auth.Service
}

// NewAuth creates the authentication middleware
func NewAuth(service *auth.Service) *Auth {
	return &Auth{service: service}
}

// Handler wraps an HTTP handler with authentication
func (m *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httputil.WriteUnauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.WriteUnauthorized(w, "invalid authorization header format")
			return
		}

		subject, err := m.service.VerifyToken(parts[1])
		if err != nil {
			// ErrExpiredToken and ErrInvalidToken carry distinct messages
			// but the same status.
			httputil.WriteUnauthorized(w, err.Error())
			return
		}

		account, err := m.service.ResolveAccount(r.Context(), subject)
		if err != nil {
			if errors.Is(err, auth.ErrUnknownSubject) {
				httputil.WriteUnauthorized(w, err.Error())
				return
			}
			httputil.WriteInternalError(w)
			return
		}

		ctx := contextkeys.WithAccount(r.Context(), account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentAccount extracts the authenticated account from a request. Returns
// nil when the request did not pass through the auth middleware.
func CurrentAccount(r *http.Request) *auth.Account {
	value := r.Context().Value(contextkeys.AccountKey)
	if value == nil {
		return nil
	}
	account, ok := value.(*auth.Account)
	if !ok {
		return nil
	}
	return account
}
