package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/httputil"
	"github.com/Gudini108/tasktracker/pkg/middleware"
	"github.com/Gudini108/tasktracker/pkg/observability"
	"github.com/Gudini108/tasktracker/pkg/tasks"
)

// APIPrefix is the base path of all service routes
const APIPrefix = "/api/v1"

// Server is the HTTP front of the task tracker
type Server struct {
	router  *mux.Router
	logger  *observability.Logger
	metrics *observability.Metrics

	authHandlers *AuthHandlers
	userHandlers *UserHandlers
	taskHandlers *TaskHandlers
}

// NewServer creates the API server and registers all routes
func NewServer(authSvc *auth.Service, taskSvc *tasks.Service, logger *observability.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		logger:       logger,
		metrics:      metrics,
		authHandlers: NewAuthHandlers(authSvc, logger, metrics),
		userHandlers: NewUserHandlers(authSvc),
		taskHandlers: NewTaskHandlers(taskSvc),
	}

	s.router.Use(httputil.RequestIDMiddleware)
	s.router.Use(httputil.LoggingMiddleware(logger))
	s.router.Use(httputil.RecoveryMiddleware(logger))
	if metrics != nil {
		s.router.Use(metrics.HTTPMiddleware)
	}

	s.router.HandleFunc("/", s.index).Methods("GET")

	public := s.router.PathPrefix(APIPrefix).Subrouter()
	s.authHandlers.RegisterRoutes(public)

	protected := s.router.PathPrefix(APIPrefix).Subrouter()
	protected.Use(middleware.NewAuth(authSvc).Handler)
	s.userHandlers.RegisterRoutes(protected)
	s.taskHandlers.RegisterRoutes(protected)

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// index lists the service's entry points
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]string{
		"signup": APIPrefix + "/signup",
		"login":  APIPrefix + "/login",
		"users":  APIPrefix + "/users",
		"tasks":  APIPrefix + "/tasks",
	})
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Anything
// outside the taxonomy (storage failures included) becomes a generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrDuplicateUser):
		httputil.WriteConflict(w, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrUnknownSubject):
		httputil.WriteUnauthorized(w, err.Error())
	case errors.Is(err, tasks.ErrNotFound):
		httputil.WriteNotFound(w, err.Error())
	case errors.Is(err, tasks.ErrForbidden):
		httputil.WriteForbidden(w, err.Error())
	case errors.Is(err, tasks.ErrInvalidTitle), errors.Is(err, tasks.ErrInvalidStatus):
		httputil.WriteBadRequest(w, err.Error())
	default:
		httputil.WriteInternalError(w)
	}
}
