package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Gudini108/tasktracker/pkg/httputil"
	"github.com/Gudini108/tasktracker/pkg/middleware"
	"github.com/Gudini108/tasktracker/pkg/tasks"
)

// TaskHandlers handles task CRUD requests
type TaskHandlers struct {
	service *tasks.Service
}

// NewTaskHandlers creates a new task handlers instance
func NewTaskHandlers(service *tasks.Service) *TaskHandlers {
	return &TaskHandlers{service: service}
}

// RegisterRoutes registers the task routes on an authenticated router
func (h *TaskHandlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/tasks", h.createTask).Methods("POST")
	router.HandleFunc("/tasks", h.listTasks).Methods("GET")
	router.HandleFunc("/tasks/{id}", h.getTask).Methods("GET")
	router.HandleFunc("/tasks/{id}", h.updateTask).Methods("PATCH")
	router.HandleFunc("/tasks/{id}", h.deleteTask).Methods("DELETE")
}

// createTask handles POST /api/v1/tasks
func (h *TaskHandlers) createTask(w http.ResponseWriter, r *http.Request) {
	account := middleware.CurrentAccount(r)
	if account == nil {
		httputil.WriteUnauthorized(w, "authentication required")
		return
	}

	var draft tasks.Draft
	if !httputil.ParseJSONOrError(w, r, &draft) {
		return
	}

	task, err := h.service.Create(r.Context(), account, draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httputil.WriteCreated(w, messageResponse{Message: fmt.Sprintf("Task %q created!", task.Title)})
}

// listTasks handles GET /api/v1/tasks with optional user_id and status
// filters plus page/page_size pagination
func (h *TaskHandlers) listTasks(w http.ResponseWriter, r *http.Request) {
	ownerID, err := httputil.ParseQueryInt64(r, "user_id")
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	var status *tasks.Status
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := tasks.Status(statusStr)
		if !s.Valid() {
			httputil.WriteBadRequest(w, fmt.Sprintf("invalid status %q", statusStr))
			return
		}
		status = &s
	}

	page, err := httputil.ParseQueryInt(r, "page", 1)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	size, err := httputil.ParseQueryInt(r, "page_size", tasks.DefaultPageSize)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.List(r.Context(),
		tasks.Filter{OwnerID: ownerID, Status: status},
		tasks.PageParams{Number: page, Size: size})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httputil.WriteSuccess(w, result)
}

// getTask handles GET /api/v1/tasks/{id}
func (h *TaskHandlers) getTask(w http.ResponseWriter, r *http.Request) {
	account := middleware.CurrentAccount(r)
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	task, err := h.service.Get(r.Context(), account, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httputil.WriteSuccess(w, task)
}

// updateTask handles PATCH /api/v1/tasks/{id}
func (h *TaskHandlers) updateTask(w http.ResponseWriter, r *http.Request) {
	account := middleware.CurrentAccount(r)
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	var patch tasks.Patch
	if !httputil.ParseJSONOrError(w, r, &patch) {
		return
	}

	task, err := h.service.Update(r.Context(), account, id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httputil.WriteSuccess(w, messageResponse{Message: fmt.Sprintf("Task %q updated successfully", task.Title)})
}

// deleteTask handles DELETE /api/v1/tasks/{id}
func (h *TaskHandlers) deleteTask(w http.ResponseWriter, r *http.Request) {
	account := middleware.CurrentAccount(r)
	id, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	task, err := h.service.Delete(r.Context(), account, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	httputil.WriteSuccess(w, messageResponse{Message: fmt.Sprintf("Task %q deleted successfully", task.Title)})
}
