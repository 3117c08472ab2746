package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tempohq/tempo/internal/api/middleware"
	"github.com/tempohq/tempo/internal/api/response"
	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/service"
	"github.com/go-chi/chi/v5"
)

// TaskHandler handles approval task endpoints
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List returns the active organization's tasks, optionally filtered by status
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	status := domain.TaskStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		response.BadRequest(w, "invalid status filter")
		return
	}

	tasks, err := h.taskService.List(r.Context(), session, status)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}
	response.OK(w, tasks)
}

// Get returns one task in the active organization
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	taskID := chi.URLParam(r, "taskID")

	task, err := h.taskService.Get(r.Context(), session, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "task not found")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, task)
}

// Create registers a new pending task
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input service.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	task, err := h.taskService.Ingest(r.Context(), session, user, input)
	if err != nil {
		if errors.Is(err, domain.ErrNotAMember) {
			response.Forbidden(w, "no active organization")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.Created(w, task)
}

// DecideInput is the request body for a task decision
type DecideInput struct {
	Decision domain.Decision `json:"decision" validate:"required,oneof=approved rejected"`
	Comment  string          `json:"comment,omitempty" validate:"max=2048"`
}

// Decide applies an approve or reject decision to a pending task
func (h *TaskHandler) Decide(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	taskID := chi.URLParam(r, "taskID")

	var input DecideInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	task, err := h.taskService.Decide(r.Context(), session, user, taskID, input.Decision, input.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.NotFound(w, "task not found")
		case errors.Is(err, domain.ErrTaskNotActionable):
			response.Conflict(w, "task already resolved")
		default:
			response.InternalError(w, err.Error())
		}
		return
	}

	response.OK(w, task)
}
