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

// ConnectionHandler handles cluster connection endpoints
type ConnectionHandler struct {
	connectionService *service.ConnectionService
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(connectionService *service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// List returns the active organization's connections
func (h *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	conns, err := h.connectionService.List(r.Context(), session)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	if conns == nil {
		conns = []domain.Connection{}
	}
	response.OK(w, conns)
}

// Create registers a new connection
func (h *ConnectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.ConnectionCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	conn, err := h.connectionService.Create(r.Context(), session, input)
	if err != nil {
		if errors.Is(err, domain.ErrNotAMember) {
			response.Forbidden(w, "no active organization")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.Created(w, conn)
}

// Delete removes a connection
func (h *ConnectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	connID := chi.URLParam(r, "connectionID")

	if err := h.connectionService.Delete(r.Context(), session, connID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.NotFound(w, "connection not found")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.NoContent(w)
}
