package handler

import (
	"net/http"

	"github.com/tempohq/tempo/internal/api/middleware"
	"github.com/tempohq/tempo/internal/api/response"
	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/service"
)

// AuditHandler handles audit trail endpoints
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns the active organization's audit trail, newest first
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSession(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	entries, err := h.auditService.List(r.Context(), session)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	if entries == nil {
		entries = []domain.AuditLog{}
	}
	response.OK(w, entries)
}
