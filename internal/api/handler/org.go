package handler

import (
	"errors"
	"net/http"

	"github.com/tempohq/tempo/internal/api/middleware"
	"github.com/tempohq/tempo/internal/api/response"
	"github.com/tempohq/tempo/internal/domain"
	"github.com/tempohq/tempo/internal/service"
	"github.com/go-chi/chi/v5"
)

// OrgHandler handles organization endpoints
type OrgHandler struct {
	orgService *service.OrgService
}

// NewOrgHandler creates a new organization handler
func NewOrgHandler(orgService *service.OrgService) *OrgHandler {
	return &OrgHandler{orgService: orgService}
}

// List returns the organizations the current user is a member of
func (h *OrgHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	orgs, err := h.orgService.ListAvailable(r.Context(), user.ID)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, orgs)
}

// Activate switches the session's active organization
func (h *OrgHandler) Activate(w http.ResponseWriter, r *http.Request) {
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

	orgID := chi.URLParam(r, "orgID")
	if orgID == "" {
		response.BadRequest(w, "missing organization ID")
		return
	}

	org, err := h.orgService.Select(r.Context(), session, user, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotAMember) {
			response.Forbidden(w, "not a member of this organization")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"organization":  org,
		"active_org_id": session.ActiveOrgID,
	})
}
