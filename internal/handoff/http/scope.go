package http

import (
	"net/http"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/service"
	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/httpx"
)

// ScopeHandler serves the active scope and organization management.
type ScopeHandler struct {
	OrganizationService *service.OrganizationService
}

// HandleGet handles GET /v1/scope
//
//	@Summary		Get Active Scope
//	@Description	Returns the caller's effective scope and every organization they belong to. A stale organization preference resolves to PERSONAL.
//	@Tags			Scope
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	handoffsdk.ScopeResponse	"type, organizationId, memberships"
//	@Failure		401	{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/scope [get].
func (h *ScopeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	view, err := h.OrganizationService.Current(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toScopeResponse(view))
}

// HandleSet handles PUT /v1/scope
//
//	@Summary		Switch Active Scope
//	@Description	Switches to an organization the caller belongs to, or back to PERSONAL with an empty organizationId.
//	@Tags			Scope
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		handoffsdk.SetScopeRequest	true	"Target organization"
//	@Success		200		{object}	handoffsdk.ScopeResponse	"type, organizationId, memberships"
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	handoffsdk.ErrorResponse	"not a member"
//	@Router			/v1/scope [put].
func (h *ScopeHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req handoffsdk.SetScopeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	if _, err := h.OrganizationService.SetActiveOrganization(ctx, actor, req.OrganizationID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	view, err := h.OrganizationService.Current(ctx, actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toScopeResponse(view))
}

// HandleCreateOrganization handles POST /v1/organizations
//
//	@Summary		Create Organization
//	@Description	Creates an organization with the caller as OWNER and makes it the caller's active scope.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		handoffsdk.CreateOrganizationRequest	true	"Organization name"
//	@Success		201		{object}	handoffsdk.OrganizationInfo
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/organizations [post].
func (h *ScopeHandler) HandleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req handoffsdk.CreateOrganizationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	org, err := h.OrganizationService.CreateOrganization(r.Context(), actor, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, handoffsdk.OrganizationInfo{
		ID:        org.ID,
		Name:      org.Name,
		CreatedAt: org.CreatedAt,
	})
}

// HandleDeleteOrganization handles DELETE /v1/organizations/{id}
//
//	@Summary		Delete Organization
//	@Description	Deletes an organization with its memberships, systems, credentials and handoff tokens. OWNER only.
//	@Tags			Organizations
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Organization ID"
//	@Success		204	"Organization deleted"
//	@Failure		401	{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	handoffsdk.ErrorResponse	"not an owner"
//	@Router			/v1/organizations/{id} [delete].
func (h *ScopeHandler) HandleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.OrganizationService.DeleteOrganization(r.Context(), actor, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddMember handles POST /v1/organizations/{id}/members
//
//	@Summary		Add Member
//	@Description	Grants a user membership of the organization. OWNER only.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Organization ID"
//	@Param			request	body		handoffsdk.AddMemberRequest	true	"User and role"
//	@Success		201		{object}	handoffsdk.MembershipInfo
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	handoffsdk.ErrorResponse	"not an owner"
//	@Failure		409		{object}	handoffsdk.ErrorResponse	"already a member"
//	@Router			/v1/organizations/{id}/members [post].
func (h *ScopeHandler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req handoffsdk.AddMemberRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	m, err := h.OrganizationService.AddMember(r.Context(), actor, r.PathValue("id"), req.UserID, domain.MembershipRole(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMembershipInfo(m))
}

// HandleRemoveMember handles DELETE /v1/organizations/{id}/members/{userId}
//
//	@Summary		Remove Member
//	@Description	Revokes a membership. Owners remove others; members may remove themselves.
//	@Tags			Organizations
//	@Security		BearerAuth
//	@Param			id		path	string	true	"Organization ID"
//	@Param			userId	path	string	true	"User ID"
//	@Success		204		"Membership removed"
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"owner cannot leave"
//	@Failure		403		{object}	handoffsdk.ErrorResponse	"not an owner"
//	@Failure		404		{object}	handoffsdk.ErrorResponse	"no such membership"
//	@Router			/v1/organizations/{id}/members/{userId} [delete].
func (h *ScopeHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	if err := h.OrganizationService.RemoveMember(r.Context(), actor, r.PathValue("id"), r.PathValue("userId")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
