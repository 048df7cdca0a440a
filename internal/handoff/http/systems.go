package http

import (
	"net/http"

	"github.com/aussiebroadwan/handoff/internal/handoff/service"
	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/httpx"
)

// SystemsHandler handles the system registry endpoints.
type SystemsHandler struct {
	SystemService *service.SystemService
}

// HandleCreate handles POST /v1/systems
//
//	@Summary		Register System
//	@Description	Registers a system under the caller's active scope. The scope is fixed at creation.
//	@Tags			Systems
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		handoffsdk.SystemRequest	true	"System"
//	@Success		201		{object}	handoffsdk.SystemInfo
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/systems [post].
func (h *SystemsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req handoffsdk.SystemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	sys, err := h.SystemService.Create(r.Context(), actor, service.SystemInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toSystemInfo(sys))
}

// HandleList handles GET /v1/systems
//
//	@Summary		List Systems
//	@Description	Lists systems visible in the caller's scope, most recently updated first.
//	@Tags			Systems
//	@Produce		json
//	@Security		BearerAuth
//	@Param			q	query		string	false	"Name substring or exact tag"
//	@Success		200	{object}	handoffsdk.ListSystemsResponse
//	@Failure		401	{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/systems [get].
func (h *SystemsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	systems, err := h.SystemService.List(r.Context(), actor, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]handoffsdk.SystemInfo, len(systems))
	for i, s := range systems {
		out[i] = toSystemInfo(s)
	}
	httpx.WriteJSON(w, http.StatusOK, handoffsdk.ListSystemsResponse{Systems: out})
}

// HandleGet handles GET /v1/systems/{id}
//
//	@Summary		Get System
//	@Tags			Systems
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"System ID"
//	@Success		200	{object}	handoffsdk.SystemInfo
//	@Failure		404	{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Router			/v1/systems/{id} [get].
func (h *SystemsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	sys, err := h.SystemService.Get(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSystemInfo(sys))
}

// HandleUpdate handles PUT /v1/systems/{id}
//
//	@Summary		Update System
//	@Description	Updates name, description or tags. Omitted fields are unchanged.
//	@Tags			Systems
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"System ID"
//	@Param			request	body		handoffsdk.UpdateSystemRequest	true	"Changes"
//	@Success		200		{object}	handoffsdk.SystemInfo
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Router			/v1/systems/{id} [put].
func (h *SystemsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	var req handoffsdk.UpdateSystemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	sys, err := h.SystemService.Update(r.Context(), actor, id, service.SystemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toSystemInfo(sys))
}

// HandleDelete handles DELETE /v1/systems/{id}
//
//	@Summary		Delete System
//	@Description	Deletes a system with its credentials and their handoff tokens.
//	@Tags			Systems
//	@Security		BearerAuth
//	@Param			id	path	string	true	"System ID"
//	@Success		204	"System deleted"
//	@Failure		404	{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Router			/v1/systems/{id} [delete].
func (h *SystemsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	if err := h.SystemService.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
