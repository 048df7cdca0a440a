package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/service"
	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/httpx"
)

// CredentialsHandler handles credential CRUD and the secret lifecycle.
type CredentialsHandler struct {
	CredentialService *service.CredentialService
}

func (h *CredentialsHandler) now() time.Time {
	if h.CredentialService.Now != nil {
		return h.CredentialService.Now()
	}
	return time.Now()
}

// HandleCreate handles POST /v1/credentials
//
//	@Summary		Create Credential
//	@Description	Creates a credential with a generated (default) or manual secret. The plaintext secret is returned only in this response.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		handoffsdk.CreateCredentialRequest	true	"Credential"
//	@Success		201		{object}	handoffsdk.CredentialSecretResponse	"credential and secret"
//	@Failure		400		{object}	handoffsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	handoffsdk.ErrorResponse			"manual secrets disabled"
//	@Failure		404		{object}	handoffsdk.ErrorResponse			"system not found or not visible"
//	@Failure		422		{object}	handoffsdk.ErrorResponse			"generation exhausted"
//	@Router			/v1/credentials [post].
func (h *CredentialsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req handoffsdk.CreateCredentialRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	cred, secret, err := h.CredentialService.Create(r.Context(), actor, service.CredentialInput{
		SystemID:  req.SystemID,
		Label:     req.Label,
		Notes:     req.Notes,
		Tags:      req.Tags,
		ExpiresAt: req.ExpiresAt,
		Secret:    toSecretInput(req.SecretOptions),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, handoffsdk.CredentialSecretResponse{
		Credential: toCredentialInfo(cred, h.now()),
		Secret:     secret,
	})
}

// HandleList handles GET /v1/credentials
//
//	@Summary		List Credentials
//	@Description	Lists credentials whose system is visible in the caller's scope.
//	@Tags			Credentials
//	@Produce		json
//	@Security		BearerAuth
//	@Param			q				query		string	false	"Label or notes substring"
//	@Param			systemId		query		string	false	"System ID"
//	@Param			tag				query		string	false	"Exact tag"
//	@Param			status			query		string	false	"active or expired"
//	@Param			expiresInDays	query		int		false	"Only credentials expiring within this many days"
//	@Param			sort			query		string	false	"expiresAt-asc (default) or createdAt-desc"
//	@Success		200				{object}	handoffsdk.ListCredentialsResponse
//	@Failure		400				{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/credentials [get].
func (h *CredentialsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := service.CredentialListQuery{
		Text:     q.Get("q"),
		SystemID: q.Get("systemId"),
		Tag:      q.Get("tag"),
		Status:   q.Get("status"),
		Sort:     q.Get("sort"),
	}
	if v := q.Get("expiresInDays"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			badRequest(w, "expiresInDays must be an integer")
			return
		}
		query.ExpiresInDays = days
	}

	creds, err := h.CredentialService.List(r.Context(), actor, query)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, handoffsdk.ListCredentialsResponse{
		Credentials: toCredentialInfos(creds, h.now()),
	})
}

// HandleGet handles GET /v1/credentials/{id}
//
//	@Summary		Get Credential
//	@Tags			Credentials
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Credential ID"
//	@Success		200	{object}	handoffsdk.CredentialInfo
//	@Failure		404	{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Router			/v1/credentials/{id} [get].
func (h *CredentialsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	cred, err := h.CredentialService.Get(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCredentialInfo(cred, h.now()))
}

// HandleUpdate handles PATCH /v1/credentials/{id}
//
//	@Summary		Update Credential
//	@Description	Updates metadata. Moving to another system requires that system to be visible too. The secret is untouched.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string								true	"Credential ID"
//	@Param			request	body		handoffsdk.UpdateCredentialRequest	true	"Changes"
//	@Success		200		{object}	handoffsdk.CredentialInfo
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Router			/v1/credentials/{id} [patch].
func (h *CredentialsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	var req handoffsdk.UpdateCredentialRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	cred, err := h.CredentialService.Update(r.Context(), actor, id, service.CredentialUpdate{
		SystemID:  req.SystemID,
		Label:     req.Label,
		Notes:     req.Notes,
		Tags:      req.Tags,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCredentialInfo(cred, h.now()))
}

// HandleDelete handles DELETE /v1/credentials/{id}
//
//	@Summary		Delete Credential
//	@Description	Deletes a credential and every handoff token issued for it.
//	@Tags			Credentials
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Credential ID"
//	@Success		204	"Credential deleted"
//	@Failure		404	{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Router			/v1/credentials/{id} [delete].
func (h *CredentialsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	if err := h.CredentialService.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRegenerate handles POST /v1/credentials/{id}/regenerate
//
//	@Summary		Regenerate Secret
//	@Description	Replaces the secret. The new plaintext is returned only in this response.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"Credential ID"
//	@Param			request	body		handoffsdk.SecretOptions	false	"How to obtain the new secret"
//	@Success		200		{object}	handoffsdk.CredentialSecretResponse
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Failure		422		{object}	handoffsdk.ErrorResponse	"generation exhausted"
//	@Router			/v1/credentials/{id}/regenerate [post].
func (h *CredentialsHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	// An empty body regenerates with the defaults
	var req handoffsdk.SecretOptions
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			badRequest(w, err.Error())
			return
		}
	}

	cred, secret, err := h.CredentialService.Regenerate(r.Context(), actor, id, toSecretInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, handoffsdk.CredentialSecretResponse{
		Credential: toCredentialInfo(cred, h.now()),
		Secret:     secret,
	})
}

// HandleReveal handles POST /v1/credentials/{id}/reveal
//
//	@Summary		Reveal Secret
//	@Description	Decrypts the secret for an authorized caller. Expired credentials are refused.
//	@Tags			Credentials
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Credential ID"
//	@Success		200	{object}	handoffsdk.RevealResponse
//	@Failure		404	{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Failure		409	{object}	handoffsdk.ErrorResponse	"credential expired"
//	@Router			/v1/credentials/{id}/reveal [post].
func (h *CredentialsHandler) HandleReveal(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	secret, err := h.CredentialService.Reveal(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, handoffsdk.RevealResponse{CredentialID: id, Secret: secret})
}

// HandleBatch handles POST /v1/credentials/batch
//
//	@Summary		Batch Create Credentials
//	@Description	Creates one generated credential per day in [startDate, endDate], labelled prefix-YYYY-MM-DD. At most 62 days. Secrets are not returned.
//	@Tags			Credentials
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		handoffsdk.BatchRequest	true	"Batch"
//	@Success		201		{object}	handoffsdk.BatchResponse
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	handoffsdk.ErrorResponse	"system not found or not visible"
//	@Router			/v1/credentials/batch [post].
func (h *CredentialsHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req handoffsdk.BatchRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		badRequest(w, "startDate must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		badRequest(w, "endDate must be YYYY-MM-DD")
		return
	}

	creds, err := h.CredentialService.BatchCreate(r.Context(), actor, service.BatchInput{
		SystemID:      req.SystemID,
		LabelPrefix:   req.LabelPrefix,
		StartDate:     start,
		EndDate:       end,
		ExpiresInDays: req.ExpiresInDays,
		Preset:        req.Preset,
		Length:        req.Length,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, handoffsdk.BatchResponse{
		Credentials: toCredentialInfos(creds, h.now()),
	})
}
