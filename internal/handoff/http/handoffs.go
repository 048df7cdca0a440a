package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/handoff/internal/handoff/service"
	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/httpx"
)

// HandoffsHandler issues, lists, revokes and redeems handoff tokens.
type HandoffsHandler struct {
	HandoffService *service.HandoffService
}

// HandleIssue handles POST /v1/credentials/{id}/handoffs
//
//	@Summary		Issue Handoff Token
//	@Description	Mints a single-use token for the credential. The raw token, redemption URL and QR code appear only in this response.
//	@Tags			Handoffs
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Credential ID"
//	@Success		201	{object}	handoffsdk.HandoffResponse	"token, url, qrCode"
//	@Failure		404	{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Failure		409	{object}	handoffsdk.ErrorResponse	"credential expired"
//	@Router			/v1/credentials/{id}/handoffs [post].
func (h *HandoffsHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	issued, err := h.HandoffService.Issue(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, handoffsdk.HandoffResponse{
		ID:           issued.Token.ID,
		CredentialID: issued.Token.CredentialID,
		Token:        issued.RawToken,
		URL:          issued.URL,
		QRCode:       issued.QRDataURL,
		ExpiresAt:    issued.Token.ExpiresAt,
	})
}

// HandleList handles GET /v1/credentials/{id}/handoffs
//
//	@Summary		List Handoff Tokens
//	@Description	Lists the credential's tokens, newest first, with status issued, redeemed or expired.
//	@Tags			Handoffs
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Credential ID"
//	@Success		200	{object}	handoffsdk.ListHandoffsResponse
//	@Failure		404	{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Router			/v1/credentials/{id}/handoffs [get].
func (h *HandoffsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	views, err := h.HandoffService.ListForCredential(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]handoffsdk.HandoffInfo, len(views))
	for i, v := range views {
		out[i] = toHandoffInfo(v)
	}
	httpx.WriteJSON(w, http.StatusOK, handoffsdk.ListHandoffsResponse{Handoffs: out})
}

// HandleRevoke handles DELETE /v1/handoffs/{id}
//
//	@Summary		Revoke Handoff Token
//	@Description	Deletes a token. Revoking a redeemed or expired token is a no-op cleanup.
//	@Tags			Handoffs
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Handoff token ID"
//	@Success		204	"Token revoked"
//	@Failure		404	{object}	handoffsdk.ErrorResponse	"not found or not visible"
//	@Router			/v1/handoffs/{id} [delete].
func (h *HandoffsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := resourceID(w, r)
	if !ok {
		return
	}

	if err := h.HandoffService.Revoke(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRedeem handles POST /v1/handoffs/redeem
//
//	@Summary		Redeem Handoff Token
//	@Description	Consumes a raw handoff token and returns the secret exactly once. No authentication: possession of the token is the credential.
//	@Description	Unknown and expired tokens share one message; only the status code differs.
//	@Tags			Handoffs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		handoffsdk.RedeemRequest	true	"Raw token"
//	@Success		200		{object}	handoffsdk.RedeemResponse	"credentialId, secret"
//	@Failure		400		{object}	handoffsdk.ErrorResponse	"malformed token"
//	@Failure		404		{object}	handoffsdk.ErrorResponse	"invalid or expired"
//	@Failure		409		{object}	handoffsdk.ErrorResponse	"already redeemed"
//	@Failure		410		{object}	handoffsdk.ErrorResponse	"invalid or expired"
//	@Failure		429		{object}	handoffsdk.ErrorResponse	"rate limit exceeded"
//	@Router			/v1/handoffs/redeem [post].
func (h *HandoffsHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	var req handoffsdk.RedeemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	out, err := h.HandoffService.Redeem(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, handoffsdk.ErrorCodeInvalidHandoffToken, invalidHandoffMessage)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, handoffsdk.RedeemResponse{
		CredentialID: out.CredentialID,
		Secret:       out.Secret,
	})
}
