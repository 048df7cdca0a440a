package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/service"
	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/httpx"
	"github.com/aussiebroadwan/handoff/pkg/idx"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

// invalidHandoffMessage is shared by unknown and expired tokens so the
// response text does not tell them apart.
const invalidHandoffMessage = "handoff token is invalid or expired"

// writeServiceError maps the service error taxonomy onto status codes.
// Unexpected errors are logged and rendered without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, handoffsdk.ErrorCodeInvalidRequest, detail(err, service.ErrValidation))
	case errors.Is(err, service.ErrGenerationExhausted):
		httpx.WriteError(w, http.StatusUnprocessableEntity, handoffsdk.ErrorCodeGenerationExhausted,
			"password policy could not be satisfied, relax the policy and retry")
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, handoffsdk.ErrorCodeForbidden, detail(err, service.ErrForbidden))
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, handoffsdk.ErrorCodeNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict):
		httpx.WriteError(w, http.StatusConflict, handoffsdk.ErrorCodeConflict, "resource already exists")
	case errors.Is(err, service.ErrCredentialExpired):
		httpx.WriteError(w, http.StatusConflict, handoffsdk.ErrorCodeCredentialExpired, "credential has expired")
	case errors.Is(err, service.ErrAlreadyRedeemed):
		httpx.WriteError(w, http.StatusConflict, handoffsdk.ErrorCodeAlreadyRedeemed, "handoff token has already been redeemed")
	case errors.Is(err, service.ErrExpired):
		httpx.WriteError(w, http.StatusGone, handoffsdk.ErrorCodeInvalidHandoffToken, invalidHandoffMessage)
	case errors.Is(err, service.ErrDecryptionFailed):
		httpx.WriteError(w, http.StatusInternalServerError, handoffsdk.ErrorCodeServerError, "stored secret could not be opened")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, handoffsdk.ErrorCodeServerError, "internal server error")
	}
}

// detail strips the sentinel prefix from a wrapped error message.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == sentinel.Error() {
		return ""
	}
	return msg
}

func badRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, handoffsdk.ErrorCodeInvalidRequest, desc)
}

// actorFrom builds the actor from the verified claims. Routes without
// AuthnMiddleware never call it.
func actorFrom(r *http.Request) (domain.Actor, bool) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok || claims.Subject == "" {
		return domain.Actor{}, false
	}

	role := domain.RoleUser
	if claims.IsAdmin() {
		role = domain.RoleAdmin
	}
	return domain.Actor{ID: claims.Subject, Role: role, EmailDomain: claims.EmailDomain}, true
}

func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, handoffsdk.ErrorCodeInvalidToken, "missing subject")
	}
	return actor, ok
}

// resourceID returns the {id} path value. Anything that is not a ULID cannot
// name a stored row and is answered with 404 straight away.
func resourceID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !idx.Valid(id) {
		writeServiceError(w, r, service.ErrNotFound)
		return "", false
	}
	return id, true
}
