package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/aussiebroadwan/handoff/pkg/slogx"
)

// AuthnMiddleware admits requests carrying an identity provider access token
// the verifier accepts. The verified claims are placed in the context and
// the request logger is tagged with the actor.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				desc := "token verification failed"
				if errors.Is(err, jwtx.ErrExpired) {
					desc = "token expired"
				}
				log.Warn("bearer token rejected", slog.Any("error", err))
				writeBearerError(w, desc)
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			ctx = slogx.WithContext(ctx, log.With(slog.String("actor_id", claims.Subject)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential from an Authorization header. The
// scheme is case-insensitive (RFC 6750 section 2.1).
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
