package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/handoff/pkg/httpx"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]jwtx.Claims

func (s stubVerifier) Verify(token string) (jwtx.Claims, error) {
	c, ok := s[token]
	if !ok {
		return jwtx.Claims{}, errors.New("bad token")
	}
	return c, nil
}

func TestAuthnMiddleware(t *testing.T) {
	var c jwtx.Claims
	c.Subject = "user-1"
	c.Role = jwtx.RoleUser
	v := stubVerifier{"good": c}

	var seen jwtx.Claims
	h := httpx.AuthnMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepted token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "user-1", seen.Subject)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner"}, order)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Label string `json:"label"`
	}

	t.Run("ok", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"label":"x"}`))
		require.NoError(t, httpx.DecodeJSON(req, &b))
		require.Equal(t, "x", b.Label)
	})

	t.Run("unknown field", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"labl":"x"}`))
		require.Error(t, httpx.DecodeJSON(req, &b))
	})

	t.Run("empty", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
		require.Error(t, httpx.DecodeJSON(req, &b))
	})
}

func TestWriteErrorNoCache(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusNotFound, "not_found", "missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"not_found","error_description":"missing"}`, rec.Body.String())
}
