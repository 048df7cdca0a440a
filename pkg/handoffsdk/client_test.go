package handoffsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/stretchr/testify/require"
)

func TestRedeem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/handoffs/redeem", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var req handoffsdk.RedeemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		if req.Token != "good-token-value" {
			w.WriteHeader(http.StatusGone)
			_, _ = w.Write([]byte(`{"error":"invalid_handoff_token","error_description":"handoff token is invalid or expired"}`))
			return
		}
		_, _ = w.Write([]byte(`{"credentialId":"c1","secret":"hunter22"}`))
	}))
	defer srv.Close()

	client := handoffsdk.NewSDKClient(srv.URL + "/")

	t.Run("success", func(t *testing.T) {
		out, err := client.Redeem(context.Background(), "good-token-value")
		require.NoError(t, err)
		require.Equal(t, "hunter22", out.Secret)
	})

	t.Run("typed error", func(t *testing.T) {
		_, err := client.Redeem(context.Background(), "stale-token-value")

		var apiErr *handoffsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusGone, apiErr.StatusCode)
		require.Equal(t, handoffsdk.ErrorCodeInvalidHandoffToken, apiErr.Code)
	})
}

func TestSessionSendsBearerAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))
		require.Equal(t, "/v1/credentials", r.URL.Path)
		require.Equal(t, "expired", r.URL.Query().Get("status"))
		require.Equal(t, "7", r.URL.Query().Get("expiresInDays"))
		require.False(t, r.URL.Query().Has("tag"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"credentials":[{"id":"c1","label":"x"}]}`))
	}))
	defer srv.Close()

	session := handoffsdk.NewSDKClient(srv.URL).NewSession("at-123")
	creds, err := session.ListCredentials(context.Background(), handoffsdk.ListCredentialsOptions{
		Status: "expired", ExpiresInDays: 7,
	})
	require.NoError(t, err)
	require.Len(t, creds, 1)
	require.Equal(t, "c1", creds[0].ID)
}

func TestNonJSONErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := handoffsdk.NewSDKClient(srv.URL).GetLiveness(context.Background())

	var apiErr *handoffsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, handoffsdk.ErrorCodeServerError, apiErr.Code)
}
