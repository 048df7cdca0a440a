/*
Package handoffsdk is a Go client for the handoff service HTTP API.

# SDKClient vs Session

SDKClient covers the unauthenticated endpoints: health checks and handoff
redemption. Session wraps an access token issued by the identity provider and
covers everything else.

	client := handoffsdk.NewSDKClient("https://handoff.example.com")

	// Anyone holding the raw token may redeem it, exactly once.
	secret, err := client.Redeem(ctx, rawToken)

	session := client.NewSession(accessToken)

	sys, err := session.CreateSystem(ctx, handoffsdk.SystemRequest{Name: "payroll-db"})
	created, err := session.CreateCredential(ctx, handoffsdk.CreateCredentialRequest{
		SystemID:  sys.ID,
		Label:     "payroll admin",
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	})
	handoff, err := session.IssueHandoff(ctx, created.Credential.ID)

The Session does not refresh tokens. Identity is owned by the external
provider; create a new Session when the token rotates.

# Error Handling

Every non-2xx response is returned as *APIError carrying the HTTP status and
the error code from the body:

	_, err := client.Redeem(ctx, rawToken)
	var apiErr *handoffsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		// already redeemed
	}

# Thread Safety

SDKClient and Session hold no mutable state and are safe for concurrent use.
*/
package handoffsdk
