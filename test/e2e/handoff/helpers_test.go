package handoff_test

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/handoff/pkg/cryptox"
	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
	"github.com/aussiebroadwan/handoff/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Shared setup for the handoff service end-to-end tests: the image is built
 * once, each test gets its own container, and access tokens are signed with
 * a throwaway identity provider key whose JWKS is copied into the container.
 */

const (
	testImageName = "handoff-service-test:latest"

	idpIssuer   = "https://idp.e2e.test"
	idpKeyID    = "e2e-idp-key"
	jwksPath    = "/etc/handoff/jwks.json"
	redeemBase  = "https://handoff.e2e.test"
	containerDB = "/data/handoff.db"
)

// identityProvider stands in for the external IdP that issues access tokens.
type identityProvider struct {
	priv ed25519.PrivateKey
	jwks []byte
}

func newIdentityProvider(t *testing.T) *identityProvider {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	jwk, err := jwtx.NewJWK(idpKeyID, jwtx.AlgEdDSA, pub)
	require.NoError(t, err)
	jwks, err := json.Marshal(jwtx.JWKS{Keys: []jwtx.JWK{jwk}})
	require.NoError(t, err)

	return &identityProvider{priv: priv, jwks: jwks}
}

// token mints an access token for subject.
func (p *identityProvider) token(t *testing.T, subject, role string) string {
	t.Helper()

	claims := jwtx.NewClaims(subject, role, "e2e.test", idpIssuer, nil, 10*time.Minute, time.Now())
	tok := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	tok.Header["kid"] = idpKeyID

	signed, err := tok.SignedString(p.priv)
	require.NoError(t, err)
	return signed
}

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Handoff Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Handoff Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/handoff/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

type containerOptions struct {
	// defaultRateLimits keeps the production limits instead of relaxing them.
	defaultRateLimits bool
	tokenTTL          string
	env               map[string]string
}

// setupHandoffContainer starts the service and returns its base URL and the
// identity provider it trusts.
func setupHandoffContainer(t *testing.T, opts containerOptions) (string, *identityProvider, func()) {
	t.Helper()
	ctx := context.Background()

	idp := newIdentityProvider(t)
	dataKey, err := cryptox.GenerateKey()
	require.NoError(t, err)

	env := map[string]string{
		"HANDOFF_DATA_KEY":      dataKey,
		"HANDOFF_DATABASE_FILE": containerDB,
		"HANDOFF_BASE_URL":      redeemBase,
		"HANDOFF_JWKS_FILE":     jwksPath,
		"HANDOFF_JWT_ALGORITHM": jwtx.AlgEdDSA,
		"HANDOFF_JWT_ISSUER":    idpIssuer,
		"ENV":                   "test",
		"LOG_LEVEL":             "info",
		"LOG_FORMAT":            "json",
	}
	if opts.tokenTTL != "" {
		env["HANDOFF_TOKEN_TTL"] = opts.tokenTTL
	}
	if !opts.defaultRateLimits {
		// Tests make many rapid requests which would otherwise hit the strict production limits
		env["RATELIMIT_STRICT_REQUESTS"] = "1000"
		env["RATELIMIT_STRICT_WINDOW_SEC"] = "60"
		env["RATELIMIT_STRICT_BURST"] = "1000"
		env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
		env["RATELIMIT_MODERATE_BURST"] = "1000"
	}
	for k, v := range opts.env {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		Files: []testcontainers.ContainerFile{{
			Reader:            bytes.NewReader(idp.jwks),
			ContainerFilePath: jwksPath,
			FileMode:          0o644,
		}},
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, idp, cleanup
}

// login returns a session for subject.
func login(t *testing.T, client *handoffsdk.SDKClient, idp *identityProvider, subject, role string) *handoffsdk.Session {
	t.Helper()
	return client.NewSession(idp.token(t, subject, role))
}

// createCredential registers a system and one generated credential.
func createCredential(t *testing.T, session *handoffsdk.Session, systemName string) *handoffsdk.CredentialSecretResponse {
	t.Helper()
	ctx := t.Context()

	sys, err := session.CreateSystem(ctx, handoffsdk.SystemRequest{Name: systemName, Tags: []string{"e2e"}})
	require.NoError(t, err)

	created, err := session.CreateCredential(ctx, handoffsdk.CreateCredentialRequest{
		SystemID:  sys.ID,
		Label:     "service account",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Secret)
	return created
}

// assertAPIError checks err is an *APIError with the given status and code.
func assertAPIError(t *testing.T, err error, status int, code string) *handoffsdk.APIError {
	t.Helper()
	require.Error(t, err)

	var apiErr *handoffsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected *handoffsdk.APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	require.Equal(t, code, apiErr.Code, apiErr.Error())
	return apiErr
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *handoffsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
