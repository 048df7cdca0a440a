package jwtx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

var ErrEmptyJWKS = errors.New("jwtx: jwks contains no keys")

// LoadJWKSFile reads a JWKS document from disk.
func LoadJWKSFile(path string) (JWKS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: read jwks file: %w", err)
	}
	return decodeJWKS(data)
}

// FetchJWKS downloads a JWKS document.
func FetchJWKS(ctx context.Context, client *http.Client, url string) (JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: build jwks request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return JWKS{}, fmt.Errorf("jwtx: fetch jwks: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return JWKS{}, fmt.Errorf("jwtx: read jwks body: %w", err)
	}
	return decodeJWKS(data)
}

func decodeJWKS(data []byte) (JWKS, error) {
	var jwks JWKS
	if err := json.Unmarshal(data, &jwks); err != nil {
		return JWKS{}, fmt.Errorf("jwtx: decode jwks: %w", err)
	}
	if len(jwks.Keys) == 0 {
		return JWKS{}, ErrEmptyJWKS
	}
	return jwks, nil
}

// Refresher keeps a KeySet in sync with a remote JWKS endpoint so the
// identity provider can rotate keys without restarting this service.
type Refresher struct {
	Keys     *KeySet
	URL      string
	Client   *http.Client
	Interval time.Duration
	Logger   *slog.Logger
}

// Refresh fetches once and swaps the key set on success.
func (r *Refresher) Refresh(ctx context.Context) error {
	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	jwks, err := FetchJWKS(ctx, client, r.URL)
	if err != nil {
		return err
	}
	return r.Keys.ResetFromJWKS(jwks)
}

// Run refreshes on every tick until ctx is cancelled. Failures keep the
// previous keys.
func (r *Refresher) Run(ctx context.Context) {
	interval := r.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
				r.Logger.Warn("jwks refresh failed, keeping previous keys", "url", r.URL, "error", err)
				continue
			}
			r.Logger.Debug("jwks refreshed", "keys", r.Keys.Len())
		}
	}
}
