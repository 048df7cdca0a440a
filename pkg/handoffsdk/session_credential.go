package handoffsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateCredential stores a credential. The response holds the only copy of
// the plaintext secret.
func (s *Session) CreateCredential(ctx context.Context, req CreateCredentialRequest) (*CredentialSecretResponse, error) {
	var out CredentialSecretResponse
	if err := s.do(ctx, http.MethodPost, "/v1/credentials", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetCredential(ctx context.Context, id string) (*CredentialInfo, error) {
	var out CredentialInfo
	if err := s.do(ctx, http.MethodGet, credentialPath(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListCredentials(ctx context.Context, opts ListCredentialsOptions) ([]CredentialInfo, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("q", opts.Query)
	set("systemId", opts.SystemID)
	set("tag", opts.Tag)
	set("status", opts.Status)
	set("sort", opts.Sort)
	if opts.ExpiresInDays > 0 {
		q.Set("expiresInDays", strconv.Itoa(opts.ExpiresInDays))
	}

	path := "/v1/credentials"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out ListCredentialsResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Credentials, nil
}

func (s *Session) UpdateCredential(ctx context.Context, id string, req UpdateCredentialRequest) (*CredentialInfo, error) {
	var out CredentialInfo
	if err := s.do(ctx, http.MethodPatch, credentialPath(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteCredential(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, credentialPath(id), nil, nil, http.StatusNoContent)
}

// RegenerateSecret replaces the secret and returns the new plaintext once.
func (s *Session) RegenerateSecret(ctx context.Context, id string, opts SecretOptions) (*CredentialSecretResponse, error) {
	var out CredentialSecretResponse
	if err := s.do(ctx, http.MethodPost, credentialPath(id)+"/regenerate", opts, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RevealSecret(ctx context.Context, id string) (*RevealResponse, error) {
	var out RevealResponse
	if err := s.do(ctx, http.MethodPost, credentialPath(id)+"/reveal", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) BatchCreateCredentials(ctx context.Context, req BatchRequest) ([]CredentialInfo, error) {
	var out BatchResponse
	if err := s.do(ctx, http.MethodPost, "/v1/credentials/batch", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return out.Credentials, nil
}

func credentialPath(id string) string {
	return "/v1/credentials/" + url.PathEscape(id)
}
