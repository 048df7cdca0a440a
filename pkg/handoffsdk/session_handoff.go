package handoffsdk

import (
	"context"
	"net/http"
	"net/url"
)

// IssueHandoff mints a single-use token for a credential.
func (s *Session) IssueHandoff(ctx context.Context, credentialID string) (*HandoffResponse, error) {
	var out HandoffResponse
	if err := s.do(ctx, http.MethodPost, credentialPath(credentialID)+"/handoffs", nil, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ListHandoffs(ctx context.Context, credentialID string) ([]HandoffInfo, error) {
	var out ListHandoffsResponse
	if err := s.do(ctx, http.MethodGet, credentialPath(credentialID)+"/handoffs", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Handoffs, nil
}

// RevokeHandoff deletes a token whether or not it was used.
func (s *Session) RevokeHandoff(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/handoffs/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}
