package handoffsdk

import (
	"context"
	"net/http"
	"net/url"
)

func (s *Session) CreateSystem(ctx context.Context, req SystemRequest) (*SystemInfo, error) {
	var out SystemInfo
	if err := s.do(ctx, http.MethodPost, "/v1/systems", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetSystem(ctx context.Context, id string) (*SystemInfo, error) {
	var out SystemInfo
	if err := s.do(ctx, http.MethodGet, "/v1/systems/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListSystems returns visible systems, optionally filtered by name or tag.
func (s *Session) ListSystems(ctx context.Context, query string) ([]SystemInfo, error) {
	path := "/v1/systems"
	if query != "" {
		path += "?" + url.Values{"q": {query}}.Encode()
	}

	var out ListSystemsResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Systems, nil
}

func (s *Session) UpdateSystem(ctx context.Context, id string, req UpdateSystemRequest) (*SystemInfo, error) {
	var out SystemInfo
	if err := s.do(ctx, http.MethodPut, "/v1/systems/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteSystem(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/systems/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}
