package handoffsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session performs authenticated requests with a fixed bearer token.
type Session struct {
	client      *SDKClient
	accessToken string
}

func (s *Session) do(ctx context.Context, method, path string, body, target any, expectedStatus int) error {
	return s.client.do(ctx, s.accessToken, method, path, body, target, expectedStatus)
}

// ============================================================================
// Scope & Organizations
// ============================================================================

// GetScope returns the effective scope and memberships of the caller.
func (s *Session) GetScope(ctx context.Context) (*ScopeResponse, error) {
	var out ScopeResponse
	if err := s.do(ctx, http.MethodGet, "/v1/scope", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetScope switches the active organization; "" returns to personal.
func (s *Session) SetScope(ctx context.Context, organizationID string) (*ScopeResponse, error) {
	var out ScopeResponse
	req := SetScopeRequest{OrganizationID: organizationID}
	if err := s.do(ctx, http.MethodPut, "/v1/scope", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CreateOrganization(ctx context.Context, name string) (*OrganizationInfo, error) {
	var out OrganizationInfo
	req := CreateOrganizationRequest{Name: name}
	if err := s.do(ctx, http.MethodPost, "/v1/organizations", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteOrganization(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, "/v1/organizations/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (s *Session) AddMember(ctx context.Context, orgID string, req AddMemberRequest) (*MembershipInfo, error) {
	var out MembershipInfo
	path := "/v1/organizations/" + url.PathEscape(orgID) + "/members"
	if err := s.do(ctx, http.MethodPost, path, req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) RemoveMember(ctx context.Context, orgID, userID string) error {
	path := "/v1/organizations/" + url.PathEscape(orgID) + "/members/" + url.PathEscape(userID)
	return s.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}
