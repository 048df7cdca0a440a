package http

import (
	"time"

	"github.com/aussiebroadwan/handoff/internal/handoff/domain"
	"github.com/aussiebroadwan/handoff/internal/handoff/service"
	"github.com/aussiebroadwan/handoff/pkg/handoffsdk"
)

func toSystemInfo(s domain.System) handoffsdk.SystemInfo {
	return handoffsdk.SystemInfo{
		ID:             s.ID,
		Name:           s.Name,
		Description:    s.Description,
		Tags:           nonNil(s.Tags),
		ScopeType:      string(s.ScopeType),
		OwnerID:        s.OwnerID,
		OrganizationID: s.OrganizationID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func toCredentialInfo(c domain.Credential, now time.Time) handoffsdk.CredentialInfo {
	return handoffsdk.CredentialInfo{
		ID:        c.ID,
		SystemID:  c.SystemID,
		Label:     c.Label,
		Notes:     c.Notes,
		Tags:      nonNil(c.Tags),
		ExpiresAt: c.ExpiresAt,
		Expired:   c.IsExpired(now),
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCredentialInfos(cs []domain.Credential, now time.Time) []handoffsdk.CredentialInfo {
	out := make([]handoffsdk.CredentialInfo, len(cs))
	for i, c := range cs {
		out[i] = toCredentialInfo(c, now)
	}
	return out
}

func toMembershipInfo(m domain.Membership) handoffsdk.MembershipInfo {
	return handoffsdk.MembershipInfo{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           string(m.Role),
		CreatedAt:      m.CreatedAt,
	}
}

func toScopeResponse(v service.ScopeView) handoffsdk.ScopeResponse {
	ms := make([]handoffsdk.MembershipInfo, len(v.Memberships))
	for i, m := range v.Memberships {
		ms[i] = toMembershipInfo(m)
	}
	return handoffsdk.ScopeResponse{
		Type:           string(v.Scope.Type),
		OrganizationID: v.Scope.OrganizationID,
		Memberships:    ms,
	}
}

func toHandoffInfo(v service.HandoffView) handoffsdk.HandoffInfo {
	return handoffsdk.HandoffInfo{
		ID:           v.Token.ID,
		CredentialID: v.Token.CredentialID,
		Status:       string(v.Status),
		ExpiresAt:    v.Token.ExpiresAt,
		CreatedAt:    v.Token.CreatedAt,
		CreatedBy:    v.Token.CreatedBy,
		RedeemedAt:   v.Token.RedeemedAt,
	}
}

func toSecretInput(o handoffsdk.SecretOptions) service.SecretInput {
	return service.SecretInput{
		Mode:   service.SecretMode(o.Mode),
		Preset: o.Preset,
		Length: o.Length,
		Secret: o.Secret,
	}
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
