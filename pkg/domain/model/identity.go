package model

import "github.com/secmon-lab/scanhook/pkg/domain/types"

// UserData is the identity API's answer for a session identifier.
type UserData struct {
	Email         types.Email         `json:"email"`
	Name          string              `json:"name"`
	PictureLink   string              `json:"picture_link,omitempty"`
	ProviderToken types.ProviderToken `json:"github_token,omitempty" masq:"secret"`
}

// VerifiedIdentity is derived per call from a session identifier and must
// not outlive the run it drives.
type VerifiedIdentity struct {
	Email         types.Email
	Name          string
	PictureLink   string
	SessionID     types.SessionID     `masq:"secret"`
	ProviderToken types.ProviderToken `masq:"secret"`
}

// CanDrive reports whether the identity carries a usable provider token.
func (x *VerifiedIdentity) CanDrive() bool {
	return x != nil && x.ProviderToken != "" && x.SessionID != ""
}

// Public returns a copy without session identifier and provider token.
func (x *VerifiedIdentity) Public() *VerifiedIdentity {
	if x == nil {
		return nil
	}
	return &VerifiedIdentity{
		Email:       x.Email,
		Name:        x.Name,
		PictureLink: x.PictureLink,
	}
}
