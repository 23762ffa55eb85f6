package domain

import "time"

// APIToken authenticates machine callers, such as the deal-closure webhook
// that triggers commission provisioning. Only the SHA256 hash is stored.
type APIToken struct {
	ID             string     `json:"id"`
	ProfileID      string     `json:"profileID"`
	OrganizationID string     `json:"organizationID"`
	Name           string     `json:"name"`
	TokenHash      string     `json:"-"`
	LastUsedAt     *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"`
}

// IsExpired checks whether the token has passed its expiry.
func (t *APIToken) IsExpired() bool {
	if t.ExpiresAt == nil {
		return false
	}
	return t.ExpiresAt.Before(time.Now())
}
