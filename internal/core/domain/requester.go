package domain

// Requester is the resolved identity of the caller, extracted from the JWT by
// the auth middleware and threaded explicitly through every service call. The
// core never reads identity from ambient state.
type Requester struct {
	ProfileID      string
	OrganizationID string
	Roles          []string
}

// IsAdmin reports whether the requester carries the admin role.
func (r Requester) IsAdmin() bool {
	for _, role := range r.Roles {
		if role == string(RoleAdmin) {
			return true
		}
	}
	return false
}
