package domain

// ProjectStatus tracks a project's lifecycle.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "ativo"
	ProjectPaused   ProjectStatus = "pausado"
	ProjectFinished ProjectStatus = "concluido"
)

// Project ties tasks and transactions back to a client. Transactions that
// carry a project id are attributed to that project's client for
// profitability.
type Project struct {
	ProjectID      string        `json:"projectID"` // Primary Key (UUID)
	OrganizationID string        `json:"organizationID"`
	ClientID       string        `json:"clientID"`
	Name           string        `json:"name"`
	Status         ProjectStatus `json:"status"`
	AuditFields
}
