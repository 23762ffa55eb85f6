package domain

// Organization is the root scope for every other entity; all repository
// queries are filtered by its id.
type Organization struct {
	OrganizationID        string `json:"organizationID"`        // Primary Key (UUID)
	Name                  string `json:"name"`
	TargetNetRevenueCents int64  `json:"targetNetRevenueCents"` // monthly net-revenue goal, centavos
	FixedCostCeilingCents int64  `json:"fixedCostCeilingCents"` // budgeted ceiling for fixed costs, centavos
	AuditFields
}
