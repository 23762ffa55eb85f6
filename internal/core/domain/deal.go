package domain

// DealStage is a kanban column. closed_won and closed_lost are terminal for
// ranking and commission purposes.
type DealStage string

const (
	StageProspecting DealStage = "prospecting"
	StageProposal    DealStage = "proposal"
	StageNegotiation DealStage = "negotiation"
	StageClosedWon   DealStage = "closed_won"
	StageClosedLost  DealStage = "closed_lost"
)

// IsTerminal reports whether a stage closes the deal.
func (s DealStage) IsTerminal() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Valid reports whether s is one of the known stages.
func (s DealStage) Valid() bool {
	switch s {
	case StageProspecting, StageProposal, StageNegotiation, StageClosedWon, StageClosedLost:
		return true
	}
	return false
}

// Deal is a sales opportunity moving through the pipeline.
type Deal struct {
	DealID         string    `json:"dealID"` // Primary Key (UUID)
	OrganizationID string    `json:"organizationID"`
	Company        string    `json:"company"`
	Contact        string    `json:"contact"`
	ValueCents     int64     `json:"valueCents"`  // centavos
	Probability    int       `json:"probability"` // 0-100
	Stage          DealStage `json:"stage"`
	SalespersonID  string    `json:"salespersonID"` // ProfileID
	ProjectID      *string   `json:"projectID"`     // nullable
	Notes          string    `json:"notes"`
	AuditFields
}

// WeightedValueCents is the probability-weighted deal value used for pipeline
// valuation: value * probability / 100, truncated to whole centavos.
func (d *Deal) WeightedValueCents() int64 {
	return d.ValueCents * int64(d.Probability) / 100
}

// CountsTowardPipeline reports whether the deal belongs in the open pipeline.
func (d *Deal) CountsTowardPipeline() bool {
	return !d.Stage.IsTerminal()
}
