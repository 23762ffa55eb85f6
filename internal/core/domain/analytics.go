package domain

import "time"

// DREReport is the period income statement (Demonstração de Resultado do
// Exercício). MargemContribuicao and LucroLiquido are always computed from the
// other lines, never stored, so re-deriving over the same transaction set
// yields identical output.
type DREReport struct {
	PeriodStart             time.Time `json:"periodStart"`
	PeriodEnd               time.Time `json:"periodEnd"`
	ReceitaBrutaCents       int64     `json:"receitaBrutaCents"`
	ImpostosCents           int64     `json:"impostosCents"`
	CustosVariaveisCents    int64     `json:"custosVariaveisCents"`
	MargemContribuicaoCents int64     `json:"margemContribuicaoCents"`
	CustosFixosCents        int64     `json:"custosFixosCents"`
	LucroLiquidoCents       int64     `json:"lucroLiquidoCents"`
	MargemLiquidaPercent    float64   `json:"margemLiquidaPercent"` // 0 when no revenue
	HasData                 bool      `json:"hasData"`
}

// ClientProfitability is a per-client profit roll-up over transactions.
type ClientProfitability struct {
	ClientID      string  `json:"clientID"`
	ClientName    string  `json:"clientName"`
	RevenueCents  int64   `json:"revenueCents"`
	CostCents     int64   `json:"costCents"`
	ProfitCents   int64   `json:"profitCents"`
	MarginPercent float64 `json:"marginPercent"` // 0 when no revenue
}

// SalesPerformanceRow aggregates a salesperson's closed deals and provisioned
// commissions for a period.
type SalesPerformanceRow struct {
	SalespersonID         string `json:"salespersonID"`
	Name                  string `json:"name"`
	DealsClosed           int    `json:"dealsClosed"`
	RevenueCents          int64  `json:"revenueCents"`
	CommissionEarnedCents int64  `json:"commissionEarnedCents"`
	AverageTicketCents    int64  `json:"averageTicketCents"` // 0 when no deals
}

// ChurnRiskLevel tiers a client by days remaining to contract end.
type ChurnRiskLevel string

const (
	RiskCritical ChurnRiskLevel = "critical" // under 15 days
	RiskHigh     ChurnRiskLevel = "high"     // under 30 days
	RiskMedium   ChurnRiskLevel = "medium"
)

// ClassifyChurnRisk maps days remaining to a risk tier. Callers exclude
// negative values before classifying; the radar is forward-looking only.
func ClassifyChurnRisk(daysUntilEnd int) ChurnRiskLevel {
	switch {
	case daysUntilEnd < 15:
		return RiskCritical
	case daysUntilEnd < 30:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// ChurnRiskClient is one radar entry.
type ChurnRiskClient struct {
	ClientID        string         `json:"clientID"`
	Name            string         `json:"name"`
	ContractEnd     time.Time      `json:"contractEnd"`
	DaysUntilEnd    int            `json:"daysUntilEnd"`
	RiskLevel       ChurnRiskLevel `json:"riskLevel"`
	MonthlyFeeCents int64          `json:"monthlyFeeCents"`
}

// UtilizationStatus classifies a member's allocation against capacity.
type UtilizationStatus string

const (
	UtilizationOverloaded UtilizationStatus = "overloaded" // over 100%
	UtilizationAttention  UtilizationStatus = "attention"  // 80% and up
	UtilizationHealthy    UtilizationStatus = "healthy"
)

// ClassifyUtilization maps a utilization percentage to its status.
func ClassifyUtilization(percent int) UtilizationStatus {
	switch {
	case percent > 100:
		return UtilizationOverloaded
	case percent >= 80:
		return UtilizationAttention
	default:
		return UtilizationHealthy
	}
}

// WorkloadTask is the drill-down row attached to a member's workload.
type WorkloadTask struct {
	TaskID               string     `json:"taskID"`
	Title                string     `json:"title"`
	EstimatedTimeMinutes int        `json:"estimatedTimeMinutes"`
	Deadline             *time.Time `json:"deadline"`
	ProjectName          string     `json:"projectName"`
}

// MemberWorkload aggregates a team member's active task estimates against
// declared weekly capacity.
type MemberWorkload struct {
	ProfileID           string            `json:"profileID"`
	Name                string            `json:"name"`
	WeeklyCapacityHours int               `json:"weeklyCapacityHours"`
	AllocatedHours      float64           `json:"allocatedHours"`
	UtilizationPercent  int               `json:"utilizationPercent"`
	Status              UtilizationStatus `json:"status"`
	Tasks               []WorkloadTask    `json:"tasks"`
}

// TeamWorkloadReport is the full workload set with derived counts.
type TeamWorkloadReport struct {
	Members         []MemberWorkload `json:"members"`
	OverloadedCount int              `json:"overloadedCount"`
	AttentionCount  int              `json:"attentionCount"`
}

// PipelineStageSummary is a per-stage slice of the open pipeline.
type PipelineStageSummary struct {
	Stage      DealStage `json:"stage"`
	DealCount  int       `json:"dealCount"`
	ValueCents int64     `json:"valueCents"`
}

// PipelineSummary is the probability-weighted valuation of open deals.
type PipelineSummary struct {
	Stages             []PipelineStageSummary `json:"stages"`
	OpenDealCount      int                    `json:"openDealCount"`
	TotalValueCents    int64                  `json:"totalValueCents"`
	WeightedValueCents int64                  `json:"weightedValueCents"`
}
