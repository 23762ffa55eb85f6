package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// Every monetary figure below is integer centavos. The consuming layer
// divides by 100 and applies locale formatting; the core never pre-formats
// currency strings.

// DREResponse is the income-statement payload for a period.
type DREResponse struct {
	PeriodStart             string  `json:"periodStart"`
	PeriodEnd               string  `json:"periodEnd"`
	ReceitaBrutaCents       int64   `json:"receitaBrutaCents"`
	ImpostosCents           int64   `json:"impostosCents"`
	CustosVariaveisCents    int64   `json:"custosVariaveisCents"`
	MargemContribuicaoCents int64   `json:"margemContribuicaoCents"`
	CustosFixosCents        int64   `json:"custosFixosCents"`
	LucroLiquidoCents       int64   `json:"lucroLiquidoCents"`
	MargemLiquidaPercent    float64 `json:"margemLiquidaPercent"`
	HasData                 bool    `json:"hasData"`
}

// ToDREResponse converts a domain.DREReport to its DTO.
func ToDREResponse(r *domain.DREReport) DREResponse {
	return DREResponse{
		PeriodStart:             r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:               r.PeriodEnd.Format("2006-01-02"),
		ReceitaBrutaCents:       r.ReceitaBrutaCents,
		ImpostosCents:           r.ImpostosCents,
		CustosVariaveisCents:    r.CustosVariaveisCents,
		MargemContribuicaoCents: r.MargemContribuicaoCents,
		CustosFixosCents:        r.CustosFixosCents,
		LucroLiquidoCents:       r.LucroLiquidoCents,
		MargemLiquidaPercent:    r.MargemLiquidaPercent,
		HasData:                 r.HasData,
	}
}

// ClientProfitabilityResponse is one per-client profitability row.
type ClientProfitabilityResponse struct {
	ClientID      string  `json:"clientID"`
	ClientName    string  `json:"clientName"`
	RevenueCents  int64   `json:"revenueCents"`
	CostCents     int64   `json:"costCents"`
	ProfitCents   int64   `json:"profitCents"`
	MarginPercent float64 `json:"marginPercent"`
}

// ToProfitabilityResponse converts the full profitability set.
func ToProfitabilityResponse(rows []domain.ClientProfitability) []ClientProfitabilityResponse {
	res := make([]ClientProfitabilityResponse, len(rows))
	for i, row := range rows {
		res[i] = ClientProfitabilityResponse{
			ClientID:      row.ClientID,
			ClientName:    row.ClientName,
			RevenueCents:  row.RevenueCents,
			CostCents:     row.CostCents,
			ProfitCents:   row.ProfitCents,
			MarginPercent: row.MarginPercent,
		}
	}
	return res
}

// SalesPerformanceResponse wraps the ranked salesperson rows for a period.
type SalesPerformanceResponse struct {
	PeriodStart string                    `json:"periodStart"`
	PeriodEnd   string                    `json:"periodEnd"`
	Ranking     []SalesPerformanceRowResp `json:"ranking"`
}

// SalesPerformanceRowResp is one ranked salesperson.
type SalesPerformanceRowResp struct {
	SalespersonID         string `json:"salespersonID"`
	Name                  string `json:"name"`
	DealsClosed           int    `json:"dealsClosed"`
	RevenueCents          int64  `json:"revenueCents"`
	CommissionEarnedCents int64  `json:"commissionEarnedCents"`
	AverageTicketCents    int64  `json:"averageTicketCents"`
}

// ToSalesPerformanceResponse converts ranked rows plus their period.
func ToSalesPerformanceResponse(rows []domain.SalesPerformanceRow, from, to time.Time) SalesPerformanceResponse {
	ranking := make([]SalesPerformanceRowResp, len(rows))
	for i, row := range rows {
		ranking[i] = SalesPerformanceRowResp{
			SalespersonID:         row.SalespersonID,
			Name:                  row.Name,
			DealsClosed:           row.DealsClosed,
			RevenueCents:          row.RevenueCents,
			CommissionEarnedCents: row.CommissionEarnedCents,
			AverageTicketCents:    row.AverageTicketCents,
		}
	}
	return SalesPerformanceResponse{
		PeriodStart: from.Format("2006-01-02"),
		PeriodEnd:   to.Format("2006-01-02"),
		Ranking:     ranking,
	}
}

// ChurnRadarResponse wraps the forward-looking churn entries.
type ChurnRadarResponse struct {
	HorizonDays int                   `json:"horizonDays"`
	Clients     []ChurnRiskClientResp `json:"clients"`
}

// ChurnRiskClientResp is one radar entry.
type ChurnRiskClientResp struct {
	ClientID        string                `json:"clientID"`
	Name            string                `json:"name"`
	ContractEnd     string                `json:"contractEnd"`
	DaysUntilEnd    int                   `json:"daysUntilEnd"`
	RiskLevel       domain.ChurnRiskLevel `json:"riskLevel"`
	MonthlyFeeCents int64                 `json:"monthlyFeeCents"`
}

// ToChurnRadarResponse converts radar entries.
func ToChurnRadarResponse(rows []domain.ChurnRiskClient, horizonDays int) ChurnRadarResponse {
	clients := make([]ChurnRiskClientResp, len(rows))
	for i, row := range rows {
		clients[i] = ChurnRiskClientResp{
			ClientID:        row.ClientID,
			Name:            row.Name,
			ContractEnd:     row.ContractEnd.Format("2006-01-02"),
			DaysUntilEnd:    row.DaysUntilEnd,
			RiskLevel:       row.RiskLevel,
			MonthlyFeeCents: row.MonthlyFeeCents,
		}
	}
	return ChurnRadarResponse{HorizonDays: horizonDays, Clients: clients}
}

// WorkloadResponse wraps the team workload report.
type WorkloadResponse struct {
	Members         []MemberWorkloadResp `json:"members"`
	OverloadedCount int                  `json:"overloadedCount"`
	AttentionCount  int                  `json:"attentionCount"`
}

// MemberWorkloadResp is one member's utilization with task drill-down.
type MemberWorkloadResp struct {
	ProfileID           string                   `json:"profileID"`
	Name                string                   `json:"name"`
	WeeklyCapacityHours int                      `json:"weeklyCapacityHours"`
	AllocatedHours      float64                  `json:"allocatedHours"`
	UtilizationPercent  int                      `json:"utilizationPercent"`
	Status              domain.UtilizationStatus `json:"status"`
	Tasks               []WorkloadTaskResp       `json:"tasks"`
}

// WorkloadTaskResp is a drill-down row.
type WorkloadTaskResp struct {
	TaskID               string     `json:"taskID"`
	Title                string     `json:"title"`
	EstimatedTimeMinutes int        `json:"estimatedTimeMinutes"`
	Deadline             *time.Time `json:"deadline"`
	ProjectName          string     `json:"projectName"`
}

// ToWorkloadResponse converts the workload report.
func ToWorkloadResponse(report *domain.TeamWorkloadReport) WorkloadResponse {
	members := make([]MemberWorkloadResp, len(report.Members))
	for i, m := range report.Members {
		tasks := make([]WorkloadTaskResp, len(m.Tasks))
		for j, t := range m.Tasks {
			tasks[j] = WorkloadTaskResp{
				TaskID:               t.TaskID,
				Title:                t.Title,
				EstimatedTimeMinutes: t.EstimatedTimeMinutes,
				Deadline:             t.Deadline,
				ProjectName:          t.ProjectName,
			}
		}
		members[i] = MemberWorkloadResp{
			ProfileID:           m.ProfileID,
			Name:                m.Name,
			WeeklyCapacityHours: m.WeeklyCapacityHours,
			AllocatedHours:      m.AllocatedHours,
			UtilizationPercent:  m.UtilizationPercent,
			Status:              m.Status,
			Tasks:               tasks,
		}
	}
	return WorkloadResponse{
		Members:         members,
		OverloadedCount: report.OverloadedCount,
		AttentionCount:  report.AttentionCount,
	}
}

// PipelineResponse is the probability-weighted open pipeline valuation.
type PipelineResponse struct {
	Stages             []PipelineStageResp `json:"stages"`
	OpenDealCount      int                 `json:"openDealCount"`
	TotalValueCents    int64               `json:"totalValueCents"`
	WeightedValueCents int64               `json:"weightedValueCents"`
}

// PipelineStageResp is one stage slice.
type PipelineStageResp struct {
	Stage      domain.DealStage `json:"stage"`
	DealCount  int              `json:"dealCount"`
	ValueCents int64            `json:"valueCents"`
}

// ToPipelineResponse converts the pipeline summary.
func ToPipelineResponse(s *domain.PipelineSummary) PipelineResponse {
	stages := make([]PipelineStageResp, len(s.Stages))
	for i, st := range s.Stages {
		stages[i] = PipelineStageResp{Stage: st.Stage, DealCount: st.DealCount, ValueCents: st.ValueCents}
	}
	return PipelineResponse{
		Stages:             stages,
		OpenDealCount:      s.OpenDealCount,
		TotalValueCents:    s.TotalValueCents,
		WeightedValueCents: s.WeightedValueCents,
	}
}

// DashboardResponse bundles every analytics read-model for the overview page.
type DashboardResponse struct {
	DRE              DREResponse                   `json:"dre"`
	Profitability    []ClientProfitabilityResponse `json:"profitability"`
	SalesPerformance SalesPerformanceResponse      `json:"salesPerformance"`
	ChurnRadar       ChurnRadarResponse            `json:"churnRadar"`
	Workload         WorkloadResponse              `json:"workload"`
	Pipeline         PipelineResponse              `json:"pipeline"`
}
