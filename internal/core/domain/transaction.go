package domain

import "time"

// TransactionType separates income from expense.
type TransactionType string

const (
	Receita TransactionType = "receita"
	Despesa TransactionType = "despesa"
)

// TransactionNature distinguishes operating from non-operating entries.
type TransactionNature string

const (
	NatureOperacional    TransactionNature = "operacional"
	NatureNaoOperacional TransactionNature = "nao_operacional"
)

// CostType classifies an expense for the income statement. Direct costs are
// per-deal and roll up with variable costs.
type CostType string

const (
	CostFixo     CostType = "fixo"
	CostVariavel CostType = "variavel"
	CostDireto   CostType = "direto"
)

// IsVariable reports whether the cost type counts toward variable costs in
// the DRE rollup.
func (c CostType) IsVariable() bool {
	return c == CostVariavel || c == CostDireto
}

// TransactionStatus tracks settlement.
type TransactionStatus string

const (
	StatusPendente  TransactionStatus = "pendente"
	StatusPago      TransactionStatus = "pago"
	StatusCancelado TransactionStatus = "cancelado"
)

// Well-known categories the analytics engine keys on.
const (
	CategoryImpostos  = "Impostos"
	CategoryComissoes = "Comissões de Vendas"
)

// Transaction is the atomic unit of every financial aggregate. DRE,
// profitability and sales performance all derive from filtered sums over this
// collection. Values are integer centavos.
type Transaction struct {
	TransactionID  string            `json:"transactionID"` // Primary Key (UUID)
	OrganizationID string            `json:"organizationID"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	ValueCents     int64             `json:"valueCents"` // centavos, always positive
	Type           TransactionType   `json:"type"`
	Nature         TransactionNature `json:"nature"`
	CostType       CostType          `json:"costType"`
	IsRepasse      bool              `json:"isRepasse"` // marks pass-through amounts; aggregates count them like any other line
	Date           time.Time         `json:"date"`
	CompetenceDate time.Time         `json:"competenceDate"`
	Status         TransactionStatus `json:"status"`
	ProjectID      *string           `json:"projectID"`     // nullable
	SalespersonID  *string           `json:"salespersonID"` // nullable
	DealID         *string           `json:"dealID"`        // nullable; set on provisioned commissions
	Notes          string            `json:"notes"`
	AuditFields
}
