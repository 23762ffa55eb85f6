package dto

import (
	"time"

	"github.com/agenciahub/agency_ops_app/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Description    string                   `json:"description" binding:"required"`
	Category       string                   `json:"category" binding:"required"`
	ValueCents     int64                    `json:"valueCents" binding:"required,gt=0"`
	Type           domain.TransactionType   `json:"type" binding:"required,oneof=receita despesa"`
	Nature         domain.TransactionNature `json:"nature" binding:"omitempty,oneof=operacional nao_operacional"`
	CostType       domain.CostType          `json:"costType" binding:"omitempty,oneof=fixo variavel direto"`
	IsRepasse      bool                     `json:"isRepasse"`
	Date           time.Time                `json:"date" binding:"required"`
	CompetenceDate *time.Time               `json:"competenceDate"`
	Status         domain.TransactionStatus `json:"status" binding:"omitempty,oneof=pendente pago cancelado"`
	ProjectID      *string                  `json:"projectID"`
	SalespersonID  *string                  `json:"salespersonID"`
	Notes          string                   `json:"notes"`
}

// UpdateTransactionRequest defines the fields allowed for updating a
// transaction.
type UpdateTransactionRequest struct {
	Description *string                   `json:"description"`
	Category    *string                   `json:"category"`
	ValueCents  *int64                    `json:"valueCents" binding:"omitempty,gt=0"`
	Status      *domain.TransactionStatus `json:"status" binding:"omitempty,oneof=pendente pago cancelado"`
	Date        *time.Time                `json:"date"`
	Notes       *string                   `json:"notes"`
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID  string                   `json:"transactionID"`
	Description    string                   `json:"description"`
	Category       string                   `json:"category"`
	ValueCents     int64                    `json:"valueCents"`
	Type           domain.TransactionType   `json:"type"`
	Nature         domain.TransactionNature `json:"nature"`
	CostType       domain.CostType          `json:"costType"`
	IsRepasse      bool                     `json:"isRepasse"`
	Date           time.Time                `json:"date"`
	CompetenceDate time.Time                `json:"competenceDate"`
	Status         domain.TransactionStatus `json:"status"`
	ProjectID      *string                  `json:"projectID"`
	SalespersonID  *string                  `json:"salespersonID"`
	DealID         *string                  `json:"dealID"`
	Notes          string                   `json:"notes"`
	CreatedAt      time.Time                `json:"createdAt"`
	LastUpdatedAt  time.Time                `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  t.TransactionID,
		Description:    t.Description,
		Category:       t.Category,
		ValueCents:     t.ValueCents,
		Type:           t.Type,
		Nature:         t.Nature,
		CostType:       t.CostType,
		IsRepasse:      t.IsRepasse,
		Date:           t.Date,
		CompetenceDate: t.CompetenceDate,
		Status:         t.Status,
		ProjectID:      t.ProjectID,
		SalespersonID:  t.SalespersonID,
		DealID:         t.DealID,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		LastUpdatedAt:  t.LastUpdatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type      string `form:"type"`
	Category  string `form:"category"`
	ProjectID string `form:"projectID"`
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions with the cursor for
// the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
