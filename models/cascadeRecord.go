package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CascadeRecord is the audit trail of an applied approval cascade: which
// entities moved, by how much, and from what values. Enough context to replay
// the cascade manually if anything downstream goes wrong.
type CascadeRecord struct {
	ID                  int             `gorm:"primary_key" json:"id"`
	CompanyId           string          `gorm:"index;not null" json:"company_id"`
	ChangeOrderId       int             `gorm:"index;not null" json:"change_order_id"`
	ContractId          int             `gorm:"not null" json:"contract_id"`
	BudgetLineId        int             `gorm:"not null" json:"budget_line_id"`
	DrawRequestId       int             `gorm:"not null" json:"draw_request_id"`
	Delta               decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"delta"`
	ContractValueBefore decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"contract_value_before"`
	ContractValueAfter  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"contract_value_after"`
	CommittedBefore     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"committed_before"`
	CommittedAfter      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"committed_after"`
	ActualBefore        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"actual_before"`
	ActualAfter         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"actual_after"`
	DrawDueBefore       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"draw_due_before"`
	DrawDueAfter        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"draw_due_after"`
	AppliedBy           int             `gorm:"default:null" json:"applied_by"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
