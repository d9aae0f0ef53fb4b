package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a client-facing AR document. Status determines which rollup
// bucket it lands in: outstanding while billed-but-unsettled, paid once
// settled, ignored by AR while still in the approval chain.
type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CompanyId     string          `gorm:"index;not null" json:"company_id"`
	JobId         int             `gorm:"index;not null" json:"job_id" binding:"required"`
	ClientId      int             `gorm:"index;default:null" json:"client_id"`
	InvoiceNumber string          `gorm:"size:100;not null" json:"invoice_number"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CurrentStatus InvoiceStatus   `gorm:"type:enum('Draft','PMPending','AccountantPending','OwnerPending','Approved','InDraw','Paid','Voided');default:Draft" json:"current_status"`
	InvoiceDate   time.Time       `gorm:"not null" json:"invoice_date"`
	DueDate       *time.Time      `gorm:"default:null" json:"due_date"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

type NewInvoice struct {
	JobId         int             `json:"job_id" binding:"required"`
	ClientId      int             `json:"client_id"`
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	CurrentStatus InvoiceStatus   `json:"current_status"`
	InvoiceDate   time.Time       `json:"invoice_date" binding:"required"`
	DueDate       *time.Time      `json:"due_date"`
	Notes         string          `json:"notes"`
}

func CreateInvoice(ctx context.Context, companyId string, input *NewInvoice) (*Invoice, error) {
	if err := utils.ValidateResourceId[Job](ctx, companyId, input.JobId); err != nil {
		return nil, &utils.NotFoundError{Entity: "job", Id: input.JobId}
	}
	if input.Amount.IsNegative() {
		return nil, utils.NewValidationError("amount", "must not be negative")
	}

	status := input.CurrentStatus
	if status == "" {
		status = InvoiceStatusDraft
	}
	invoice := Invoice{
		CompanyId:     companyId,
		JobId:         input.JobId,
		ClientId:      input.ClientId,
		InvoiceNumber: input.InvoiceNumber,
		Amount:        input.Amount,
		CurrentStatus: status,
		InvoiceDate:   input.InvoiceDate,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&invoice).Error; err != nil {
		return nil, err
	}
	if err := utils.InvalidateKPICache(companyId); err != nil {
		return nil, err
	}
	return &invoice, nil
}
