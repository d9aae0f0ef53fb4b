package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a vendor-facing AP document. BalanceDue is what remains unpaid and
// is the figure summed into the AP balance KPI; paid and voided bills drop out
// of that rollup entirely.
type Bill struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CompanyId     string          `gorm:"index;not null" json:"company_id"`
	VendorId      int             `gorm:"index;not null" json:"vendor_id" binding:"required"`
	JobId         int             `gorm:"index;not null" json:"job_id" binding:"required"`
	BillNumber    string          `gorm:"size:100;not null" json:"bill_number"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	BalanceDue    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"balance_due"`
	CurrentStatus BillStatus      `gorm:"type:enum('Draft','Open','Partial Paid','Paid','Voided');default:Draft" json:"current_status"`
	BillDate      time.Time       `gorm:"not null" json:"bill_date"`
	DueDate       *time.Time      `gorm:"default:null" json:"due_date"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

type NewBill struct {
	VendorId      int             `json:"vendor_id" binding:"required"`
	JobId         int             `json:"job_id" binding:"required"`
	BillNumber    string          `json:"bill_number" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	CurrentStatus BillStatus      `json:"current_status"`
	BillDate      time.Time       `json:"bill_date" binding:"required"`
	DueDate       *time.Time      `json:"due_date"`
	Notes         string          `json:"notes"`
}

func CreateBill(ctx context.Context, companyId string, input *NewBill) (*Bill, error) {
	if err := utils.ValidateResourceId[Vendor](ctx, companyId, input.VendorId); err != nil {
		return nil, &utils.NotFoundError{Entity: "vendor", Id: input.VendorId}
	}
	if err := utils.ValidateResourceId[Job](ctx, companyId, input.JobId); err != nil {
		return nil, &utils.NotFoundError{Entity: "job", Id: input.JobId}
	}
	if input.Amount.IsNegative() {
		return nil, utils.NewValidationError("amount", "must not be negative")
	}

	status := input.CurrentStatus
	if status == "" {
		status = BillStatusDraft
	}
	bill := Bill{
		CompanyId:     companyId,
		VendorId:      input.VendorId,
		JobId:         input.JobId,
		BillNumber:    input.BillNumber,
		Amount:        input.Amount,
		BalanceDue:    input.Amount,
		CurrentStatus: status,
		BillDate:      input.BillDate,
		DueDate:       input.DueDate,
		Notes:         input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&bill).Error; err != nil {
		return nil, err
	}
	if err := utils.InvalidateKPICache(companyId); err != nil {
		return nil, err
	}
	return &bill, nil
}
