package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DrawRequest is a periodic payment request against a contract's earned
// value. Read-only for this engine except that the approval cascade bumps the
// next open draw's CurrentDue.
type DrawRequest struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CompanyId     string          `gorm:"index;not null" json:"company_id"`
	JobId         int             `gorm:"index;not null" json:"job_id" binding:"required"`
	ContractId    int             `gorm:"index;not null" json:"contract_id" binding:"required"`
	DrawNumber    int             `gorm:"not null" json:"draw_number"`
	CurrentDue    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"current_due"`
	TotalEarned   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_earned"`
	CurrentStatus DrawStatus      `gorm:"type:enum('Open','Submitted','Funded','Closed');default:Open" json:"current_status"`
	PeriodEnd     *time.Time      `gorm:"default:null" json:"period_end"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

type NewDrawRequest struct {
	JobId       int             `json:"job_id" binding:"required"`
	ContractId  int             `json:"contract_id" binding:"required"`
	DrawNumber  int             `json:"draw_number" binding:"required"`
	CurrentDue  decimal.Decimal `json:"current_due"`
	TotalEarned decimal.Decimal `json:"total_earned"`
	PeriodEnd   *time.Time      `json:"period_end"`
}

func CreateDrawRequest(ctx context.Context, companyId string, input *NewDrawRequest) (*DrawRequest, error) {
	if err := utils.ValidateResourceId[Contract](ctx, companyId, input.ContractId); err != nil {
		return nil, &utils.NotFoundError{Entity: "contract", Id: input.ContractId}
	}
	if input.CurrentDue.IsNegative() {
		return nil, utils.NewValidationError("current_due", "must not be negative")
	}

	draw := DrawRequest{
		CompanyId:     companyId,
		JobId:         input.JobId,
		ContractId:    input.ContractId,
		DrawNumber:    input.DrawNumber,
		CurrentDue:    input.CurrentDue,
		TotalEarned:   input.TotalEarned,
		CurrentStatus: DrawStatusOpen,
		PeriodEnd:     input.PeriodEnd,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&draw).Error; err != nil {
		return nil, err
	}
	return &draw, nil
}

// NextOpenDraw returns the lowest-numbered open draw for a contract, reading
// through the caller's transaction.
func NextOpenDraw(tx *gorm.DB, ctx context.Context, companyId string, contractId int) (*DrawRequest, error) {
	var draw DrawRequest
	err := tx.WithContext(ctx).
		Where("company_id = ? AND contract_id = ? AND current_status = ?", companyId, contractId, DrawStatusOpen).
		Order("draw_number ASC").
		First(&draw).Error
	if err != nil {
		return nil, &utils.NotFoundError{Entity: "open draw request for contract", Id: contractId}
	}
	return &draw, nil
}
