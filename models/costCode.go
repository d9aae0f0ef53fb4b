package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"gorm.io/gorm"
)

// CostCode is a CSI-style cost classification (e.g. "03-300 Cast-in-Place
// Concrete"). Budget lines reference one optionally.
type CostCode struct {
	ID        int            `gorm:"primary_key" json:"id"`
	CompanyId string         `gorm:"index;not null" json:"company_id"`
	Code      string         `gorm:"size:50;not null" json:"code" binding:"required"`
	Name      string         `gorm:"size:255;not null" json:"name" binding:"required"`
	Category  string         `gorm:"size:100" json:"category"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type NewCostCode struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

func CreateCostCode(ctx context.Context, companyId string, input *NewCostCode) (*CostCode, error) {
	if err := utils.ValidateUnique[CostCode](ctx, companyId, "code", input.Code, 0); err != nil {
		return nil, utils.NewValidationError("code", "duplicate cost code")
	}

	costCode := CostCode{
		CompanyId: companyId,
		Code:      input.Code,
		Name:      input.Name,
		Category:  input.Category,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&costCode).Error; err != nil {
		return nil, err
	}
	return &costCode, nil
}
