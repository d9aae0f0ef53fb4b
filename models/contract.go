package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Contract struct {
	ID             int             `gorm:"primary_key" json:"id"`
	CompanyId      string          `gorm:"index;not null" json:"company_id"`
	JobId          int             `gorm:"index;not null" json:"job_id" binding:"required"`
	ContractNumber string          `gorm:"size:100;not null" json:"contract_number"`
	Title          string          `gorm:"size:255" json:"title"`
	ContractValue  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"contract_value"`
	RetentionPct   decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"retention_pct"`
	CurrentStatus  ContractStatus  `gorm:"type:enum('Draft','Active','OnHold','Completed','Voided');default:Draft" json:"current_status"`
	StartDate      *time.Time      `gorm:"default:null" json:"start_date"`
	EndDate        *time.Time      `gorm:"default:null" json:"end_date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

type NewContract struct {
	JobId          int             `json:"job_id" binding:"required"`
	ContractNumber string          `json:"contract_number" binding:"required"`
	Title          string          `json:"title"`
	ContractValue  decimal.Decimal `json:"contract_value"`
	RetentionPct   decimal.Decimal `json:"retention_pct"`
	CurrentStatus  ContractStatus  `json:"current_status"`
	StartDate      *time.Time      `json:"start_date"`
	EndDate        *time.Time      `json:"end_date"`
}

func (input *NewContract) validate(ctx context.Context, companyId string) error {
	if err := utils.ValidateResourceId[Job](ctx, companyId, input.JobId); err != nil {
		return &utils.NotFoundError{Entity: "job", Id: input.JobId}
	}
	if input.ContractValue.IsNegative() {
		return utils.NewValidationError("contract_value", "must not be negative")
	}
	if input.RetentionPct.IsNegative() || input.RetentionPct.GreaterThan(decimal.NewFromInt(100)) {
		return utils.NewValidationError("retention_pct", "must be between 0 and 100")
	}
	return nil
}

func CreateContract(ctx context.Context, companyId string, input *NewContract) (*Contract, error) {
	if err := input.validate(ctx, companyId); err != nil {
		return nil, err
	}

	status := input.CurrentStatus
	if status == "" {
		status = ContractStatusDraft
	}
	contract := Contract{
		CompanyId:      companyId,
		JobId:          input.JobId,
		ContractNumber: input.ContractNumber,
		Title:          input.Title,
		ContractValue:  input.ContractValue,
		RetentionPct:   input.RetentionPct,
		CurrentStatus:  status,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&contract).Error; err != nil {
		return nil, err
	}
	if err := utils.InvalidateKPICache(companyId); err != nil {
		return nil, err
	}
	return &contract, nil
}

func GetContract(ctx context.Context, companyId string, id int) (*Contract, error) {
	var contract Contract
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ? AND id = ?", companyId, id).First(&contract).Error; err != nil {
		return nil, &utils.NotFoundError{Entity: "contract", Id: id}
	}
	return &contract, nil
}
