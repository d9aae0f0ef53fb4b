package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultWithdrawalWindowHours = 48

// Company is the tenant. Every ledger row carries its id and every read/write
// is filtered on it.
type Company struct {
	ID                    uuid.UUID `gorm:"primary_key" json:"id"`
	Name                  string    `gorm:"index;size:100;not null" json:"name" binding:"required"`
	ContactName           string    `gorm:"size:100" json:"contact_name"`
	Email                 string    `gorm:"size:255" json:"email"`
	Phone                 string    `gorm:"size:20" json:"phone"`
	Address               string    `gorm:"type:text" json:"address"`
	Timezone              string    `gorm:"size:50" json:"timezone"`
	LicenseNumber         string    `gorm:"size:100" json:"license_number"`
	WithdrawalWindowHours int       `gorm:"default:48" json:"withdrawal_window_hours"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCompany struct {
	Name                  string `json:"name" binding:"required"`
	ContactName           string `json:"contact_name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Address               string `json:"address"`
	Timezone              string `json:"timezone"`
	LicenseNumber         string `json:"license_number"`
	WithdrawalWindowHours int    `json:"withdrawal_window_hours"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// WithdrawalWindow is the per-company window for withdrawing a presented
// change order.
func (c *Company) WithdrawalWindow() time.Duration {
	hours := c.WithdrawalWindowHours
	if hours <= 0 {
		hours = DefaultWithdrawalWindowHours
	}
	return time.Duration(hours) * time.Hour
}

func (c *Company) StoreRedis() error {
	return config.SetRedisObject("Company:"+c.ID.String(), c, utils.GetCacheLifespan())
}

func CreateCompany(ctx context.Context, input *NewCompany) (*Company, error) {
	company := Company{
		Name:                  input.Name,
		ContactName:           input.ContactName,
		Email:                 input.Email,
		Phone:                 input.Phone,
		Address:               input.Address,
		Timezone:              input.Timezone,
		LicenseNumber:         input.LicenseNumber,
		WithdrawalWindowHours: input.WithdrawalWindowHours,
	}
	if company.WithdrawalWindowHours <= 0 {
		company.WithdrawalWindowHours = DefaultWithdrawalWindowHours
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func GetCompanyById(ctx context.Context, id string) (*Company, error) {

	var result Company

	exists, err := config.GetRedisObject("Company:"+id, &result)
	if err != nil {
		return nil, err
	}

	if !exists {
		db := config.GetDB()
		err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
		if err != nil {
			return nil, utils.ErrorRecordNotFound
		}
		if err := result.StoreRedis(); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// GetCompanyById2 reads through the caller's transaction.
func GetCompanyById2(tx *gorm.DB, id string) (*Company, error) {

	var result Company

	exists, err := config.GetRedisObject("Company:"+id, &result)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := tx.Where("id = ?", id).First(&result).Error; err != nil {
			return nil, utils.ErrorRecordNotFound
		}
		if err := result.StoreRedis(); err != nil {
			return nil, err
		}
	}
	return &result, nil
}
