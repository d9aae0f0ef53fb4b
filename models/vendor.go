package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"gorm.io/gorm"
)

type Vendor struct {
	ID            int            `gorm:"primary_key" json:"id"`
	CompanyId     string         `gorm:"index;not null" json:"company_id"`
	Name          string         `gorm:"size:255;not null" json:"name" binding:"required"`
	ContactName   string         `gorm:"size:100" json:"contact_name"`
	Email         string         `gorm:"size:255" json:"email"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Trade         string         `gorm:"size:100" json:"trade"`
	LicenseNumber string         `gorm:"size:100" json:"license_number"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type NewVendor struct {
	Name          string `json:"name" binding:"required"`
	ContactName   string `json:"contact_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Trade         string `json:"trade"`
	LicenseNumber string `json:"license_number"`
}

func CreateVendor(ctx context.Context, companyId string, input *NewVendor) (*Vendor, error) {
	vendor := Vendor{
		CompanyId:     companyId,
		Name:          input.Name,
		ContactName:   input.ContactName,
		Email:         input.Email,
		Phone:         input.Phone,
		Trade:         input.Trade,
		LicenseNumber: input.LicenseNumber,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}
