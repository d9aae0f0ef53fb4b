package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"gorm.io/gorm"
)

type Client struct {
	ID          int            `gorm:"primary_key" json:"id"`
	CompanyId   string         `gorm:"index;not null" json:"company_id"`
	Name        string         `gorm:"size:255;not null" json:"name" binding:"required"`
	ContactName string         `gorm:"size:100" json:"contact_name"`
	Email       string         `gorm:"size:255" json:"email"`
	Phone       string         `gorm:"size:20" json:"phone"`
	Address     string         `gorm:"type:text" json:"address"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type NewClient struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

func CreateClient(ctx context.Context, companyId string, input *NewClient) (*Client, error) {
	client := Client{
		CompanyId:   companyId,
		Name:        input.Name,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}
