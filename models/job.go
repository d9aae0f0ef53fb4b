package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"gorm.io/gorm"
)

// Job is a construction project. Budget lines, contracts, invoices, bills and
// draws all hang off a job.
type Job struct {
	ID        int            `gorm:"primary_key" json:"id"`
	CompanyId string         `gorm:"index;not null" json:"company_id"`
	ClientId  int            `gorm:"index;default:null" json:"client_id"`
	Name      string         `gorm:"size:255;not null" json:"name" binding:"required"`
	Number    string         `gorm:"size:100" json:"number"`
	Address   string         `gorm:"type:text" json:"address"`
	StartDate *time.Time     `gorm:"default:null" json:"start_date"`
	EndDate   *time.Time     `gorm:"default:null" json:"end_date"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type NewJob struct {
	ClientId  int        `json:"client_id"`
	Name      string     `json:"name" binding:"required"`
	Number    string     `json:"number"`
	Address   string     `json:"address"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

func CreateJob(ctx context.Context, companyId string, input *NewJob) (*Job, error) {
	if input.ClientId > 0 {
		if err := utils.ValidateResourceId[Client](ctx, companyId, input.ClientId); err != nil {
			return nil, &utils.NotFoundError{Entity: "client", Id: input.ClientId}
		}
	}

	job := Job{
		CompanyId: companyId,
		ClientId:  input.ClientId,
		Name:      input.Name,
		Number:    input.Number,
		Address:   input.Address,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func GetJob(ctx context.Context, companyId string, id int) (*Job, error) {
	var job Job
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ? AND id = ?", companyId, id).First(&job).Error; err != nil {
		return nil, &utils.NotFoundError{Entity: "job", Id: id}
	}
	return &job, nil
}
