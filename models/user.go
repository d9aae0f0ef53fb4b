package models

import (
	"context"
	"errors"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	ID        int            `gorm:"primary_key" json:"id"`
	CompanyId string         `gorm:"index;not null" json:"company_id"`
	Name      string         `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email" binding:"required"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:50;default:Member" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type NewUser struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

func CreateUser(ctx context.Context, companyId string, input *NewUser) (*User, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = "Member"
	}
	user := User{
		CompanyId: companyId,
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashed,
		Role:      role,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login returns a signed JWT carrying the user's company claim.
func Login(ctx context.Context, email string, password string) (string, *User, error) {
	var user User

	db := config.GetDB()
	skipCtx := utils.SetSkipTenantScopeInContext(ctx, true)
	if err := db.WithContext(skipCtx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, errors.New("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, errors.New("invalid email or password")
	}

	token, err := utils.JwtGenerate(user.ID, user.CompanyId, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
