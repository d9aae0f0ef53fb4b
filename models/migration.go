package models

import (
	"github.com/buildrise/costledger_backend/config"
)

func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&Company{},
		&User{},
		&Job{},
		&CostCode{},
		&Vendor{},
		&Client{},
		&Contract{},
		&Invoice{},
		&Bill{},
		&BudgetLine{},
		&ChangeOrder{},
		&DrawRequest{},
		&CascadeRecord{},
	)
}
