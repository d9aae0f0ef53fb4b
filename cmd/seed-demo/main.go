package main

import (
	"context"
	"log"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/models"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
)

// Seeds a demo tenant with a job, a contract, budget lines and an open draw so
// the dashboard and the change-order flow can be exercised right away.
func main() {
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	if err := models.MigrateTable(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx := context.Background()

	company, err := models.CreateCompany(ctx, &models.NewCompany{
		Name:                  "Ridgeview Builders",
		ContactName:           "Sam Ortega",
		Email:                 "office@ridgeviewbuilders.test",
		Timezone:              "America/Denver",
		WithdrawalWindowHours: 48,
	})
	if err != nil {
		log.Fatalf("create company: %v", err)
	}
	companyId := company.ID.String()
	ctx = utils.SetCompanyIdInContext(ctx, companyId)

	if _, err := models.CreateUser(ctx, companyId, &models.NewUser{
		Name:     "Sam Ortega",
		Email:    "sam@ridgeviewbuilders.test",
		Password: "demo-password",
		Role:     "admin",
	}); err != nil {
		log.Fatalf("create user: %v", err)
	}

	job, err := models.CreateJob(ctx, companyId, &models.NewJob{
		Name:    "Lakeside Office Park",
		Address: "4200 Lakeside Dr",
	})
	if err != nil {
		log.Fatalf("create job: %v", err)
	}

	concrete, err := models.CreateCostCode(ctx, companyId, &models.NewCostCode{
		Code: "03-300",
		Name: "Cast-in-Place Concrete",
	})
	if err != nil {
		log.Fatalf("create cost code: %v", err)
	}

	contract, err := models.CreateContract(ctx, companyId, &models.NewContract{
		JobId:          job.ID,
		ContractNumber: "C-1001",
		Title:          "Lakeside Office Park GMP",
		ContractValue:  decimal.NewFromInt(2400000),
		RetentionPct:   decimal.NewFromInt(5),
		CurrentStatus:  models.ContractStatusActive,
	})
	if err != nil {
		log.Fatalf("create contract: %v", err)
	}

	if _, err := models.CreateBudgetLine(ctx, companyId, &models.NewBudgetLine{
		JobId:           job.ID,
		CostCodeId:      concrete.ID,
		Description:     "Foundations and slab on grade",
		Phase:           "Structure",
		EstimatedAmount: decimal.NewFromInt(410000),
		CommittedAmount: decimal.NewFromInt(395000),
		ActualAmount:    decimal.NewFromInt(182500),
	}); err != nil {
		log.Fatalf("create budget line: %v", err)
	}

	if _, err := models.CreateBudgetLine(ctx, companyId, &models.NewBudgetLine{
		JobId:           job.ID,
		Description:     "Electrical rough-in",
		Phase:           "MEP",
		EstimatedAmount: decimal.RequireFromString("5060"),
	}); err != nil {
		log.Fatalf("create budget line: %v", err)
	}

	periodEnd := time.Now().AddDate(0, 1, 0)
	if _, err := models.CreateDrawRequest(ctx, companyId, &models.NewDrawRequest{
		JobId:       job.ID,
		ContractId:  contract.ID,
		DrawNumber:  1,
		CurrentDue:  decimal.NewFromInt(120000),
		TotalEarned: decimal.NewFromInt(182500),
		PeriodEnd:   &periodEnd,
	}); err != nil {
		log.Fatalf("create draw request: %v", err)
	}

	log.Printf("seeded demo company %s (%s)", company.Name, companyId)
}
