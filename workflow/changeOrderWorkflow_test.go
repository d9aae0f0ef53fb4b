package workflow_test

import (
	"errors"
	"testing"

	"github.com/buildrise/costledger_backend/models"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/buildrise/costledger_backend/workflow"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cascadeFixture() (models.Contract, models.BudgetLine, models.DrawRequest) {
	contract := models.Contract{
		ID:            10,
		ContractValue: dec("2400000"),
	}
	line := models.BudgetLine{
		ID:              20,
		Description:     "Foundations and slab on grade",
		EstimatedAmount: dec("410000"),
		CommittedAmount: dec("395000"),
		ActualAmount:    dec("182500"),
		VarianceAmount:  dec("227500"),
	}
	draw := models.DrawRequest{
		ID:         30,
		DrawNumber: 1,
		CurrentDue: dec("120000"),
	}
	return contract, line, draw
}

func TestApplyCascade_AdditiveChangeOrder(t *testing.T) {
	contract, line, draw := cascadeFixture()

	record, err := workflow.ApplyCascade(&contract, &line, &draw, dec("45000"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if !contract.ContractValue.Equal(dec("2445000")) {
		t.Fatalf("contract value expected 2445000, got %s", contract.ContractValue)
	}
	if !line.CommittedAmount.Equal(dec("440000")) {
		t.Fatalf("committed expected 440000, got %s", line.CommittedAmount)
	}
	if !line.ActualAmount.Equal(dec("227500")) {
		t.Fatalf("actual expected 227500, got %s", line.ActualAmount)
	}
	if !line.VarianceAmount.Equal(dec("182500")) {
		t.Fatalf("variance expected 182500, got %s", line.VarianceAmount)
	}
	if !draw.CurrentDue.Equal(dec("165000")) {
		t.Fatalf("draw due expected 165000, got %s", draw.CurrentDue)
	}

	if !record.ContractValueBefore.Equal(dec("2400000")) || !record.ContractValueAfter.Equal(dec("2445000")) {
		t.Fatalf("record contract values wrong: %+v", record)
	}
	if !record.DrawDueBefore.Equal(dec("120000")) || !record.DrawDueAfter.Equal(dec("165000")) {
		t.Fatalf("record draw values wrong: %+v", record)
	}
	if record.ContractId != 10 || record.BudgetLineId != 20 || record.DrawRequestId != 30 {
		t.Fatalf("record ids wrong: %+v", record)
	}
}

func TestApplyCascade_CreditMovesEverythingDown(t *testing.T) {
	contract, line, draw := cascadeFixture()

	_, err := workflow.ApplyCascade(&contract, &line, &draw, dec("-45000"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if !contract.ContractValue.Equal(dec("2355000")) {
		t.Fatalf("contract value expected 2355000, got %s", contract.ContractValue)
	}
	if !line.CommittedAmount.Equal(dec("350000")) {
		t.Fatalf("committed expected 350000, got %s", line.CommittedAmount)
	}
	if !line.ActualAmount.Equal(dec("137500")) {
		t.Fatalf("actual expected 137500, got %s", line.ActualAmount)
	}
	if !line.VarianceAmount.Equal(dec("272500")) {
		t.Fatalf("variance expected 272500, got %s", line.VarianceAmount)
	}
	if !draw.CurrentDue.Equal(dec("75000")) {
		t.Fatalf("draw due expected 75000, got %s", draw.CurrentDue)
	}
}

func TestApplyCascade_RejectsNegativeOutcome(t *testing.T) {
	contract, line, draw := cascadeFixture()
	draw.CurrentDue = dec("100")

	_, err := workflow.ApplyCascade(&contract, &line, &draw, dec("-5000"))
	var verr *utils.ValidationError
	if err == nil || !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestApplyCascade_ZeroActualLineEndsBalanced(t *testing.T) {
	contract := models.Contract{ID: 1, ContractValue: dec("100000")}
	line := models.BudgetLine{
		ID:              2,
		Description:     "Electrical rough-in",
		EstimatedAmount: dec("5060"),
		VarianceAmount:  dec("5060"),
	}
	draw := models.DrawRequest{ID: 3, DrawNumber: 1}

	record, err := workflow.ApplyCascade(&contract, &line, &draw, dec("5060"))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !line.ActualAmount.Equal(dec("5060")) || !line.VarianceAmount.IsZero() {
		t.Fatalf("line expected fully absorbed change order, got actual=%s variance=%s",
			line.ActualAmount, line.VarianceAmount)
	}
	if !record.ActualBefore.IsZero() || !record.ActualAfter.Equal(dec("5060")) {
		t.Fatalf("record actuals wrong: %+v", record)
	}
}
