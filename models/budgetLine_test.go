package models_test

import (
	"math/rand"
	"testing"

	"github.com/buildrise/costledger_backend/models"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
)

func baseLine() models.BudgetLine {
	return models.BudgetLine{
		ID:              1,
		CompanyId:       "c-1",
		JobId:           1,
		Description:     "Foundations and slab on grade",
		Phase:           "Structure",
		EstimatedAmount: decimal.RequireFromString("410000"),
		CommittedAmount: decimal.RequireFromString("395000"),
		ActualAmount:    decimal.RequireFromString("182500"),
	}
}

func TestReconcile_VarianceAlwaysEstimatedMinusActual(t *testing.T) {
	line, err := baseLine().Reconcile(models.BudgetLinePatch{})
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	want := decimal.RequireFromString("227500")
	if !line.VarianceAmount.Equal(want) {
		t.Fatalf("variance expected %s, got %s", want, line.VarianceAmount)
	}
}

func TestReconcile_ThreeStateFields(t *testing.T) {
	patch := models.BudgetLinePatch{
		Phase:        utils.NullPatch[string](),
		ActualAmount: utils.SetPatch(decimal.RequireFromString("200000")),
		// Description absent: stored value kept.
	}
	line, err := baseLine().Reconcile(patch)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if line.Phase != "" {
		t.Fatalf("phase expected cleared, got %q", line.Phase)
	}
	if line.Description != "Foundations and slab on grade" {
		t.Fatalf("description expected unchanged, got %q", line.Description)
	}
	want := decimal.RequireFromString("210000")
	if !line.VarianceAmount.Equal(want) {
		t.Fatalf("variance expected %s, got %s", want, line.VarianceAmount)
	}
}

func TestReconcile_RejectsBlankDescription(t *testing.T) {
	for _, desc := range []string{"", "   "} {
		_, err := baseLine().Reconcile(models.BudgetLinePatch{
			Description: utils.SetPatch(desc),
		})
		var verr *utils.ValidationError
		if !asValidation(err, &verr) {
			t.Fatalf("description %q expected ValidationError, got %v", desc, err)
		}
	}
	_, err := baseLine().Reconcile(models.BudgetLinePatch{
		Description: utils.NullPatch[string](),
	})
	var verr *utils.ValidationError
	if !asValidation(err, &verr) {
		t.Fatalf("clearing description expected ValidationError, got %v", err)
	}
}

func TestReconcile_RejectsNegativeAmounts(t *testing.T) {
	negative := utils.SetPatch(decimal.RequireFromString("-0.01"))
	cases := []models.BudgetLinePatch{
		{EstimatedAmount: negative},
		{CommittedAmount: negative},
		{ActualAmount: negative},
	}
	for i, patch := range cases {
		_, err := baseLine().Reconcile(patch)
		var verr *utils.ValidationError
		if !asValidation(err, &verr) {
			t.Fatalf("case %d expected ValidationError, got %v", i, err)
		}
	}
}

func TestReconcile_FailureLeavesReceiverUntouched(t *testing.T) {
	line := baseLine()
	_, err := line.Reconcile(models.BudgetLinePatch{
		ActualAmount: utils.SetPatch(decimal.RequireFromString("-5")),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !line.ActualAmount.Equal(decimal.RequireFromString("182500")) {
		t.Fatalf("receiver mutated on failed reconcile: %s", line.ActualAmount)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	patch := models.BudgetLinePatch{
		EstimatedAmount: utils.SetPatch(decimal.RequireFromString("500000.25")),
		Notes:           utils.SetPatch("revised per addendum 3"),
	}
	once, err := baseLine().Reconcile(patch)
	if err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	twice, err := once.Reconcile(patch)
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if !once.VarianceAmount.Equal(twice.VarianceAmount) || once.Notes != twice.Notes {
		t.Fatalf("reconcile not idempotent: %+v vs %+v", once, twice)
	}
}

func TestReconcile_RandomizedVarianceProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		estimated := decimal.NewFromInt(rng.Int63n(10_000_000)).Div(decimal.NewFromInt(100))
		actual := decimal.NewFromInt(rng.Int63n(10_000_000)).Div(decimal.NewFromInt(100))

		line, err := baseLine().Reconcile(models.BudgetLinePatch{
			EstimatedAmount: utils.SetPatch(estimated),
			ActualAmount:    utils.SetPatch(actual),
		})
		if err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if !line.VarianceAmount.Equal(estimated.Sub(actual)) {
			t.Fatalf("iteration %d: variance %s != %s - %s", i, line.VarianceAmount, estimated, actual)
		}
		under := line.VarianceAmount.Sign() >= 0
		if under != !estimated.LessThan(actual) {
			t.Fatalf("iteration %d: sign mismatch", i)
		}
	}
}

func TestApplyCascadeDelta(t *testing.T) {
	line := baseLine()
	if err := line.ApplyCascadeDelta(decimal.RequireFromString("45000")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !line.CommittedAmount.Equal(decimal.RequireFromString("440000")) {
		t.Fatalf("committed expected 440000, got %s", line.CommittedAmount)
	}
	if !line.ActualAmount.Equal(decimal.RequireFromString("227500")) {
		t.Fatalf("actual expected 227500, got %s", line.ActualAmount)
	}
	if !line.VarianceAmount.Equal(decimal.RequireFromString("182500")) {
		t.Fatalf("variance expected 182500, got %s", line.VarianceAmount)
	}
}

func TestApplyCascadeDelta_CreditCannotGoNegative(t *testing.T) {
	line := baseLine()
	err := line.ApplyCascadeDelta(decimal.RequireFromString("-400000"))
	var verr *utils.ValidationError
	if !asValidation(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// TestApplyCascadeDelta_ClosesVariance covers a line with no spend yet: a
// change order matching the whole estimate zeroes the variance.
func TestApplyCascadeDelta_ClosesVariance(t *testing.T) {
	line := models.BudgetLine{
		Description:     "Electrical rough-in",
		EstimatedAmount: decimal.RequireFromString("5060"),
		VarianceAmount:  decimal.RequireFromString("5060"),
	}
	if err := line.ApplyCascadeDelta(decimal.RequireFromString("5060")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !line.ActualAmount.Equal(decimal.RequireFromString("5060")) {
		t.Fatalf("actual expected 5060, got %s", line.ActualAmount)
	}
	if !line.VarianceAmount.IsZero() {
		t.Fatalf("variance expected 0, got %s", line.VarianceAmount)
	}
}
