package models_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/buildrise/costledger_backend/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	contracts   []models.Contract
	invoices    []models.Invoice
	paid        []models.Invoice
	outstanding []models.Invoice
	bills       []models.Bill
	lines       []models.BudgetLine

	billsErr error
}

func (f *fakeLedger) ActiveContracts(ctx context.Context, companyId string, asOf *time.Time) ([]models.Contract, error) {
	return f.contracts, nil
}

func (f *fakeLedger) Invoices(ctx context.Context, companyId string, asOf *time.Time) ([]models.Invoice, error) {
	return f.invoices, nil
}

func (f *fakeLedger) PaidInvoices(ctx context.Context, companyId string, asOf *time.Time) ([]models.Invoice, error) {
	return f.paid, nil
}

func (f *fakeLedger) OutstandingInvoices(ctx context.Context, companyId string, asOf *time.Time) ([]models.Invoice, error) {
	return f.outstanding, nil
}

func (f *fakeLedger) OpenBills(ctx context.Context, companyId string, asOf *time.Time) ([]models.Bill, error) {
	if f.billsErr != nil {
		return nil, f.billsErr
	}
	return f.bills, nil
}

func (f *fakeLedger) BudgetLines(ctx context.Context, companyId string, asOf *time.Time) ([]models.BudgetLine, error) {
	return f.lines, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregateFinancialKPIs_EmptyCompanyYieldsZeros(t *testing.T) {
	kpis, err := models.AggregateFinancialKPIs(context.Background(), &fakeLedger{}, "c-1", nil)
	require.NoError(t, err)

	assert.True(t, kpis.TotalContractValue.IsZero())
	assert.True(t, kpis.TotalInvoiced.IsZero())
	assert.True(t, kpis.TotalPaid.IsZero())
	assert.True(t, kpis.OutstandingReceivable.IsZero())
	assert.True(t, kpis.PayableBalance.IsZero())
	assert.True(t, kpis.TotalEstimated.IsZero())
	assert.True(t, kpis.TotalActual.IsZero())
	assert.True(t, kpis.TotalVariance.IsZero())
	assert.Equal(t, models.BudgetDirectionUnder, kpis.BudgetDirection)
}

func TestAggregateFinancialKPIs_FoldsEveryRecordSet(t *testing.T) {
	ledger := &fakeLedger{
		contracts: []models.Contract{
			{ContractValue: dec("2400000")},
			{ContractValue: dec("618500.75")},
		},
		invoices: []models.Invoice{
			{Amount: dec("120000")},
			{Amount: dec("95500.25")},
			{Amount: dec("4499.75")},
		},
		paid: []models.Invoice{
			{Amount: dec("120000")},
		},
		outstanding: []models.Invoice{
			{Amount: dec("95500.25")},
		},
		bills: []models.Bill{
			{BalanceDue: dec("18250")},
			{BalanceDue: dec("7399.99")},
		},
		lines: []models.BudgetLine{
			{EstimatedAmount: dec("410000"), CommittedAmount: dec("395000"), ActualAmount: dec("182500")},
			{EstimatedAmount: dec("5060"), CommittedAmount: dec("0"), ActualAmount: dec("0")},
		},
	}

	kpis, err := models.AggregateFinancialKPIs(context.Background(), ledger, "c-1", nil)
	require.NoError(t, err)

	assert.True(t, kpis.TotalContractValue.Equal(dec("3018500.75")), "contract value: %s", kpis.TotalContractValue)
	assert.True(t, kpis.TotalInvoiced.Equal(dec("220000")), "invoiced: %s", kpis.TotalInvoiced)
	assert.True(t, kpis.TotalPaid.Equal(dec("120000")), "paid: %s", kpis.TotalPaid)
	assert.True(t, kpis.OutstandingReceivable.Equal(dec("95500.25")), "outstanding: %s", kpis.OutstandingReceivable)
	assert.True(t, kpis.PayableBalance.Equal(dec("25649.99")), "payable: %s", kpis.PayableBalance)
	assert.True(t, kpis.TotalEstimated.Equal(dec("415060")), "estimated: %s", kpis.TotalEstimated)
	assert.True(t, kpis.TotalCommitted.Equal(dec("395000")), "committed: %s", kpis.TotalCommitted)
	assert.True(t, kpis.TotalActual.Equal(dec("182500")), "actual: %s", kpis.TotalActual)
	assert.True(t, kpis.TotalVariance.Equal(dec("232560")), "variance: %s", kpis.TotalVariance)
	assert.Equal(t, models.BudgetDirectionUnder, kpis.BudgetDirection)
}

func TestAggregateFinancialKPIs_OverBudgetDirection(t *testing.T) {
	ledger := &fakeLedger{
		lines: []models.BudgetLine{
			{EstimatedAmount: dec("100000"), ActualAmount: dec("135000")},
		},
	}
	kpis, err := models.AggregateFinancialKPIs(context.Background(), ledger, "c-1", nil)
	require.NoError(t, err)
	assert.True(t, kpis.TotalVariance.Equal(dec("-35000")))
	assert.Equal(t, models.BudgetDirectionOver, kpis.BudgetDirection)
}

func TestAggregateFinancialKPIs_SingleFetchFailureFailsWhole(t *testing.T) {
	ledger := &fakeLedger{
		contracts: []models.Contract{{ContractValue: dec("2400000")}},
		billsErr:  errors.New("bills table unavailable"),
	}
	kpis, err := models.AggregateFinancialKPIs(context.Background(), ledger, "c-1", nil)
	require.Error(t, err)
	assert.Nil(t, kpis)
	assert.Contains(t, err.Error(), "bills table unavailable")
}

// Fold order must not matter: decimal addition over a shuffled set lands on
// the same totals.
func TestAggregateFinancialKPIs_PermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	lines := make([]models.BudgetLine, 50)
	for i := range lines {
		lines[i] = models.BudgetLine{
			EstimatedAmount: decimal.NewFromInt(rng.Int63n(1_000_000)).Div(decimal.NewFromInt(100)),
			ActualAmount:    decimal.NewFromInt(rng.Int63n(1_000_000)).Div(decimal.NewFromInt(100)),
		}
	}

	first, err := models.AggregateFinancialKPIs(context.Background(), &fakeLedger{lines: lines}, "c-1", nil)
	require.NoError(t, err)

	shuffled := make([]models.BudgetLine, len(lines))
	copy(shuffled, lines)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	second, err := models.AggregateFinancialKPIs(context.Background(), &fakeLedger{lines: shuffled}, "c-1", nil)
	require.NoError(t, err)

	assert.True(t, first.TotalEstimated.Equal(second.TotalEstimated))
	assert.True(t, first.TotalActual.Equal(second.TotalActual))
	assert.True(t, first.TotalVariance.Equal(second.TotalVariance))
}

func TestAggregateFinancialKPIs_CarriesAsOf(t *testing.T) {
	asOf := time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC)
	kpis, err := models.AggregateFinancialKPIs(context.Background(), &fakeLedger{}, "c-1", &asOf)
	require.NoError(t, err)
	require.NotNil(t, kpis.AsOf)
	assert.True(t, kpis.AsOf.Equal(asOf))
	assert.False(t, kpis.GeneratedAt.IsZero())
}
