package models

import (
	"context"
	"sync"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialKPIs are the company-wide dashboard rollups. All sums are decimal;
// an empty record set contributes zero, never null.
type FinancialKPIs struct {
	TotalContractValue    decimal.Decimal `json:"total_contract_value"`
	TotalInvoiced         decimal.Decimal `json:"total_invoiced"`
	TotalPaid             decimal.Decimal `json:"total_paid"`
	OutstandingReceivable decimal.Decimal `json:"outstanding_receivable"`
	PayableBalance        decimal.Decimal `json:"payable_balance"`
	TotalEstimated        decimal.Decimal `json:"total_estimated"`
	TotalCommitted        decimal.Decimal `json:"total_committed"`
	TotalActual           decimal.Decimal `json:"total_actual"`
	TotalVariance         decimal.Decimal `json:"total_variance"`
	BudgetDirection       BudgetDirection `json:"budget_direction"`
	AsOf                  *time.Time      `json:"as_of"`
	GeneratedAt           time.Time       `json:"generated_at"`
}

// LedgerReader is the read side of the ledger record store. Each method
// returns one tenant-scoped record set with soft-deleted rows excluded.
type LedgerReader interface {
	ActiveContracts(ctx context.Context, companyId string, asOf *time.Time) ([]Contract, error)
	Invoices(ctx context.Context, companyId string, asOf *time.Time) ([]Invoice, error)
	PaidInvoices(ctx context.Context, companyId string, asOf *time.Time) ([]Invoice, error)
	OutstandingInvoices(ctx context.Context, companyId string, asOf *time.Time) ([]Invoice, error)
	OpenBills(ctx context.Context, companyId string, asOf *time.Time) ([]Bill, error)
	BudgetLines(ctx context.Context, companyId string, asOf *time.Time) ([]BudgetLine, error)
}

type ledgerStore struct {
	db *gorm.DB
}

func NewLedgerStore(db *gorm.DB) LedgerReader {
	return &ledgerStore{db: db}
}

func (s *ledgerStore) ActiveContracts(ctx context.Context, companyId string, asOf *time.Time) ([]Contract, error) {
	var contracts []Contract
	dbCtx := s.db.WithContext(ctx).
		Where("company_id = ? AND current_status <> ?", companyId, ContractStatusVoided)
	if asOf != nil {
		dbCtx = dbCtx.Where("created_at <= ?", *asOf)
	}
	if err := dbCtx.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (s *ledgerStore) Invoices(ctx context.Context, companyId string, asOf *time.Time) ([]Invoice, error) {
	return s.invoicesWhere(ctx, companyId, asOf, "current_status <> ?", InvoiceStatusVoided)
}

func (s *ledgerStore) PaidInvoices(ctx context.Context, companyId string, asOf *time.Time) ([]Invoice, error) {
	return s.invoicesWhere(ctx, companyId, asOf, "current_status = ?", InvoiceStatusPaid)
}

func (s *ledgerStore) OutstandingInvoices(ctx context.Context, companyId string, asOf *time.Time) ([]Invoice, error) {
	return s.invoicesWhere(ctx, companyId, asOf, "current_status IN ?", OutstandingInvoiceStatuses)
}

func (s *ledgerStore) invoicesWhere(ctx context.Context, companyId string, asOf *time.Time, condition string, value interface{}) ([]Invoice, error) {
	var invoices []Invoice
	dbCtx := s.db.WithContext(ctx).
		Where("company_id = ?", companyId).
		Where(condition, value)
	if asOf != nil {
		dbCtx = dbCtx.Where("invoice_date <= ?", *asOf)
	}
	if err := dbCtx.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *ledgerStore) OpenBills(ctx context.Context, companyId string, asOf *time.Time) ([]Bill, error) {
	var bills []Bill
	dbCtx := s.db.WithContext(ctx).
		Where("company_id = ? AND current_status NOT IN ?", companyId, []BillStatus{BillStatusPaid, BillStatusVoided})
	if asOf != nil {
		dbCtx = dbCtx.Where("bill_date <= ?", *asOf)
	}
	if err := dbCtx.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (s *ledgerStore) BudgetLines(ctx context.Context, companyId string, asOf *time.Time) ([]BudgetLine, error) {
	var lines []BudgetLine
	dbCtx := s.db.WithContext(ctx).Where("company_id = ?", companyId)
	if asOf != nil {
		dbCtx = dbCtx.Where("created_at <= ?", *asOf)
	}
	if err := dbCtx.Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// AggregateFinancialKPIs folds six independently-fetched record sets into
// dashboard KPIs. The fetches run concurrently and deliberately do NOT share
// a snapshot: the numbers are "approximately as of now", trading consistency
// for freshness. If any single fetch fails the whole aggregation fails —
// partial financial totals are worse than an explicit error.
func AggregateFinancialKPIs(ctx context.Context, reader LedgerReader, companyId string, asOf *time.Time) (*FinancialKPIs, error) {

	var (
		contracts           []Contract
		invoices            []Invoice
		paidInvoices        []Invoice
		outstandingInvoices []Invoice
		openBills           []Bill
		budgetLines         []BudgetLine
	)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(6)
	go func() {
		defer wg.Done()
		var err error
		if contracts, err = reader.ActiveContracts(ctx, companyId, asOf); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if invoices, err = reader.Invoices(ctx, companyId, asOf); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if paidInvoices, err = reader.PaidInvoices(ctx, companyId, asOf); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if outstandingInvoices, err = reader.OutstandingInvoices(ctx, companyId, asOf); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if openBills, err = reader.OpenBills(ctx, companyId, asOf); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if budgetLines, err = reader.BudgetLines(ctx, companyId, asOf); err != nil {
			fail(err)
		}
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	kpis := FinancialKPIs{
		TotalContractValue:    decimal.Zero,
		TotalInvoiced:         decimal.Zero,
		TotalPaid:             decimal.Zero,
		OutstandingReceivable: decimal.Zero,
		PayableBalance:        decimal.Zero,
		TotalEstimated:        decimal.Zero,
		TotalCommitted:        decimal.Zero,
		TotalActual:           decimal.Zero,
		AsOf:                  asOf,
		GeneratedAt:           time.Now().UTC(),
	}

	for _, c := range contracts {
		kpis.TotalContractValue = kpis.TotalContractValue.Add(c.ContractValue)
	}
	for _, inv := range invoices {
		kpis.TotalInvoiced = kpis.TotalInvoiced.Add(inv.Amount)
	}
	for _, inv := range paidInvoices {
		kpis.TotalPaid = kpis.TotalPaid.Add(inv.Amount)
	}
	for _, inv := range outstandingInvoices {
		kpis.OutstandingReceivable = kpis.OutstandingReceivable.Add(inv.Amount)
	}
	for _, bill := range openBills {
		kpis.PayableBalance = kpis.PayableBalance.Add(bill.BalanceDue)
	}
	for _, line := range budgetLines {
		kpis.TotalEstimated = kpis.TotalEstimated.Add(line.EstimatedAmount)
		kpis.TotalCommitted = kpis.TotalCommitted.Add(line.CommittedAmount)
		kpis.TotalActual = kpis.TotalActual.Add(line.ActualAmount)
	}

	kpis.TotalVariance = kpis.TotalEstimated.Sub(kpis.TotalActual)
	if kpis.TotalVariance.IsNegative() {
		kpis.BudgetDirection = BudgetDirectionOver
	} else {
		kpis.BudgetDirection = BudgetDirectionUnder
	}

	return &kpis, nil
}

// GetFinancialKPIs is the cached entry point for dashboard loads. Historical
// (asOf) queries bypass the cache.
func GetFinancialKPIs(ctx context.Context, companyId string, asOf *time.Time) (*FinancialKPIs, error) {
	if asOf != nil {
		return AggregateFinancialKPIs(ctx, NewLedgerStore(config.GetDB()), companyId, asOf)
	}

	var cached FinancialKPIs
	exists, err := config.GetRedisObject("kpis:"+companyId, &cached)
	if err != nil {
		return nil, err
	}
	if exists {
		return &cached, nil
	}

	kpis, err := AggregateFinancialKPIs(ctx, NewLedgerStore(config.GetDB()), companyId, nil)
	if err != nil {
		return nil, err
	}
	if err := config.SetRedisObject("kpis:"+companyId, kpis, 30*time.Second); err != nil {
		return nil, err
	}
	return kpis, nil
}
