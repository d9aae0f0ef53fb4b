package models

import (
	"context"
	"strings"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetLine tracks estimated vs committed vs actual spend for one cost-code
// slice of a job's budget.
//
// Invariant: VarianceAmount == EstimatedAmount - ActualAmount after every
// mutation. Positive variance means under budget. ProjectedAmount is supplied
// by an upstream estimate-to-complete process and is only persisted here,
// never recomputed.
type BudgetLine struct {
	ID              int             `gorm:"primary_key" json:"id"`
	CompanyId       string          `gorm:"index;not null" json:"company_id"`
	JobId           int             `gorm:"index;not null" json:"job_id" binding:"required"`
	CostCodeId      int             `gorm:"index;default:null" json:"cost_code_id"`
	Description     string          `gorm:"size:255;not null" json:"description" binding:"required"`
	Phase           string          `gorm:"size:100" json:"phase"`
	EstimatedAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"estimated_amount"`
	CommittedAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"committed_amount"`
	ActualAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"actual_amount"`
	ProjectedAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"projected_amount"`
	VarianceAmount  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"variance_amount"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

type NewBudgetLine struct {
	JobId           int             `json:"job_id" binding:"required"`
	CostCodeId      int             `json:"cost_code_id"`
	Description     string          `json:"description" binding:"required"`
	Phase           string          `json:"phase"`
	EstimatedAmount decimal.Decimal `json:"estimated_amount"`
	CommittedAmount decimal.Decimal `json:"committed_amount"`
	ActualAmount    decimal.Decimal `json:"actual_amount"`
	ProjectedAmount decimal.Decimal `json:"projected_amount"`
	Notes           string          `json:"notes"`
}

// BudgetLinePatch is a partial edit. Each field is three-state: a missing key
// keeps the stored value, null clears it, a value sets it.
type BudgetLinePatch struct {
	Description     utils.Patch[string]          `json:"description"`
	Phase           utils.Patch[string]          `json:"phase"`
	Notes           utils.Patch[string]          `json:"notes"`
	CostCodeId      utils.Patch[int]             `json:"cost_code_id"`
	EstimatedAmount utils.Patch[decimal.Decimal] `json:"estimated_amount"`
	CommittedAmount utils.Patch[decimal.Decimal] `json:"committed_amount"`
	ActualAmount    utils.Patch[decimal.Decimal] `json:"actual_amount"`
	ProjectedAmount utils.Patch[decimal.Decimal] `json:"projected_amount"`
}

// Reconcile applies a patch and recomputes the variance. Pure: the receiver is
// not modified, persistence is the caller's job. Calling it twice with the
// same patch yields an identical result.
func (line BudgetLine) Reconcile(patch BudgetLinePatch) (BudgetLine, error) {
	line.Description = patch.Description.Apply(line.Description)
	line.Phase = patch.Phase.Apply(line.Phase)
	line.Notes = patch.Notes.Apply(line.Notes)
	line.CostCodeId = patch.CostCodeId.Apply(line.CostCodeId)
	line.EstimatedAmount = patch.EstimatedAmount.Apply(line.EstimatedAmount)
	line.CommittedAmount = patch.CommittedAmount.Apply(line.CommittedAmount)
	line.ActualAmount = patch.ActualAmount.Apply(line.ActualAmount)
	line.ProjectedAmount = patch.ProjectedAmount.Apply(line.ProjectedAmount)

	if strings.TrimSpace(line.Description) == "" {
		return BudgetLine{}, utils.NewValidationError("description", "must not be blank")
	}
	if line.EstimatedAmount.IsNegative() {
		return BudgetLine{}, utils.NewValidationError("estimated_amount", "must not be negative")
	}
	if line.CommittedAmount.IsNegative() {
		return BudgetLine{}, utils.NewValidationError("committed_amount", "must not be negative")
	}
	if line.ActualAmount.IsNegative() {
		return BudgetLine{}, utils.NewValidationError("actual_amount", "must not be negative")
	}

	line.VarianceAmount = line.EstimatedAmount.Sub(line.ActualAmount)
	return line, nil
}

// ApplyCascadeDelta folds an approved change order's total into the line:
// the committed and actual amounts both move by the delta and the variance is
// recomputed. Used inside the approval transaction only.
func (line *BudgetLine) ApplyCascadeDelta(delta decimal.Decimal) error {
	committed := line.CommittedAmount.Add(delta)
	actual := line.ActualAmount.Add(delta)
	if committed.IsNegative() {
		return utils.NewValidationError("committed_amount", "cascade would make committed amount negative")
	}
	if actual.IsNegative() {
		return utils.NewValidationError("actual_amount", "cascade would make actual amount negative")
	}
	line.CommittedAmount = committed
	line.ActualAmount = actual
	line.VarianceAmount = line.EstimatedAmount.Sub(actual)
	return nil
}

func CreateBudgetLine(ctx context.Context, companyId string, input *NewBudgetLine) (*BudgetLine, error) {
	if err := utils.ValidateResourceId[Job](ctx, companyId, input.JobId); err != nil {
		return nil, &utils.NotFoundError{Entity: "job", Id: input.JobId}
	}
	if input.CostCodeId > 0 {
		if err := utils.ValidateResourceId[CostCode](ctx, companyId, input.CostCodeId); err != nil {
			return nil, &utils.NotFoundError{Entity: "cost code", Id: input.CostCodeId}
		}
	}

	line := BudgetLine{
		CompanyId:   companyId,
		JobId:       input.JobId,
		CostCodeId:  input.CostCodeId,
		Description: input.Description,
		Phase:       input.Phase,
		Notes:       input.Notes,
	}
	reconciled, err := line.Reconcile(BudgetLinePatch{
		EstimatedAmount: utils.SetPatch(input.EstimatedAmount),
		CommittedAmount: utils.SetPatch(input.CommittedAmount),
		ActualAmount:    utils.SetPatch(input.ActualAmount),
		ProjectedAmount: utils.SetPatch(input.ProjectedAmount),
	})
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&reconciled).Error; err != nil {
		return nil, err
	}
	if err := utils.InvalidateKPICache(companyId); err != nil {
		return nil, err
	}
	return &reconciled, nil
}

func GetBudgetLine(ctx context.Context, companyId string, id int) (*BudgetLine, error) {
	var line BudgetLine
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ? AND id = ?", companyId, id).First(&line).Error; err != nil {
		return nil, &utils.NotFoundError{Entity: "budget line", Id: id}
	}
	return &line, nil
}

// UpdateBudgetLine reconciles a patch against the stored line and persists the
// result. Concurrent edits to the same line are last-write-wins at the store
// level; no optimistic lock is layered on top.
func UpdateBudgetLine(ctx context.Context, companyId string, id int, patch BudgetLinePatch) (*BudgetLine, error) {
	line, err := GetBudgetLine(ctx, companyId, id)
	if err != nil {
		return nil, err
	}

	if patch.CostCodeId.IsSet() && patch.CostCodeId.Value > 0 {
		if err := utils.ValidateResourceId[CostCode](ctx, companyId, patch.CostCodeId.Value); err != nil {
			return nil, &utils.NotFoundError{Entity: "cost code", Id: patch.CostCodeId.Value}
		}
	}

	reconciled, err := line.Reconcile(patch)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(&reconciled).Error; err != nil {
		return nil, err
	}
	if err := utils.InvalidateKPICache(companyId); err != nil {
		return nil, err
	}
	return &reconciled, nil
}

// ArchiveBudgetLine soft-deletes a line. A line with open commitments (a
// non-terminal change order still targeting it) cannot be archived.
func ArchiveBudgetLine(ctx context.Context, companyId string, id int) error {
	line, err := GetBudgetLine(ctx, companyId, id)
	if err != nil {
		return err
	}

	openCount, err := utils.ResourceCountWhere[ChangeOrder](ctx, companyId,
		"budget_line_id = ? AND current_status NOT IN ?", id, []ChangeOrderStatus{
			ChangeOrderStatusApproved,
			ChangeOrderStatusRejected,
			ChangeOrderStatusWithdrawn,
			ChangeOrderStatusVoided,
		})
	if err != nil {
		return err
	}
	if openCount > 0 {
		return utils.NewValidationError("", "budget line has open change orders and cannot be archived")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(line).Error; err != nil {
		return err
	}
	return utils.InvalidateKPICache(companyId)
}
