package models

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChangeOrder is a priced scope change against a contract. Approval is the
// one mutating transition: contract value, the target budget line and the next
// open draw all move by TotalAmount in a single transaction (see workflow).
// IsCredit flips the sign of every delta.
type ChangeOrder struct {
	ID                int               `gorm:"primary_key" json:"id"`
	CompanyId         string            `gorm:"index;not null" json:"company_id"`
	JobId             int               `gorm:"index;not null" json:"job_id" binding:"required"`
	ContractId        int               `gorm:"index;not null" json:"contract_id" binding:"required"`
	BudgetLineId      int               `gorm:"index;not null" json:"budget_line_id" binding:"required"`
	Number            string            `gorm:"size:100" json:"number"`
	Description       string            `gorm:"size:255;not null" json:"description" binding:"required"`
	MaterialsCost     decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"materials_cost"`
	LaborCost         decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"labor_cost"`
	EquipmentCost     decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"equipment_cost"`
	SubcontractorCost decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"subcontractor_cost"`
	Subtotal          decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	MarkupAmount      decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"markup_amount"`
	TotalAmount       decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	IsCredit          *bool             `gorm:"not null;default:false" json:"is_credit"`
	CurrentStatus     ChangeOrderStatus `gorm:"type:enum('Draft','InternalReview','ClientPresented','Negotiation','Approved','Rejected','Withdrawn','Voided');default:Draft" json:"current_status"`
	PresentedAt       *time.Time        `gorm:"default:null" json:"presented_at"`
	ApprovedAt        *time.Time        `gorm:"default:null" json:"approved_at"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt    `gorm:"index" json:"-"`
}

type NewChangeOrder struct {
	JobId             int             `json:"job_id" binding:"required"`
	ContractId        int             `json:"contract_id" binding:"required"`
	BudgetLineId      int             `json:"budget_line_id" binding:"required"`
	Number            string          `json:"number"`
	Description       string          `json:"description" binding:"required"`
	MaterialsCost     decimal.Decimal `json:"materials_cost"`
	LaborCost         decimal.Decimal `json:"labor_cost"`
	EquipmentCost     decimal.Decimal `json:"equipment_cost"`
	SubcontractorCost decimal.Decimal `json:"subcontractor_cost"`
	MarkupAmount      decimal.Decimal `json:"markup_amount"`
	IsCredit          *bool           `json:"is_credit"`
}

var changeOrderTransitions = map[ChangeOrderStatus][]ChangeOrderStatus{
	ChangeOrderStatusDraft:          {ChangeOrderStatusInternalReview, ChangeOrderStatusVoided},
	ChangeOrderStatusInternalReview: {ChangeOrderStatusDraft, ChangeOrderStatusClientPresented, ChangeOrderStatusVoided},
	ChangeOrderStatusClientPresented: {
		ChangeOrderStatusNegotiation, ChangeOrderStatusApproved, ChangeOrderStatusRejected,
		ChangeOrderStatusWithdrawn, ChangeOrderStatusVoided,
	},
	ChangeOrderStatusNegotiation: {
		ChangeOrderStatusApproved, ChangeOrderStatusRejected,
		ChangeOrderStatusWithdrawn, ChangeOrderStatusVoided,
	},
	// terminal
	ChangeOrderStatusApproved:  {},
	ChangeOrderStatusRejected:  {},
	ChangeOrderStatusWithdrawn: {},
	ChangeOrderStatusVoided:    {},
}

func (s ChangeOrderStatus) IsTerminal() bool {
	switch s {
	case ChangeOrderStatusApproved, ChangeOrderStatusRejected, ChangeOrderStatusWithdrawn, ChangeOrderStatusVoided:
		return true
	}
	return false
}

// ValidateChangeOrderTransition checks the from -> to edge against the state
// machine. Terminal states admit no transition, including re-approval.
func ValidateChangeOrderTransition(from ChangeOrderStatus, to ChangeOrderStatus) error {
	for _, allowed := range changeOrderTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &utils.InvalidTransitionError{From: string(from), To: string(to)}
}

// ValidateWithdrawalWindow rejects a withdrawal attempted after the window
// measured from the client-presented timestamp has elapsed.
func ValidateWithdrawalWindow(presentedAt time.Time, window time.Duration, now time.Time) error {
	if now.After(presentedAt.Add(window)) {
		return &utils.WindowExpiredError{PresentedAt: presentedAt, Window: window}
	}
	return nil
}

// CascadeDelta is the signed amount applied to the contract value, the budget
// line and the next open draw on approval.
func (co *ChangeOrder) CascadeDelta() decimal.Decimal {
	if utils.DereferencePtr(co.IsCredit) {
		return co.TotalAmount.Neg()
	}
	return co.TotalAmount
}

// ValidateTotals checks the pricing identity: the four cost components sum to
// the subtotal, and subtotal plus markup equals the total.
func (co *ChangeOrder) ValidateTotals() error {
	componentSum := co.MaterialsCost.Add(co.LaborCost).Add(co.EquipmentCost).Add(co.SubcontractorCost)
	if !componentSum.Equal(co.Subtotal) {
		return utils.NewValidationError("subtotal", "must equal materials + labor + equipment + subcontractor costs")
	}
	if !co.Subtotal.Add(co.MarkupAmount).Equal(co.TotalAmount) {
		return utils.NewValidationError("total_amount", "must equal subtotal + markup")
	}
	for field, amount := range map[string]decimal.Decimal{
		"materials_cost":     co.MaterialsCost,
		"labor_cost":         co.LaborCost,
		"equipment_cost":     co.EquipmentCost,
		"subcontractor_cost": co.SubcontractorCost,
	} {
		if amount.IsNegative() {
			return utils.NewValidationError(field, "must not be negative")
		}
	}
	return nil
}

func CreateChangeOrder(ctx context.Context, companyId string, input *NewChangeOrder) (*ChangeOrder, error) {
	if err := utils.ValidateResourceId[Job](ctx, companyId, input.JobId); err != nil {
		return nil, &utils.NotFoundError{Entity: "job", Id: input.JobId}
	}
	if err := utils.ValidateResourceId[Contract](ctx, companyId, input.ContractId); err != nil {
		return nil, &utils.NotFoundError{Entity: "contract", Id: input.ContractId}
	}
	if err := utils.ValidateResourceId[BudgetLine](ctx, companyId, input.BudgetLineId); err != nil {
		return nil, &utils.NotFoundError{Entity: "budget line", Id: input.BudgetLineId}
	}

	subtotal := input.MaterialsCost.Add(input.LaborCost).Add(input.EquipmentCost).Add(input.SubcontractorCost)
	co := ChangeOrder{
		CompanyId:         companyId,
		JobId:             input.JobId,
		ContractId:        input.ContractId,
		BudgetLineId:      input.BudgetLineId,
		Number:            input.Number,
		Description:       input.Description,
		MaterialsCost:     input.MaterialsCost,
		LaborCost:         input.LaborCost,
		EquipmentCost:     input.EquipmentCost,
		SubcontractorCost: input.SubcontractorCost,
		Subtotal:          subtotal,
		MarkupAmount:      input.MarkupAmount,
		TotalAmount:       subtotal.Add(input.MarkupAmount),
		IsCredit:          input.IsCredit,
		CurrentStatus:     ChangeOrderStatusDraft,
	}
	if co.IsCredit == nil {
		co.IsCredit = utils.NewFalse()
	}
	if err := co.ValidateTotals(); err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&co).Error; err != nil {
		return nil, err
	}
	return &co, nil
}

func GetChangeOrder(ctx context.Context, companyId string, id int) (*ChangeOrder, error) {
	var co ChangeOrder
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("company_id = ? AND id = ?", companyId, id).First(&co).Error; err != nil {
		return nil, &utils.NotFoundError{Entity: "change order", Id: id}
	}
	return &co, nil
}
