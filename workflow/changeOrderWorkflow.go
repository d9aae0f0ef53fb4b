package workflow

import (
	"context"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/models"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const moduleName = "workflow"

var tracer = otel.Tracer("costledger-backend/workflow")

// ApplyCascade moves the three downstream entities by the signed delta and
// returns the audit record. Pure arithmetic on the passed structs; the caller
// owns locking and persistence. Any negativity check failing aborts the whole
// cascade.
func ApplyCascade(contract *models.Contract, line *models.BudgetLine, draw *models.DrawRequest, delta decimal.Decimal) (*models.CascadeRecord, error) {
	record := models.CascadeRecord{
		ContractId:          contract.ID,
		BudgetLineId:        line.ID,
		DrawRequestId:       draw.ID,
		Delta:               delta,
		ContractValueBefore: contract.ContractValue,
		CommittedBefore:     line.CommittedAmount,
		ActualBefore:        line.ActualAmount,
		DrawDueBefore:       draw.CurrentDue,
	}

	newValue := contract.ContractValue.Add(delta)
	if newValue.IsNegative() {
		return nil, utils.NewValidationError("contract_value", "cascade would make contract value negative")
	}
	contract.ContractValue = newValue

	if err := line.ApplyCascadeDelta(delta); err != nil {
		return nil, err
	}

	newDue := draw.CurrentDue.Add(delta)
	if newDue.IsNegative() {
		return nil, utils.NewValidationError("current_due", "cascade would make draw current due negative")
	}
	draw.CurrentDue = newDue

	record.ContractValueAfter = contract.ContractValue
	record.CommittedAfter = line.CommittedAmount
	record.ActualAfter = line.ActualAmount
	record.DrawDueAfter = draw.CurrentDue
	return &record, nil
}

// ApproveChangeOrder runs the approval cascade: the change order, its
// contract, its budget line and the next open draw are locked and updated in
// one transaction. On any failure the transaction rolls back and the change
// order stays in its prior status.
func ApproveChangeOrder(ctx context.Context, logger *logrus.Logger, companyId string, id int, now time.Time) (*models.ChangeOrder, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "changeOrder.approve",
		trace.WithAttributes(attribute.Int("change_order.id", id)))
	defer span.End()

	release, err := utils.CompanyLock(ctx, companyId, "cascade", moduleName, "ApproveChangeOrder")
	if err != nil {
		return nil, utils.NewValidationError("", err.Error())
	}
	defer release()

	var approved models.ChangeOrder

	db := config.GetDB()
	txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var co models.ChangeOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyId, id).
			First(&co).Error; err != nil {
			return &utils.NotFoundError{Entity: "change order", Id: id}
		}

		if err := models.ValidateChangeOrderTransition(co.CurrentStatus, models.ChangeOrderStatusApproved); err != nil {
			return err
		}

		var contract models.Contract
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyId, co.ContractId).
			First(&contract).Error; err != nil {
			return &utils.NotFoundError{Entity: "contract", Id: co.ContractId}
		}

		var line models.BudgetLine
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyId, co.BudgetLineId).
			First(&line).Error; err != nil {
			return &utils.NotFoundError{Entity: "budget line", Id: co.BudgetLineId}
		}

		draw, err := models.NextOpenDraw(tx, ctx, companyId, co.ContractId)
		if err != nil {
			return err
		}

		delta := co.CascadeDelta()
		wrap := func(err error) error {
			return &utils.CascadeError{
				ChangeOrderId: co.ID,
				ContractId:    contract.ID,
				BudgetLineId:  line.ID,
				DrawRequestId: draw.ID,
				Delta:         delta.String(),
				Err:           err,
			}
		}

		record, err := ApplyCascade(&contract, &line, draw, delta)
		if err != nil {
			return wrap(err)
		}

		if err := tx.Save(&contract).Error; err != nil {
			return wrap(err)
		}
		if err := tx.Save(&line).Error; err != nil {
			return wrap(err)
		}
		if err := tx.Save(draw).Error; err != nil {
			return wrap(err)
		}

		co.CurrentStatus = models.ChangeOrderStatusApproved
		co.ApprovedAt = &now
		if err := tx.Save(&co).Error; err != nil {
			return wrap(err)
		}

		record.CompanyId = companyId
		record.ChangeOrderId = co.ID
		if userId, ok := utils.GetUserIdFromContext(ctx); ok {
			record.AppliedBy = userId
		}
		if err := tx.Create(record).Error; err != nil {
			return wrap(err)
		}

		approved = co
		return nil
	})

	if txErr != nil {
		config.LogError(logger, moduleName, "ApproveChangeOrder", "approval cascade", map[string]interface{}{
			"companyId":     companyId,
			"changeOrderId": id,
		}, txErr)
		return nil, txErr
	}

	if err := utils.InvalidateKPICache(companyId); err != nil {
		return nil, err
	}
	return &approved, nil
}

// TransitionChangeOrder moves a change order along any non-approval edge of
// the state machine. Entering ClientPresented stamps PresentedAt; withdrawing
// is only allowed inside the company's withdrawal window measured from that
// stamp.
func TransitionChangeOrder(ctx context.Context, logger *logrus.Logger, companyId string, id int, target models.ChangeOrderStatus, now time.Time) (*models.ChangeOrder, error) {
	if target == models.ChangeOrderStatusApproved {
		return ApproveChangeOrder(ctx, logger, companyId, id, now)
	}

	var updated models.ChangeOrder

	db := config.GetDB()
	txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var co models.ChangeOrder
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("company_id = ? AND id = ?", companyId, id).
			First(&co).Error; err != nil {
			return &utils.NotFoundError{Entity: "change order", Id: id}
		}

		if err := models.ValidateChangeOrderTransition(co.CurrentStatus, target); err != nil {
			return err
		}

		if target == models.ChangeOrderStatusWithdrawn {
			if co.PresentedAt == nil {
				return utils.NewValidationError("presented_at", "change order was never presented")
			}
			company, err := models.GetCompanyById2(tx, companyId)
			if err != nil {
				return err
			}
			if err := models.ValidateWithdrawalWindow(*co.PresentedAt, company.WithdrawalWindow(), now); err != nil {
				return err
			}
		}

		if target == models.ChangeOrderStatusClientPresented && co.PresentedAt == nil {
			co.PresentedAt = &now
		}

		co.CurrentStatus = target
		if err := tx.Save(&co).Error; err != nil {
			return err
		}

		updated = co
		return nil
	})

	if txErr != nil {
		config.LogError(logger, moduleName, "TransitionChangeOrder", "status transition", map[string]interface{}{
			"companyId":     companyId,
			"changeOrderId": id,
			"target":        target,
		}, txErr)
		return nil, txErr
	}
	return &updated, nil
}
