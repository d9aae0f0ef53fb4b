package models_test

import (
	"errors"
	"testing"
	"time"

	"github.com/buildrise/costledger_backend/models"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/shopspring/decimal"
)

func TestValidateChangeOrderTransition_AllowedEdges(t *testing.T) {
	cases := []struct {
		from models.ChangeOrderStatus
		to   models.ChangeOrderStatus
	}{
		{models.ChangeOrderStatusDraft, models.ChangeOrderStatusInternalReview},
		{models.ChangeOrderStatusDraft, models.ChangeOrderStatusVoided},
		{models.ChangeOrderStatusInternalReview, models.ChangeOrderStatusDraft},
		{models.ChangeOrderStatusInternalReview, models.ChangeOrderStatusClientPresented},
		{models.ChangeOrderStatusClientPresented, models.ChangeOrderStatusNegotiation},
		{models.ChangeOrderStatusClientPresented, models.ChangeOrderStatusApproved},
		{models.ChangeOrderStatusClientPresented, models.ChangeOrderStatusWithdrawn},
		{models.ChangeOrderStatusNegotiation, models.ChangeOrderStatusApproved},
		{models.ChangeOrderStatusNegotiation, models.ChangeOrderStatusRejected},
	}
	for _, tc := range cases {
		if err := models.ValidateChangeOrderTransition(tc.from, tc.to); err != nil {
			t.Fatalf("%s -> %s expected allowed, got %v", tc.from, tc.to, err)
		}
	}
}

func TestValidateChangeOrderTransition_RejectedEdges(t *testing.T) {
	cases := []struct {
		from models.ChangeOrderStatus
		to   models.ChangeOrderStatus
	}{
		{models.ChangeOrderStatusDraft, models.ChangeOrderStatusApproved},
		{models.ChangeOrderStatusDraft, models.ChangeOrderStatusClientPresented},
		{models.ChangeOrderStatusInternalReview, models.ChangeOrderStatusApproved},
		{models.ChangeOrderStatusClientPresented, models.ChangeOrderStatusDraft},
	}
	for _, tc := range cases {
		err := models.ValidateChangeOrderTransition(tc.from, tc.to)
		var terr *utils.InvalidTransitionError
		if err == nil || !errors.As(err, &terr) {
			t.Fatalf("%s -> %s expected InvalidTransitionError, got %v", tc.from, tc.to, err)
		}
	}
}

func TestValidateChangeOrderTransition_TerminalStatesAreImmutable(t *testing.T) {
	terminals := []models.ChangeOrderStatus{
		models.ChangeOrderStatusApproved,
		models.ChangeOrderStatusRejected,
		models.ChangeOrderStatusWithdrawn,
		models.ChangeOrderStatusVoided,
	}
	targets := []models.ChangeOrderStatus{
		models.ChangeOrderStatusDraft,
		models.ChangeOrderStatusInternalReview,
		models.ChangeOrderStatusClientPresented,
		models.ChangeOrderStatusNegotiation,
		models.ChangeOrderStatusApproved,
		models.ChangeOrderStatusRejected,
		models.ChangeOrderStatusWithdrawn,
		models.ChangeOrderStatusVoided,
	}
	for _, from := range terminals {
		if !from.IsTerminal() {
			t.Fatalf("%s expected terminal", from)
		}
		for _, to := range targets {
			if err := models.ValidateChangeOrderTransition(from, to); err == nil {
				t.Fatalf("%s -> %s expected rejection", from, to)
			}
		}
	}
}

func TestValidateWithdrawalWindow(t *testing.T) {
	presented := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	window := 48 * time.Hour

	inside := presented.Add(window - time.Second)
	if err := models.ValidateWithdrawalWindow(presented, window, inside); err != nil {
		t.Fatalf("one second before expiry expected allowed, got %v", err)
	}
	if err := models.ValidateWithdrawalWindow(presented, window, presented.Add(window)); err != nil {
		t.Fatalf("exact expiry instant expected allowed, got %v", err)
	}

	outside := presented.Add(window + time.Second)
	err := models.ValidateWithdrawalWindow(presented, window, outside)
	var werr *utils.WindowExpiredError
	if err == nil || !errors.As(err, &werr) {
		t.Fatalf("one second after expiry expected WindowExpiredError, got %v", err)
	}
	if !werr.PresentedAt.Equal(presented) || werr.Window != window {
		t.Fatalf("error payload mismatch: %+v", werr)
	}
}

func TestCascadeDelta_CreditNegation(t *testing.T) {
	co := models.ChangeOrder{
		TotalAmount: decimal.RequireFromString("45000"),
		IsCredit:    utils.NewFalse(),
	}
	if !co.CascadeDelta().Equal(decimal.RequireFromString("45000")) {
		t.Fatalf("additive delta expected 45000, got %s", co.CascadeDelta())
	}

	co.IsCredit = utils.NewTrue()
	if !co.CascadeDelta().Equal(decimal.RequireFromString("-45000")) {
		t.Fatalf("credit delta expected -45000, got %s", co.CascadeDelta())
	}
}

func TestValidateTotals(t *testing.T) {
	co := models.ChangeOrder{
		MaterialsCost:     decimal.RequireFromString("20000"),
		LaborCost:         decimal.RequireFromString("15000"),
		EquipmentCost:     decimal.RequireFromString("3000"),
		SubcontractorCost: decimal.RequireFromString("2000"),
		Subtotal:          decimal.RequireFromString("40000"),
		MarkupAmount:      decimal.RequireFromString("5000"),
		TotalAmount:       decimal.RequireFromString("45000"),
	}
	if err := co.ValidateTotals(); err != nil {
		t.Fatalf("consistent totals rejected: %v", err)
	}

	broken := co
	broken.Subtotal = decimal.RequireFromString("41000")
	if err := broken.ValidateTotals(); err == nil {
		t.Fatal("subtotal mismatch expected rejection")
	}

	broken = co
	broken.TotalAmount = decimal.RequireFromString("44000")
	if err := broken.ValidateTotals(); err == nil {
		t.Fatal("total mismatch expected rejection")
	}

	broken = co
	broken.LaborCost = decimal.RequireFromString("-1")
	broken.Subtotal = decimal.RequireFromString("24999")
	broken.TotalAmount = decimal.RequireFromString("29999")
	if err := broken.ValidateTotals(); err == nil {
		t.Fatal("negative component expected rejection")
	}
}
