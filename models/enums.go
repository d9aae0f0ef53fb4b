package models

import (
	"errors"
	"strconv"
)

type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "Draft"
	ContractStatusActive    ContractStatus = "Active"
	ContractStatusOnHold    ContractStatus = "OnHold"
	ContractStatusCompleted ContractStatus = "Completed"
	ContractStatusVoided    ContractStatus = "Voided"
)

// convert enum to send response
func (t ContractStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

// convert input to enum type
func (t *ContractStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("contract status must be string")
	}
	switch str {
	case "Draft":
		*t = ContractStatusDraft
	case "Active":
		*t = ContractStatusActive
	case "OnHold":
		*t = ContractStatusOnHold
	case "Completed":
		*t = ContractStatusCompleted
	case "Voided":
		*t = ContractStatusVoided
	default:
		return errors.New("invalid contract status")
	}
	return nil
}

type InvoiceStatus string

const (
	InvoiceStatusDraft             InvoiceStatus = "Draft"
	InvoiceStatusPMPending         InvoiceStatus = "PMPending"
	InvoiceStatusAccountantPending InvoiceStatus = "AccountantPending"
	InvoiceStatusOwnerPending      InvoiceStatus = "OwnerPending"
	InvoiceStatusApproved          InvoiceStatus = "Approved"
	InvoiceStatusInDraw            InvoiceStatus = "InDraw"
	InvoiceStatusPaid              InvoiceStatus = "Paid"
	InvoiceStatusVoided            InvoiceStatus = "Voided"
)

// invoices billed to the client but not yet settled (outstanding AR bucket)
var OutstandingInvoiceStatuses = []InvoiceStatus{
	InvoiceStatusApproved,
	InvoiceStatusInDraw,
}

func (t InvoiceStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *InvoiceStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("invoice status must be string")
	}
	switch str {
	case "Draft":
		*t = InvoiceStatusDraft
	case "PMPending":
		*t = InvoiceStatusPMPending
	case "AccountantPending":
		*t = InvoiceStatusAccountantPending
	case "OwnerPending":
		*t = InvoiceStatusOwnerPending
	case "Approved":
		*t = InvoiceStatusApproved
	case "InDraw":
		*t = InvoiceStatusInDraw
	case "Paid":
		*t = InvoiceStatusPaid
	case "Voided":
		*t = InvoiceStatusVoided
	default:
		return errors.New("invalid invoice status")
	}
	return nil
}

func (t InvoiceStatus) IsOutstanding() bool {
	for _, s := range OutstandingInvoiceStatuses {
		if t == s {
			return true
		}
	}
	return false
}

type BillStatus string

const (
	BillStatusDraft       BillStatus = "Draft"
	BillStatusOpen        BillStatus = "Open"
	BillStatusPartialPaid BillStatus = "Partial Paid"
	BillStatusPaid        BillStatus = "Paid"
	BillStatusVoided      BillStatus = "Voided"
)

func (t BillStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *BillStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("bill status must be string")
	}
	switch str {
	case "Draft":
		*t = BillStatusDraft
	case "Open":
		*t = BillStatusOpen
	case "Partial Paid":
		*t = BillStatusPartialPaid
	case "Paid":
		*t = BillStatusPaid
	case "Voided":
		*t = BillStatusVoided
	default:
		return errors.New("invalid bill status")
	}
	return nil
}

type ChangeOrderStatus string

const (
	ChangeOrderStatusDraft           ChangeOrderStatus = "Draft"
	ChangeOrderStatusInternalReview  ChangeOrderStatus = "InternalReview"
	ChangeOrderStatusClientPresented ChangeOrderStatus = "ClientPresented"
	ChangeOrderStatusNegotiation     ChangeOrderStatus = "Negotiation"
	ChangeOrderStatusApproved        ChangeOrderStatus = "Approved"
	ChangeOrderStatusRejected        ChangeOrderStatus = "Rejected"
	ChangeOrderStatusWithdrawn       ChangeOrderStatus = "Withdrawn"
	ChangeOrderStatusVoided          ChangeOrderStatus = "Voided"
)

func (t ChangeOrderStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *ChangeOrderStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("change order status must be string")
	}
	switch str {
	case "Draft":
		*t = ChangeOrderStatusDraft
	case "InternalReview":
		*t = ChangeOrderStatusInternalReview
	case "ClientPresented":
		*t = ChangeOrderStatusClientPresented
	case "Negotiation":
		*t = ChangeOrderStatusNegotiation
	case "Approved":
		*t = ChangeOrderStatusApproved
	case "Rejected":
		*t = ChangeOrderStatusRejected
	case "Withdrawn":
		*t = ChangeOrderStatusWithdrawn
	case "Voided":
		*t = ChangeOrderStatusVoided
	default:
		return errors.New("invalid change order status")
	}
	return nil
}

type DrawStatus string

const (
	DrawStatusOpen      DrawStatus = "Open"
	DrawStatusSubmitted DrawStatus = "Submitted"
	DrawStatusFunded    DrawStatus = "Funded"
	DrawStatusClosed    DrawStatus = "Closed"
)

func (t DrawStatus) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}

func (t *DrawStatus) UnmarshalJSON(data []byte) error {
	str, err := strconv.Unquote(string(data))
	if err != nil {
		return errors.New("draw status must be string")
	}
	switch str {
	case "Open":
		*t = DrawStatusOpen
	case "Submitted":
		*t = DrawStatusSubmitted
	case "Funded":
		*t = DrawStatusFunded
	case "Closed":
		*t = DrawStatusClosed
	default:
		return errors.New("invalid draw status")
	}
	return nil
}

type BudgetDirection string

const (
	BudgetDirectionUnder BudgetDirection = "UnderBudget"
	BudgetDirectionOver  BudgetDirection = "OverBudget"
)

func (t BudgetDirection) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(t))), nil
}
