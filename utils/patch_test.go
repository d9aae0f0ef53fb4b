package utils

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPatch_UnmarshalThreeStates(t *testing.T) {
	var doc struct {
		Description Patch[string]          `json:"description"`
		Amount      Patch[decimal.Decimal] `json:"amount"`
		Notes       Patch[string]          `json:"notes"`
	}
	body := []byte(`{"description":"rebar","amount":null}`)
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !doc.Description.Present || doc.Description.Null {
		t.Fatalf("description expected set, got %+v", doc.Description)
	}
	if doc.Description.Value != "rebar" {
		t.Fatalf("description expected rebar, got %q", doc.Description.Value)
	}
	if !doc.Amount.Present || !doc.Amount.Null {
		t.Fatalf("amount expected null, got %+v", doc.Amount)
	}
	if doc.Notes.Present {
		t.Fatalf("notes expected absent, got %+v", doc.Notes)
	}
}

func TestPatch_Apply(t *testing.T) {
	current := "keep me"

	var absent Patch[string]
	if got := absent.Apply(current); got != current {
		t.Fatalf("absent patch expected %q, got %q", current, got)
	}

	if got := NullPatch[string]().Apply(current); got != "" {
		t.Fatalf("null patch expected zero value, got %q", got)
	}

	if got := SetPatch("new").Apply(current); got != "new" {
		t.Fatalf("set patch expected new, got %q", got)
	}
}

func TestPatch_ApplyDecimal(t *testing.T) {
	current := decimal.RequireFromString("125.50")

	if got := NullPatch[decimal.Decimal]().Apply(current); !got.IsZero() {
		t.Fatalf("null patch expected zero, got %s", got)
	}
	want := decimal.RequireFromString("99.9900")
	if got := SetPatch(want).Apply(current); !got.Equal(want) {
		t.Fatalf("set patch expected %s, got %s", want, got)
	}
}

func TestPatch_MarshalRoundTrip(t *testing.T) {
	out, err := json.Marshal(SetPatch("phase 2"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"phase 2"` {
		t.Fatalf("expected quoted value, got %s", out)
	}

	out, err = json.Marshal(NullPatch[string]())
	if err != nil {
		t.Fatalf("marshal null: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("expected null, got %s", out)
	}
}
