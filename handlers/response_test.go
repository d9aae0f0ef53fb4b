package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buildrise/costledger_backend/utils"
	"github.com/gin-gonic/gin"
)

func TestWriteError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", utils.NewValidationError("estimated_amount", "must not be negative"), http.StatusUnprocessableEntity},
		{"not found", &utils.NotFoundError{Entity: "budget line", Id: 7}, http.StatusNotFound},
		{"invalid transition", &utils.InvalidTransitionError{From: "Approved", To: "Draft"}, http.StatusConflict},
		{"window expired", &utils.WindowExpiredError{PresentedAt: time.Now(), Window: 48 * time.Hour}, http.StatusConflict},
		{"cascade", &utils.CascadeError{ChangeOrderId: 1, Err: errors.New("deadlock")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			writeError(c, tc.err)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}

// A cascade error wrapping a validation cause surfaces the validation status:
// the client can fix the input, and the rollback already undid everything.
func TestWriteError_CascadeUnwrapsValidationCause(t *testing.T) {
	gin.SetMode(gin.TestMode)

	inner := utils.NewValidationError("current_due", "cascade would make draw current due negative")
	err := &utils.CascadeError{ChangeOrderId: 5, Delta: "-5000", Err: inner}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	writeError(c, err)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 from inner validation cause, got %d", rec.Code)
	}
}
