package handlers

import (
	"net/http"
	"time"

	"github.com/buildrise/costledger_backend/models"
	"github.com/gin-gonic/gin"
)

// DashboardKPIsHandler serves the company-wide cost rollups. An optional
// as_of=RFC3339 query restricts every fetch to records on or before that
// moment.
func DashboardKPIsHandler(c *gin.Context) {
	companyId, ok := requireCompany(c)
	if !ok {
		return
	}

	var asOf *time.Time
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be RFC3339"})
			return
		}
		asOf = &parsed
	}

	kpis, err := models.GetFinancialKPIs(c.Request.Context(), companyId, asOf)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, kpis)
}
