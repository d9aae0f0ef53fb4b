package handlers

import (
	"net/http"
	"strconv"

	"github.com/buildrise/costledger_backend/models"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func CreateBudgetLineHandler(c *gin.Context) {
	companyId, ok := requireCompany(c)
	if !ok {
		return
	}

	var input models.NewBudgetLine
	if err := c.ShouldBindJSON(&input); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": utils.ProcessValidationErrors(verrs)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := models.CreateBudgetLine(c.Request.Context(), companyId, &input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func GetBudgetLineHandler(c *gin.Context) {
	companyId, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := pathId(c)
	if !ok {
		return
	}

	line, err := models.GetBudgetLine(c.Request.Context(), companyId, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// PatchBudgetLineHandler reconciles a partial edit. The body distinguishes a
// missing key (keep), null (clear) and a value (set) per field.
func PatchBudgetLineHandler(c *gin.Context) {
	companyId, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := pathId(c)
	if !ok {
		return
	}

	var patch models.BudgetLinePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := models.UpdateBudgetLine(c.Request.Context(), companyId, id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func ArchiveBudgetLineHandler(c *gin.Context) {
	companyId, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := pathId(c)
	if !ok {
		return
	}

	if err := models.ArchiveBudgetLine(c.Request.Context(), companyId, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
