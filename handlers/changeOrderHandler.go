package handlers

import (
	"net/http"
	"time"

	"github.com/buildrise/costledger_backend/config"
	"github.com/buildrise/costledger_backend/models"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/buildrise/costledger_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func CreateChangeOrderHandler(c *gin.Context) {
	companyId, ok := requireCompany(c)
	if !ok {
		return
	}

	var input models.NewChangeOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": utils.ProcessValidationErrors(verrs)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	co, err := models.CreateChangeOrder(c.Request.Context(), companyId, &input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

func GetChangeOrderHandler(c *gin.Context) {
	companyId, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := pathId(c)
	if !ok {
		return
	}

	co, err := models.GetChangeOrder(c.Request.Context(), companyId, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

type transitionRequest struct {
	TargetStatus models.ChangeOrderStatus `json:"target_status" binding:"required"`
}

// TransitionChangeOrderHandler drives the state machine. A target of Approved
// triggers the full approval cascade.
func TransitionChangeOrderHandler(c *gin.Context) {
	companyId, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := pathId(c)
	if !ok {
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	co, err := workflow.TransitionChangeOrder(c.Request.Context(), config.GetLogger(), companyId, id, req.TargetStatus, time.Now().UTC())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}
