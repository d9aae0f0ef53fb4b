package handlers

import (
	"net/http"

	"github.com/buildrise/costledger_backend/models"
	"github.com/buildrise/costledger_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": utils.ProcessValidationErrors(verrs)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := models.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type registerRequest struct {
	Company models.NewCompany `json:"company" binding:"required"`
	User    models.NewUser    `json:"user" binding:"required"`
}

// RegisterHandler bootstraps a tenant: the company and its first (admin) user.
func RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": utils.ProcessValidationErrors(verrs)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	company, err := models.CreateCompany(ctx, &req.Company)
	if err != nil {
		writeError(c, err)
		return
	}

	req.User.Role = "admin"
	user, err := models.CreateUser(ctx, company.ID.String(), &req.User)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": company, "user": user})
}
