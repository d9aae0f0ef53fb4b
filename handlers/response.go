package handlers

import (
	"errors"
	"net/http"

	"github.com/buildrise/costledger_backend/utils"
	"github.com/gin-gonic/gin"
)

// writeError maps domain error kinds onto HTTP statuses. Anything unrecognized
// is a 500 with a generic body so internals never leak to the client.
func writeError(c *gin.Context, err error) {
	var validationErr *utils.ValidationError
	var notFoundErr *utils.NotFoundError
	var transitionErr *utils.InvalidTransitionError
	var windowErr *utils.WindowExpiredError
	var cascadeErr *utils.CascadeError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.As(err, &windowErr):
		c.JSON(http.StatusConflict, gin.H{"error": windowErr.Error()})
	case errors.As(err, &cascadeErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "approval cascade failed; no changes were applied"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// requireCompany pulls the authenticated tenant out of the request context.
// Writes a 401 and returns false when the request carries no company claim.
func requireCompany(c *gin.Context) (string, bool) {
	companyId, ok := utils.GetCompanyIdFromContext(c.Request.Context())
	if !ok || companyId == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return companyId, true
}
