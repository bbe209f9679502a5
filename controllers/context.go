// controllers/context.go
package controllers

import (
	"net/http"

	"cobranzas-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// companyIDFromContext resolves the tenant set by the auth middleware. On
// failure it has already written the error response.
func companyIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	companyID, exists := c.Get("companyId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return uuid.Nil, false
	}

	raw, ok := companyID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid company ID format")
		return uuid.Nil, false
	}
	companyUUID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid company ID format")
		return uuid.Nil, false
	}
	return companyUUID, true
}

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	raw, ok := userID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userUUID, true
}

// requireAdmin aborts with 403 unless the token carries the admin role.
func requireAdmin(c *gin.Context) bool {
	if isAdmin, _ := c.Get("isAdmin"); isAdmin != true {
		utils.RespondWithError(c, http.StatusForbidden, "Solo administradores.")
		return false
	}
	return true
}
