// controllers/user.go
package controllers

import (
	"errors"
	"net/http"

	"cobranzas-backend/config"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	IsAdmin  bool   `json:"isAdmin"`
}

// GetUsers lists the tenant's users. Admin only.
func GetUsers(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var users []models.User
	if err := config.DB.Where("company_id = ?", companyUUID).Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser adds a user to the tenant. Admin only.
func CreateUser(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	if err := config.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Ya existe un usuario con ese nombre")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Name:      input.Name,
		Password:  input.Password, // hashed in BeforeCreate hook
		IsAdmin:   input.IsAdmin,
		CompanyID: companyUUID,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// DeleteUser removes a tenant user. Admin only; self-delete is rejected.
func DeleteUser(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	targetUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if targetUUID == userUUID {
		utils.RespondWithError(c, http.StatusBadRequest, "No podés eliminar tu propio usuario.")
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyUUID, targetUUID).
		Delete(&models.User{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
