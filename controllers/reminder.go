// controllers/reminder.go
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

// CreateReminderInput defines the expected JSON structure for a reminder rule
type CreateReminderInput struct {
	DaysFromDue *int   `json:"daysFromDue" binding:"required"`
	Channel     string `json:"channel" binding:"required,oneof=email whatsapp"`
	Template    string `json:"template" binding:"required"`
}

// UpdateReminderInput defines the expected JSON structure for updating a rule
type UpdateReminderInput struct {
	DaysFromDue *int    `json:"daysFromDue"`
	Channel     *string `json:"channel" binding:"omitempty,oneof=email whatsapp"`
	Template    *string `json:"template"`
}

// CreateReminder creates a reminder rule for the company
func CreateReminder(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	reminder := models.Reminder{
		CompanyID:   companyUUID,
		DaysFromDue: *input.DaysFromDue,
		Channel:     input.Channel,
		Template:    input.Template,
	}
	if err := config.DB.Create(&reminder).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reminder")
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// GetReminders lists the company's rules ordered by offset
func GetReminders(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var reminders []models.Reminder
	if err := config.DB.Where("company_id = ?", companyUUID).
		Order("days_from_due ASC").
		Find(&reminders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminders")
		return
	}

	c.JSON(http.StatusOK, reminders)
}

// GetReminder retrieves a specific rule by ID
func GetReminder(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	reminderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reminder ID format")
		return
	}

	var reminder models.Reminder
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, reminderUUID).
		First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// UpdateReminder updates a rule
func UpdateReminder(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	reminderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reminder ID format")
		return
	}

	var input UpdateReminderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reminder models.Reminder
	if err := config.DB.Where("company_id = ? AND id = ?", companyUUID, reminderUUID).
		First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.DaysFromDue != nil {
		reminder.DaysFromDue = *input.DaysFromDue
	}
	if input.Channel != nil {
		reminder.Channel = *input.Channel
	}
	if input.Template != nil {
		reminder.Template = *input.Template
	}

	if err := config.DB.Save(&reminder).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reminder")
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder removes a rule
func DeleteReminder(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	reminderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid reminder ID format")
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyUUID, reminderUUID).
		Delete(&models.Reminder{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reminder")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
