// controllers/message.go
package controllers

import (
	"errors"
	"net/http"
	"os"

	"cobranzas-backend/config"
	"cobranzas-backend/models"
	"cobranzas-backend/services"
	"cobranzas-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMessages lists every message whose ticket belongs to the company
func GetMessages(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var messages []models.Message
	err := config.DB.Preload("Ticket").Preload("Ticket.Client").
		Joins("JOIN tickets ON tickets.id = messages.ticket_id").
		Joins("JOIN clients ON clients.id = tickets.client_id").
		Where("clients.company_id = ?", companyUUID).
		Find(&messages).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetMessage retrieves a specific message by ID, tenant-scoped through its ticket
func GetMessage(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	messageUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid message ID format")
		return
	}

	var message models.Message
	err = config.DB.Preload("Ticket").Preload("Ticket.Client").
		Joins("JOIN tickets ON tickets.id = messages.ticket_id").
		Joins("JOIN clients ON clients.id = tickets.client_id").
		Where("messages.id = ? AND clients.company_id = ?", messageUUID, companyUUID).
		First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, message)
}

// CronController exposes the reminder dispatch run over HTTP
type CronController struct {
	Service *services.ReminderService
}

// Run triggers one synchronous dispatch run across all tenants
func (ctl *CronController) Run(c *gin.Context) {
	result, err := ctl.Service.ProcessAutomatedReminders(c.Request.Context())
	if err != nil {
		config.Log.Errorf("reminder dispatch run aborted: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// VerifyWebhook answers the WhatsApp Business webhook subscription handshake
func VerifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token != "" && token == os.Getenv("WABA_VERIFY_TOKEN") {
		c.String(http.StatusOK, challenge)
		return
	}

	c.Status(http.StatusForbidden)
}

// HandleIncomingWebhook receives WhatsApp status callbacks and inbound
// messages. Meta retries aggressively on non-200, so the payload is only
// logged and acknowledged.
func HandleIncomingWebhook(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		config.Log.Warnf("undecodable whatsapp webhook payload: %v", err)
		c.Status(http.StatusOK)
		return
	}

	config.Log.WithField("object", payload["object"]).Debug("whatsapp webhook received")
	c.Status(http.StatusOK)
}
