// controllers/ticket.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"cobranzas-backend/config"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTicketInput defines the expected JSON structure for creating a ticket
type CreateTicketInput struct {
	Total     float64    `json:"total" binding:"required,gt=0"`
	Currency  string     `json:"currency" binding:"required"`
	DueDate   *time.Time `json:"dueDate" binding:"required"`
	TicketURL string     `json:"ticketUrl" binding:"required"`
	ClientID  uuid.UUID  `json:"clientId" binding:"required"`
}

// UpdateTicketInput defines the expected JSON structure for updating a ticket
type UpdateTicketInput struct {
	Total      *float64   `json:"total" binding:"omitempty,gt=0"`
	Currency   *string    `json:"currency"`
	DueDate    *time.Time `json:"dueDate"`
	TicketURL  *string    `json:"ticketUrl"`
	PaymentURL *string    `json:"paymentUrl"`
	Paid       *bool      `json:"paid"`
	ClientID   *uuid.UUID `json:"clientId"`
}

type PayTicketInput struct {
	Secret     string `json:"secret" binding:"required"`
	ReceiptURL string `json:"receiptUrl" binding:"required"`
}

type PublicTicketInput struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Secret string    `json:"secret" binding:"required"`
}

// clientBelongsToCompany verifies tenant ownership of a client
func clientBelongsToCompany(clientID, companyID uuid.UUID) (bool, error) {
	var count int64
	err := config.DB.Model(&models.Client{}).
		Where("id = ? AND company_id = ?", clientID, companyID).
		Count(&count).Error
	return count > 0, err
}

// ticketForCompany loads a ticket with its client, scoped to the tenant
func ticketForCompany(ticketID, companyID uuid.UUID) (models.Ticket, error) {
	var ticket models.Ticket
	err := config.DB.Preload("Client").
		Joins("JOIN clients ON clients.id = tickets.client_id").
		Where("tickets.id = ? AND clients.company_id = ?", ticketID, companyID).
		First(&ticket).Error
	return ticket, err
}

// CreateTicket creates a new ticket for one of the company's clients
func CreateTicket(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	owns, err := clientBelongsToCompany(input.ClientID, companyUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !owns {
		utils.RespondWithError(c, http.StatusForbidden, "Cliente inválido")
		return
	}

	ticket := models.Ticket{
		Total:         input.Total,
		Currency:      input.Currency,
		DueDate:       input.DueDate,
		TicketURL:     input.TicketURL,
		PaymentSecret: utils.NewPaymentSecret(),
		Paid:          false,
		ClientID:      input.ClientID,
	}
	if err := config.DB.Create(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create ticket")
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func listTicketsByPaid(c *gin.Context, paid bool) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var tickets []models.Ticket
	err := config.DB.Preload("Client").
		Joins("JOIN clients ON clients.id = tickets.client_id").
		Where("tickets.paid = ? AND clients.company_id = ?", paid, companyUUID).
		Order("tickets.due_date ASC").
		Find(&tickets).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// GetUnpaidTickets lists the company's open tickets ordered by due date
func GetUnpaidTickets(c *gin.Context) {
	listTicketsByPaid(c, false)
}

// GetPaidTickets lists the company's settled tickets ordered by due date
func GetPaidTickets(c *gin.Context) {
	listTicketsByPaid(c, true)
}

// GetTicketsByClient lists every ticket of one of the company's clients
func GetTicketsByClient(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("clientId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	owns, err := clientBelongsToCompany(clientUUID, companyUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !owns {
		utils.RespondWithError(c, http.StatusForbidden, "Cliente inválido")
		return
	}

	var tickets []models.Ticket
	if err := config.DB.Where("client_id = ?", clientUUID).Find(&tickets).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// GetTicket retrieves a specific ticket by ID
func GetTicket(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	ticketUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	ticket, err := ticketForCompany(ticketUUID, companyUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// UpdateTicket updates an existing ticket
func UpdateTicket(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	ticketUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	var input UpdateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	ticket, err := ticketForCompany(ticketUUID, companyUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientID != nil {
		owns, err := clientBelongsToCompany(*input.ClientID, companyUUID)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if !owns {
			utils.RespondWithError(c, http.StatusForbidden, "Cliente inválido")
			return
		}
		ticket.ClientID = *input.ClientID
	}
	if input.Total != nil {
		ticket.Total = *input.Total
	}
	if input.Currency != nil {
		ticket.Currency = *input.Currency
	}
	if input.DueDate != nil {
		ticket.DueDate = input.DueDate
	}
	if input.TicketURL != nil {
		ticket.TicketURL = *input.TicketURL
	}
	if input.PaymentURL != nil {
		ticket.PaymentURL = input.PaymentURL
	}
	if input.Paid != nil {
		ticket.Paid = *input.Paid
	}

	if err := config.DB.Save(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// DeleteTicket removes a ticket belonging to the company
func DeleteTicket(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	ticketUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	ticket, err := ticketForCompany(ticketUUID, companyUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Delete(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// PayTicket lets an unauthenticated client attach a payment receipt using the
// ticket's opaque secret.
func PayTicket(c *gin.Context) {
	ticketUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid ticket ID format")
		return
	}

	var input PayTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "secret y receiptUrl son requeridos")
		return
	}

	var ticket models.Ticket
	if err := config.DB.First(&ticket, "id = ?", ticketUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Ticket no encontrado")
		return
	}

	if ticket.PaymentSecret != input.Secret {
		utils.RespondWithError(c, http.StatusForbidden, "Secret inválido")
		return
	}

	ticket.PaymentURL = &input.ReceiptURL
	if err := config.DB.Save(&ticket).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"id":         ticket.ID,
		"paymentUrl": ticket.PaymentURL,
		"paid":       ticket.Paid,
	})
}

// GetPublicTicket is the payment-portal lookup: ticket id + secret instead of
// a session.
func GetPublicTicket(c *gin.Context) {
	var input PublicTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "id y secret son requeridos")
		return
	}

	var ticket models.Ticket
	if err := config.DB.Preload("Client").First(&ticket, "id = ?", input.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Ticket no encontrado")
		return
	}

	if ticket.PaymentSecret != input.Secret {
		utils.RespondWithError(c, http.StatusForbidden, "Secret inválido")
		return
	}

	var company models.Company
	if err := config.DB.Select("id", "name", "logo", "color_primary", "color_secondary").
		First(&company, "id = ?", ticket.Client.CompanyID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ticket": ticket, "company": company})
}
