// controllers/company.go
package controllers

import (
	"net/http"

	"cobranzas-backend/config"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetMyCompany returns the authenticated tenant's company record
func GetMyCompany(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var company models.Company
	if err := config.DB.First(&company, "id = ?", companyUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		return
	}

	c.JSON(http.StatusOK, company)
}

type CurrencyOutstanding struct {
	Currency    string  `json:"currency"`
	Outstanding float64 `json:"outstanding"`
}

type CompanyMetrics struct {
	TotalClients  int64                 `json:"totalClients"`
	UnpaidTickets int64                 `json:"unpaidTickets"`
	PaidTickets   int64                 `json:"paidTickets"`
	Outstanding   []CurrencyOutstanding `json:"outstanding"`
}

// GetCompanyMetrics returns tenant-level collection metrics
func GetCompanyMetrics(c *gin.Context) {
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var metrics CompanyMetrics

	if err := config.DB.Model(&models.Client{}).
		Where("company_id = ?", companyUUID).
		Count(&metrics.TotalClients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	ticketsForCompany := func(paid bool) *int64 {
		if paid {
			return &metrics.PaidTickets
		}
		return &metrics.UnpaidTickets
	}
	for _, paid := range []bool{false, true} {
		if err := config.DB.Model(&models.Ticket{}).
			Joins("JOIN clients ON clients.id = tickets.client_id").
			Where("clients.company_id = ? AND tickets.paid = ?", companyUUID, paid).
			Count(ticketsForCompany(paid)).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	// Unpaid totals grouped per currency
	if err := config.DB.Model(&models.Ticket{}).
		Select("tickets.currency AS currency, COALESCE(SUM(tickets.total), 0) AS outstanding").
		Joins("JOIN clients ON clients.id = tickets.client_id").
		Where("clients.company_id = ? AND tickets.paid = ?", companyUUID, false).
		Group("tickets.currency").
		Scan(&metrics.Outstanding).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, metrics)
}
