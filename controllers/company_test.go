package controllers

import (
	"net/http"
	"testing"

	"cobranzas-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyCompany(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	user := createUser(t, db, company, "jane", false)

	router := gin.New()
	router.GET("/companies/", authAs(company.ID, user.ID, false), GetMyCompany)

	w := doJSON(t, router, http.MethodGet, "/companies/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Company
	decodeBody(t, w, &got)
	assert.Equal(t, company.ID, got.ID)
	assert.Equal(t, "Acme", got.Name)
}

func TestGetCompanyMetrics(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	user := createUser(t, db, company, "jane", false)
	client := createClient(t, db, company, "Pedro")

	createTicket(t, db, client, 100, false)
	createTicket(t, db, client, 250, false)
	createTicket(t, db, client, 400, true)

	// Foreign tenant data must not leak into the metrics.
	other := createCompany(t, db, "Globex")
	createTicket(t, db, createClient(t, db, other, "Maria"), 999, false)

	router := gin.New()
	router.GET("/companies/metrics", authAs(company.ID, user.ID, false), GetCompanyMetrics)

	w := doJSON(t, router, http.MethodGet, "/companies/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var metrics CompanyMetrics
	decodeBody(t, w, &metrics)
	assert.EqualValues(t, 1, metrics.TotalClients)
	assert.EqualValues(t, 2, metrics.UnpaidTickets)
	assert.EqualValues(t, 1, metrics.PaidTickets)

	require.Len(t, metrics.Outstanding, 1)
	assert.Equal(t, "ARS", metrics.Outstanding[0].Currency)
	assert.Equal(t, float64(350), metrics.Outstanding[0].Outstanding)
}
