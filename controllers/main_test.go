package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cobranzas-backend/config"
	"cobranzas-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB points config.DB at a fresh in-memory database scoped to the
// current test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:ctl_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Client{},
		&models.Ticket{},
		&models.Reminder{},
		&models.Message{},
	))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}

// authAs mimics the auth middleware: it injects the tenant claims the real
// middleware would extract from a verified token.
func authAs(companyID, userID uuid.UUID, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("companyId", companyID.String())
		c.Set("userId", userID.String())
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createCompany(t *testing.T, db *gorm.DB, name string) models.Company {
	t.Helper()
	company := models.Company{Name: name}
	require.NoError(t, db.Create(&company).Error)
	return company
}

func createUser(t *testing.T, db *gorm.DB, company models.Company, name string, isAdmin bool) models.User {
	t.Helper()
	user := models.User{
		Name:      name,
		Password:  "supersecreta",
		IsAdmin:   isAdmin,
		CompanyID: company.ID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createClient(t *testing.T, db *gorm.DB, company models.Company, name string) models.Client {
	t.Helper()
	client := models.Client{
		CompanyID: company.ID,
		Name:      name,
		Email:     strings.ToLower(name) + "@example.com",
		Phone:     "+5491122334455",
	}
	require.NoError(t, db.Create(&client).Error)
	return client
}

func createTicket(t *testing.T, db *gorm.DB, client models.Client, total float64, paid bool) models.Ticket {
	t.Helper()
	due := time.Now().AddDate(0, 0, 7)
	ticket := models.Ticket{
		ClientID:      client.ID,
		Total:         total,
		Currency:      "ARS",
		DueDate:       &due,
		TicketURL:     "https://tickets.example.com/t/1",
		PaymentSecret: "s3cret",
		Paid:          paid,
	}
	require.NoError(t, db.Create(&ticket).Error)
	return ticket
}
