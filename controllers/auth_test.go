package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter() *gin.Engine {
	router := gin.New()
	router.POST("/auth/register", Register)
	router.POST("/auth/login", Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	t.Setenv("MASTER_KEY", "llave-maestra")
	t.Setenv("JWT_SECRET", "test-secret")

	router := authRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/register", gin.H{
		"companyName": "Acme",
		"name":        "jane",
		"password":    "supersecreta",
		"masterKey":   "llave-maestra",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Token   string `json:"token"`
		User    struct{ Name string }
		Company struct{ Name string }
	}
	decodeBody(t, w, &created)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, "jane", created.User.Name)
	assert.Equal(t, "Acme", created.Company.Name)

	w = doJSON(t, router, http.MethodPost, "/auth/login", gin.H{
		"name":     "jane",
		"password": "supersecreta",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var logged struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &logged)
	assert.NotEmpty(t, logged.Token)
}

func TestRegisterRejectsBadMasterKey(t *testing.T) {
	setupTestDB(t)
	t.Setenv("MASTER_KEY", "llave-maestra")

	w := doJSON(t, authRouter(), http.MethodPost, "/auth/register", gin.H{
		"companyName": "Acme",
		"name":        "jane",
		"password":    "supersecreta",
		"masterKey":   "adivinada",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Llave maestra inválida.")
}

func TestRegisterRejectsDuplicateCompany(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("MASTER_KEY", "llave-maestra")
	createCompany(t, db, "Acme")

	w := doJSON(t, authRouter(), http.MethodPost, "/auth/register", gin.H{
		"companyName": "Acme",
		"name":        "jane",
		"password":    "supersecreta",
		"masterKey":   "llave-maestra",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "El nombre de la compañía ya existe")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	setupTestDB(t)
	t.Setenv("MASTER_KEY", "llave-maestra")

	w := doJSON(t, authRouter(), http.MethodPost, "/auth/register", gin.H{
		"companyName": "Acme",
		"name":        "jane",
		"password":    "corta",
		"masterKey":   "llave-maestra",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	createUser(t, db, company, "jane", true)

	w := doJSON(t, authRouter(), http.MethodPost, "/auth/login", gin.H{
		"name":     "jane",
		"password": "incorrecta",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Credenciales inválidas")
}

func TestLoginUnknownUserSameError(t *testing.T) {
	setupTestDB(t)

	w := doJSON(t, authRouter(), http.MethodPost, "/auth/login", gin.H{
		"name":     "nadie",
		"password": "cualquiera",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Credenciales inválidas")
}

func TestGetUserReturnsUserAndCompany(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	user := createUser(t, db, company, "jane", false)

	router := gin.New()
	router.GET("/auth/", authAs(company.ID, user.ID, false), GetUser)

	w := doJSON(t, router, http.MethodGet, "/auth/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User    struct{ Name string }
		Company struct{ Name string }
	}
	decodeBody(t, w, &body)
	assert.Equal(t, "jane", body.User.Name)
	assert.Equal(t, "Acme", body.Company.Name)
}
