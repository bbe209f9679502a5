package controllers

import (
	"net/http"
	"testing"

	"cobranzas-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRouter(companyID, userID uuid.UUID, isAdmin bool) *gin.Engine {
	router := gin.New()
	group := router.Group("/users", authAs(companyID, userID, isAdmin))
	group.GET("/", GetUsers)
	group.POST("/", CreateUser)
	group.DELETE("/:id", DeleteUser)
	return router
}

func TestUserEndpointsRequireAdmin(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	member := createUser(t, db, company, "jane", false)

	router := userRouter(company.ID, member.ID, false)

	w := doJSON(t, router, http.MethodGet, "/users/", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Solo administradores.")

	w = doJSON(t, router, http.MethodPost, "/users/", gin.H{
		"name":     "pedro",
		"password": "supersecreta",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateUserHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	admin := createUser(t, db, company, "jane", true)

	w := doJSON(t, userRouter(company.ID, admin.ID, true), http.MethodPost, "/users/", gin.H{
		"name":     "pedro",
		"password": "supersecreta",
		"isAdmin":  false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, db.Where("name = ?", "pedro").First(&stored).Error)
	assert.NotEqual(t, "supersecreta", stored.Password)
	assert.Equal(t, company.ID, stored.CompanyID)
	assert.False(t, stored.IsAdmin)
}

func TestCreateUserRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	admin := createUser(t, db, company, "jane", true)

	w := doJSON(t, userRouter(company.ID, admin.ID, true), http.MethodPost, "/users/", gin.H{
		"name":     "jane",
		"password": "supersecreta",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteUserForbidsSelfDelete(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	admin := createUser(t, db, company, "jane", true)

	w := doJSON(t, userRouter(company.ID, admin.ID, true), http.MethodDelete, "/users/"+admin.ID.String(), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No podés eliminar tu propio usuario.")
}

func TestDeleteUserScopedToTenant(t *testing.T) {
	db := setupTestDB(t)
	company := createCompany(t, db, "Acme")
	admin := createUser(t, db, company, "jane", true)

	other := createCompany(t, db, "Globex")
	foreign := createUser(t, db, other, "maria", false)

	router := userRouter(company.ID, admin.ID, true)

	w := doJSON(t, router, http.MethodDelete, "/users/"+foreign.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	target := createUser(t, db, company, "pedro", false)
	w = doJSON(t, router, http.MethodDelete, "/users/"+target.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}
