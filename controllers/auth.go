// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"cobranzas-backend/config"
	"cobranzas-backend/models"
	"cobranzas-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	CompanyName string `json:"companyName" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	MasterKey   string `json:"masterKey" binding:"required"`
}

type LoginInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a company and its first admin user. Gated by the
// deployment master key: this is an invite-only product, not open signup.
func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.MasterKey != os.Getenv("MASTER_KEY") {
		utils.RespondWithError(c, http.StatusUnauthorized, "Llave maestra inválida.")
		return
	}

	var existingCompany models.Company
	if err := config.DB.Where("name = ?", input.CompanyName).First(&existingCompany).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "El nombre de la compañía ya existe")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var existingUser models.User
	if err := config.DB.Where("name = ?", input.Name).First(&existingUser).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "El nombre de usuario ya existe")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	company := models.Company{Name: input.CompanyName}
	if err := config.DB.Create(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create company")
		return
	}

	user := models.User{
		Name:      input.Name,
		Password:  input.Password, // hashed in BeforeCreate hook
		IsAdmin:   true,
		CompanyID: company.ID,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), company.ID.String(), user.IsAdmin)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"company": company,
		"token":   token,
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	name := strings.TrimSpace(input.Name)

	var user models.User
	if err := config.DB.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Credenciales inválidas")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}

	var company models.Company
	if err := config.DB.First(&company, "id = ?", user.CompanyID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.CompanyID.String(), user.IsAdmin)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"company": company,
		"token":   token,
	})
}

// GetUser returns the authenticated user together with its company
func GetUser(c *gin.Context) {
	userUUID, ok := userIDFromContext(c)
	if !ok {
		return
	}
	companyUUID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var company models.Company
	if err := config.DB.First(&company, "id = ?", companyUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "No encontrado")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "company": company})
}
