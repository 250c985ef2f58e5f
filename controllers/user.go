// controllers/user.go
package controllers

import (
	"errors"
	"net/http"

	"labtrack-backend/config"
	"labtrack-backend/models"
	"labtrack-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddEmployeeInput defines the expected JSON structure for creating a user
type AddEmployeeInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin backoffice director employee"`
}

// UpdateEmployeeInput defines the expected JSON structure for updating a user
type UpdateEmployeeInput struct {
	Phone    *string `json:"phone"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin backoffice director employee"`
	IsActive *bool   `json:"isActive"`
}

// AddEmployee creates a worker account. Admin only.
func AddEmployee(c *gin.Context) {
	_, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	if role != models.RoleAdmin {
		utils.RespondWithError(c, http.StatusForbidden, "Only admins may create users")
		return
	}

	var input AddEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	// Check if name or email already exists
	var existing models.User
	result := config.DB.Where("email = ? OR name = ?", input.Email, input.Name).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Name or email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     input.Role,
		IsActive: true,
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetEmployees lists all users.
func GetEmployees(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("name ASC").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateEmployee changes a user's phone, role or active flag. Admin only.
func UpdateEmployee(c *gin.Context) {
	_, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	if role != models.RoleAdmin {
		utils.RespondWithError(c, http.StatusForbidden, "Only admins may update users")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
			return
		}
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Me returns the authenticated caller.
func Me(c *gin.Context) {
	userID, _, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
