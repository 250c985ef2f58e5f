// controllers/pointrule.go
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

// CreatePointRuleInput defines the expected JSON structure
type CreatePointRuleInput struct {
	Activity string `json:"activity" binding:"required"`
	Points   int    `json:"points" binding:"min=0"`
}

// UpdatePointRuleInput defines the expected JSON structure
type UpdatePointRuleInput struct {
	Points *int `json:"points" binding:"omitempty,min=0"`
}

func canEditPointRules(c *gin.Context) bool {
	_, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return false
	}
	if role != models.RoleAdmin && role != models.RoleDirector {
		utils.RespondWithError(c, http.StatusForbidden, "Only admins and directors may edit point rules")
		return false
	}
	return true
}

// CreatePointRule adds a point value for an activity name
func CreatePointRule(c *gin.Context) {
	if !canEditPointRules(c) {
		return
	}

	var input CreatePointRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if a rule for this activity already exists
	var existing models.PointRule
	if err := config.DB.Where("activity = ?", input.Activity).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Rule for this activity already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	rule := models.PointRule{
		Activity: input.Activity,
		Points:   input.Points,
	}

	if err := config.DB.Create(&rule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create rule")
		return
	}

	c.JSON(http.StatusCreated, rule)
}

// GetPointRules retrieves the whole point table
func GetPointRules(c *gin.Context) {
	var rules []models.PointRule
	if err := config.DB.Order("activity ASC").Find(&rules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rules")
		return
	}

	c.JSON(http.StatusOK, rules)
}

// UpdatePointRule changes the point value of a rule
func UpdatePointRule(c *gin.Context) {
	if !canEditPointRules(c) {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input UpdatePointRuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var rule models.PointRule
	if err := config.DB.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Rule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Points != nil {
		rule.Points = *input.Points
	}

	if err := config.DB.Save(&rule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update rule")
		return
	}

	c.JSON(http.StatusOK, rule)
}

// DeletePointRule removes a rule; its activity falls back to 0 points
func DeletePointRule(c *gin.Context) {
	if !canEditPointRules(c) {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.PointRule{}, id)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete rule")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Rule not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rule deleted successfully"})
}
