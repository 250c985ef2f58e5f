// controllers/dashboard.go
package controllers

import (
	"net/http"

	"labtrack-backend/config"
	"labtrack-backend/models"
	"labtrack-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns work order counts per status, the caller's
// unread notification count and the most recent history entries.
func GetDashboardOverview(c *gin.Context) {
	userID, _, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusCount
	if err := config.DB.Model(&models.WorkOrder{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var awaitingAuthorization int64
	if err := config.DB.Model(&models.WorkOrder{}).
		Where("authorized = ? AND status = ?", false, models.WorkOrderStatusPending).
		Count(&awaitingAuthorization).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var invoiced int64
	if err := config.DB.Model(&models.WorkOrderFactura{}).
		Distinct("work_order_id").
		Count(&invoiced).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var unread int64
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unread).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var recentHistory []models.HistoryEntry
	if err := config.DB.Order("created_at DESC, id DESC").
		Limit(10).
		Find(&recentHistory).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workOrdersByStatus":    byStatus,
		"awaitingAuthorization": awaitingAuthorization,
		"invoicedWorkOrders":    invoiced,
		"unreadNotifications":   unread,
		"recentHistory":         recentHistory,
	})
}
