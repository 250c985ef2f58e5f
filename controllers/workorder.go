// controllers/workorder.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"labtrack-backend/config"
	"labtrack-backend/models"
	"labtrack-backend/services"
	"labtrack-backend/utils"

	"github.com/gin-gonic/gin"
)

type WorkOrderController struct {
	Service *services.WorkOrderService
}

// respondServiceError maps the lifecycle error taxonomy to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrConflict):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidClient):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid id format")
		return 0, false
	}
	return uint(id), true
}

// CreateWorkOrder creates a work order with its activities, assignments and
// invoice links.
func (ctl *WorkOrderController) CreateWorkOrder(c *gin.Context) {
	userID, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input services.WorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	wo, err := ctl.Service.Create(input, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, wo)
}

// GetWorkOrders lists all work orders, newest first.
func (ctl *WorkOrderController) GetWorkOrders(c *gin.Context) {
	var workOrders []models.WorkOrder
	if err := config.DB.Preload("Client").
		Preload("Activities.Assignees").
		Preload("Facturas").
		Order("created_at DESC").
		Find(&workOrders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve work orders")
		return
	}

	for i := range workOrders {
		workOrders[i].Invoiced = len(workOrders[i].Facturas) > 0
	}

	c.JSON(http.StatusOK, workOrders)
}

// GetWorkOrder retrieves one work order by id.
func (ctl *WorkOrderController) GetWorkOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var wo models.WorkOrder
	if err := config.DB.Preload("Client").
		Preload("Contact").
		Preload("Activities.Assignees").
		Preload("Facturas").
		First(&wo, id).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Work order not found")
		return
	}
	wo.Invoiced = len(wo.Facturas) > 0

	c.JSON(http.StatusOK, wo)
}

// UpdateWorkOrder replaces the mutable fields, activities and invoice links.
func (ctl *WorkOrderController) UpdateWorkOrder(c *gin.Context) {
	userID, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var input services.WorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := ctl.Service.Update(id, input, userID, role); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work order updated successfully"})
}

// AuthorizeWorkOrder opens the order to its assigned workers.
func (ctl *WorkOrderController) AuthorizeWorkOrder(c *gin.Context) {
	userID, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	wo, err := ctl.Service.Authorize(id, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

// DeauthorizeWorkOrder closes the gate again.
func (ctl *WorkOrderController) DeauthorizeWorkOrder(c *gin.Context) {
	userID, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ctl.Service.Deauthorize(id, userID, role); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work order deauthorized"})
}

// CloseWorkOrder closes a finalized order and distributes points.
func (ctl *WorkOrderController) CloseWorkOrder(c *gin.Context) {
	userID, role, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	wo, err := ctl.Service.Close(id, userID, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, wo)
}

// DeleteWorkOrder hard-deletes a work order and its dependents.
func (ctl *WorkOrderController) DeleteWorkOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ctl.Service.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work order deleted successfully"})
}

// GetWorkOrderHistory returns the audit trail, oldest first.
func (ctl *WorkOrderController) GetWorkOrderHistory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	entries, err := ctl.Service.History(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// StartActivity begins a pending activity.
func (ctl *WorkOrderController) StartActivity(c *gin.Context) {
	userID, _, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ctl.Service.StartActivity(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity started"})
}

// StopActivity finishes an in-progress activity.
func (ctl *WorkOrderController) StopActivity(c *gin.Context) {
	userID, _, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := ctl.Service.StopActivity(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity finished"})
}
