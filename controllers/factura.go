// controllers/factura.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"labtrack-backend/config"
	"labtrack-backend/models"
	"labtrack-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateFacturaInput defines the expected JSON structure for creating an invoice
type CreateFacturaInput struct {
	Number string     `json:"number" binding:"required"`
	Date   *time.Time `json:"date"`
	Amount float64    `json:"amount" binding:"min=0"`
	Notes  string     `json:"notes"`
}

// CreateFactura records an invoice so work orders can be linked to it.
func CreateFactura(c *gin.Context) {
	var input CreateFacturaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	factura := models.Factura{
		Number: input.Number,
		Date:   date,
		Amount: input.Amount,
		Notes:  input.Notes,
	}

	if err := config.DB.Create(&factura).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Invoice number already exists")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		}
		return
	}

	c.JSON(http.StatusCreated, factura)
}

// GetFacturas retrieves all invoices
func GetFacturas(c *gin.Context) {
	var facturas []models.Factura
	if err := config.DB.Order("date DESC").Find(&facturas).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, facturas)
}

// GetFactura retrieves a specific invoice by ID
func GetFactura(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var factura models.Factura
	if err := config.DB.Preload("WorkOrders").First(&factura, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, factura)
}
