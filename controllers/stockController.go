package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/bestsneakers/bestsneakers-api/services"
	"github.com/gin-gonic/gin"
)

// GetStock lists stock rows, optionally narrowed to one sneaker.
func GetStock(ctx *gin.Context) {
	query := initializers.DB.Preload("Size")
	if sneakerId := ctx.Query("sneakerId"); sneakerId != "" {
		query = query.Where("sneaker_id = ?", sneakerId)
	}

	var stock []models.Stock
	if result := query.Find(&stock); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch stock", result.Error)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"stock": stock})
}

// GetAvailability returns the units on hand for one (sneaker, size) pair.
func GetAvailability(ctx *gin.Context) {
	sneakerId, err := strconv.Atoi(ctx.Param("sneakerId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid sneaker ID", err)
		return
	}
	sizeId, err := strconv.Atoi(ctx.Param("sizeId"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid size ID", err)
		return
	}

	quantity, err := services.QuantityAvailable(initializers.DB, sneakerId, sizeId)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch availability", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"sneakerId": sneakerId,
		"sizeId":    sizeId,
		"quantity":  quantity,
	})
}

// RestockEntry tops up one (sneaker, size) pair. Admin only; goes through
// the same row-locking path as checkout so a restock can never race a
// concurrent decrement.
func RestockEntry(ctx *gin.Context) {
	var restockData struct {
		SneakerID int `json:"sneakerId" binding:"required"`
		SizeID    int `json:"sizeId" binding:"required"`
		Quantity  int `json:"quantity" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&restockData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	stock, err := services.Restock(initializers.DB, restockData.SneakerID, restockData.SizeID, restockData.Quantity)
	if err != nil {
		log.Println("Restock error:", err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to restock", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Stock updated successfully.",
		"stock":   stock,
	})
}
