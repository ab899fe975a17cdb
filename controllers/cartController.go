package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/bestsneakers/bestsneakers-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stockCheckResponse turns an advisory stock failure into a structured 400.
// Returns false when the error is not a stock problem.
func stockCheckResponse(ctx *gin.Context, err error) bool {
	var outOfStock *services.OutOfStockError
	if errors.As(err, &outOfStock) {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
			"message":   "Out of stock",
			"sneakerId": outOfStock.SneakerID,
			"sizeId":    outOfStock.SizeID,
		})
		return true
	}

	var insufficient *services.InsufficientStockError
	if errors.As(err, &insufficient) {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
			"message":   "Insufficient stock",
			"sneakerId": insufficient.SneakerID,
			"sizeId":    insufficient.SizeID,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
		return true
	}

	return false
}

// GetCart returns the authenticated user's cart lines.
func GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var lines []models.CartLine
	result := initializers.DB.
		Preload("Sneaker").
		Preload("Sneaker.Images").
		Preload("Size").
		Where("user_id = ?", userID).
		Find(&lines)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": lines})
}

// AddToCart creates a cart line for the authenticated user, merging into an
// existing line for the same (sneaker, size). The stock check here is
// advisory; checkout re-validates under lock.
func AddToCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var cartLine models.CartLine
	if err := ctx.ShouldBindJSON(&cartLine); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}
	cartLine.UserID = userID

	if err := services.CheckCartQuantity(initializers.DB, userID, cartLine.SneakerID, cartLine.SizeID, cartLine.Quantity); err != nil {
		if stockCheckResponse(ctx, err) {
			return
		}
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to verify stock")
		return
	}

	var existingLine models.CartLine
	err := initializers.DB.
		Where("user_id = ? AND sneaker_id = ? AND size_id = ?", userID, cartLine.SneakerID, cartLine.SizeID).
		First(&existingLine).Error

	if err == nil {
		existingLine.Quantity += cartLine.Quantity
		if err := initializers.DB.Save(&existingLine).Error; err != nil {
			log.Println("Update error:", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Unable to update cart line quantity.")
			return
		}
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": "Cart line quantity updated",
			"id":      existingLine.ID,
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("Database error: ", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch cart line")
		return
	}

	if err := initializers.DB.Create(&cartLine).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to add to cart")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Added to cart",
		"id":      cartLine.ID,
	})
}

// UpdateCartLine sets the quantity of one of the user's cart lines.
func UpdateCartLine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	lineId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse cart line id")
		return
	}

	var quantityData struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&quantityData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	var line models.CartLine
	if err := initializers.DB.Where("id = ? AND user_id = ?", lineId, userID).First(&line).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart line not found")
		return
	}

	// Advisory check against the delta being added.
	if quantityData.Quantity > line.Quantity {
		delta := quantityData.Quantity - line.Quantity
		if err := services.CheckCartQuantity(initializers.DB, userID, line.SneakerID, line.SizeID, delta); err != nil {
			if stockCheckResponse(ctx, err) {
				return
			}
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to verify stock")
			return
		}
	}

	line.Quantity = quantityData.Quantity
	if err := initializers.DB.Save(&line).Error; err != nil {
		log.Println("Update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to update cart line")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart line updated", "cartLine": line})
}

// RemoveCartLine deletes one of the user's cart lines.
func RemoveCartLine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	lineId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse cart line id")
		return
	}

	result := initializers.DB.Where("id = ? AND user_id = ?", lineId, userID).Delete(&models.CartLine{})
	if result.Error != nil {
		log.Println("Delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to remove cart line")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Cart line not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart line removed"})
}
