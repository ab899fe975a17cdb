package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/gin-gonic/gin"
)

// CreateReview adds a review for a sneaker on behalf of the authenticated
// user. Rating bounds (1..5) are enforced by binding.
func CreateReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var review models.Review
	if err := ctx.ShouldBindJSON(&review); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	review.UserID = userID

	var sneaker models.Sneaker
	if err := initializers.DB.First(&sneaker, review.SneakerID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Sneaker not found")
		return
	}

	if err := initializers.DB.Create(&review).Error; err != nil {
		log.Println("Review creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": "Review added", "id": review.ID})
}

// GetSneakerReviews lists reviews for one sneaker, newest first.
func GetSneakerReviews(ctx *gin.Context) {
	sneakerId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid sneaker ID")
		return
	}

	var reviews []models.Review
	result := initializers.DB.
		Where("sneaker_id = ?", sneakerId).
		Order("created_at desc").
		Find(&reviews)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch reviews", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// DeleteReview removes one of the user's own reviews (admins can remove any).
func DeleteReview(ctx *gin.Context) {
	reviewId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var review models.Review
	if err := initializers.DB.First(&review, reviewId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Review not found")
		return
	}

	userID, _ := currentUserID(ctx)
	if review.UserID != userID && !isAdmin(ctx) {
		sendErrorResponse(ctx, http.StatusForbidden, "You cannot delete this review")
		return
	}

	if result := initializers.DB.Delete(&review); result.Error != nil {
		log.Println("Review deletion error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Review deleted"})
}
