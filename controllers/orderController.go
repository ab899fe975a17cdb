package controllers

import (
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func isAdmin(ctx *gin.Context) bool {
	userClaims, exists := ctx.Get("user")
	if !exists {
		return false
	}
	claims, ok := userClaims.(jwt.MapClaims)
	if !ok {
		return false
	}
	role, ok := claims["role"].(string)
	return ok && role == "admin"
}

// GetOrders lists all orders with pagination plus the total revenue across
// every order. Admin only.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems").Preload("Payments")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query = query.Order("created_at " + sortOrder)

	result := query.Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	countQuery.Count(&count)

	var totalRevenue float64
	initializers.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&totalRevenue)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders":       orders,
		"totalRevenue": totalRevenue,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

// GetMyOrders lists the authenticated user's orders.
func GetMyOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	var orders []models.Order
	result := initializers.DB.
		Preload("OrderItems").
		Preload("Payments").
		Where("user_id = ?", userID).
		Order("created_at " + sortOrder).
		Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrderById returns one order. Owners see their own orders; admins see
// any order.
func GetOrderById(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.
		Preload("OrderItems").
		Preload("Payments").
		First(&order, orderId)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	userID, _ := currentUserID(ctx)
	if order.UserID != userID && !isAdmin(ctx) {
		sendErrorResponse(ctx, http.StatusForbidden, "You do not have access to this order")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus moves an order forward through its lifecycle. Transitions
// only ever move forward; cancellation is rejected once the order shipped.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	if !models.ValidOrderTransition(order.Status, orderStatusData.Status) {
		sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
			"message": "Invalid status transition",
			"from":    order.Status,
			"to":      orderStatusData.Status,
		})
		return
	}

	if result := initializers.DB.Model(&order).Update("status", orderStatusData.Status); result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
}

// GetUndeliveredOrders reports how many orders still need fulfillment.
func GetUndeliveredOrders(ctx *gin.Context) {
	var count int64

	result := initializers.DB.
		Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.OrderStatusDelivered, models.OrderStatusCancelled}).
		Count(&count)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to count undelivered orders", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"undeliveredOrderCount": count})
}
