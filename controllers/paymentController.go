package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

// fetchGatewayStatus asks the payment gateway for the current status of a
// transaction. The gateway is an external collaborator; only its client
// lives here.
func fetchGatewayStatus(reference string) (string, error) {
	gatewayURL := os.Getenv("PAYMENT_GATEWAY_URL")
	if gatewayURL == "" {
		return "", fmt.Errorf("payment gateway is not configured")
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).R().
		SetHeader("Accept", "application/json").
		SetQueryParam("reference", reference).
		Get(gatewayURL + "/transactions/status")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("gateway status request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var statusResp struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body(), &statusResp); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %w", err)
	}
	if statusResp.Status == "" {
		return "", fmt.Errorf("status not found in gateway response")
	}

	return statusResp.Status, nil
}

// HandlePaymentCallback is the gateway's notification hook. It re-queries
// the gateway for the authoritative transaction status and moves the
// payment from pending to completed or failed.
func HandlePaymentCallback(ctx *gin.Context) {
	var reference string

	if ctx.Request.Method == http.MethodPost {
		var payload struct {
			Reference string `json:"reference"`
		}
		if err := ctx.BindJSON(&payload); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		reference = payload.Reference
	} else {
		reference = ctx.Query("reference")
	}

	if reference == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing reference"})
		return
	}

	var payment models.Payment
	if err := initializers.DB.Where("reference = ?", reference).First(&payment).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	status, err := fetchGatewayStatus(reference)
	if err != nil {
		log.Println("Gateway status check failed:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
		return
	}

	switch status {
	case models.PaymentStatusCompleted, models.PaymentStatusFailed:
		if err := initializers.DB.Model(&payment).Update("status", status).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
			return
		}
	case models.PaymentStatusPending:
		// Nothing to record yet.
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Unknown status from gateway"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"reference": reference,
		"status":    status,
	})
}

// GetOrderPayments lists the payments recorded for one order. Owner or
// admin only.
func GetOrderPayments(ctx *gin.Context) {
	orderId, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	userID, _ := currentUserID(ctx)
	if order.UserID != userID && !isAdmin(ctx) {
		sendErrorResponse(ctx, http.StatusForbidden, "You do not have access to this order")
		return
	}

	var payments []models.Payment
	if result := initializers.DB.Where("order_id = ?", orderId).Order("created_at desc").Find(&payments); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch payments", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"payments": payments})
}
