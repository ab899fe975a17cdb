package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/rabbitmq"
	"github.com/bestsneakers/bestsneakers-api/services"
	"github.com/gin-gonic/gin"
)

// OrderPublisher is set at startup when an AMQP broker is configured. Nil
// disables event publishing.
var OrderPublisher *rabbitmq.Publisher

// Checkout converts the authenticated user's cart into an order. Responds
// 201 with the order id, or 400 with a structured reason.
func Checkout(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var shippingInfo services.ShippingInfo
	if err := ctx.ShouldBindJSON(&shippingInfo); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := services.PlaceOrder(initializers.DB, userID, shippingInfo)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			sendErrorResponse(ctx, http.StatusBadRequest, "cart is empty")
			return
		}

		var validation *services.ValidationError
		if errors.As(err, &validation) {
			sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
				"message": "invalid shipping info",
				"errors":  validation.Fields,
			})
			return
		}

		if stockCheckResponse(ctx, err) {
			return
		}

		log.Println("Checkout error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	// The order is committed; a publish failure only delays fulfillment.
	if err := OrderPublisher.PublishOrderPlaced(order); err != nil {
		log.Printf("Order %d placed, but event publish failed: %v", order.ID, err)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"order_id": order.ID,
	})
}
