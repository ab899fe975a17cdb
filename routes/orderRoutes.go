package routes

import (
	"github.com/bestsneakers/bestsneakers-api/controllers"
	"github.com/bestsneakers/bestsneakers-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	// Gateway notification hook; the gateway does not carry a user token.
	server.POST("/payments/callback", controllers.HandlePaymentCallback)
	server.GET("/payments/callback", controllers.HandlePaymentCallback)

	authed := server.Group("/", middlewares.Authenticate())
	{
		authed.POST("/checkout", controllers.Checkout)
		authed.GET("/orders", controllers.GetMyOrders)
		authed.GET("/orders/:orderId", controllers.GetOrderById)
		authed.GET("/orders/:orderId/payments", controllers.GetOrderPayments)
	}

	admin := server.Group("/admin", middlewares.Authenticate(), middlewares.RequireAdmin())
	{
		admin.GET("/orders", controllers.GetOrders)
		admin.GET("/orders/undelivered", controllers.GetUndeliveredOrders)
		admin.PATCH("/orders/:orderId", controllers.UpdateOrderStatus)
	}
}
