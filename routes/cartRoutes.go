package routes

import (
	"github.com/bestsneakers/bestsneakers-api/controllers"
	"github.com/bestsneakers/bestsneakers-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	cart := server.Group("/cart", middlewares.Authenticate())
	{
		cart.GET("", controllers.GetCart)
		cart.POST("", controllers.AddToCart)
		cart.PATCH("/:id", controllers.UpdateCartLine)
		cart.DELETE("/:id", controllers.RemoveCartLine)
	}
}
