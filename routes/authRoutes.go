package routes

import (
	"github.com/bestsneakers/bestsneakers-api/controllers"
	"github.com/bestsneakers/bestsneakers-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup)
		auth.POST("/login", controllers.Login)
	}

	profile := server.Group("/profile", middlewares.Authenticate())
	{
		profile.GET("", controllers.GetProfile)
		profile.PUT("", controllers.UpdateProfile)
		profile.DELETE("", controllers.DeleteProfile)
	}
}
