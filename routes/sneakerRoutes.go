package routes

import (
	"github.com/bestsneakers/bestsneakers-api/controllers"
	"github.com/bestsneakers/bestsneakers-api/middlewares"
	"github.com/gin-gonic/gin"
)

func SneakerRoutes(server *gin.Engine) {
	server.GET("/sneakers", controllers.GetSneakers)
	server.GET("/sneakers/:id", controllers.GetSneaker)
	server.GET("/sneakers/:id/reviews", controllers.GetSneakerReviews)
	server.GET("/brands", controllers.GetBrands)
	server.GET("/categories", controllers.GetCategories)
	server.GET("/sizes", controllers.GetSizes)
	server.GET("/banners", controllers.GetBanners)
	server.GET("/stock", controllers.GetStock)
	server.GET("/stock/:sneakerId/:sizeId", controllers.GetAvailability)

	authed := server.Group("/", middlewares.Authenticate())
	{
		authed.POST("/reviews", controllers.CreateReview)
		authed.DELETE("/reviews/:id", controllers.DeleteReview)
	}

	admin := server.Group("/", middlewares.Authenticate(), middlewares.RequireAdmin())
	{
		admin.POST("/sneakers", controllers.CreateSneaker)
		admin.PUT("/sneakers/:id", controllers.UpdateSneaker)
		admin.DELETE("/sneakers/:id", controllers.DeleteSneaker)
		admin.POST("/sneaker-images", controllers.UploadSneakerImages)
		admin.POST("/brands", controllers.CreateBrand)
		admin.DELETE("/brands/:id", controllers.DeleteBrand)
		admin.POST("/categories", controllers.CreateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)
		admin.POST("/sizes", controllers.CreateSize)
		admin.POST("/banners", controllers.CreateBanner)
		admin.DELETE("/banners/:id", controllers.DeleteBanner)
		admin.POST("/stock/restock", controllers.RestockEntry)
	}
}
