package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the BestSneakers API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- GET "/profile" - Get account details
- PUT "/profile" - Update account details
- DELETE "/profile" - Delete account

CATALOG
- GET "/sneakers" - List sneakers (filters: search, brand, category, gender, color, size, price_min, price_max, available)
- GET "/sneakers/:id" - Get sneaker by ID
- GET "/sneakers/:id/reviews" - List sneaker reviews
- GET "/brands" - List brands
- GET "/categories" - List categories
- GET "/sizes" - List sizes
- GET "/banners" - List active banners
- GET "/stock" - List stock entries
- GET "/stock/:sneakerId/:sizeId" - Get availability for a sneaker/size

CART
- GET "/cart" - Get my cart
- POST "/cart" - Add to cart
- PATCH "/cart/:id" - Update cart line quantity
- DELETE "/cart/:id" - Remove cart line

ORDERS
- POST "/checkout" - Place an order from my cart
- GET "/orders" - Get my orders
- GET "/orders/:orderId" - Get order by ID
- GET "/orders/:orderId/payments" - Get payments for an order
- POST "/payments/callback" - Payment gateway notification hook`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
