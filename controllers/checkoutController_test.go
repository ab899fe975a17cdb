package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/middlewares"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var handlerTestDBCounter int64

func setupHandlerTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "handler-test-secret")

	n := atomic.AddInt64(&handlerTestDBCounter, 1)
	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Brand{},
		&models.Category{},
		&models.Size{},
		&models.Sneaker{},
		&models.SneakerImage{},
		&models.Stock{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Review{},
	))

	initializers.DB = db

	server := gin.New()
	authed := server.Group("/", middlewares.Authenticate())
	{
		authed.POST("/checkout", Checkout)
		authed.POST("/cart", AddToCart)
		authed.GET("/orders", GetMyOrders)
	}
	admin := server.Group("/admin", middlewares.Authenticate(), middlewares.RequireAdmin())
	{
		admin.PATCH("/orders/:orderId", UpdateOrderStatus)
	}
	return server
}

func createTestUser(t *testing.T, username, role string) (models.User, string) {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
	require.NoError(t, initializers.DB.Create(&user).Error)

	token, err := generateJWT(user)
	require.NoError(t, err)
	return user, token
}

func seedHandlerCatalog(t *testing.T, price float64, stockQty int) (models.Sneaker, models.Size) {
	t.Helper()
	db := initializers.DB

	brand := models.Brand{Name: "Nike"}
	require.NoError(t, db.Create(&brand).Error)
	category := models.Category{Name: "Running", Slug: "running"}
	require.NoError(t, db.Create(&category).Error)

	sneaker := models.Sneaker{
		Name:       "Air Handler",
		BrandID:    int(brand.ID),
		CategoryID: int(category.ID),
		Price:      price,
	}
	require.NoError(t, db.Create(&sneaker).Error)

	size := models.Size{Value: 42}
	require.NoError(t, db.Create(&size).Error)

	require.NoError(t, db.Create(&models.Stock{
		SneakerID: int(sneaker.ID),
		SizeID:    int(size.ID),
		Quantity:  stockQty,
	}).Error)

	return sneaker, size
}

func doJSONRequest(server *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func TestCheckoutEndpointSuccess(t *testing.T) {
	server := setupHandlerTest(t)
	user, token := createTestUser(t, "buyer", "user")
	sneaker, size := seedHandlerCatalog(t, 100.00, 10)

	require.NoError(t, initializers.DB.Create(&models.CartLine{
		UserID:    int(user.ID),
		SneakerID: int(sneaker.ID),
		SizeID:    int(size.ID),
		Quantity:  2,
	}).Error)

	w := doJSONRequest(server, http.MethodPost, "/checkout", token, gin.H{
		"fullName":      "Ivan Ivanov",
		"phone":         "+79991234567",
		"address":       "1 Test Street",
		"paymentMethod": "card",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		OrderID uint `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotZero(t, response.OrderID)

	var order models.Order
	require.NoError(t, initializers.DB.Preload("OrderItems").First(&order, response.OrderID).Error)
	assert.Equal(t, 200.00, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.OrderItems, 1)

	var stock models.Stock
	require.NoError(t, initializers.DB.
		Where("sneaker_id = ? AND size_id = ?", sneaker.ID, size.ID).
		First(&stock).Error)
	assert.Equal(t, 8, stock.Quantity)
}

func TestCheckoutEndpointEmptyCart(t *testing.T) {
	server := setupHandlerTest(t)
	_, token := createTestUser(t, "buyer", "user")
	seedHandlerCatalog(t, 100.00, 10)

	w := doJSONRequest(server, http.MethodPost, "/checkout", token, gin.H{
		"fullName":      "Ivan Ivanov",
		"phone":         "+79991234567",
		"address":       "1 Test Street",
		"paymentMethod": "card",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}

func TestCheckoutEndpointInvalidShipping(t *testing.T) {
	server := setupHandlerTest(t)
	user, token := createTestUser(t, "buyer", "user")
	sneaker, size := seedHandlerCatalog(t, 100.00, 10)

	require.NoError(t, initializers.DB.Create(&models.CartLine{
		UserID:    int(user.ID),
		SneakerID: int(sneaker.ID),
		SizeID:    int(size.ID),
		Quantity:  1,
	}).Error)

	w := doJSONRequest(server, http.MethodPost, "/checkout", token, gin.H{
		"fullName":      "",
		"phone":         "",
		"address":       "",
		"paymentMethod": "cheque",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "invalid shipping info", response.Message)
	assert.Len(t, response.Errors, 4)
}

func TestCheckoutEndpointInsufficientStock(t *testing.T) {
	server := setupHandlerTest(t)
	user, token := createTestUser(t, "buyer", "user")
	sneaker, size := seedHandlerCatalog(t, 100.00, 3)

	require.NoError(t, initializers.DB.Create(&models.CartLine{
		UserID:    int(user.ID),
		SneakerID: int(sneaker.ID),
		SizeID:    int(size.ID),
		Quantity:  5,
	}).Error)

	w := doJSONRequest(server, http.MethodPost, "/checkout", token, gin.H{
		"fullName":      "Ivan Ivanov",
		"phone":         "+79991234567",
		"address":       "1 Test Street",
		"paymentMethod": "card",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Message   string `json:"message"`
		Available int    `json:"available"`
		Requested int    `json:"requested"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Insufficient stock", response.Message)
	assert.Equal(t, 3, response.Available)
	assert.Equal(t, 5, response.Requested)

	// Cart survives the failed checkout.
	var cartCount int64
	initializers.DB.Model(&models.CartLine{}).Count(&cartCount)
	assert.Equal(t, int64(1), cartCount)
}

func TestCheckoutEndpointRequiresAuth(t *testing.T) {
	server := setupHandlerTest(t)

	w := doJSONRequest(server, http.MethodPost, "/checkout", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddToCartAdvisoryStockCheck(t *testing.T) {
	server := setupHandlerTest(t)
	_, token := createTestUser(t, "buyer", "user")
	sneaker, size := seedHandlerCatalog(t, 100.00, 2)

	w := doJSONRequest(server, http.MethodPost, "/cart", token, gin.H{
		"sneakerId": sneaker.ID,
		"sizeId":    size.ID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Adding more than remains across both lines is rejected.
	w = doJSONRequest(server, http.MethodPost, "/cart", token, gin.H{
		"sneakerId": sneaker.ID,
		"sizeId":    size.ID,
		"quantity":  1,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient stock")
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	server := setupHandlerTest(t)
	user, _ := createTestUser(t, "buyer", "user")
	_, adminToken := createTestUser(t, "boss", "admin")

	order := models.Order{
		UserID:     int(user.ID),
		FullName:   "Ivan Ivanov",
		Phone:      "+79991234567",
		Address:    "1 Test Street",
		TotalPrice: 100,
		Status:     models.OrderStatusPending,
	}
	require.NoError(t, initializers.DB.Create(&order).Error)
	path := fmt.Sprintf("/admin/orders/%d", order.ID)

	w := doJSONRequest(server, http.MethodPatch, path, adminToken, gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Cancellation after shipping is rejected.
	w = doJSONRequest(server, http.MethodPatch, path, adminToken, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status transition")

	w = doJSONRequest(server, http.MethodPatch, path, adminToken, gin.H{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Order
	require.NoError(t, initializers.DB.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
}
