package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPaymentTest(t *testing.T, gatewayStatus string) (*gin.Engine, models.Payment) {
	t.Helper()
	server := setupHandlerTest(t)
	server.POST("/payments/callback", HandlePaymentCallback)

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transactions/status", r.URL.Path)
		require.NotEmpty(t, r.URL.Query().Get("reference"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"` + gatewayStatus + `"}`))
	}))
	t.Cleanup(gateway.Close)
	os.Setenv("PAYMENT_GATEWAY_URL", gateway.URL)

	user, _ := createTestUser(t, "payer", "user")
	order := models.Order{
		UserID:     int(user.ID),
		FullName:   "Ivan Ivanov",
		Phone:      "+79991234567",
		Address:    "1 Test Street",
		TotalPrice: 100,
		Status:     models.OrderStatusPending,
	}
	require.NoError(t, initializers.DB.Create(&order).Error)

	payment := models.Payment{
		OrderID:   int(order.ID),
		Method:    models.PaymentMethodCard,
		Status:    models.PaymentStatusPending,
		Reference: "ref-test-1",
	}
	require.NoError(t, initializers.DB.Create(&payment).Error)

	return server, payment
}

func TestPaymentCallbackCompletes(t *testing.T) {
	server, payment := setupPaymentTest(t, "completed")

	w := doJSONRequest(server, http.MethodPost, "/payments/callback", "", gin.H{
		"reference": payment.Reference,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Payment
	require.NoError(t, initializers.DB.First(&updated, payment.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, updated.Status)
}

func TestPaymentCallbackFails(t *testing.T) {
	server, payment := setupPaymentTest(t, "failed")

	w := doJSONRequest(server, http.MethodPost, "/payments/callback", "", gin.H{
		"reference": payment.Reference,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Payment
	require.NoError(t, initializers.DB.First(&updated, payment.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, updated.Status)
}

func TestPaymentCallbackUnknownReference(t *testing.T) {
	server, _ := setupPaymentTest(t, "completed")

	w := doJSONRequest(server, http.MethodPost, "/payments/callback", "", gin.H{
		"reference": "no-such-reference",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentCallbackMissingReference(t *testing.T) {
	server, _ := setupPaymentTest(t, "completed")

	w := doJSONRequest(server, http.MethodPost, "/payments/callback", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
