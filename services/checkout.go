package services

import (
	"errors"

	"github.com/bestsneakers/bestsneakers-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShippingInfo struct {
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	PaymentMethod string `json:"paymentMethod"`
}

func validateShippingInfo(info ShippingInfo) *ValidationError {
	var fields []FieldError
	if info.FullName == "" {
		fields = append(fields, FieldError{Field: "fullName", Message: "full name is required"})
	}
	if info.Phone == "" {
		fields = append(fields, FieldError{Field: "phone", Message: "phone is required"})
	}
	if info.Address == "" {
		fields = append(fields, FieldError{Field: "address", Message: "address is required"})
	}
	if !models.ValidPaymentMethod(info.PaymentMethod) {
		fields = append(fields, FieldError{Field: "paymentMethod", Message: "payment method must be card, paypal or crypto"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// PlaceOrder converts the user's cart into an order inside a single
// transaction: it locks every touched stock row, re-validates availability,
// freezes unit prices into order items, creates a pending payment and clears
// the cart. On any failure everything rolls back and the cart is untouched.
//
// Not idempotent: the cart deletion is the only protection against a
// double submit.
func PlaceOrder(db *gorm.DB, userID int, info ShippingInfo) (*models.Order, error) {
	if verr := validateShippingInfo(info); verr != nil {
		return nil, verr
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// Sorted by (sneaker, size) so concurrent checkouts sharing items take
	// their row locks in the same order and cannot deadlock each other.
	var lines []models.CartLine
	if err := tx.Preload("Sneaker").
		Where("user_id = ?", userID).
		Order("sneaker_id, size_id").
		Find(&lines).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(lines) == 0 {
		tx.Rollback()
		return nil, ErrEmptyCart
	}

	// Unit prices are read here, before any stock row is locked. The frozen
	// price is whatever the catalog said at cart-load time.
	prices := make([]float64, len(lines))
	total := 0.0
	for i, line := range lines {
		if line.Sneaker == nil {
			tx.Rollback()
			return nil, &OutOfStockError{SneakerID: line.SneakerID, SizeID: line.SizeID}
		}
		prices[i] = line.Sneaker.Price
		total += line.Sneaker.Price * float64(line.Quantity)
	}

	if total <= 0 {
		tx.Rollback()
		return nil, &ValidationError{Fields: []FieldError{
			{Field: "totalPrice", Message: "order total must be positive"},
		}}
	}

	// Lock and re-validate every stock row before mutating anything. The
	// first shortfall aborts the whole checkout.
	stocks := make([]models.Stock, len(lines))
	for i, line := range lines {
		err := lockForUpdate(tx).
			Where("sneaker_id = ? AND size_id = ?", line.SneakerID, line.SizeID).
			First(&stocks[i]).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return nil, &OutOfStockError{SneakerID: line.SneakerID, SizeID: line.SizeID}
		}
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if stocks[i].Quantity < line.Quantity {
			tx.Rollback()
			return nil, &InsufficientStockError{
				SneakerID: line.SneakerID,
				SizeID:    line.SizeID,
				Available: stocks[i].Quantity,
				Requested: line.Quantity,
			}
		}
	}

	order := models.Order{
		UserID:     userID,
		FullName:   info.FullName,
		Phone:      info.Phone,
		Address:    info.Address,
		TotalPrice: total,
		Status:     models.OrderStatusPending,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for i, line := range lines {
		if err := tx.Model(&models.Stock{}).
			Where("id = ?", stocks[i].ID).
			Update("quantity", gorm.Expr("quantity - ?", line.Quantity)).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		item := models.OrderItem{
			OrderID:   int(order.ID),
			SneakerID: line.SneakerID,
			SizeID:    line.SizeID,
			Quantity:  line.Quantity,
			Price:     prices[i],
		}
		if err := tx.Create(&item).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		order.OrderItems = append(order.OrderItems, item)
	}

	payment := models.Payment{
		OrderID:   int(order.ID),
		Method:    info.PaymentMethod,
		Status:    models.PaymentStatusPending,
		Reference: uuid.NewString(),
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	order.Payments = append(order.Payments, payment)

	if err := tx.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &order, nil
}
