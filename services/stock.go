package services

import (
	"errors"

	"github.com/bestsneakers/bestsneakers-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds an exclusive row lock held for the rest of the
// transaction. SQLite rejects FOR UPDATE syntax; its single-writer lock
// already serializes the test database, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// QuantityAvailable returns the units on hand for a (sneaker, size) pair.
// Read-only display helper; the authoritative check happens under lock
// inside PlaceOrder.
func QuantityAvailable(db *gorm.DB, sneakerID, sizeID int) (int, error) {
	var stock models.Stock
	err := db.Where("sneaker_id = ? AND size_id = ?", sneakerID, sizeID).First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return stock.Quantity, nil
}

// Restock adds quantity units to a (sneaker, size) pair, creating the stock
// row if it does not exist yet. Uses the same locking discipline as the
// checkout transaction so it cannot race a concurrent decrement.
func Restock(db *gorm.DB, sneakerID, sizeID, quantity int) (*models.Stock, error) {
	var stock models.Stock

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

	err := lockForUpdate(tx).
		Where("sneaker_id = ? AND size_id = ?", sneakerID, sizeID).
		First(&stock).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stock = models.Stock{SneakerID: sneakerID, SizeID: sizeID, Quantity: quantity}
		if err := tx.Create(&stock).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	case err != nil:
		tx.Rollback()
		return nil, err
	default:
		stock.Quantity += quantity
		if err := tx.Model(&stock).Update("quantity", stock.Quantity).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &stock, nil
}
