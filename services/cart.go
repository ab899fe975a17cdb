package services

import (
	"errors"

	"github.com/bestsneakers/bestsneakers-api/models"
	"gorm.io/gorm"
)

// CheckCartQuantity verifies that requested units plus whatever the user
// already has in the cart for the same (sneaker, size) fit within current
// stock. Best-effort UX guard only; stock can still change before checkout,
// where PlaceOrder re-validates under lock.
func CheckCartQuantity(db *gorm.DB, userID, sneakerID, sizeID, requested int) error {
	available, err := QuantityAvailable(db, sneakerID, sizeID)
	if err != nil {
		return err
	}
	if available == 0 {
		return &OutOfStockError{SneakerID: sneakerID, SizeID: sizeID}
	}

	existing := 0
	var line models.CartLine
	err = db.Where("user_id = ? AND sneaker_id = ? AND size_id = ?", userID, sneakerID, sizeID).
		First(&line).Error
	if err == nil {
		existing = line.Quantity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if existing+requested > available {
		return &InsufficientStockError{
			SneakerID: sneakerID,
			SizeID:    sizeID,
			Available: available,
			Requested: existing + requested,
		}
	}
	return nil
}
