package models

import "gorm.io/gorm"

// CartLine is a not-yet-purchased (sneaker, size, quantity) selection owned
// by a user. Deleted on successful checkout or explicit removal.
type CartLine struct {
	gorm.Model
	UserID    int      `json:"userId" gorm:"index"`
	SneakerID int      `json:"sneakerId" binding:"required"`
	Sneaker   *Sneaker `json:"sneaker,omitempty"`
	SizeID    int      `json:"sizeId" binding:"required"`
	Size      *Size    `json:"size,omitempty"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
}
