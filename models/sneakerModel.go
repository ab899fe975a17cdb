package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Sneaker struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	BrandID     int            `json:"brandId" binding:"required"`
	Brand       *Brand         `json:"brand,omitempty"`
	CategoryID  int            `json:"categoryId" binding:"required"`
	Category    *Category      `json:"category,omitempty"`
	Price       float64        `json:"price" binding:"required"`
	Description string         `json:"description"`
	Gender      string         `json:"gender" gorm:"default:U"`
	Color       string         `json:"color"`
	Tags        datatypes.JSON `json:"tags"`
	Images      []SneakerImage `json:"images" gorm:"foreignKey:SneakerID"`
	Stock       []Stock        `json:"stock,omitempty" gorm:"foreignKey:SneakerID"`
	Reviews     []Review       `json:"reviews,omitempty" gorm:"foreignKey:SneakerID"`

	// Filled from the reviews table when listing, never stored.
	AvgRating float64 `json:"avgRating" gorm:"-"`
}

type SneakerImage struct {
	gorm.Model
	SneakerID int    `json:"sneakerId"`
	Url       string `json:"url"`
	IsMain    bool   `json:"isMain"`
}

// Stock holds the available quantity for one (sneaker, size) pair. Rows are
// only ever decremented inside the checkout transaction or topped up through
// the admin restock path, both of which lock the row first.
type Stock struct {
	gorm.Model
	SneakerID int   `json:"sneakerId" binding:"required" gorm:"uniqueIndex:idx_sneaker_size"`
	SizeID    int   `json:"sizeId" binding:"required" gorm:"uniqueIndex:idx_sneaker_size"`
	Size      *Size `json:"size,omitempty"`
	Quantity  int   `json:"quantity" gorm:"check:quantity >= 0"`
}
