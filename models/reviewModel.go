package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID    int    `json:"userId"`
	SneakerID int    `json:"sneakerId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Text      string `json:"text" binding:"required"`
}
