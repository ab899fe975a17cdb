package models

import "gorm.io/gorm"

type Brand struct {
	gorm.Model
	Name    string `json:"name" binding:"required"`
	Country string `json:"country"`
}

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" binding:"required" gorm:"uniqueIndex"`
}

type Size struct {
	gorm.Model
	Value float64 `json:"value" binding:"required" gorm:"column:value"`
}

type MainBanner struct {
	gorm.Model
	Title    string `json:"title" binding:"required"`
	ImageUrl string `json:"imageUrl"`
	Link     string `json:"link"`
	IsActive bool   `json:"isActive"`
}
