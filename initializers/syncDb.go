package initializers

import (
	"log"

	"github.com/bestsneakers/bestsneakers-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
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
		&models.MainBanner{},
	)
	log.Println("Database synced successfully.")
}
