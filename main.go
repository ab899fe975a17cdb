package main

import (
	"log"
	"os"
	"time"

	"github.com/bestsneakers/bestsneakers-api/controllers"
	"github.com/bestsneakers/bestsneakers-api/initializers"
	"github.com/bestsneakers/bestsneakers-api/rabbitmq"
	"github.com/bestsneakers/bestsneakers-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
	initializers.ConnectToRedis()
}

func main() {
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		pool, err := rabbitmq.NewChannelPool(amqpURL, "warehouse-orders", 5)
		if err != nil {
			log.Fatal("Failed to set up RabbitMQ:", err)
		}
		defer pool.Close()
		controllers.OrderPublisher = rabbitmq.NewPublisher(pool, "warehouse-orders")
	} else {
		log.Println("AMQP_URL not set, order events disabled.")
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "https://www.bestsneakers.store"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.SneakerRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server)
	server.Run()
}
