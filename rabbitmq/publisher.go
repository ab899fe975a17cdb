package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/bestsneakers/bestsneakers-api/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderPlacedEvent is the message the warehouse consumes to start picking a
// freshly placed order.
type OrderPlacedEvent struct {
	OrderID    uint              `json:"orderId"`
	UserID     int               `json:"userId"`
	TotalPrice float64           `json:"totalPrice"`
	Items      []OrderPlacedItem `json:"items"`
}

type OrderPlacedItem struct {
	SneakerID int `json:"sneakerId"`
	SizeID    int `json:"sizeId"`
	Quantity  int `json:"quantity"`
}

type Publisher struct {
	pool  *ChannelPool
	queue string
}

func NewPublisher(pool *ChannelPool, queue string) *Publisher {
	return &Publisher{pool: pool, queue: queue}
}

// PublishOrderPlaced sends the event for an already committed order. A nil
// publisher is a no-op so the API keeps working without a broker.
func (p *Publisher) PublishOrderPlaced(order *models.Order) error {
	if p == nil {
		return nil
	}

	event := OrderPlacedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
	}
	for _, item := range order.OrderItems {
		event.Items = append(event.Items, OrderPlacedItem{
			SneakerID: item.SneakerID,
			SizeID:    item.SizeID,
			Quantity:  item.Quantity,
		})
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ch, err := p.pool.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	log.Printf("Published order %d to queue %s", order.ID, p.queue)
	return nil
}
