package rabbitmq

import (
	"errors"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type ChannelPool struct {
	conn     *amqp.Connection
	channels chan *amqp.Channel
	mu       sync.Mutex
	queue    string
}

// NewChannelPool dials the broker, declares the queue and pre-creates size
// channels so request handlers never block on channel setup.
func NewChannelPool(url, queue string, size int) (*ChannelPool, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	pool := &ChannelPool{
		conn:     conn,
		channels: make(chan *amqp.Channel, size),
		queue:    queue,
	}

	for i := 0; i < size; i++ {
		ch, err := pool.newChannel()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		pool.channels <- ch
	}

	log.Printf("Created RabbitMQ channel pool with %d channels", size)
	return pool, nil
}

func (p *ChannelPool) newChannel() (*amqp.Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}

	// Queue declaration is idempotent.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return ch, nil
}

func (p *ChannelPool) GetChannel() (*amqp.Channel, error) {
	select {
	case ch := <-p.channels:
		if ch.IsClosed() {
			return p.newChannel()
		}
		return ch, nil
	default:
		return nil, errors.New("no channels available in pool")
	}
}

func (p *ChannelPool) ReturnChannel(ch *amqp.Channel) {
	if ch == nil || ch.IsClosed() {
		return
	}
	select {
	case p.channels <- ch:
	default:
		ch.Close()
	}
}

func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	close(p.channels)
	for ch := range p.channels {
		ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
