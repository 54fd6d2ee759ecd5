// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"skillsyncBack/internal/models"
)

// OrderPaidEvent is published once per recorded checkout.
type OrderPaidEvent struct {
	OrderSessionID string    `json:"stripeSessionId"`
	GigID          int       `json:"gigId"`
	OfferID        int       `json:"offerId"`
	BuyerID        int       `json:"buyerId"`
	SellerID       int       `json:"sellerId"`
	Amount         float64   `json:"amount"`
	PaidAt         time.Time `json:"paidAt"`
}

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    channel
	queue string
}

// Dial connects and declares the durable queue.
func Dial(url, queue string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: channel open: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: queue declare: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// PublishOrderPaid sends a persistent order.paid message. A nil publisher
// drops the event.
func (p *Publisher) PublishOrderPaid(ctx context.Context, order models.Order) error {
	if p == nil || p.ch == nil {
		return nil
	}
	body, err := json.Marshal(OrderPaidEvent{
		OrderSessionID: order.StripeSessionID,
		GigID:          order.GigID,
		OfferID:        order.OfferID,
		BuyerID:        order.BuyerID,
		SellerID:       order.SellerID,
		Amount:         order.Amount,
		PaidAt:         time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         "order.paid",
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
