// Package events publishes order lifecycle changes to Kafka.
package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sirawit-dev/storefront-backend/internal/order"
)

const orderStatusTopic = "order.status-changed"

// Publisher writes order status events keyed by order id. With no brokers
// configured it stays disabled and every publish is a no-op.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string) *Publisher {
	cleaned := make([]string, 0, len(brokers))
	for _, b := range brokers {
		b = strings.TrimSpace(b)
		if b != "" {
			cleaned = append(cleaned, b)
		}
	}
	if len(cleaned) == 0 {
		return &Publisher{}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cleaned...),
			Topic:        orderStatusTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Publisher) Enabled() bool {
	return p.writer != nil
}

// OrderStatusChanged publishes the change. Failures are logged and
// swallowed; event delivery never blocks the order flow.
func (p *Publisher) OrderStatusChanged(change order.StatusChange) {
	if !p.Enabled() {
		return
	}
	data, err := json.Marshal(change)
	if err != nil {
		log.Printf("warning: could not encode order event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(change.OrderID)),
		Value: data,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		log.Printf("warning: could not publish order event for order %d: %v", change.OrderID, err)
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
