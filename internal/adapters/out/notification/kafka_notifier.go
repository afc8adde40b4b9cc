// Package notification delivers dispatch events to couriers and order owners.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/IBM/sarama"
)

var _ ports.NotificationPort = (*KafkaNotifier)(nil)

// ErrNotifierClosed is returned by Notify calls made after Close.
var ErrNotifierClosed = errors.New("kafka: notifier closed")

// Event types carried in the "type" field of every message.
const (
	EventNewAssignment     = "assignment.created"
	EventAssignmentTimeout = "assignment.timeout"
	EventOrderStatus       = "order.status"
)

// Message is the JSON body written to Kafka. Courier events are keyed by
// courier ID and order events by order ID, so each recipient's events stay
// ordered within a partition.
type Message struct {
	Type         string     `json:"type"`
	AssignmentID string     `json:"assignment_id,omitempty"`
	OrderID      string     `json:"order_id,omitempty"`
	CourierID    string     `json:"courier_id,omitempty"`
	OwnerID      string     `json:"owner_id,omitempty"`
	Summary      string     `json:"summary,omitempty"`
	Status       string     `json:"status,omitempty"`
	Message      string     `json:"message,omitempty"`
	TimeoutAt    *time.Time `json:"timeout_at,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

// DeliveryObserver is told about messages the producer could not deliver.
type DeliveryObserver interface {
	NotificationFailed(kind string)
}

// KafkaNotifier publishes notifications through an asynchronous producer.
// Notify calls return once the message is queued. Delivery errors are drained
// in the background, logged and reported to the DeliveryObserver.
type KafkaNotifier struct {
	producer     sarama.AsyncProducer
	courierTopic string
	orderTopic   string
	observer     DeliveryObserver
	logger       *slog.Logger
	now          func() time.Time

	mu      sync.RWMutex
	closed  bool
	drained chan struct{}
}

// NewKafkaProducer builds an AsyncProducer that waits for all in-sync
// replicas. Only errors are returned on its channels.
func NewKafkaProducer(brokers []string) (sarama.AsyncProducer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true
	cfg.Producer.Timeout = 5 * time.Second

	return sarama.NewAsyncProducer(brokers, cfg)
}

// NewKafkaNotifier takes ownership of producer; Close closes it. observer
// may be nil.
func NewKafkaNotifier(
	producer sarama.AsyncProducer,
	courierTopic, orderTopic string,
	logger *slog.Logger,
	observer DeliveryObserver,
) *KafkaNotifier {
	n := &KafkaNotifier{
		producer:     producer,
		courierTopic: courierTopic,
		orderTopic:   orderTopic,
		observer:     observer,
		logger:       logger.With("component", "kafka-notifier"),
		now:          func() time.Time { return time.Now().UTC() },
		drained:      make(chan struct{}),
	}
	go n.drainErrors()
	return n
}

func (n *KafkaNotifier) NotifyNewAssignment(ctx context.Context, a *assignment.Assignment, summary string) error {
	msg := Message{
		Type:         EventNewAssignment,
		AssignmentID: a.ID().String(),
		OrderID:      a.OrderID().String(),
		CourierID:    a.CourierID().String(),
		Summary:      summary,
		OccurredAt:   n.now(),
	}
	if deadline, ok := a.TimeoutAt(); ok {
		msg.TimeoutAt = &deadline
	}
	return n.send(ctx, n.courierTopic, a.CourierID(), msg)
}

func (n *KafkaNotifier) NotifyAssignmentTimeout(ctx context.Context, courierID, assignmentID kernel.UUID) error {
	return n.send(ctx, n.courierTopic, courierID, Message{
		Type:         EventAssignmentTimeout,
		AssignmentID: assignmentID.String(),
		CourierID:    courierID.String(),
		OccurredAt:   n.now(),
	})
}

func (n *KafkaNotifier) NotifyOrderStatus(
	ctx context.Context,
	ownerID, orderID kernel.UUID,
	status order.Status,
	message string,
) error {
	return n.send(ctx, n.orderTopic, orderID, Message{
		Type:       EventOrderStatus,
		OrderID:    orderID.String(),
		OwnerID:    ownerID.String(),
		Status:     status.String(),
		Message:    message,
		OccurredAt: n.now(),
	})
}

// Close flushes queued messages and waits until every delivery error has
// been reported.
func (n *KafkaNotifier) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	n.mu.Unlock()

	n.producer.AsyncClose()
	<-n.drained
	return nil
}

func (n *KafkaNotifier) send(ctx context.Context, topic string, key kernel.UUID, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("kafka: encode %s: %w", msg.Type, err)
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return ErrNotifierClosed
	}

	select {
	case n.producer.Input() <- &sarama.ProducerMessage{
		Topic:    topic,
		Key:      sarama.StringEncoder(key.String()),
		Value:    sarama.ByteEncoder(body),
		Metadata: msg.Type,
	}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("kafka: queue %s for %s: %w", msg.Type, topic, ctx.Err())
	}
}

func (n *KafkaNotifier) drainErrors() {
	defer close(n.drained)

	for perr := range n.producer.Errors() {
		event, _ := perr.Msg.Metadata.(string)
		n.logger.Warn("notification not delivered",
			"event", event, "topic", perr.Msg.Topic, "error", perr.Err)
		if n.observer != nil {
			n.observer.NotificationFailed(failureKind(event))
		}
	}
}

// failureKind maps an event type to the label used by the dispatch handlers.
func failureKind(event string) string {
	switch event {
	case EventNewAssignment:
		return "new_assignment"
	case EventAssignmentTimeout:
		return "assignment_timeout"
	case EventOrderStatus:
		return "order_status"
	default:
		return "unknown"
	}
}
