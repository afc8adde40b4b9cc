package notification_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/notification"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	courierTopic = "courier-notifications"
	orderTopic   = "order-status"
)

func decode(t *testing.T, msg *sarama.ProducerMessage) notification.Message {
	t.Helper()

	body, err := msg.Value.Encode()
	require.NoError(t, err)

	var m notification.Message
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func keyOf(t *testing.T, msg *sarama.ProducerMessage) string {
	t.Helper()

	key, err := msg.Key.Encode()
	require.NoError(t, err)
	return string(key)
}

type failureRecorder struct {
	mu    sync.Mutex
	kinds []string
}

func (r *failureRecorder) NotificationFailed(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// capture records the message the mock producer receives.
func capture(producer *mocks.AsyncProducer) *sarama.ProducerMessage {
	sent := new(sarama.ProducerMessage)
	producer.ExpectInputWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		*sent = *msg
		return nil
	})
	return sent
}

func TestKafkaNotifier_NotifyNewAssignment(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	sent := capture(producer)

	a, err := assignment.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		assignment.Auto, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), 2*time.Minute)
	require.NoError(t, err)

	n := notification.NewKafkaNotifier(producer, courierTopic, orderTopic, discardLogger(), nil)
	require.NoError(t, n.NotifyNewAssignment(context.Background(), a, "Large pizza"))
	require.NoError(t, n.Close())

	assert.Equal(t, courierTopic, sent.Topic)
	assert.Equal(t, a.CourierID().String(), keyOf(t, sent))

	m := decode(t, sent)
	assert.Equal(t, notification.EventNewAssignment, m.Type)
	assert.Equal(t, a.ID().String(), m.AssignmentID)
	assert.Equal(t, a.OrderID().String(), m.OrderID)
	assert.Equal(t, "Large pizza", m.Summary)
	require.NotNil(t, m.TimeoutAt)
	assert.True(t, m.TimeoutAt.Equal(time.Date(2025, 1, 1, 10, 2, 0, 0, time.UTC)))
}

func TestKafkaNotifier_NotifyAssignmentTimeout(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	sent := capture(producer)

	courierID, assignmentID := kernel.NewUUID(), kernel.NewUUID()
	n := notification.NewKafkaNotifier(producer, courierTopic, orderTopic, discardLogger(), nil)
	require.NoError(t, n.NotifyAssignmentTimeout(context.Background(), courierID, assignmentID))
	require.NoError(t, n.Close())

	assert.Equal(t, courierTopic, sent.Topic)
	m := decode(t, sent)
	assert.Equal(t, notification.EventAssignmentTimeout, m.Type)
	assert.Equal(t, assignmentID.String(), m.AssignmentID)
	assert.Equal(t, courierID.String(), m.CourierID)
}

func TestKafkaNotifier_NotifyOrderStatus(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	sent := capture(producer)

	ownerID, orderID := kernel.NewUUID(), kernel.NewUUID()
	n := notification.NewKafkaNotifier(producer, courierTopic, orderTopic, discardLogger(), nil)
	require.NoError(t, n.NotifyOrderStatus(context.Background(), ownerID, orderID, order.Assigned, "on the way"))
	require.NoError(t, n.Close())

	assert.Equal(t, orderTopic, sent.Topic)
	assert.Equal(t, orderID.String(), keyOf(t, sent))
	m := decode(t, sent)
	assert.Equal(t, notification.EventOrderStatus, m.Type)
	assert.Equal(t, ownerID.String(), m.OwnerID)
	assert.Equal(t, order.Assigned.String(), m.Status)
	assert.Equal(t, "on the way", m.Message)
}

func TestKafkaNotifier_DeliveryFailureIsReportedNotReturned(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	producer.ExpectInputAndFail(errors.New("leader not available"))

	var logs bytes.Buffer
	failures := &failureRecorder{}
	n := notification.NewKafkaNotifier(producer, courierTopic, orderTopic,
		slog.New(slog.NewJSONHandler(&logs, nil)), failures)

	require.NoError(t, n.NotifyAssignmentTimeout(context.Background(), kernel.NewUUID(), kernel.NewUUID()))
	require.NoError(t, n.Close())

	assert.Equal(t, []string{"assignment_timeout"}, failures.kinds)
	assert.Contains(t, logs.String(), "leader not available")
	assert.Contains(t, logs.String(), courierTopic)
}

func TestKafkaNotifier_DoesNotWaitForBroker(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	for range 3 {
		producer.ExpectInputAndSucceed()
	}

	n := notification.NewKafkaNotifier(producer, courierTopic, orderTopic, discardLogger(), nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	for range 3 {
		require.NoError(t, n.NotifyOrderStatus(ctx, kernel.NewUUID(), kernel.NewUUID(), order.Offered, "looking"))
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	require.NoError(t, n.Close())
}

func TestKafkaNotifier_CancelledContext(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := notification.NewKafkaNotifier(producer, courierTopic, orderTopic, discardLogger(), nil)
	err := n.NotifyAssignmentTimeout(ctx, kernel.NewUUID(), kernel.NewUUID())

	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, n.Close())
}

func TestKafkaNotifier_AfterClose(t *testing.T) {
	producer := mocks.NewAsyncProducer(t, nil)
	n := notification.NewKafkaNotifier(producer, courierTopic, orderTopic, discardLogger(), nil)
	require.NoError(t, n.Close())
	require.NoError(t, n.Close())

	err := n.NotifyAssignmentTimeout(context.Background(), kernel.NewUUID(), kernel.NewUUID())
	require.ErrorIs(t, err, notification.ErrNotifierClosed)
}

func TestNewKafkaProducer_NoBrokers(t *testing.T) {
	_, err := notification.NewKafkaProducer(nil)
	require.Error(t, err)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := notification.NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	courierID := kernel.NewUUID()
	require.NoError(t, n.NotifyAssignmentTimeout(context.Background(), courierID, kernel.NewUUID()))
	require.NoError(t, n.NotifyOrderStatus(context.Background(), kernel.NewUUID(), kernel.NewUUID(), order.Offered, "looking"))

	out := buf.String()
	assert.Contains(t, out, notification.EventAssignmentTimeout)
	assert.Contains(t, out, courierID.String())
	assert.Contains(t, out, `"component":"notifier"`)
	assert.Contains(t, out, notification.EventOrderStatus)
}
