package services_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "documents")
	require.NoError(t, err)
	return o
}

func newCourier(t *testing.T, name string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), name)
	require.NoError(t, err)
	return c
}

func resolved(t *testing.T, status assignment.Status, courierID kernel.UUID) *assignment.Assignment {
	t.Helper()
	at := now.Add(-time.Minute)
	a, err := assignment.RestoreAssignment(kernel.NewUUID(), kernel.NewUUID(), courierID,
		status, assignment.Auto, now.Add(-2*time.Minute), &at, nil, "")
	require.NoError(t, err)
	return a
}

func TestOrderDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewOrderDispatcher()

	t.Run("should offer order and create pending assignment", func(t *testing.T) {
		o := newOrder(t)
		c := newCourier(t, "Alice")

		a, err := dispatcher.Dispatch(o, c, assignment.Auto, now, 2*time.Minute)

		require.NoError(t, err)
		assert.Equal(t, assignment.Pending, a.Status())
		assert.Equal(t, assignment.Auto, a.Type())
		assert.True(t, a.OrderID().IsEqual(o.ID()))
		assert.True(t, a.CourierID().IsEqual(c.ID()))
		deadline, _ := a.TimeoutAt()
		assert.Equal(t, now.Add(2*time.Minute), deadline)

		assert.Equal(t, order.Offered, o.Status())
		assert.True(t, o.Courier().IsEqual(c.ID()))
	})

	t.Run("should re-offer an offered order", func(t *testing.T) {
		o := newOrder(t)
		_, err := dispatcher.Dispatch(o, newCourier(t, "A"), assignment.Auto, now, time.Minute)
		require.NoError(t, err)

		b := newCourier(t, "B")
		a, err := dispatcher.Dispatch(o, b, assignment.Reassignment, now, time.Minute)

		require.NoError(t, err)
		assert.Equal(t, assignment.Reassignment, a.Type())
		assert.True(t, o.Courier().IsEqual(b.ID()))
	})

	t.Run("should refuse assigned order", func(t *testing.T) {
		o := newOrder(t)
		c := newCourier(t, "A")
		require.NoError(t, o.Offer(c.ID()))
		require.NoError(t, o.Assign(c.ID()))

		a, err := dispatcher.Dispatch(o, newCourier(t, "B"), assignment.Auto, now, time.Minute)

		require.ErrorIs(t, err, services.ErrOrderNotDispatchable)
		assert.Nil(t, a)
		assert.True(t, o.Courier().IsEqual(c.ID()))
	})

	t.Run("should leave order untouched on invalid window", func(t *testing.T) {
		o := newOrder(t)

		_, err := dispatcher.Dispatch(o, newCourier(t, "A"), assignment.Auto, now, 0)

		require.Error(t, err)
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.Courier())
	})

	t.Run("should validate aggregates", func(t *testing.T) {
		_, err := dispatcher.Dispatch(&order.Order{}, &courier.Courier{}, assignment.Auto, now, time.Minute)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
		require.ErrorIs(t, err, courier.ErrCourierIsNotConstructed)
	})
}

func TestOrderDispatcher_CheckReassignment(t *testing.T) {
	dispatcher := services.OrderDispatcher{}
	courierID := kernel.NewUUID()

	tests := []struct {
		name    string
		last    *assignment.Assignment
		onDuty  int64
		wantErr bool
	}{
		{"no previous attempt", nil, 0, false},
		{"rejected with single courier", resolved(t, assignment.Rejected, courierID), 1, true},
		{"timed out with single courier", resolved(t, assignment.Timeout, courierID), 1, true},
		{"rejected with empty roster", resolved(t, assignment.Rejected, courierID), 0, true},
		{"rejected with two couriers", resolved(t, assignment.Rejected, courierID), 2, false},
		{"accepted with single courier", resolved(t, assignment.Accepted, courierID), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dispatcher.CheckReassignment(tt.last, tt.onDuty)
			if tt.wantErr {
				require.ErrorIs(t, err, services.ErrInsufficientCouriers)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOrderDispatcher_ReassignmentExclusions(t *testing.T) {
	dispatcher := services.NewOrderDispatcher()
	courierID := kernel.NewUUID()

	assert.Nil(t, dispatcher.ReassignmentExclusions(nil))
	assert.Nil(t, dispatcher.ReassignmentExclusions(resolved(t, assignment.Accepted, courierID)))

	excluded := dispatcher.ReassignmentExclusions(resolved(t, assignment.Timeout, courierID))
	require.Len(t, excluded, 1)
	assert.True(t, excluded[0].IsEqual(courierID))
}
