package commands

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
)

// Observer receives dispatch outcomes, typically to update metrics.
type Observer interface {
	AssignmentCreated(typ assignment.Type)
	AssignmentResolved(status assignment.Status)
	DispatchFailed(reason string)
	NotificationFailed(kind string)
}

type nopObserver struct{}

func (nopObserver) AssignmentCreated(assignment.Type)    {}
func (nopObserver) AssignmentResolved(assignment.Status) {}
func (nopObserver) DispatchFailed(string)                {}
func (nopObserver) NotificationFailed(string)            {}

// Option customizes a command handler.
type Option func(*options)

type options struct {
	now      func() time.Time
	observer Observer
}

// WithClock replaces the wall clock. Tests use it to control deadlines.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:      func() time.Time { return time.Now().UTC() },
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Failure reasons reported to Observer.DispatchFailed.
const (
	reasonNoCourier     = "no_courier"
	reasonInsufficient  = "insufficient_couriers"
	reasonInconsistency = "inconsistency"
)

// Notification kinds reported to Observer.NotificationFailed.
const (
	notifyNewAssignment = "new_assignment"
	notifyTimeout       = "assignment_timeout"
	notifyOrderStatus   = "order_status"
)
