package commands_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/roster"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// memState is an in-memory copy of everything the postgres adapter stores.
type memState struct {
	couriers    map[kernel.UUID]*courier.Courier
	orders      map[kernel.UUID]*order.Order
	orderSeq    []kernel.UUID
	assignments []*assignment.Assignment
	roster      []rosterRow
	seq         int64
}

type rosterRow struct {
	entry roster.Entry
	seq   int64
}

func (s memState) clone() memState {
	c := memState{
		couriers: make(map[kernel.UUID]*courier.Courier, len(s.couriers)),
		orders:   make(map[kernel.UUID]*order.Order, len(s.orders)),
		orderSeq: slices.Clone(s.orderSeq),
		roster:   slices.Clone(s.roster),
		seq:      s.seq,
	}
	for id, v := range s.couriers {
		c.couriers[id] = v
	}
	for id, v := range s.orders {
		c.orders[id] = cloneOrder(v)
	}
	for _, a := range s.assignments {
		c.assignments = append(c.assignments, cloneAssignment(a))
	}
	return c
}

func cloneOrder(o *order.Order) *order.Order {
	c, err := order.RestoreOrder(o.ID(), o.Owner(), o.Description(), o.Status(), o.Courier())
	if err != nil {
		panic(err)
	}
	return c
}

func cloneAssignment(a *assignment.Assignment) *assignment.Assignment {
	var timeoutAt *time.Time
	if t, ok := a.TimeoutAt(); ok {
		timeoutAt = &t
	}
	c, err := assignment.RestoreAssignment(a.ID(), a.OrderID(), a.CourierID(), a.Status(), a.Type(),
		a.AssignedAt(), a.ResponseAt(), timeoutAt, a.RejectionReason())
	if err != nil {
		panic(err)
	}
	return c
}

// memStore backs the fake unit of work. Begin snapshots the state and an
// uncommitted Rollback restores it.
type memStore struct {
	mu    sync.Mutex
	state memState
}

func newMemStore() *memStore {
	return &memStore{state: memState{
		couriers: map[kernel.UUID]*courier.Courier{},
		orders:   map[kernel.UUID]*order.Order{},
	}}
}

func (s *memStore) Create() commands.UoW {
	return &memUoW{store: s}
}

type roUoWFactory struct{ store *memStore }

func (f roUoWFactory) Create() commands.RosterUoW { return &memUoW{store: f.store} }

type orderUoWFactory struct{ store *memStore }

func (f orderUoWFactory) Create() commands.OrderUoW { return &memUoW{store: f.store} }

type memUoW struct {
	store    *memStore
	snapshot *memState
}

func (u *memUoW) Begin(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.state.clone()
	u.snapshot = &snap
	return nil
}

func (u *memUoW) Commit(context.Context) error {
	if u.snapshot == nil {
		return errors.New("no transaction")
	}
	u.snapshot = nil
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	if u.snapshot == nil {
		return errors.New("no transaction")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.state = *u.snapshot
	u.snapshot = nil
	return nil
}

func (u *memUoW) OnDutyRoster() ports.OnDutyRoster                 { return memRoster{u.store} }
func (u *memUoW) AssignmentRepository() ports.AssignmentRepository { return memLedger{u.store} }
func (u *memUoW) OrderRepository() ports.OrderRepository           { return memOrders{u.store} }
func (u *memUoW) CourierRepository() ports.CourierRepository       { return memCouriers{u.store} }

type memRoster struct{ s *memStore }

func (r memRoster) Enqueue(_ context.Context, entry roster.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &r.s.state
	st.roster = slices.DeleteFunc(st.roster, func(row rosterRow) bool {
		return row.entry.CourierID().IsEqual(entry.CourierID())
	})
	st.seq++
	st.roster = append(st.roster, rosterRow{entry: entry, seq: st.seq})
	return nil
}

func (r memRoster) sorted() []rosterRow {
	rows := slices.Clone(r.s.state.roster)
	slices.SortStableFunc(rows, func(a, b rosterRow) int {
		if c := a.entry.OnDutySince().Compare(b.entry.OnDutySince()); c != 0 {
			return c
		}
		return int(a.seq - b.seq)
	})
	return rows
}

func (r memRoster) Dequeue(_ context.Context, exclude ...kernel.UUID) (kernel.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.sorted() {
		if slices.ContainsFunc(exclude, row.entry.CourierID().IsEqual) {
			continue
		}
		return row.entry.CourierID(), nil
	}
	return kernel.UUID{}, ports.ErrNoCourierAvailable
}

func (r memRoster) Requeue(_ context.Context, courierID kernel.UUID, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &r.s.state
	for i, row := range st.roster {
		if row.entry.CourierID().IsEqual(courierID) {
			entry, err := roster.NewEntry(courierID, now, row.entry.ShiftRef())
			if err != nil {
				return err
			}
			st.seq++
			st.roster[i] = rosterRow{entry: entry, seq: st.seq}
			return nil
		}
	}
	return errs.NewObjectNotFoundError("on-duty courier", courierID)
}

func (r memRoster) Remove(_ context.Context, courierID kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &r.s.state
	before := len(st.roster)
	st.roster = slices.DeleteFunc(st.roster, func(row rosterRow) bool {
		return row.entry.CourierID().IsEqual(courierID)
	})
	if len(st.roster) == before {
		return errs.NewObjectNotFoundError("on-duty courier", courierID)
	}
	return nil
}

func (r memRoster) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.state.roster)), nil
}

func (r memRoster) List(context.Context) ([]roster.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var entries []roster.Entry
	for _, row := range r.sorted() {
		entries = append(entries, row.entry)
	}
	return entries, nil
}

type memLedger struct{ s *memStore }

func (l memLedger) Add(_ context.Context, a *assignment.Assignment) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for _, stored := range l.s.state.assignments {
		if stored.OrderID().IsEqual(a.OrderID()) && stored.Status() == assignment.Pending {
			return ports.ErrPendingAssignmentExists
		}
	}
	l.s.state.assignments = append(l.s.state.assignments, cloneAssignment(a))
	return nil
}

func (l memLedger) Resolve(_ context.Context, a *assignment.Assignment) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for i, stored := range l.s.state.assignments {
		if !stored.ID().IsEqual(a.ID()) {
			continue
		}
		if stored.Status() != assignment.Pending {
			return ports.ErrAssignmentAlreadyResolved
		}
		l.s.state.assignments[i] = cloneAssignment(a)
		return nil
	}
	return errs.NewObjectNotFoundError("assignment", a.ID())
}

func (l memLedger) Get(_ context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for _, stored := range l.s.state.assignments {
		if stored.ID().IsEqual(id) {
			return cloneAssignment(stored), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("assignment", id)
}

func (l memLedger) GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return l.Get(ctx, id)
}

func (l memLedger) latest(orderID kernel.UUID, match func(*assignment.Assignment) bool) *assignment.Assignment {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	for i := len(l.s.state.assignments) - 1; i >= 0; i-- {
		a := l.s.state.assignments[i]
		if a.OrderID().IsEqual(orderID) && match(a) {
			return cloneAssignment(a)
		}
	}
	return nil
}

func (l memLedger) FindPendingByOrder(_ context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	return l.latest(orderID, func(a *assignment.Assignment) bool { return a.Status() == assignment.Pending }), nil
}

func (l memLedger) FindLatestByOrder(_ context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	return l.latest(orderID, func(*assignment.Assignment) bool { return true }), nil
}

func (l memLedger) FindLatestUnsuccessfulByOrder(_ context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	return l.latest(orderID, func(a *assignment.Assignment) bool { return a.Status().IsUnsuccessful() }), nil
}

func (l memLedger) FindExpiredPending(_ context.Context, now time.Time, limit int) ([]*assignment.Assignment, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	var due []*assignment.Assignment
	for _, a := range l.s.state.assignments {
		if a.IsDue(now) {
			due = append(due, cloneAssignment(a))
		}
	}
	slices.SortStableFunc(due, func(a, b *assignment.Assignment) int {
		at, _ := a.TimeoutAt()
		bt, _ := b.TimeoutAt()
		return at.Compare(bt)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

type memOrders struct{ s *memStore }

func (r memOrders) Add(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.orders[o.ID()] = cloneOrder(o)
	r.s.state.orderSeq = append(r.s.state.orderSeq, o.ID())
	return nil
}

func (r memOrders) Update(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.state.orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	r.s.state.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.state.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return cloneOrder(o), nil
}

func (r memOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memOrders) ListAwaitingDispatch(_ context.Context, limit int) ([]*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var awaiting []*order.Order
	for _, id := range r.s.state.orderSeq {
		o := r.s.state.orders[id]
		if !o.Status().IsDispatchable() {
			continue
		}
		pending := slices.ContainsFunc(r.s.state.assignments, func(a *assignment.Assignment) bool {
			return a.OrderID().IsEqual(id) && a.Status() == assignment.Pending
		})
		if !pending {
			awaiting = append(awaiting, cloneOrder(o))
		}
		if len(awaiting) == limit {
			break
		}
	}
	return awaiting, nil
}

type memCouriers struct{ s *memStore }

func (r memCouriers) Add(_ context.Context, c *courier.Courier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.couriers[c.ID()] = c
	return nil
}

func (r memCouriers) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.state.couriers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id)
	}
	return c, nil
}

// recordingNotifier keeps every notification and fails when err is set.
type recordingNotifier struct {
	mu            sync.Mutex
	err           error
	newAssignment []kernel.UUID
	timeouts      []kernel.UUID
	statuses      []order.Status
}

func (n *recordingNotifier) NotifyNewAssignment(_ context.Context, a *assignment.Assignment, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.newAssignment = append(n.newAssignment, a.CourierID())
	return n.err
}

func (n *recordingNotifier) NotifyAssignmentTimeout(_ context.Context, courierID, _ kernel.UUID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.timeouts = append(n.timeouts, courierID)
	return n.err
}

func (n *recordingNotifier) NotifyOrderStatus(_ context.Context, _, _ kernel.UUID, status order.Status, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, status)
	return n.err
}

type recordingObserver struct {
	created       []assignment.Type
	resolved      []assignment.Status
	failures      []string
	notifyFailure []string
}

func (o *recordingObserver) AssignmentCreated(typ assignment.Type) {
	o.created = append(o.created, typ)
}

func (o *recordingObserver) AssignmentResolved(status assignment.Status) {
	o.resolved = append(o.resolved, status)
}

func (o *recordingObserver) DispatchFailed(reason string) {
	o.failures = append(o.failures, reason)
}

func (o *recordingObserver) NotificationFailed(kind string) {
	o.notifyFailure = append(o.notifyFailure, kind)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
