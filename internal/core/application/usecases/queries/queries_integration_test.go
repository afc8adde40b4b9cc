package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/adapters/out/postgres/rosterrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/roster"

	"github.com/stretchr/testify/suite"
)

type QueriesIntegrationTestSuite struct {
	suite.Suite
	pg          *pgtest.Database
	now         time.Time
	courierRepo *courierrepo.GormCourierRepository
	orderRepo   *orderrepo.GormOrderRepository
	ledger      *assignmentrepo.GormAssignmentRepository
	roster      *rosterrepo.GormOnDutyRoster
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.now = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.courierRepo = courierrepo.NewGormCourierRepository(suite.pg.DB)
	suite.orderRepo = orderrepo.NewGormOrderRepository(suite.pg.DB)
	suite.ledger = assignmentrepo.NewGormAssignmentRepository(suite.pg.DB)
	suite.roster = rosterrepo.NewGormOnDutyRoster(suite.pg.DB)
}

func (suite *QueriesIntegrationTestSuite) addCourier(name string) kernel.UUID {
	c, err := courier.NewCourier(kernel.NewUUID(), name)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.courierRepo.Add(context.Background(), c))
	return c.ID()
}

func (suite *QueriesIntegrationTestSuite) addOrder(description string) kernel.UUID {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), description)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o.ID()
}

func (suite *QueriesIntegrationTestSuite) offer(orderID, courierID kernel.UUID, at time.Time) *assignment.Assignment {
	a, err := assignment.NewAssignment(kernel.NewUUID(), orderID, courierID, assignment.Auto, at, 2*time.Minute)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.Add(context.Background(), a))
	return a
}

func (suite *QueriesIntegrationTestSuite) TestPendingAssignments_NewestFirstAndOnlyActionable() {
	ctx := context.Background()
	ann := suite.addCourier("Ann")
	bob := suite.addCourier("Bob")

	older := suite.offer(suite.addOrder("Soup"), ann, suite.now.Add(-90*time.Second))
	newer := suite.offer(suite.addOrder("Salad"), ann, suite.now.Add(-10*time.Second))
	suite.offer(suite.addOrder("Overdue"), ann, suite.now.Add(-5*time.Minute))
	suite.offer(suite.addOrder("Not mine"), bob, suite.now)

	rejected := suite.offer(suite.addOrder("Rejected"), ann, suite.now)
	suite.Require().NoError(rejected.Reject(ann, suite.now, "busy"))
	suite.Require().NoError(suite.ledger.Resolve(ctx, rejected))

	handler := queries.NewGetPendingAssignmentsQueryHandler(suite.pg.DB, func() time.Time { return suite.now })
	query, err := queries.NewGetPendingAssignmentsQuery(ann)
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal("Salad", result[0].OrderSummary)
	suite.Equal("AUTO", result[0].Type)
	suite.Require().NotNil(result[0].TimeoutAt)
	suite.True(result[0].TimeoutAt.Equal(suite.now.Add(110 * time.Second)))
	suite.Equal(older.ID(), result[1].ID)
}

func (suite *QueriesIntegrationTestSuite) TestPendingAssignments_Empty() {
	handler := queries.NewGetPendingAssignmentsQueryHandler(suite.pg.DB, nil)
	query, err := queries.NewGetPendingAssignmentsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueriesIntegrationTestSuite) TestPendingAssignments_InvalidQuery() {
	handler := queries.NewGetPendingAssignmentsQueryHandler(suite.pg.DB, nil)

	result, err := handler.Handle(context.Background(), queries.GetPendingAssignmentsQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetPendingAssignmentsQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *QueriesIntegrationTestSuite) TestOrderAssignments_History() {
	ctx := context.Background()
	ann := suite.addCourier("Ann")
	bob := suite.addCourier("Bob")
	orderID := suite.addOrder("Burger")

	first := suite.offer(orderID, ann, suite.now)
	suite.Require().NoError(first.Expire(suite.now.Add(2 * time.Minute)))
	suite.Require().NoError(suite.ledger.Resolve(ctx, first))

	second, err := assignment.NewAssignment(kernel.NewUUID(), orderID, bob, assignment.Reassignment,
		suite.now.Add(3*time.Minute), 2*time.Minute)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.Add(ctx, second))
	suite.Require().NoError(second.Accept(bob, suite.now.Add(4*time.Minute)))
	suite.Require().NoError(suite.ledger.Resolve(ctx, second))

	suite.offer(suite.addOrder("Other"), ann, suite.now)

	handler := queries.NewGetOrderAssignmentsQueryHandler(suite.pg.DB)
	query, err := queries.NewGetOrderAssignmentsQuery(orderID)
	suite.Require().NoError(err)

	history, err := handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(history, 2)

	suite.Equal(second.ID(), history[0].ID)
	suite.Equal("ACCEPTED", history[0].Status)
	suite.Equal("REASSIGNMENT", history[0].Type)
	suite.Require().NotNil(history[0].ResponseAt)
	suite.Empty(history[0].RejectionReason)

	suite.Equal(first.ID(), history[1].ID)
	suite.Equal("TIMEOUT", history[1].Status)
	suite.Nil(history[1].ResponseAt)
	suite.Equal(assignment.TimeoutReason, history[1].RejectionReason)
}

func (suite *QueriesIntegrationTestSuite) TestOrderAssignments_UnknownOrder() {
	handler := queries.NewGetOrderAssignmentsQueryHandler(suite.pg.DB)
	query, err := queries.NewGetOrderAssignmentsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	history, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(history)
}

func (suite *QueriesIntegrationTestSuite) TestOnDutyCouriers_RotationOrder() {
	ctx := context.Background()
	ann := suite.addCourier("Ann")
	bob := suite.addCourier("Bob")
	cid := suite.addCourier("Cid")

	for _, e := range []struct {
		id    kernel.UUID
		at    time.Time
		shift string
	}{
		{ann, suite.now.Add(2 * time.Minute), ""},
		{bob, suite.now, "morning"},
		{cid, suite.now.Add(time.Minute), ""},
	} {
		entry, err := roster.NewEntry(e.id, e.at, e.shift)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.roster.Enqueue(ctx, entry))
	}

	handler := queries.NewGetOnDutyCouriersQueryHandler(suite.pg.DB)

	result, err := handler.Handle(ctx, queries.NewGetOnDutyCouriersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(bob, result[0].CourierID)
	suite.Equal("Bob", result[0].Name)
	suite.Equal("morning", result[0].ShiftRef)
	suite.True(result[0].OnDutySince.Equal(suite.now))
	suite.Equal(cid, result[1].CourierID)
	suite.Equal(ann, result[2].CourierID)
	suite.Empty(result[2].ShiftRef)
}

func (suite *QueriesIntegrationTestSuite) TestOnDutyCouriers_InvalidQuery() {
	handler := queries.NewGetOnDutyCouriersQueryHandler(suite.pg.DB)

	_, err := handler.Handle(context.Background(), queries.GetOnDutyCouriersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOnDutyCouriersQueryIsNotConstructed)
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
