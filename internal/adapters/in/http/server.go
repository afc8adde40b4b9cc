// Package http is the thin REST adapter over the dispatch use cases.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
)

var _ servers.ServerInterface = (*Server)(nil)

// Server implements servers.ServerInterface by translating HTTP requests
// into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{h: h, logger: logger.With("component", "http")}
}

// RegisterRoutes mounts the generated API routes behind request validation
// and serves the API document under /swagger.
func (s *Server) RegisterRoutes(e *echo.Echo) error {
	doc, err := servers.GetSwagger()
	if err != nil {
		return fmt.Errorf("load api document: %w", err)
	}

	validator, err := newRequestValidator(doc, s.logger)
	if err != nil {
		return err
	}
	if err = registerSwaggerDocs(doc); err != nil {
		return err
	}

	e.Use(validator)
	servers.RegisterHandlers(e, s)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return nil
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(c echo.Context) error {
	var body servers.CreateCourierJSONRequestBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id, err := idOrNew(body.Id)
	if err != nil {
		return badRequest(c, "Invalid courier id")
	}

	cmd, err := commands.NewCreateCourierCommand(id, body.Name)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.h.CreateCourier.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, servers.Created{Id: id.Bytes()})
}

// StartDuty handles PUT /api/v1/couriers/{courierId}/duty.
func (s *Server) StartDuty(c echo.Context, courierId servers.CourierId) error {
	courierID, err := fromAPI(courierId)
	if err != nil {
		return badRequest(c, "Invalid courier id")
	}

	var body servers.StartDutyJSONRequestBody
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewStartDutyCommand(courierID, deref(body.ShiftRef))
	if err != nil {
		return s.fail(c, err)
	}

	entry, err := s.h.Duty.StartDuty(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, servers.OnDutyCourier{
		CourierId:   entry.CourierID().Bytes(),
		OnDutySince: entry.OnDutySince(),
		ShiftRef:    optional(entry.ShiftRef()),
	})
}

// EndDuty handles DELETE /api/v1/couriers/{courierId}/duty.
func (s *Server) EndDuty(c echo.Context, courierId servers.CourierId) error {
	courierID, err := fromAPI(courierId)
	if err != nil {
		return badRequest(c, "Invalid courier id")
	}

	cmd, err := commands.NewEndDutyCommand(courierID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.h.Duty.EndDuty(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetOnDutyCouriers handles GET /api/v1/couriers/on-duty.
func (s *Server) GetOnDutyCouriers(c echo.Context) error {
	couriers, err := s.h.OnDutyCouriers.Handle(c.Request().Context(), queries.NewGetOnDutyCouriersQuery())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]servers.OnDutyCourier, len(couriers))
	for i, r := range couriers {
		response[i] = servers.OnDutyCourier{
			CourierId:   r.CourierID.Bytes(),
			Name:        optional(r.Name),
			OnDutySince: r.OnDutySince,
			ShiftRef:    optional(r.ShiftRef),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetPendingAssignments handles GET /api/v1/couriers/{courierId}/assignments.
func (s *Server) GetPendingAssignments(c echo.Context, courierId servers.CourierId) error {
	courierID, err := fromAPI(courierId)
	if err != nil {
		return badRequest(c, "Invalid courier id")
	}

	query, err := queries.NewGetPendingAssignmentsQuery(courierID)
	if err != nil {
		return s.fail(c, err)
	}

	pending, err := s.h.PendingAssignments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]servers.PendingAssignment, len(pending))
	for i, p := range pending {
		response[i] = servers.PendingAssignment{
			Id:           p.ID.Bytes(),
			OrderId:      p.OrderID.Bytes(),
			OrderSummary: p.OrderSummary,
			Type:         servers.AssignmentType(p.Type),
			AssignedAt:   p.AssignedAt,
			TimeoutAt:    p.TimeoutAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders. The new order is offered to a
// courier right away; when nobody can take it the retry job does so later.
func (s *Server) CreateOrder(c echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	orderID, err := idOrNew(body.Id)
	if err != nil {
		return badRequest(c, "Invalid order id")
	}
	ownerID, err := fromAPI(body.OwnerId)
	if err != nil {
		return badRequest(c, "Invalid owner id")
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, ownerID, body.Description)
	if err != nil {
		return s.fail(c, err)
	}

	ctx := c.Request().Context()
	if err = s.h.CreateOrder.Handle(ctx, cmd); err != nil {
		return s.fail(c, err)
	}

	response := servers.OrderCreated{Id: orderID.Bytes()}

	assign, err := commands.NewAssignOrderCommand(orderID, assignment.Auto)
	if err != nil {
		return s.fail(c, err)
	}
	a, err := s.h.AssignOrder.Handle(ctx, assign)
	switch {
	case err == nil:
		dto := toAssignment(a)
		response.Assignment = &dto
	case errors.Is(err, ports.ErrNoCourierAvailable), errors.Is(err, services.ErrInsufficientCouriers):
	default:
		s.logger.WarnContext(ctx, "initial dispatch failed", "order_id", orderID.String(), "error", err)
	}

	return c.JSON(http.StatusCreated, response)
}

// AssignOrder handles POST /api/v1/orders/{orderId}/assignments.
func (s *Server) AssignOrder(c echo.Context, orderId servers.OrderId, params servers.AssignOrderParams) error {
	orderID, err := fromAPI(orderId)
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	typ := assignment.Auto
	if params.Type != nil {
		typ = assignment.Type(*params.Type)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, typ)
	if err != nil {
		return s.fail(c, err)
	}

	a, err := s.h.AssignOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toAssignment(a))
}

// GetOrderAssignments handles GET /api/v1/orders/{orderId}/assignments.
func (s *Server) GetOrderAssignments(c echo.Context, orderId servers.OrderId) error {
	orderID, err := fromAPI(orderId)
	if err != nil {
		return badRequest(c, "Invalid order id")
	}

	query, err := queries.NewGetOrderAssignmentsQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	history, err := s.h.OrderAssignments.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]servers.Assignment, len(history))
	for i, h := range history {
		response[i] = servers.Assignment{
			Id:              h.ID.Bytes(),
			OrderId:         orderID.Bytes(),
			CourierId:       h.CourierID.Bytes(),
			Status:          servers.AssignmentStatus(h.Status),
			Type:            servers.AssignmentType(h.Type),
			AssignedAt:      h.AssignedAt,
			ResponseAt:      h.ResponseAt,
			TimeoutAt:       h.TimeoutAt,
			RejectionReason: optional(h.RejectionReason),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// AcceptAssignment handles POST /api/v1/assignments/{assignmentId}/accept.
func (s *Server) AcceptAssignment(c echo.Context, assignmentId servers.AssignmentId) error {
	assignmentID, courierID, _, problem := decision(c, assignmentId)
	if problem != "" {
		return badRequest(c, problem)
	}

	cmd, err := commands.NewAcceptAssignmentCommand(assignmentID, courierID)
	if err != nil {
		return s.fail(c, err)
	}

	a, err := s.h.AcceptAssignment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toAssignment(a))
}

// RejectAssignment handles POST /api/v1/assignments/{assignmentId}/reject.
func (s *Server) RejectAssignment(c echo.Context, assignmentId servers.AssignmentId) error {
	assignmentID, courierID, body, problem := decision(c, assignmentId)
	if problem != "" {
		return badRequest(c, problem)
	}

	cmd, err := commands.NewRejectAssignmentCommand(assignmentID, courierID, deref(body.Reason))
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.h.RejectAssignment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	response := servers.RejectResult{Rejected: toAssignment(result.Rejected)}
	if result.Next != nil {
		next := toAssignment(result.Next)
		response.Next = &next
	}

	return c.JSON(http.StatusOK, response)
}

// decision reads the path and body of accept and reject requests. A non-empty
// problem is the message for a 400 response.
func decision(c echo.Context, raw servers.AssignmentId) (kernel.UUID, kernel.UUID, servers.AssignmentDecision, string) {
	var body servers.AssignmentDecision

	assignmentID, err := fromAPI(raw)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, body, "Invalid assignment id"
	}

	if err = c.Bind(&body); err != nil {
		return kernel.UUID{}, kernel.UUID{}, body, "Invalid request body"
	}

	courierID, err := fromAPI(body.CourierId)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, body, "Invalid courier id"
	}

	return assignmentID, courierID, body, ""
}

func fromAPI(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func idOrNew(id *openapi_types.UUID) (kernel.UUID, error) {
	if id == nil {
		return kernel.NewUUID(), nil
	}
	return fromAPI(*id)
}
