package http

import (
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/generated/servers"
)

func toAssignment(a *assignment.Assignment) servers.Assignment {
	dto := servers.Assignment{
		Id:              a.ID().Bytes(),
		OrderId:         a.OrderID().Bytes(),
		CourierId:       a.CourierID().Bytes(),
		Status:          servers.AssignmentStatus(a.Status().String()),
		Type:            servers.AssignmentType(a.Type().String()),
		AssignedAt:      a.AssignedAt(),
		ResponseAt:      a.ResponseAt(),
		RejectionReason: optional(a.RejectionReason()),
	}
	if deadline, ok := a.TimeoutAt(); ok {
		dto.TimeoutAt = &deadline
	}
	return dto
}

// optional maps an empty string to an absent JSON field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
