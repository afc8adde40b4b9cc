// Package order models the delivery order as seen by dispatch.
//
// The order itself is owned by an external ordering system; dispatch only
// moves it through the part of its lifecycle that concerns courier binding:
//
//	Created ──> Offered ──> Assigned ──> Completed
//	              │  ^
//	              └──┘ (re-offered to another courier)
//
// Any non-final status may be Cancelled by the ordering system.
package order
