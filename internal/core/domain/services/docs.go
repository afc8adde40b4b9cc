// Package services holds dispatch rules that span the order, courier and
// assignment aggregates.
//
// The package includes:
//   - OrderDispatcher: turns the courier picked from the on-duty rotation into
//     a pending assignment and decides whether a reassignment may proceed
package services
