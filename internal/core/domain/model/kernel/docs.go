// Package kernel holds the primitives shared by every dispatch aggregate.
//
// UUID is the identifier type for orders, couriers, assignments and roster
// entries. Its zero value is invalid; build one with NewUUID or parse one with
// UUIDFromString at the edges of the system.
package kernel
