// Package assignment models a single dispatch attempt: one order offered to
// one courier, waiting for a response until its timeout.
//
// An assignment starts PENDING and moves exactly once to ACCEPTED, REJECTED
// or TIMEOUT. Resolved assignments are never modified again; every further
// attempt for the same order is a new assignment of type REASSIGNMENT.
//
// The aggregate checks ownership, status and expiry in memory. Persisting
// the transition is a compare-and-set on the PENDING status, so two
// concurrent resolutions cannot both succeed.
package assignment
