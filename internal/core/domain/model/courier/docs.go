// Package courier models the courier as known to dispatch: an identity that
// can be put on duty and offered orders. Shift and profile data live in the
// courier management system.
package courier
