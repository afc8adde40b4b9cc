package commands

import "errors"

var (
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrOrderUnassignable is returned by reject when the rejection was stored
	// but no other courier could be offered the order right now. It wraps the
	// underlying roster or guard error.
	ErrOrderUnassignable = errors.New("order could not be reassigned")

	// ErrDispatch signals stored state that contradicts itself, such as an
	// on-duty courier missing from the courier store.
	ErrDispatch = errors.New("dispatch state is inconsistent")
)
