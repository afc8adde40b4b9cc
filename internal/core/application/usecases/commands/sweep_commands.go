package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const maxBatchSize = 1000

var (
	ErrExpireAssignmentsCommandIsNotConstructed = errors.New(
		"ExpireAssignmentsCommand must be created via NewExpireAssignmentsCommand constructor",
	)
	ErrDispatchAwaitingOrdersCommandIsNotConstructed = errors.New(
		"DispatchAwaitingOrdersCommand must be created via NewDispatchAwaitingOrdersCommand constructor",
	)
)

// ExpireAssignmentsCommand times out at most batchSize overdue offers.
type ExpireAssignmentsCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

func NewExpireAssignmentsCommand(batchSize int) (ExpireAssignmentsCommand, error) {
	if err := validateBatchSize(batchSize); err != nil {
		return ExpireAssignmentsCommand{}, err
	}
	return ExpireAssignmentsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrExpireAssignmentsCommandIsNotConstructed)
}

func (c ExpireAssignmentsCommand) BatchSize() int {
	return c.batchSize
}

// DispatchAwaitingOrdersCommand retries orders that have no open offer.
type DispatchAwaitingOrdersCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

func NewDispatchAwaitingOrdersCommand(batchSize int) (DispatchAwaitingOrdersCommand, error) {
	if err := validateBatchSize(batchSize); err != nil {
		return DispatchAwaitingOrdersCommand{}, err
	}
	return DispatchAwaitingOrdersCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchAwaitingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchAwaitingOrdersCommandIsNotConstructed)
}

func (c DispatchAwaitingOrdersCommand) BatchSize() int {
	return c.batchSize
}

func validateBatchSize(n int) error {
	if n < 1 || n > maxBatchSize {
		return errs.NewValueIsOutOfRangeError("batchSize", n, 1, maxBatchSize)
	}
	return nil
}
