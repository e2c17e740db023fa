package commands

import (
	"errors"
	"fmt"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrPublishOrderEventsCommandIsNotConstructed = errors.New(
	"PublishOrderEventsCommand must be created via NewPublishOrderEventsCommand constructor",
)

// PublishOrderEventsCommand relays one batch of outbox messages.
type PublishOrderEventsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishOrderEventsCommand(batchSize int) (PublishOrderEventsCommand, error) {
	if batchSize <= 0 {
		return PublishOrderEventsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"batch size is invalid", fmt.Errorf("%d is not positive", batchSize))
	}

	return PublishOrderEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PublishOrderEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishOrderEventsCommandIsNotConstructed)
}

func (c PublishOrderEventsCommand) BatchSize() int {
	return c.batchSize
}
