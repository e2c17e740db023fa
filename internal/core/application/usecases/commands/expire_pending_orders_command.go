package commands

import (
	"errors"
	"fmt"
	"time"

	"shop/internal/pkg/errs"
	"shop/internal/pkg/guard"
)

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand selects orders that stayed Pending for longer than ttl.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl       time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpirePendingOrdersCommand(ttl time.Duration, batchSize int) (ExpirePendingOrdersCommand, error) {
	cmd := ExpirePendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if ttl <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("ttl is invalid", fmt.Errorf("%s is not positive", ttl))
	}
	if batchSize <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("batch size is invalid", fmt.Errorf("%d is not positive", batchSize))
	}

	cmd.ttl = ttl
	cmd.batchSize = batchSize
	return cmd, nil
}

func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

func (c ExpirePendingOrdersCommand) TTL() time.Duration {
	return c.ttl
}

func (c ExpirePendingOrdersCommand) BatchSize() int {
	return c.batchSize
}
