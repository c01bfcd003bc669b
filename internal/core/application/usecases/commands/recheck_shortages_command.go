package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRecheckShortagesCommandIsNotConstructed = errors.New(
	"RecheckShortagesCommand must be created via NewRecheckShortagesCommand constructor",
)

// RecheckShortagesCommand triggers a sweep over all shortage-flagged items,
// clearing flags for items whose stock has recovered.
type RecheckShortagesCommand struct {
	guard guard.ConstructorGuard
}

// NewRecheckShortagesCommand creates a command for a shortage recheck sweep.
func NewRecheckShortagesCommand() (RecheckShortagesCommand, error) {
	return RecheckShortagesCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecheckShortagesCommand) Validate() error {
	return c.guard.Validate(ErrRecheckShortagesCommandIsNotConstructed)
}
