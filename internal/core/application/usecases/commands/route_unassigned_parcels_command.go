package commands

import (
	"errors"

	"parcels/internal/pkg/guard"
)

var ErrRouteUnassignedParcelsCommandIsNotConstructed = errors.New(
	"RouteUnassignedParcelsCommand must be created via NewRouteUnassignedParcelsCommand constructor",
)

// RouteUnassignedParcelsCommand triggers a routing sweep over parcels that
// have no department assignment. The sweep picks up parcels that could not be
// routed at ingestion time, typically because the departments or rules they
// needed did not exist yet.
type RouteUnassignedParcelsCommand struct {
	guard guard.ConstructorGuard
}

// NewRouteUnassignedParcelsCommand creates a new command to trigger the sweep.
// This is a parameterless command.
func NewRouteUnassignedParcelsCommand() RouteUnassignedParcelsCommand {
	return RouteUnassignedParcelsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RouteUnassignedParcelsCommand) Validate() error {
	return c.guard.Validate(ErrRouteUnassignedParcelsCommandIsNotConstructed)
}
