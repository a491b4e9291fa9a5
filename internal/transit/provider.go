// README: Provider interfaces consumed by the dialog engine.
package transit

import "context"

// LocationSearcher turns free text into a ranked list of location candidates.
// An empty result is a normal outcome ("no location found"), not an error.
type LocationSearcher interface {
	SearchLocations(ctx context.Context, query string) ([]Location, error)
}

// Querier answers route and departure questions for already-resolved
// location IDs. Both calls return the provider's ordering untouched.
type Querier interface {
	FindRoutes(ctx context.Context, startID, endID string) ([]RoutePlan, error)
	FindDepartures(ctx context.Context, stationID string) ([]Departure, error)
}

// Provider is the full transit backend surface.
type Provider interface {
	LocationSearcher
	Querier
}
