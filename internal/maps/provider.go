// README: Google-Maps-backed transit provider (Places search + transit directions).
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"mvgbot/internal/transit"
)

// ErrUnsupported marks operations the Google backend cannot serve.
var ErrUnsupported = errors.New("operation not supported by the google provider")

// Provider implements transit.Provider on top of the Google Maps APIs.
// It exists for route and location coverage outside the MVG network;
// departure boards are not part of the Directions surface.
type Provider struct {
	client *maps.Client
}

// NewProvider creates a Provider with the given API key.
func NewProvider(apiKey string) (*Provider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Provider{client: client}, nil
}

// SearchLocations resolves free text via Places text search, keeping the
// API's ranking.
func (p *Provider) SearchLocations(ctx context.Context, query string) ([]transit.Location, error) {
	resp, err := p.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, &transit.ProviderError{Op: "search locations", Err: err}
	}
	locations := make([]transit.Location, 0, len(resp.Results))
	for _, r := range resp.Results {
		locations = append(locations, transit.Location{ID: r.PlaceID, Name: r.Name})
	}
	return locations, nil
}

// FindRoutes requests transit directions between two place IDs and maps
// each returned route onto the provider-neutral plan shape.
func (p *Provider) FindRoutes(ctx context.Context, startID, endID string) ([]transit.RoutePlan, error) {
	routes, _, err := p.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:       "place_id:" + startID,
		Destination:  "place_id:" + endID,
		Mode:         maps.TravelModeTransit,
		Alternatives: true,
	})
	if err != nil {
		return nil, &transit.ProviderError{Op: "find routes", Err: err}
	}

	plans := make([]transit.RoutePlan, 0, len(routes))
	for _, route := range routes {
		var plan transit.RoutePlan
		for _, leg := range route.Legs {
			// Walking steps carry no timestamps of their own; a cursor
			// walks forward from the leg departure.
			cursor := leg.DepartureTime
			fromName := leg.StartAddress
			for i, step := range leg.Steps {
				if step.TransitDetails != nil {
					d := step.TransitDetails
					plan.Legs = append(plan.Legs, transit.Leg{
						Mode:      d.Line.Vehicle.Type,
						Label:     d.Line.ShortName,
						Departure: d.DepartureTime,
						Arrival:   d.ArrivalTime,
						FromName:  d.DepartureStop.Name,
						ToName:    d.ArrivalStop.Name,
					})
					cursor = d.ArrivalTime
					fromName = d.ArrivalStop.Name
					continue
				}
				arrival := cursor.Add(step.Duration)
				toName := leg.EndAddress
				for _, next := range leg.Steps[i+1:] {
					if next.TransitDetails != nil {
						toName = next.TransitDetails.DepartureStop.Name
						break
					}
				}
				plan.Legs = append(plan.Legs, transit.Leg{
					Departure: cursor,
					Arrival:   arrival,
					FromName:  fromName,
					ToName:    toName,
				})
				cursor = arrival
			}
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// FindDepartures is not available from the Google APIs.
func (p *Provider) FindDepartures(ctx context.Context, stationID string) ([]transit.Departure, error) {
	return nil, &transit.ProviderError{Op: "find departures", Err: ErrUnsupported}
}
