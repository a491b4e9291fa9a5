// README: Provider-neutral transit data model (locations, route plans, departures).
package transit

import "time"

// Location is one canonical location candidate from a location search.
// Candidates keep the provider's ranking; the first one is authoritative
// whenever a caller needs exactly one location.
type Location struct {
	ID   string
	Name string
}

// Leg is one segment of a route plan. Mode is the transport product
// ("UBAHN", "BUS", ...) and is empty for walking segments.
type Leg struct {
	Mode      string
	Label     string
	Departure time.Time
	Arrival   time.Time
	FromName  string
	ToName    string
}

// RoutePlan is one full connection from start to end, in leg order.
type RoutePlan struct {
	Legs []Leg
}

// Departure is one scheduled departure from a station.
type Departure struct {
	Mode        string
	Label       string
	Departure   time.Time
	Destination string
}
