// README: Pure formatting of route plans and departure boards into messages.
package bot

import (
	"fmt"
	"strings"
	"time"

	"mvgbot/internal/transit"
)

// maxDepartures is a hard display cap, independent of how many the
// provider returns.
const maxDepartures = 10

// clockLayout renders locale 12-hour times like "8:05 pm".
const clockLayout = "3:04 pm"

// ComposeRoutes renders one message per plan, legs separated by blank
// lines. Zero plans yield a single "no routes" message.
func ComposeRoutes(plans []transit.RoutePlan, tz *time.Location) []string {
	if len(plans) == 0 {
		return []string{"I couldn't find any routes :/"}
	}
	messages := make([]string, 0, len(plans))
	for i, plan := range plans {
		legs := make([]string, 0, len(plan.Legs))
		for _, leg := range plan.Legs {
			legs = append(legs, composeLeg(leg, tz))
		}
		messages = append(messages, fmt.Sprintf("Route %d\n\n%s", i+1, strings.Join(legs, "\n\n")))
	}
	return messages
}

func composeLeg(leg transit.Leg, tz *time.Location) string {
	mode := "Footway"
	if leg.Mode != "" {
		mode = strings.ToUpper(leg.Mode) + leg.Label
	}
	return fmt.Sprintf("%s: %s %s - %s %s",
		mode,
		leg.Departure.In(tz).Format(clockLayout),
		leg.FromName,
		leg.ToName,
		leg.Arrival.In(tz).Format(clockLayout))
}

// ComposeDepartures renders a count header followed by one message per
// departure, truncated to the display cap.
func ComposeDepartures(stationName string, departures []transit.Departure, tz *time.Location) []string {
	if len(departures) == 0 {
		return []string{"I couldn't find any information :/"}
	}
	shown := departures
	if len(shown) > maxDepartures {
		shown = shown[:maxDepartures]
	}
	messages := make([]string, 0, len(shown)+1)
	messages = append(messages, fmt.Sprintf("I found %d connections from %s:", len(shown), stationName))
	for _, d := range shown {
		messages = append(messages, fmt.Sprintf("%s%s: %s in direction %s",
			strings.ToUpper(d.Mode),
			d.Label,
			d.Departure.In(tz).Format(clockLayout),
			d.Destination))
	}
	return messages
}
