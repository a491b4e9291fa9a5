// README: Built-in intents: greeting, help, cancel, route, departures.
package bot

import (
	"context"
	"fmt"
	"strings"

	"mvgbot/internal/nlu"
	"mvgbot/internal/transit"
)

const (
	slotStart   = "start"
	slotEnd     = "end"
	slotStation = "station"
)

// RegisterBuiltins wires the assistant's intents into the engine.
func RegisterBuiltins(b *Bot) {
	b.RegisterHandler(nlu.IntentGreeting, func(ctx context.Context, s *Session, intent *nlu.Intent, utterance string) []string {
		return []string{"Hi there! I'm your personal MVG-Assistant :)"}
	})
	b.RegisterHandler(nlu.IntentHelp, func(ctx context.Context, s *Session, intent *nlu.Intent, utterance string) []string {
		return []string{"I can look up routes between two stations and show you upcoming departures. " +
			"Try 'How do I get from Marienplatz to Garching?' or 'When does the next train leave Sendlinger Tor?'"}
	})
	b.RegisterHandler(nlu.IntentCancel, func(ctx context.Context, s *Session, intent *nlu.Intent, utterance string) []string {
		if b.CancelActiveFlow(s.ID) {
			return []string{"Okay, I cancelled your request."}
		}
		return []string{"There is nothing to cancel right now."}
	})
	b.RegisterFlow(nlu.IntentRoute, RouteFlow())
	b.RegisterFlow(nlu.IntentDepartures, DeparturesFlow())
}

// RouteFlow asks for a start and an end station and looks up connections.
func RouteFlow() *FlowDefinition {
	return &FlowDefinition{
		Name: "route",
		Slots: []Slot{
			{Name: slotStart, Prompt: "Please enter your start station"},
			{Name: slotEnd, Prompt: "Please enter your end station"},
		},
		Seed: func(inst *FlowInstance, entities []nlu.Entity) {
			stations := nlu.FindAllEntities(entities, nlu.EntityStation)
			// A single mentioned station is the destination: people say
			// "I want to go to X", not "I want to go from X". With two or
			// more, the first is the start and anything past the second
			// is ignored.
			switch {
			case len(stations) == 1:
				inst.SetIfAbsent(slotEnd, stations[0].Value)
			case len(stations) >= 2:
				inst.SetIfAbsent(slotStart, stations[0].Value)
				inst.SetIfAbsent(slotEnd, stations[1].Value)
			}
		},
		Announce: func(inst *FlowInstance) string {
			start, _ := inst.Value(slotStart)
			end, _ := inst.Value(slotEnd)
			return fmt.Sprintf("All right. I'm searching for routes from %s to %s",
				strings.ToUpper(start), strings.ToUpper(end))
		},
		NotFound: func(input string) string {
			return fmt.Sprintf("I couldn't find %s", input)
		},
		Action: func(ctx context.Context, b *Bot, resolved map[string]transit.Location) ([]string, error) {
			plans, err := b.querier.FindRoutes(ctx, resolved[slotStart].ID, resolved[slotEnd].ID)
			if err != nil {
				return nil, err
			}
			return ComposeRoutes(plans, b.tz), nil
		},
	}
}

// DeparturesFlow asks for one station and shows its departure board.
func DeparturesFlow() *FlowDefinition {
	return &FlowDefinition{
		Name: "departures",
		Slots: []Slot{
			{Name: slotStation, Prompt: "Of which station do you need departure information?"},
		},
		Seed: func(inst *FlowInstance, entities []nlu.Entity) {
			if station, ok := nlu.FindEntity(entities, nlu.EntityStation); ok {
				inst.SetIfAbsent(slotStation, station.Value)
			}
		},
		NotFound: func(input string) string {
			return "I couldn't find any information :/"
		},
		Action: func(ctx context.Context, b *Bot, resolved map[string]transit.Location) ([]string, error) {
			station := resolved[slotStation]
			departures, err := b.querier.FindDepartures(ctx, station.ID)
			if err != nil {
				return nil, err
			}
			return ComposeDepartures(station.Name, departures, b.tz), nil
		},
	}
}
