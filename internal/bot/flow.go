// README: Flow definitions, flow instances, and the slot store.
package bot

import (
	"context"

	"mvgbot/internal/nlu"
	"mvgbot/internal/transit"
)

// State of a running flow instance.
type State string

const (
	StateSeeding   State = "seeding"
	StatePrompting State = "prompting"
	StateResolving State = "resolving"
	StateQuerying  State = "querying"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// AllowedTransitions represents the flow state machine (diagram) as code.
// Any state can fail; Completed and Failed are terminal.
var AllowedTransitions = map[State][]State{
	StateSeeding:   {StatePrompting, StateFailed},
	StatePrompting: {StatePrompting, StateResolving, StateFailed},
	StateResolving: {StateQuerying, StateFailed},
	StateQuerying:  {StateCompleted, StateFailed},
}

func CanTransition(from, to State) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Slot is one piece of information a flow needs before it can act.
// All slots of the built-in flows denote locations.
type Slot struct {
	Name   string
	Prompt string
}

// FlowDefinition is the static, immutable description of a dialog flow.
// One instance exists per intent, created at process start.
type FlowDefinition struct {
	Name  string
	Slots []Slot

	// Seed fills slots from the entities the recognizer extracted.
	Seed func(inst *FlowInstance, entities []nlu.Entity)

	// Announce, when set, is emitted once before any provider call.
	Announce func(inst *FlowInstance) string

	// NotFound renders the message for a location search that returned
	// zero candidates for the given user input.
	NotFound func(input string) string

	// Action runs once every slot is resolved to a canonical location.
	Action func(ctx context.Context, b *Bot, resolved map[string]transit.Location) ([]string, error)
}

// FlowInstance is the per-conversation mutable state of one running flow.
type FlowInstance struct {
	def         *FlowDefinition
	state       State
	slots       map[string]string
	pendingSlot string
}

func newFlowInstance(def *FlowDefinition) *FlowInstance {
	return &FlowInstance{
		def:   def,
		state: StateSeeding,
		slots: make(map[string]string, len(def.Slots)),
	}
}

// SetIfAbsent stores a slot value unless one is already present. Seeding
// never overwrites a value a user already supplied. Names outside the
// definition's slot list are ignored, so the slots map never grows past
// the declared slots.
func (f *FlowInstance) SetIfAbsent(name, value string) {
	if !f.declared(name) {
		return
	}
	if _, ok := f.slots[name]; ok {
		return
	}
	f.slots[name] = value
}

func (f *FlowInstance) declared(name string) bool {
	for _, s := range f.def.Slots {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Value returns the resolved value of a slot, if any.
func (f *FlowInstance) Value(name string) (string, bool) {
	v, ok := f.slots[name]
	return v, ok
}

// FirstUnfilled returns the first declared slot without a value, in the
// flow's declared order, which keeps prompting deterministic.
func (f *FlowInstance) FirstUnfilled() (Slot, bool) {
	for _, s := range f.def.Slots {
		if _, ok := f.slots[s.Name]; !ok {
			return s, true
		}
	}
	return Slot{}, false
}

// State reports the instance's current state.
func (f *FlowInstance) State() State {
	return f.state
}

func (f *FlowInstance) transition(to State) bool {
	if !CanTransition(f.state, to) {
		return false
	}
	f.state = to
	return true
}
