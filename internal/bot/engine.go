// README: Dialog engine; sequences slot collection, resolution, querying, and replies.
package bot

import (
	"context"
	"log"
	"sync"
	"time"

	"mvgbot/internal/nlu"
	"mvgbot/internal/transit"
)

// msgApology is the only text shown for provider failures and internal
// errors; raw error details never reach the user.
const msgApology = "Sorry, something went wrong on my end. Please try again later."

// UsageRecorder receives one record per NLU classification, for operators.
// A nil recorder disables the log.
type UsageRecorder interface {
	RecordClassification(ctx context.Context, sessionID, intent string, entityCount int, latency time.Duration) error
}

// Handler answers an intent that needs no slot filling (greeting, help,
// cancel, fallback). It returns the outbound message batch for the turn.
type Handler func(ctx context.Context, s *Session, intent *nlu.Intent, utterance string) []string

// Session is one ongoing conversation. It owns at most one active flow
// instance at a time and lives until the transport ends it.
type Session struct {
	ID   string
	flow *FlowInstance
}

// ActiveFlow reports the name of the running flow, if any.
func (s *Session) ActiveFlow() (string, bool) {
	if s.flow == nil {
		return "", false
	}
	return s.flow.def.Name, true
}

// Deps are the collaborators the engine is wired with at startup.
type Deps struct {
	Recognizer nlu.Recognizer
	Searcher   transit.LocationSearcher
	Querier    transit.Querier
	Usage      UsageRecorder
	Timezone   *time.Location
}

// Bot routes classified intents to flows and drives each flow instance
// through its states. Turns of distinct sessions may arrive concurrently;
// turns of the same session are serialized by the transport.
type Bot struct {
	recognizer nlu.Recognizer
	searcher   transit.LocationSearcher
	querier    transit.Querier
	usage      UsageRecorder
	tz         *time.Location

	mu       sync.Mutex
	sessions map[string]*Session

	flows    map[string]*FlowDefinition
	handlers map[string]Handler
	fallback Handler
}

func New(deps Deps) *Bot {
	tz := deps.Timezone
	if tz == nil {
		tz = time.UTC
	}
	b := &Bot{
		recognizer: deps.Recognizer,
		searcher:   deps.Searcher,
		querier:    deps.Querier,
		usage:      deps.Usage,
		tz:         tz,
		sessions:   make(map[string]*Session),
		flows:      make(map[string]*FlowDefinition),
		handlers:   make(map[string]Handler),
	}
	b.fallback = func(ctx context.Context, s *Session, intent *nlu.Intent, utterance string) []string {
		return []string{"You reached the default message handler. You said '" + utterance + "'."}
	}
	return b
}

// RegisterFlow binds an intent name to a slot-filling flow.
func (b *Bot) RegisterFlow(intentName string, def *FlowDefinition) {
	b.flows[intentName] = def
}

// RegisterHandler binds an intent name to an immediate handler.
func (b *Bot) RegisterHandler(intentName string, h Handler) {
	b.handlers[intentName] = h
}

// SetFallback replaces the default message handler.
func (b *Bot) SetFallback(h Handler) {
	b.fallback = h
}

// HandleTurn processes one inbound utterance for a session and returns the
// ordered outbound message batch.
func (b *Bot) HandleTurn(ctx context.Context, sessionID, utterance string) []string {
	s := b.session(sessionID)

	// A flow suspended at a prompt consumes the reply as the raw slot
	// value: no NLU call, no validation, no entity re-extraction.
	if s.flow != nil && s.flow.pendingSlot != "" {
		s.flow.slots[s.flow.pendingSlot] = utterance
		s.flow.pendingSlot = ""
		return b.advance(ctx, s)
	}

	started := time.Now()
	intent, err := b.recognizer.Classify(ctx, utterance)
	if err != nil {
		log.Printf("nlu classification failed for session %s: %v", sessionID, err)
		return []string{msgApology}
	}
	b.recordUsage(ctx, sessionID, intent, time.Since(started))

	if h, ok := b.handlers[intent.Name]; ok {
		return h(ctx, s, intent, utterance)
	}
	if def, ok := b.flows[intent.Name]; ok {
		return b.startFlow(ctx, s, def, intent)
	}
	return b.fallback(ctx, s, intent, utterance)
}

// CancelActiveFlow destroys the session's flow instance regardless of its
// state. Results of provider calls still in flight are simply ignored.
func (b *Bot) CancelActiveFlow(sessionID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[sessionID]
	if !ok || s.flow == nil {
		return false
	}
	s.flow = nil
	return true
}

// EndSession drops a session entirely. Lifecycle policy is owned by the
// transport layer; this is the hook it calls.
func (b *Bot) EndSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sessions, sessionID)
}

func (b *Bot) session(id string) *Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[id]
	if !ok {
		s = &Session{ID: id}
		b.sessions[id] = s
	}
	return s
}

func (b *Bot) startFlow(ctx context.Context, s *Session, def *FlowDefinition, intent *nlu.Intent) []string {
	inst := newFlowInstance(def)
	s.flow = inst

	if def.Seed != nil {
		def.Seed(inst, intent.Entities)
	}
	inst.transition(StatePrompting)
	return b.advance(ctx, s)
}

// advance runs the flow as far as it can within the current turn. It
// returns either a prompt (flow suspended) or the final message batch
// (flow destroyed).
func (b *Bot) advance(ctx context.Context, s *Session) []string {
	inst := s.flow

	if slot, ok := inst.FirstUnfilled(); ok {
		inst.transition(StatePrompting)
		inst.pendingSlot = slot.Name
		return []string{slot.Prompt}
	}

	return b.finishFlow(ctx, s)
}

// finishFlow resolves every declared slot and runs the flow's action.
// Prompting is over at this point: an unfilled slot here is a
// state-machine bug, not a user-input problem, and fails the flow.
func (b *Bot) finishFlow(ctx context.Context, s *Session) []string {
	inst := s.flow

	var messages []string
	if inst.def.Announce != nil {
		messages = append(messages, inst.def.Announce(inst))
	}

	inst.transition(StateResolving)
	resolved := make(map[string]transit.Location, len(inst.def.Slots))
	for _, slot := range inst.def.Slots {
		text, ok := inst.Value(slot.Name)
		if !ok {
			log.Printf("BUG: flow %s reached resolving with slot %q unfilled", inst.def.Name, slot.Name)
			return append(messages, b.failFlow(s)...)
		}

		candidates, err := b.searcher.SearchLocations(ctx, text)
		if err != nil {
			log.Printf("flow %s: location search for %q failed: %v", inst.def.Name, text, err)
			return append(messages, b.failFlow(s)...)
		}
		if len(candidates) == 0 {
			inst.transition(StateFailed)
			s.flow = nil
			return append(messages, inst.def.NotFound(text))
		}
		// First candidate wins; no disambiguation turn.
		resolved[slot.Name] = candidates[0]
	}

	inst.transition(StateQuerying)
	result, err := inst.def.Action(ctx, b, resolved)
	if err != nil {
		log.Printf("flow %s: query failed: %v", inst.def.Name, err)
		return append(messages, b.failFlow(s)...)
	}

	inst.transition(StateCompleted)
	s.flow = nil
	return append(messages, result...)
}

// failFlow transitions the active flow to failed, destroys it, and yields
// the single user-facing apology. The session is immediately ready for a
// fresh intent.
func (b *Bot) failFlow(s *Session) []string {
	if s.flow != nil {
		s.flow.transition(StateFailed)
		s.flow = nil
	}
	return []string{msgApology}
}

func (b *Bot) recordUsage(ctx context.Context, sessionID string, intent *nlu.Intent, latency time.Duration) {
	if b.usage == nil {
		return
	}
	if err := b.usage.RecordClassification(ctx, sessionID, intent.Name, len(intent.Entities), latency); err != nil {
		log.Printf("usage record failed: %v", err)
	}
}
