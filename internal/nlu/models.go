package nlu

// Intent names the recognizer can return. IntentNone covers utterances
// that match nothing; the transport's default handler takes over.
const (
	IntentGreeting   = "Greeting"
	IntentHelp       = "Help"
	IntentCancel     = "Cancel"
	IntentRoute      = "Route"
	IntentDepartures = "Departures"
	IntentNone       = "None"
)

// EntityStation is the entity type carrying a station name.
const EntityStation = "Station"

// Entity is one typed value extracted from an utterance. The recognizer
// emits entities in utterance order, and that order is significant for
// slot seeding.
type Entity struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Intent is the classification result for one user utterance.
type Intent struct {
	Name     string   `json:"intent"`
	Entities []Entity `json:"entities"`
}
