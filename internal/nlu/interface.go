package nlu

import "context"

// Recognizer classifies a single user utterance into an intent with typed
// entities. Implementations wrap external NLU services; a classification
// failure aborts the turn without starting a flow.
type Recognizer interface {
	Classify(ctx context.Context, utterance string) (*Intent, error)
}
