package transit

import "fmt"

// ProviderError marks a network, timeout, or malformed-response failure from
// a transit backend. The dialog engine treats it as fatal for the current
// turn and never shows the underlying error to the user.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("transit provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
