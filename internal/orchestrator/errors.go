package orchestrator

import "fmt"

// PreconditionError marks an operation attempted without the profile state
// it requires. Read-like features short-circuit to fallback content instead
// of surfacing it.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
