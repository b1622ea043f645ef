package kernel

// TransitionResult is the outcome of a state-machine operation.
// An invalid transition attempt is an ordinary business outcome, not an
// error: the operation reports Success=false with a human-readable message
// and leaves the aggregate untouched. Errors are reserved for infrastructure
// failures (entity not found, persistence problems, unconstructed objects).
type TransitionResult struct {
	Success bool
	Message string
}

// TransitionApplied creates a successful result with the given message.
func TransitionApplied(message string) TransitionResult {
	return TransitionResult{Success: true, Message: message}
}

// TransitionRejected creates a failed result with the given message.
// The aggregate the operation was invoked on is guaranteed unchanged.
func TransitionRejected(message string) TransitionResult {
	return TransitionResult{Success: false, Message: message}
}
