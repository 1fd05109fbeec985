package game

import "fmt"

// ActionError rejects an action that is illegal under the current state and
// rules. Message is meant to be shown to the player.
type ActionError struct {
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

func rejectf(format string, args ...any) *ActionError {
	return &ActionError{Message: fmt.Sprintf(format, args...)}
}

// ConfigError reports a host that omitted a dependency an action needs.
// It is a programming error, not a rule violation.
type ConfigError struct {
	Action  ActionType
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s requires %s", e.Action, e.Missing)
}
