package controller

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Action names the user action which produced an error.
type Action string

// Error is the content of the error slot: the action which failed, the
// message to show, and the underlying cause.
type Error struct {
	Action  Action
	Message string
	Err     error
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ActionLoad    Action = "load"
	ActionCreate  Action = "create"
	ActionExecute Action = "execute"
	ActionFetch   Action = "fetch"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Message returns the fixed user-facing message for a failure of the action.
func (a Action) Message() string {
	switch a {
	case ActionLoad:
		return "Failed to load agents"
	case ActionCreate:
		return "Failed to create agent"
	case ActionExecute:
		return "Failed to execute workflow"
	case ActionFetch:
		return "Failed to fetch workflow result"
	default:
		return "Failed to " + string(a)
	}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
