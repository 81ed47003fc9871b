package ui

import (
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// EventType identifies the kind of incoming event.
type EventType int

// Event represents an incoming event from the user.
type Event struct {
	// Type identifies what kind of event this is.
	Type EventType

	// Context provides the session and response methods.
	Context Context

	// Text contains the line the user entered, including the command
	// and its arguments for EventCommand.
	Text string

	// Command contains the command name without the leading slash
	// (for EventCommand only, e.g. "add").
	Command string

	// Args contains the command arguments (for EventCommand only).
	Args []string
}

// Tab is one of the two console views.
type Tab string

// Status is the state a front end shows outside the conversation.
type Status struct {
	Tab    Tab
	Mode   string // editor mode, "visual" or "json"
	Agents int    // agents in the snapshot
	Steps  int    // steps in the workflow
	Error  string // error banner, empty when there is none
	Result string // identifier of the last workflow result, if any
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EventText    EventType = iota // User entered text
	EventCommand                  // User entered a slash command (e.g. /add 1)
)

const (
	TabAgents    Tab = "agents"
	TabWorkflows Tab = "workflows"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ParseEvent returns the event for a line of user input. Lines starting
// with a slash are commands; the command and arguments are split on
// whitespace.
func ParseEvent(ctx Context, text string) Event {
	evt := Event{
		Context: ctx,
		Text:    text,
	}
	if strings.HasPrefix(text, "/") {
		parts := strings.Fields(text)
		evt.Type = EventCommand
		evt.Command = strings.ToLower(strings.TrimPrefix(parts[0], "/"))
		if len(parts) > 1 {
			evt.Args = parts[1:]
		}
	} else {
		evt.Type = EventText
	}
	return evt
}

// Rest returns the text following the command name, with the original
// spacing kept, for commands whose argument is free text or JSON.
func (e Event) Rest() string {
	if e.Type != EventCommand {
		return e.Text
	}
	text := strings.TrimSpace(e.Text)
	if i := strings.IndexFunc(text, isSpace); i >= 0 {
		return strings.TrimSpace(text[i:])
	}
	return ""
}

// ParseTab returns the tab with the name, accepting the singular form.
func ParseTab(v string) (Tab, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "agents", "agent":
		return TabAgents, true
	case "workflows", "workflow":
		return TabWorkflows, true
	default:
		return "", false
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t EventType) String() string {
	switch t {
	case EventText:
		return "text"
	case EventCommand:
		return "command"
	default:
		return "unknown"
	}
}

func (s Status) String() string {
	var parts []string
	if s.Tab != "" {
		parts = append(parts, "["+string(s.Tab)+"]")
	}
	parts = append(parts, fmt.Sprintf("%d agents", s.Agents), fmt.Sprintf("%d steps", s.Steps))
	if s.Mode != "" {
		parts = append(parts, "mode "+s.Mode)
	}
	if s.Result != "" {
		parts = append(parts, "result "+s.Result)
	}
	return strings.Join(parts, " · ")
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
