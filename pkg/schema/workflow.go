package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// WorkflowStep is one entry in a workflow: a reference to an agent and the
// per-step parameter overrides, which are currently always empty.
type WorkflowStep struct {
	AgentID ID     `json:"agentId"`
	Params  Params `json:"params"`
}

// WorkflowRequest is the document submitted to execute a workflow. Step
// order is the requested execution order.
type WorkflowRequest struct {
	Steps []WorkflowStep `json:"steps"`
}

// WorkflowResult is the document returned by the remote service after
// execution. It is stored and displayed without interpretation.
type WorkflowResult json.RawMessage

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewWorkflowStep returns a step for the agent with empty parameters.
func NewWorkflowStep(agent ID) WorkflowStep {
	return WorkflowStep{AgentID: agent, Params: make(Params)}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsEmpty returns true when no result has been received.
func (r WorkflowResult) IsEmpty() bool {
	return len(bytes.TrimSpace(r)) == 0
}

// ID returns the top-level "id" of the result document when it is an
// object with such a key, or an empty string otherwise.
func (r WorkflowResult) ID() string {
	var doc struct {
		ID *ID `json:"id"`
	}
	if r.IsEmpty() || json.Unmarshal(r, &doc) != nil || doc.ID == nil {
		return ""
	}
	return doc.ID.String()
}

////////////////////////////////////////////////////////////////////////////////
// JSON

func (r WorkflowResult) MarshalJSON() ([]byte, error) {
	if r.IsEmpty() {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *WorkflowResult) UnmarshalJSON(data []byte) error {
	if r == nil {
		return fmt.Errorf("WorkflowResult: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r WorkflowResult) String() string {
	if r.IsEmpty() {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r, "", "  "); err != nil {
		return string(r)
	}
	return buf.String()
}

func (s WorkflowStep) String() string {
	return types.Stringify(s)
}

func (r WorkflowRequest) String() string {
	return types.Stringify(r)
}
