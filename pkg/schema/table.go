package schema

import (
	"encoding/json"
	"fmt"

	// Packages
	uitable "github.com/mutablelogic/go-txtai/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// AgentTable implements table.TableData for a snapshot of agents.
type AgentTable []Agent

// StepTable implements table.TableData for workflow steps resolved
// against an agent snapshot.
type StepTable []ResolvedStep

// ResolvedStep is a workflow step with its agent reference looked up in
// an agent snapshot. Found is false when the agent is not in the snapshot,
// in which case Name is empty.
type ResolvedStep struct {
	Position int
	Step     WorkflowStep
	Name     string
	Found    bool
}

///////////////////////////////////////////////////////////////////////////////
// AGENT TABLE (LIST)

func (t AgentTable) Header() []string {
	return []string{"ID", "AGENT", "TYPE", "PARAMS"}
}

func (t AgentTable) Len() int {
	return len(t)
}

func (t AgentTable) Row(i int) []any {
	a := t[i]
	return []any{a.ID.String(), uitable.Bold{Value: a.Name}, a.Config.Type, formatParams(a.Config.Params)}
}

///////////////////////////////////////////////////////////////////////////////
// STEP TABLE (LIST)

func (t StepTable) Header() []string {
	return []string{"#", "AGENT", "ID"}
}

func (t StepTable) Len() int {
	return len(t)
}

func (t StepTable) Row(i int) []any {
	s := t[i]
	name := any(s.Name)
	if s.Found {
		name = uitable.Bold{Value: s.Name}
	}
	return []any{fmt.Sprint(s.Position + 1), name, s.Step.AgentID.String()}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func formatParams(p Params) string {
	if len(p) == 0 {
		return ""
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err.Error()
	}
	return uitable.Truncate(string(data), 60)
}
