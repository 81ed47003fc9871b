// Package workflow holds the ordered list of steps which make up a
// workflow, and packages it for submission.
//
// A step refers to an agent by identifier only. The reference is weak:
// the agent is looked up in the current agent snapshot when the step is
// displayed, and a missing agent is shown as a placeholder, never an
// error. Appending does not check that the agent exists.
package workflow

import (
	// Packages
	txtai "github.com/mutablelogic/go-txtai"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Workflow is an ordered, mutable sequence of steps. It is not safe for
// concurrent use.
type Workflow struct {
	steps []schema.WorkflowStep
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a workflow with the given steps, which are copied.
func New(steps ...schema.WorkflowStep) *Workflow {
	w := new(Workflow)
	for _, step := range steps {
		w.steps = append(w.steps, cloneStep(step))
	}
	return w
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a step for the agent to the end of the workflow. The same
// agent may appear any number of times.
func (w *Workflow) Append(agent schema.ID) {
	w.steps = append(w.steps, schema.NewWorkflowStep(agent))
}

// RemoveAt removes the step at index. An index outside the workflow
// returns ErrBadParameter and leaves the workflow unchanged.
func (w *Workflow) RemoveAt(index int) error {
	if index < 0 || index >= len(w.steps) {
		return txtai.ErrBadParameter.Withf("invalid index %d", index)
	}
	w.steps = append(w.steps[:index], w.steps[index+1:]...)
	return nil
}

// Reset removes all steps.
func (w *Workflow) Reset() {
	w.steps = nil
}

// Len returns the number of steps.
func (w *Workflow) Len() int {
	return len(w.steps)
}

// Empty returns true when there are no steps, in which case there is
// nothing to execute.
func (w *Workflow) Empty() bool {
	return len(w.steps) == 0
}

// Steps returns a copy of the steps, in order.
func (w *Workflow) Steps() []schema.WorkflowStep {
	result := make([]schema.WorkflowStep, len(w.steps))
	for i, step := range w.steps {
		result[i] = cloneStep(step)
	}
	return result
}

// ToSubmission returns a snapshot of the workflow for execution. The
// workflow itself is not changed, and later changes to it do not affect
// the returned request.
func (w *Workflow) ToSubmission() schema.WorkflowRequest {
	return schema.WorkflowRequest{Steps: w.Steps()}
}

// Resolve looks up each step's agent in the snapshot. Steps whose agent is
// not in the snapshot are returned with Found false and an empty name.
func (w *Workflow) Resolve(agents []schema.Agent) []schema.ResolvedStep {
	result := make([]schema.ResolvedStep, len(w.steps))
	for i, step := range w.steps {
		result[i] = schema.ResolvedStep{Position: i, Step: cloneStep(step)}
		if agent, ok := Find(agents, step.AgentID); ok {
			result[i].Name = agent.Name
			result[i].Found = true
		}
	}
	return result
}

// Find returns the agent with the identifier from the snapshot.
func Find(agents []schema.Agent, id schema.ID) (schema.Agent, bool) {
	for _, agent := range agents {
		if agent.ID.Equal(id) {
			return agent, true
		}
	}
	return schema.Agent{}, false
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func cloneStep(step schema.WorkflowStep) schema.WorkflowStep {
	if step.Params == nil {
		step.Params = make(schema.Params)
	} else {
		step.Params = step.Params.Clone()
	}
	return step
}
