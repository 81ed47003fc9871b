package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	ui "github.com/mutablelogic/go-txtai/pkg/ui"
	uitable "github.com/mutablelogic/go-txtai/pkg/ui/table"
	workflow "github.com/mutablelogic/go-txtai/pkg/workflow"
)

///////////////////////////////////////////////////////////////////////////////
// WORKFLOW COMMANDS

// cmdAdd appends a step for each reference, which is an agent id or name.
// A reference which is not in the snapshot is added as an id.
func (h *Handler) cmdAdd(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) == 0 {
		return fmt.Errorf("usage: /add <agent> ...")
	}
	agents := h.controller.Agents()
	var lines []string
	for _, ref := range evt.Args {
		if agent, ok := Resolve(agents, ref); ok {
			h.workflow.Append(agent.ID)
			lines = append(lines, fmt.Sprintf("Added step %d: %s", h.workflow.Len(), agent.Name))
		} else {
			h.workflow.Append(schema.ParseID(ref))
			lines = append(lines, fmt.Sprintf("Added step %d: %s (unknown agent)", h.workflow.Len(), ref))
		}
	}
	h.tab = ui.TabWorkflows
	h.workflowChanged()
	return evt.Context.SendText(ctx, strings.Join(lines, "\n"))
}

// cmdRemove removes the step at the position shown by /steps
func (h *Handler) cmdRemove(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) != 1 {
		return fmt.Errorf("usage: /rm <n>")
	}
	n, err := strconv.Atoi(evt.Args[0])
	if err != nil {
		return fmt.Errorf("usage: /rm <n>")
	}
	if n < 1 || n > h.workflow.Len() {
		return fmt.Errorf("no step %d (workflow has %s)", n, uitable.Summary(h.workflow.Len(), "step"))
	}
	if err := h.workflow.RemoveAt(n - 1); err != nil {
		return err
	}
	h.workflowChanged()
	return h.showWorkflow(ctx, evt.Context)
}

func (h *Handler) cmdSteps(ctx context.Context, evt ui.Event) error {
	h.tab = ui.TabWorkflows
	return h.showWorkflow(ctx, evt.Context)
}

func (h *Handler) cmdClear(ctx context.Context, evt ui.Event) error {
	h.workflow.Reset()
	h.workflowChanged()
	return evt.Context.SendText(ctx, "Workflow cleared")
}

// cmdRun executes the workflow, and discards it when the execution succeeds
func (h *Handler) cmdRun(ctx context.Context, evt ui.Event) error {
	if h.workflow.Empty() {
		return fmt.Errorf("workflow has no steps, use /add to add agents")
	}

	var result schema.WorkflowResult
	if err := h.busy(ctx, evt.Context, func() (err error) {
		result, err = h.controller.ExecuteWorkflow(ctx, h.workflow.ToSubmission())
		return err
	}); err != nil {
		return err
	}

	h.workflow.Reset()
	h.workflowChanged()
	h.tab = ui.TabWorkflows
	return evt.Context.SendMarkdown(ctx, formatResult(result))
}

func (h *Handler) cmdResult(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) == 0 {
		result := h.controller.Result()
		if result.IsEmpty() {
			return evt.Context.SendText(ctx, "No workflow result")
		}
		return evt.Context.SendMarkdown(ctx, formatResult(result))
	}

	var result schema.WorkflowResult
	if err := h.busy(ctx, evt.Context, func() (err error) {
		result, err = h.controller.FetchResult(ctx, evt.Args[0])
		return err
	}); err != nil {
		return err
	}
	h.tab = ui.TabWorkflows
	return evt.Context.SendMarkdown(ctx, formatResult(result))
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Resolve returns the agent in the snapshot with the reference as its id,
// or failing that, as its name.
func Resolve(agents []schema.Agent, ref string) (schema.Agent, bool) {
	if agent, ok := workflow.Find(agents, schema.ParseID(ref)); ok {
		return agent, true
	}
	for _, agent := range agents {
		if agent.Name == ref {
			return agent, true
		}
	}
	return schema.Agent{}, false
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (h *Handler) showWorkflow(ctx context.Context, uictx ui.Context) error {
	var buf strings.Builder
	buf.WriteString("**Workflow**\n\n")
	if h.workflow.Empty() {
		buf.WriteString("No steps, use /add to add agents")
	} else {
		buf.WriteString(uitable.RenderMarkdown(schema.StepTable(h.workflow.Resolve(h.controller.Agents()))))
	}
	if result := h.controller.Result(); !result.IsEmpty() {
		buf.WriteString("\n\n" + formatResult(result))
	}
	return uictx.SendMarkdown(ctx, buf.String())
}

func formatResult(result schema.WorkflowResult) string {
	return "**Result**\n\n```json\n" + result.String() + "\n```"
}
