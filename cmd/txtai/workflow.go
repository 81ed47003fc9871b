package main

import (
	"fmt"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	txtai "github.com/mutablelogic/go-txtai"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	command "github.com/mutablelogic/go-txtai/pkg/ui/command"
	workflow "github.com/mutablelogic/go-txtai/pkg/workflow"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type WorkflowCommands struct {
	Workflow      WorkflowCommand      `cmd:"" name:"workflow" help:"Show the workflow draft." group:"WORKFLOW"`
	AddStep       AddStepCommand       `cmd:"" name:"add-step" help:"Append agents to the workflow draft, by id or name." group:"WORKFLOW"`
	RemoveStep    RemoveStepCommand    `cmd:"" name:"remove-step" help:"Remove a step from the workflow draft." group:"WORKFLOW"`
	ClearWorkflow ClearWorkflowCommand `cmd:"" name:"clear-workflow" help:"Remove all steps from the workflow draft." group:"WORKFLOW"`
	RunWorkflow   RunWorkflowCommand   `cmd:"" name:"run-workflow" help:"Execute the workflow draft." group:"WORKFLOW"`
	Result        ResultCommand        `cmd:"" name:"result" help:"Get the result of a workflow." group:"WORKFLOW"`
}

type WorkflowCommand struct{}

type AddStepCommand struct {
	Agents []string `arg:"" name:"agent" help:"Agent id or name"`
}

type RemoveStepCommand struct {
	Position int `arg:"" name:"n" help:"Step position, starting at 1"`
}

type ClearWorkflowCommand struct{}

type RunWorkflowCommand struct {
	Keep bool `name:"keep" help:"Keep the workflow draft after it is submitted"`
}

type ResultCommand struct {
	ID string `arg:"" name:"id" help:"Workflow execution id"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *WorkflowCommand) Run(ctx *Globals) (err error) {
	draft := workflow.New(ctx.defaults.Steps()...)
	if draft.Empty() {
		fmt.Println("No steps, use add-step to add agents")
		return nil
	}

	controller, err := ctx.Controller()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "WorkflowCommand")
	defer func() { endSpan(err) }()

	// Agent names are shown where the snapshot can be loaded
	if err := controller.LoadAgents(parent); err != nil {
		ctx.logger.Warn().Err(err).Msg("agent names unavailable")
	}

	printTable(schema.StepTable(draft.Resolve(controller.Agents())), "step")
	return nil
}

func (cmd *AddStepCommand) Run(ctx *Globals) (err error) {
	controller, err := ctx.Controller()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "AddStepCommand")
	defer func() { endSpan(err) }()

	// Resolve against a fresh snapshot
	if err := controller.LoadAgents(parent); err != nil {
		return withCause(err)
	}
	agents := controller.Agents()

	// Append the steps, unknown references are kept
	draft := workflow.New(ctx.defaults.Steps()...)
	for _, ref := range cmd.Agents {
		if agent, ok := command.Resolve(agents, ref); ok {
			draft.Append(agent.ID)
			fmt.Printf("Added step %d: %s\n", draft.Len(), agent.Name)
		} else {
			draft.Append(schema.ParseID(ref))
			fmt.Printf("Added step %d: %s (unknown agent)\n", draft.Len(), ref)
			ctx.logger.Warn().Str("agent", ref).Msg("unknown agent added to workflow")
		}
	}
	return ctx.defaults.SetSteps(draft.Steps())
}

func (cmd *RemoveStepCommand) Run(ctx *Globals) error {
	draft := workflow.New(ctx.defaults.Steps()...)
	if err := draft.RemoveAt(cmd.Position - 1); err != nil {
		return txtai.ErrBadParameter.Withf("no step at position %d", cmd.Position)
	}
	fmt.Printf("Removed step %d, %d remaining\n", cmd.Position, draft.Len())
	return ctx.defaults.SetSteps(draft.Steps())
}

func (cmd *ClearWorkflowCommand) Run(ctx *Globals) error {
	return ctx.defaults.SetSteps(nil)
}

func (cmd *RunWorkflowCommand) Run(ctx *Globals) (err error) {
	draft := workflow.New(ctx.defaults.Steps()...)
	if draft.Empty() {
		return txtai.ErrBadParameter.With("workflow has no steps")
	}

	controller, err := ctx.Controller()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RunWorkflowCommand",
		attribute.Int("steps", draft.Len()),
	)
	defer func() { endSpan(err) }()

	// Execute
	result, err := controller.ExecuteWorkflow(parent, draft.ToSubmission())
	if err != nil {
		return withCause(err)
	}

	// Discard the draft unless asked to keep it
	if !cmd.Keep {
		if err := ctx.defaults.SetSteps(nil); err != nil {
			return err
		}
	}

	fmt.Println(result)
	return nil
}

func (cmd *ResultCommand) Run(ctx *Globals) (err error) {
	controller, err := ctx.Controller()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ResultCommand",
		attribute.String("id", cmd.ID),
	)
	defer func() { endSpan(err) }()

	result, err := controller.FetchResult(parent, cmd.ID)
	if err != nil {
		return withCause(err)
	}

	fmt.Println(result)
	return nil
}
