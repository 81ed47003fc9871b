package controller

import (
	"context"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	txtai "github.com/mutablelogic/go-txtai"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ExecuteWorkflow submits the workflow and stores the returned document in
// the result slot. On failure the previous result is kept and the error
// slot is set. A workflow without steps is refused before any call is
// made, and does not touch the error slot.
func (c *Controller) ExecuteWorkflow(ctx context.Context, request schema.WorkflowRequest) (result schema.WorkflowResult, err error) {
	if len(request.Steps) == 0 {
		return nil, txtai.ErrBadParameter.With("workflow has no steps")
	}

	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "ExecuteWorkflow",
		attribute.Int("steps", len(request.Steps)),
	)
	defer func() { endSpan(err) }()

	result, err = c.service.ExecuteWorkflow(ctx, request)
	if err != nil {
		return nil, c.fail(ActionExecute, err)
	}
	c.store(result)

	// Return success
	return result, nil
}

// FetchResult retrieves the result of an earlier execution by identifier
// and stores it in the result slot, with the same failure rules as
// ExecuteWorkflow. An empty identifier is refused before any call.
func (c *Controller) FetchResult(ctx context.Context, id string) (result schema.WorkflowResult, err error) {
	if strings.TrimSpace(id) == "" {
		return nil, txtai.ErrBadParameter.With("workflow id cannot be empty")
	}

	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "FetchResult",
		attribute.String("id", id),
	)
	defer func() { endSpan(err) }()

	result, err = c.service.GetWorkflowResult(ctx, id)
	if err != nil {
		return nil, c.fail(ActionFetch, err)
	}
	c.store(result)

	// Return success
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Controller) store(result schema.WorkflowResult) {
	c.log.Info().Str("id", result.ID()).Msg("workflow result")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = result
}
