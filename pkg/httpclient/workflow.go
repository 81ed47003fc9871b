package httpclient

import (
	"context"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	txtai "github.com/mutablelogic/go-txtai"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ExecuteWorkflow submits the steps for execution and returns the result
// document without interpreting it.
func (c *Client) ExecuteWorkflow(ctx context.Context, request schema.WorkflowRequest) (schema.WorkflowResult, error) {
	if request.Steps == nil {
		request.Steps = []schema.WorkflowStep{}
	}
	req, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, txtai.ErrTransport.Wrap(err)
	}

	// Perform request
	var response schema.WorkflowResult
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("workflow", "execute")); err != nil {
		return nil, txtai.ErrTransport.Wrap(err)
	}

	// Return the response
	return response, nil
}

// GetWorkflowResult retrieves the result document of an earlier execution
// by identifier.
func (c *Client) GetWorkflowResult(ctx context.Context, id string) (schema.WorkflowResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, txtai.ErrBadParameter.With("workflow id cannot be empty")
	}

	// Perform request
	var response schema.WorkflowResult
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("workflow", id)); err != nil {
		return nil, txtai.ErrTransport.Wrap(err)
	}

	// Return the response
	return response, nil
}
