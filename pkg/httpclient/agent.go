package httpclient

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	txtai "github.com/mutablelogic/go-txtai"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateAgent submits an agent configuration and returns the agent the
// service created. The configuration is sent exactly as given.
func (c *Client) CreateAgent(ctx context.Context, config schema.AgentConfig) (*schema.Agent, error) {
	req, err := client.NewJSONRequest(config)
	if err != nil {
		return nil, txtai.ErrTransport.Wrap(err)
	}

	// Perform request
	var response schema.Agent
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("agents")); err != nil {
		return nil, txtai.ErrTransport.Wrap(err)
	}

	// Return the response
	return &response, nil
}

// ListAgents returns all agents known to the service, in the order the
// service returns them.
func (c *Client) ListAgents(ctx context.Context) ([]schema.Agent, error) {
	req := client.NewRequest()

	// Perform request
	var response []schema.Agent
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("agents")); err != nil {
		return nil, txtai.ErrTransport.Wrap(err)
	}

	// An empty list is never nil
	if response == nil {
		response = []schema.Agent{}
	}

	// Return the response
	return response, nil
}
