// Package httpclient is a typed client for the remote txtai agent service.
// It sends configuration and workflow documents to the service and decodes
// the replies. Every failure, whether transport or an error status, is
// returned wrapped in txtai.ErrTransport.
package httpclient

import (
	// Packages
	uuid "github.com/google/uuid"
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a txtai HTTP client that wraps the base HTTP client
// and provides typed methods for interacting with the agent API.
type Client struct {
	*client.Client
	id string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultEndpoint is the service address when none is configured
	DefaultEndpoint = "http://localhost:8000"

	// ClientIdHeader carries the client session identifier on every request
	ClientIdHeader = "X-Client-Id"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new txtai HTTP client with the given base URL and options.
// The url parameter should point to the service root, e.g.
// "http://localhost:8000". An empty url uses DefaultEndpoint.
func New(url string, opts ...client.ClientOpt) (*Client, error) {
	c := new(Client)
	c.id = uuid.NewString()
	if url == "" {
		url = DefaultEndpoint
	}
	opts = append(append([]client.ClientOpt{client.OptTimeout(0)}, opts...), client.OptEndpoint(url), client.OptHeader(ClientIdHeader, c.id))
	if client, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		c.Client = client
	}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ID returns the session identifier sent with every request.
func (c *Client) ID() string {
	return c.id
}
