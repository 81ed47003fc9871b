// Package controller orchestrates calls to the agent service around the
// agent configuration and workflow models. It owns the agent snapshot,
// and two single-valued slots for the last error and the last workflow
// result.
//
// A failed call leaves the snapshot and the result untouched and records
// a fixed, action-specific message in the error slot. The error slot is
// not cleared by a later successful call; use ClearError.
package controller

import (
	"context"
	"sync"

	// Packages
	txtai "github.com/mutablelogic/go-txtai"
	logging "github.com/mutablelogic/go-txtai/pkg/logging"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	trace "go.opentelemetry.io/otel/trace"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// INTERFACES

// Service is the remote agent service, implemented by httpclient.Client.
type Service interface {
	ListAgents(ctx context.Context) ([]schema.Agent, error)
	CreateAgent(ctx context.Context, config schema.AgentConfig) (*schema.Agent, error)
	ExecuteWorkflow(ctx context.Context, request schema.WorkflowRequest) (schema.WorkflowResult, error)
	GetWorkflowResult(ctx context.Context, id string) (schema.WorkflowResult, error)
}

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Controller holds the state shown to the user. It is safe for concurrent
// use; writes to each slot are last-write-wins, except that a snapshot
// older than the one already held is never applied.
type Controller struct {
	service Service
	log     *logging.Logger
	tracer  trace.Tracer

	mu      sync.RWMutex
	agents  []schema.Agent
	loaded  bool
	seq     uint64 // last load started
	applied uint64 // last load applied to the snapshot
	err     *Error
	result  schema.WorkflowResult
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a controller for the service. The agent snapshot starts
// empty; call LoadAgents to fill it.
func New(service Service, opts ...Opt) (*Controller, error) {
	if service == nil {
		return nil, txtai.ErrBadParameter.With("service is nil")
	}
	c := &Controller{
		service: service,
		log:     logging.Nop(),
		tracer:  noop.NewTracerProvider().Tracer("controller"),
		agents:  []schema.Agent{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS - STATE

// Agents returns a copy of the current agent snapshot, in service order.
func (c *Controller) Agents() []schema.Agent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]schema.Agent, len(c.agents))
	copy(result, c.agents)
	return result
}

// Loaded returns true once a snapshot has been received from the service.
func (c *Controller) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Agent returns the agent with the identifier from the snapshot.
func (c *Controller) Agent(id schema.ID) (schema.Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, agent := range c.agents {
		if agent.ID.Equal(id) {
			return agent, true
		}
	}
	return schema.Agent{}, false
}

// Err returns the last recorded error, or nil.
func (c *Controller) Err() *Error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// ClearError empties the error slot.
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = nil
}

// Result returns the last workflow result, which is empty until a
// workflow has been executed or fetched.
func (c *Controller) Result() schema.WorkflowResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// fail records the error in the error slot and returns it.
func (c *Controller) fail(action Action, err error) *Error {
	e := &Error{Action: action, Message: action.Message(), Err: err}
	c.log.Warn().Err(err).Str("action", string(action)).Msg(e.Message)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = e
	return e
}

// begin returns the sequence number of a new snapshot load.
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// apply replaces the snapshot unless a later load has already been applied.
func (c *Controller) apply(seq uint64, agents []schema.Agent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.applied {
		return false
	}
	if agents == nil {
		agents = []schema.Agent{}
	}
	c.agents = agents
	c.applied = seq
	c.loaded = true
	return true
}
