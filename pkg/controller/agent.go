package controller

import (
	"context"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// LoadAgents replaces the snapshot with the service's agent list. On
// failure the previous snapshot is kept and the error slot is set.
func (c *Controller) LoadAgents(ctx context.Context) (err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "LoadAgents")
	defer func() { endSpan(err) }()

	seq := c.begin()
	agents, err := c.service.ListAgents(ctx)
	if err != nil {
		return c.fail(ActionLoad, err)
	}
	if !c.apply(seq, agents) {
		c.log.Debug().Uint64("seq", seq).Msg("discarded stale agent snapshot")
	} else {
		c.log.Debug().Int("agents", len(agents)).Msg("loaded agents")
	}

	// Return success
	return nil
}

// CreateAgent submits the configuration and, on success, reloads the
// snapshot so it reflects the service's canonical list. The new agent is
// not inserted into the snapshot directly. A failed reload is recorded in
// the error slot but does not fail the creation.
func (c *Controller) CreateAgent(ctx context.Context, config schema.AgentConfig) (result *schema.Agent, err error) {
	ctx, endSpan := otel.StartSpan(c.tracer, ctx, "CreateAgent",
		attribute.String("name", config.Name),
		attribute.String("type", config.Type),
	)
	defer func() { endSpan(err) }()

	agent, err := c.service.CreateAgent(ctx, config)
	if err != nil {
		return nil, c.fail(ActionCreate, err)
	}
	c.log.Info().Str("id", agent.ID.String()).Str("name", agent.Name).Msg("created agent")

	// Refresh the snapshot
	if err := c.LoadAgents(ctx); err != nil {
		c.log.Debug().Err(err).Msg("reload after create")
	}

	// Return success
	return agent, nil
}
