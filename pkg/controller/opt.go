package controller

import (
	// Packages
	txtai "github.com/mutablelogic/go-txtai"
	logging "github.com/mutablelogic/go-txtai/pkg/logging"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring a controller
type Opt func(*Controller) error

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger for service failures and state changes.
func WithLogger(log *logging.Logger) Opt {
	return func(c *Controller) error {
		if log == nil {
			return txtai.ErrBadParameter.With("logger is nil")
		}
		c.log = log.Sub("controller")
		return nil
	}
}

// WithTracer sets the tracer used for spans around service calls.
func WithTracer(tracer trace.Tracer) Opt {
	return func(c *Controller) error {
		if tracer != nil {
			c.tracer = tracer
		}
		return nil
	}
}
