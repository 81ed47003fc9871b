package main

import (
	"errors"
	"io"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	logging "github.com/mutablelogic/go-txtai/pkg/logging"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	bubbletea "github.com/mutablelogic/go-txtai/pkg/ui/bubbletea"
	command "github.com/mutablelogic/go-txtai/pkg/ui/command"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ConsoleCommands struct {
	Console ConsoleCommand `cmd:"" name:"console" default:"1" help:"Start the interactive console." group:"CONSOLE"`
}

type ConsoleCommand struct{}

// consoleHooks persists the workflow draft as it changes, so the console
// and the workflow commands share it.
type consoleHooks struct {
	globals *Globals
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ConsoleCommand) Run(ctx *Globals) (err error) {
	// The terminal takes over the screen, so log to a file
	if ctx.LogFile == "" {
		path, err := consoleLogPath()
		if err != nil {
			return err
		}
		logger, closer, err := logging.NewFile(path, ctx.LogLevel)
		if err != nil {
			return err
		}
		ctx.logger = logger
		ctx.closers = append(ctx.closers, closer)
	}

	controller, err := ctx.Controller()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ConsoleCommand")
	defer func() { endSpan(err) }()

	// Create the terminal
	term, err := bubbletea.New()
	if err != nil {
		return err
	}
	defer term.Close()

	// The draft is restored from the last session
	handler := command.New(controller, ctx.Scraper(), &consoleHooks{globals: ctx}, ctx.defaults.Steps()...)
	if err := handler.Start(parent, term.Context()); err != nil {
		return err
	}
	ctx.logger.Info().Str("endpoint", ctx.HTTP.Endpoint).Msg("console started")

	// Event loop
	for {
		evt, err := term.Receive(parent)
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if err := handler.Handle(parent, evt); err != nil {
			ctx.logger.Debug().Err(err).Str("command", evt.Command).Msg("command failed")
			evt.Context.SendError(parent, err)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// HOOKS

func (h *consoleHooks) OnWorkflowChanged(steps []schema.WorkflowStep) {
	if err := h.globals.defaults.SetSteps(steps); err != nil {
		h.globals.logger.Warn().Err(err).Msg("workflow draft not saved")
	}
}
