package main

import (
	"fmt"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	types "github.com/mutablelogic/go-server/pkg/types"
	agentconfig "github.com/mutablelogic/go-txtai/pkg/agentconfig"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	uitable "github.com/mutablelogic/go-txtai/pkg/ui/table"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type AgentCommands struct {
	ListAgents  ListAgentsCommand  `cmd:"" name:"agents" help:"List agents." group:"AGENT"`
	Templates   TemplatesCommand   `cmd:"" name:"templates" help:"List agent types." group:"AGENT"`
	Models      ModelsCommand      `cmd:"" name:"models" help:"List embeddings models." group:"AGENT"`
	CreateAgent CreateAgentCommand `cmd:"" name:"create-agent" help:"Create an agent from a type, or from a JSON or YAML file." group:"AGENT"`
}

type ListAgentsCommand struct{}

type TemplatesCommand struct{}

type ModelsCommand struct{}

type CreateAgentCommand struct {
	Name  string            `name:"name" help:"Agent name" optional:""`
	Type  string            `name:"type" help:"Agent type (see templates)" optional:""`
	Model string            `name:"model" help:"Embeddings model path (see models)" optional:""`
	Param map[string]string `name:"param" help:"Parameter override as key=value (may be repeated)" optional:""`
	File  string            `name:"file" help:"Agent configuration file (.json, .yaml)" type:"existingfile" optional:""`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListAgentsCommand) Run(ctx *Globals) (err error) {
	controller, err := ctx.Controller()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListAgentsCommand")
	defer func() { endSpan(err) }()

	// Load the snapshot
	if err := controller.LoadAgents(parent); err != nil {
		return withCause(err)
	}

	// Print
	agents := controller.Agents()
	if ctx.Debug {
		fmt.Println(types.Stringify(agents))
	} else {
		printTable(schema.AgentTable(agents), "agent")
	}
	return nil
}

func (cmd *TemplatesCommand) Run(ctx *Globals) error {
	printTable(agentconfig.TemplateTable{
		Templates: agentconfig.Templates(),
		Selected:  ctx.defaults.GetString(keyType),
	}, "type")
	return nil
}

func (cmd *ModelsCommand) Run(ctx *Globals) error {
	selected := ctx.defaults.GetString(keyModel)
	if selected == "" {
		selected = agentconfig.DefaultModel()
	}
	printTable(agentconfig.ModelTable{
		Models:   agentconfig.Models(),
		Selected: selected,
	}, "model")
	return nil
}

func (cmd *CreateAgentCommand) Run(ctx *Globals) (err error) {
	config, err := cmd.config(ctx)
	if err != nil {
		return err
	}

	controller, err := ctx.Controller()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "CreateAgentCommand",
		attribute.String("name", config.Name),
		attribute.String("type", config.Type),
	)
	defer func() { endSpan(err) }()

	// Create the agent
	agent, err := controller.CreateAgent(parent, config)
	if err != nil {
		return withCause(err)
	}

	// Remember the type and model for next time
	if cmd.File == "" {
		if err := ctx.defaults.Set(keyType, cmd.key(ctx)); err != nil {
			return err
		}
		if cmd.Model != "" {
			if err := ctx.defaults.Set(keyModel, cmd.Model); err != nil {
				return err
			}
		}
	}

	// Print
	if ctx.Debug {
		fmt.Println(agent)
	} else {
		fmt.Printf("Created agent %q with id %v\n", agent.Name, agent.ID)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// config returns the agent configuration from the file or the template,
// with the flags applied.
func (cmd *CreateAgentCommand) config(ctx *Globals) (schema.AgentConfig, error) {
	overrides, err := parseParams(cmd.Param)
	if err != nil {
		return schema.AgentConfig{}, err
	}

	// A file is sent as written, apart from the flags
	if cmd.File != "" {
		config, err := agentconfig.ReadFile(cmd.File)
		if err != nil {
			return schema.AgentConfig{}, err
		}
		if cmd.Name != "" {
			config.Name = cmd.Name
		}
		if len(overrides) > 0 {
			if config.Params == nil {
				config.Params = make(schema.Params, len(overrides))
			}
			for k, v := range overrides {
				config.Params[k] = v
			}
		}
		return config, nil
	}

	// The model only applies to embeddings, and is the lowest priority
	key := cmd.key(ctx)
	if key == agentconfig.Embeddings {
		model := cmd.Model
		if model == "" {
			model = ctx.defaults.GetString(keyModel)
		}
		if model == "" {
			model = agentconfig.DefaultModel()
		}
		if _, exists := overrides[agentconfig.ParamPath]; !exists {
			if overrides == nil {
				overrides = make(schema.Params, 1)
			}
			overrides[agentconfig.ParamPath] = model
		}
	}
	return agentconfig.BuildFromTemplate(cmd.Name, key, overrides)
}

// key returns the catalog key from the flag, the stored default, or
// embeddings.
func (cmd *CreateAgentCommand) key(ctx *Globals) string {
	if key := strings.ToLower(strings.TrimSpace(cmd.Type)); key != "" {
		return key
	}
	if key := ctx.defaults.GetString(keyType); key != "" {
		return key
	}
	return agentconfig.Embeddings
}

// parseParams decodes each value as a YAML scalar, so that numbers and
// booleans keep their type.
func parseParams(params map[string]string) (schema.Params, error) {
	if len(params) == 0 {
		return nil, nil
	}
	result := make(schema.Params, len(params))
	for k, v := range params {
		value, err := agentconfig.ParseValue(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", k, err)
		}
		result[k] = value
	}
	return result, nil
}
