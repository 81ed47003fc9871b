package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	// Packages
	agentconfig "github.com/mutablelogic/go-txtai/pkg/agentconfig"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	ui "github.com/mutablelogic/go-txtai/pkg/ui"
	uitable "github.com/mutablelogic/go-txtai/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// AGENT COMMANDS

func (h *Handler) cmdAgents(ctx context.Context, evt ui.Event) error {
	if err := h.busy(ctx, evt.Context, func() error { return h.controller.LoadAgents(ctx) }); err != nil {
		return err
	}
	h.tab = ui.TabAgents
	return h.showAgents(ctx, evt.Context)
}

func (h *Handler) cmdTypes(ctx context.Context, evt ui.Event) error {
	return evt.Context.SendMarkdown(ctx, uitable.RenderMarkdown(agentconfig.TemplateTable{
		Templates: agentconfig.Templates(),
		Selected:  h.editor.Type(),
	}))
}

func (h *Handler) cmdType(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) == 0 {
		return evt.Context.SendText(ctx, fmt.Sprintf("Agent type: %s", h.editor.Type()))
	}
	key := strings.ToLower(evt.Args[0])
	tmpl, ok := agentconfig.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown agent type %q (one of %s)", key, strings.Join(agentconfig.Keys(), ", "))
	}
	h.editor.SelectType(key)
	return evt.Context.SendText(ctx, fmt.Sprintf("Agent type: %s (%s)", tmpl.Name, tmpl.Type))
}

func (h *Handler) cmdName(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) == 0 {
		if h.editor.Name() == "" {
			return evt.Context.SendText(ctx, "Agent has no name")
		}
		return evt.Context.SendText(ctx, fmt.Sprintf("Agent name: %s", h.editor.Name()))
	}
	h.editor.SetName(evt.Rest())
	return evt.Context.SendText(ctx, fmt.Sprintf("Agent name: %s", h.editor.Name()))
}

func (h *Handler) cmdModels(ctx context.Context, evt ui.Event) error {
	return evt.Context.SendMarkdown(ctx, uitable.RenderMarkdown(agentconfig.ModelTable{
		Models:   agentconfig.Models(),
		Selected: h.editor.Model(),
	}))
}

// cmdModel selects a model by its position in /models, or by path
func (h *Handler) cmdModel(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) == 0 {
		return evt.Context.SendText(ctx, fmt.Sprintf("Model: %s", h.editor.Model()))
	}
	model := evt.Args[0]
	if n, err := strconv.Atoi(model); err == nil {
		models := agentconfig.Models()
		if n < 1 || n > len(models) {
			return fmt.Errorf("invalid model %d (1 to %d)", n, len(models))
		}
		model = models[n-1].Value
	}
	h.editor.SetModel(model)
	if h.editor.Type() != agentconfig.Embeddings {
		return evt.Context.SendText(ctx, fmt.Sprintf("Model: %s (used by embeddings agents only)", model))
	}
	return evt.Context.SendText(ctx, fmt.Sprintf("Model: %s", model))
}

func (h *Handler) cmdMode(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) > 0 {
		mode, ok := agentconfig.ParseMode(evt.Args[0])
		if !ok {
			return fmt.Errorf("usage: /mode [visual|json]")
		}
		h.editor.SetMode(mode)
	}
	if h.editor.Mode() == agentconfig.ModeRaw {
		return evt.Context.SendText(ctx, "Mode: json. Enter the configuration, then /save")
	}
	return evt.Context.SendText(ctx, "Mode: visual. "+h.editor.Summary())
}

func (h *Handler) cmdRaw(ctx context.Context, evt ui.Event) error {
	text := evt.Rest()
	if text == "" {
		if h.editor.Raw() == "" {
			return evt.Context.SendText(ctx, "No configuration entered")
		}
		return evt.Context.SendMarkdown(ctx, "```json\n"+h.editor.Raw()+"\n```")
	}
	h.editor.SetMode(agentconfig.ModeRaw)
	h.editor.SetRaw(text)
	return evt.Context.SendText(ctx, "Configuration set, /save to create the agent")
}

func (h *Handler) cmdSave(ctx context.Context, evt ui.Event) error {
	config, err := h.editor.Build()
	if err != nil {
		return describeBuildError(err)
	}

	// Create the agent and reload the snapshot
	var agent *schema.Agent
	if err := h.busy(ctx, evt.Context, func() (err error) {
		agent, err = h.controller.CreateAgent(ctx, config)
		return err
	}); err != nil {
		return err
	}

	// Reset the form for the next agent
	h.editor.SetName("")
	h.editor.SetRaw("")
	h.tab = ui.TabAgents
	if err := evt.Context.SendText(ctx, fmt.Sprintf("Created agent %q with id %s", agent.Name, agent.ID)); err != nil {
		return err
	}
	return h.showAgents(ctx, evt.Context)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (h *Handler) showAgents(ctx context.Context, uictx ui.Context) error {
	agents := h.controller.Agents()
	var buf strings.Builder
	buf.WriteString("**Agents**\n\n")
	if len(agents) == 0 {
		buf.WriteString(uitable.Summary(0, "agent"))
	} else {
		buf.WriteString(uitable.RenderMarkdown(schema.AgentTable(agents)))
	}
	buf.WriteString("\n\n" + h.editor.Summary())
	return uictx.SendMarkdown(ctx, buf.String())
}

// describeBuildError returns the field-level messages of a validation
// error in a stable order, or the error itself.
func describeBuildError(err error) error {
	var verr agentconfig.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	fields := make([]string, 0, len(verr))
	for field := range verr {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	messages := make([]string, len(fields))
	for i, field := range fields {
		messages[i] = verr.Field(field)
	}
	return errors.New(strings.Join(messages, ", "))
}
