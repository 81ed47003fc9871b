// Package command implements the slash commands of the agent console.
//
// The [Handler] owns the agent editor and the workflow draft, routes user
// actions to them and to the controller, and works with any [ui.Context]
// so the same logic can be used by any front end.
package command

import (
	"context"
	"fmt"
	"strings"

	// Packages
	agentconfig "github.com/mutablelogic/go-txtai/pkg/agentconfig"
	controller "github.com/mutablelogic/go-txtai/pkg/controller"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	scrape "github.com/mutablelogic/go-txtai/pkg/scrape"
	ui "github.com/mutablelogic/go-txtai/pkg/ui"
	uitable "github.com/mutablelogic/go-txtai/pkg/ui/table"
	workflow "github.com/mutablelogic/go-txtai/pkg/workflow"
)

///////////////////////////////////////////////////////////////////////////////
// INTERFACES

// Controller is the API surface needed by the command handler.
// *controller.Controller satisfies this interface.
type Controller interface {
	Agents() []schema.Agent
	Agent(id schema.ID) (schema.Agent, bool)
	Err() *controller.Error
	ClearError()
	Result() schema.WorkflowResult
	LoadAgents(ctx context.Context) error
	CreateAgent(ctx context.Context, config schema.AgentConfig) (*schema.Agent, error)
	ExecuteWorkflow(ctx context.Context, request schema.WorkflowRequest) (schema.WorkflowResult, error)
	FetchResult(ctx context.Context, id string) (schema.WorkflowResult, error)
}

// Scraper fetches elements from a web page. *scrape.Scraper satisfies
// this interface.
type Scraper interface {
	Scrape(ctx context.Context, url, selector string) ([]scrape.Record, error)
}

// Hooks allows front ends to react to changes of the workflow draft, for
// example to persist it. A nil Hooks is safe.
type Hooks interface {
	// OnWorkflowChanged is called with the steps after every change to
	// the workflow draft.
	OnWorkflowChanged(steps []schema.WorkflowStep)
}

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Handler processes console events. It is not safe for concurrent use;
// events are handled one at a time in the order received.
type Handler struct {
	controller Controller
	scraper    Scraper
	hooks      Hooks
	editor     *agentconfig.Editor
	workflow   *workflow.Workflow
	tab        ui.Tab
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a command handler with the controller, an optional scraper
// and optional hooks. The workflow draft starts with the given steps.
func New(ctrl Controller, scraper Scraper, hooks Hooks, steps ...schema.WorkflowStep) *Handler {
	return &Handler{
		controller: ctrl,
		scraper:    scraper,
		hooks:      hooks,
		editor:     agentconfig.NewEditor(),
		workflow:   workflow.New(steps...),
		tab:        ui.TabAgents,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Start loads the agent snapshot and greets the user. A failed load is
// shown in the error banner rather than returned.
func (h *Handler) Start(ctx context.Context, uictx ui.Context) error {
	defer h.sendStatus(ctx, uictx)
	if err := h.busy(ctx, uictx, func() error { return h.controller.LoadAgents(ctx) }); err != nil {
		return uictx.SendText(ctx, fmt.Sprintf("Welcome %s. Type /help for commands.", uictx.UserName()))
	}
	return uictx.SendText(ctx, fmt.Sprintf("Welcome %s. %s loaded, type /help for commands.", uictx.UserName(), uitable.Summary(len(h.controller.Agents()), "agent")))
}

// Handle processes an event and returns an error if the action fails.
// The status is sent to the event's context afterwards, whatever the
// outcome.
func (h *Handler) Handle(ctx context.Context, evt ui.Event) error {
	defer h.sendStatus(ctx, evt.Context)
	if evt.Type == ui.EventText {
		return h.handleText(ctx, evt)
	}
	switch evt.Command {
	case "help":
		return h.cmdHelp(ctx, evt)
	case "tab":
		return h.cmdTab(ctx, evt)
	case "agents":
		return h.cmdAgents(ctx, evt)
	case "types":
		return h.cmdTypes(ctx, evt)
	case "type":
		return h.cmdType(ctx, evt)
	case "name":
		return h.cmdName(ctx, evt)
	case "models":
		return h.cmdModels(ctx, evt)
	case "model":
		return h.cmdModel(ctx, evt)
	case "mode":
		return h.cmdMode(ctx, evt)
	case "raw":
		return h.cmdRaw(ctx, evt)
	case "save":
		return h.cmdSave(ctx, evt)
	case "add":
		return h.cmdAdd(ctx, evt)
	case "rm":
		return h.cmdRemove(ctx, evt)
	case "steps":
		return h.cmdSteps(ctx, evt)
	case "clear":
		return h.cmdClear(ctx, evt)
	case "run":
		return h.cmdRun(ctx, evt)
	case "result":
		return h.cmdResult(ctx, evt)
	case "scrape":
		return h.cmdScrape(ctx, evt)
	case "error":
		return h.cmdError(ctx, evt)
	case "dismiss":
		return h.cmdDismiss(ctx, evt)
	default:
		return fmt.Errorf("unknown command: /%s (try /help)", evt.Command)
	}
}

// Status returns the status for the front end to show.
func (h *Handler) Status() ui.Status {
	status := ui.Status{
		Tab:    h.tab,
		Mode:   h.editor.Mode().String(),
		Agents: len(h.controller.Agents()),
		Steps:  h.workflow.Len(),
		Result: h.controller.Result().ID(),
	}
	if err := h.controller.Err(); err != nil {
		status.Error = err.Message
	}
	return status
}

// Editor returns the agent editor.
func (h *Handler) Editor() *agentconfig.Editor {
	return h.editor
}

// Workflow returns the workflow draft.
func (h *Handler) Workflow() *workflow.Workflow {
	return h.workflow
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (h *Handler) handleText(ctx context.Context, evt ui.Event) error {
	if h.editor.Mode() != agentconfig.ModeRaw {
		return evt.Context.SendText(ctx, "Use /name, /type and /model to configure an agent, or /mode json to write the configuration yourself. Type /help for commands.")
	}
	h.editor.AppendRaw(evt.Text)
	lines := strings.Count(h.editor.Raw(), "\n") + 1
	return evt.Context.SendText(ctx, fmt.Sprintf("Configuration has %s, /save to create the agent", uitable.Summary(lines, "line")))
}

func (h *Handler) cmdHelp(ctx context.Context, evt ui.Event) error {
	help := "Available commands:\n\n" +
		"```\n" +
		"/tab [agents|workflows]  - Show or switch the current tab\n" +
		"/agents                  - Reload and list agents\n" +
		"/types                   - List agent types\n" +
		"/type <key>              - Select the agent type\n" +
		"/name [name]             - Show or set the agent name\n" +
		"/models                  - List embeddings models\n" +
		"/model <n|path>          - Select the embeddings model\n" +
		"/mode [visual|json]      - Show or switch the editor mode\n" +
		"/raw <json>              - Set the JSON configuration\n" +
		"/save                    - Create the agent\n" +
		"/add <agent> ...         - Add workflow steps by id or name\n" +
		"/rm <n>                  - Remove workflow step n\n" +
		"/steps                   - List workflow steps\n" +
		"/clear                   - Remove all workflow steps\n" +
		"/run                     - Execute the workflow\n" +
		"/result [id]             - Show the last result, or fetch one\n" +
		"/scrape <url> <selector> - Scrape elements from a web page\n" +
		"/error                   - Show the last error\n" +
		"/dismiss                 - Dismiss the last error\n" +
		"/help                    - Show this help\n" +
		"```"
	return evt.Context.SendMarkdown(ctx, help)
}

func (h *Handler) cmdTab(ctx context.Context, evt ui.Event) error {
	if len(evt.Args) == 0 {
		if h.tab == ui.TabAgents {
			h.tab = ui.TabWorkflows
		} else {
			h.tab = ui.TabAgents
		}
	} else if tab, ok := ui.ParseTab(evt.Args[0]); !ok {
		return fmt.Errorf("usage: /tab [agents|workflows]")
	} else {
		h.tab = tab
	}
	if h.tab == ui.TabWorkflows {
		return h.showWorkflow(ctx, evt.Context)
	}
	return h.showAgents(ctx, evt.Context)
}

func (h *Handler) cmdError(ctx context.Context, evt ui.Event) error {
	err := h.controller.Err()
	if err == nil {
		return evt.Context.SendText(ctx, "No error")
	}
	return evt.Context.SendError(ctx, err)
}

func (h *Handler) cmdDismiss(ctx context.Context, evt ui.Event) error {
	h.controller.ClearError()
	return evt.Context.SendText(ctx, "Error dismissed")
}

// busy shows the busy indicator while fn runs.
func (h *Handler) busy(ctx context.Context, uictx ui.Context, fn func() error) error {
	uictx.SetBusy(ctx, true)
	defer uictx.SetBusy(ctx, false)
	return fn()
}

func (h *Handler) sendStatus(ctx context.Context, uictx ui.Context) {
	if uictx != nil {
		uictx.SetStatus(ctx, h.Status())
	}
}

func (h *Handler) workflowChanged() {
	if h.hooks != nil {
		h.hooks.OnWorkflowChanged(h.workflow.Steps())
	}
}
