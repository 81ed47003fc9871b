package command_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	// Packages
	txtai "github.com/mutablelogic/go-txtai"
	controller "github.com/mutablelogic/go-txtai/pkg/controller"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	scrape "github.com/mutablelogic/go-txtai/pkg/scrape"
	ui "github.com/mutablelogic/go-txtai/pkg/ui"
	command "github.com/mutablelogic/go-txtai/pkg/ui/command"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// MOCKS

// mockContext records everything sent to the user
type mockContext struct {
	text   []string
	errs   []error
	status ui.Status
	busy   int
}

var _ ui.Context = (*mockContext)(nil)

func (c *mockContext) UserName() string { return "tester" }

func (c *mockContext) SendText(_ context.Context, text string) error {
	c.text = append(c.text, text)
	return nil
}

func (c *mockContext) SendMarkdown(_ context.Context, markdown string) error {
	c.text = append(c.text, markdown)
	return nil
}

func (c *mockContext) SendError(_ context.Context, err error) error {
	c.errs = append(c.errs, err)
	return nil
}

func (c *mockContext) SetBusy(_ context.Context, busy bool) error {
	if busy {
		c.busy++
	}
	return nil
}

func (c *mockContext) SetStatus(_ context.Context, status ui.Status) error {
	c.status = status
	return nil
}

func (c *mockContext) last() string {
	if len(c.text) == 0 {
		return ""
	}
	return c.text[len(c.text)-1]
}

// mockService is an in-memory agent service
type mockService struct {
	sync.Mutex
	agents   []schema.Agent
	created  []schema.AgentConfig
	executed []schema.WorkflowRequest
	fail     error
}

func (m *mockService) ListAgents(context.Context) ([]schema.Agent, error) {
	m.Lock()
	defer m.Unlock()
	if m.fail != nil {
		return nil, txtai.ErrTransport.Wrap(m.fail)
	}
	return append([]schema.Agent(nil), m.agents...), nil
}

func (m *mockService) CreateAgent(_ context.Context, config schema.AgentConfig) (*schema.Agent, error) {
	m.Lock()
	defer m.Unlock()
	if m.fail != nil {
		return nil, txtai.ErrTransport.Wrap(m.fail)
	}
	m.created = append(m.created, config)
	agent := schema.Agent{ID: schema.ParseID(string(rune('0' + len(m.agents) + 1))), Name: config.Name, Config: config}
	m.agents = append(m.agents, agent)
	return &agent, nil
}

func (m *mockService) ExecuteWorkflow(_ context.Context, request schema.WorkflowRequest) (schema.WorkflowResult, error) {
	m.Lock()
	defer m.Unlock()
	if m.fail != nil {
		return nil, txtai.ErrTransport.Wrap(m.fail)
	}
	m.executed = append(m.executed, request)
	return schema.WorkflowResult(`{"id":"wf-1","status":"complete"}`), nil
}

func (m *mockService) GetWorkflowResult(_ context.Context, id string) (schema.WorkflowResult, error) {
	return schema.WorkflowResult(`{"id":"` + id + `","status":"complete"}`), nil
}

// mockScraper returns a fixed record
type mockScraper struct{}

func (mockScraper) Scrape(_ context.Context, url, selector string) ([]scrape.Record, error) {
	if selector == "none" {
		return []scrape.Record{}, nil
	}
	return []scrape.Record{{Text: "hello from " + url, Attributes: map[string]string{"id": "x"}}}, nil
}

// mockHooks records workflow changes
type mockHooks struct {
	steps [][]schema.WorkflowStep
}

func (h *mockHooks) OnWorkflowChanged(steps []schema.WorkflowStep) {
	h.steps = append(h.steps, steps)
}

func newHandler(t *testing.T, svc *mockService) (*command.Handler, *mockHooks, *mockContext) {
	t.Helper()
	ctrl, err := controller.New(svc)
	require.NoError(t, err)
	hooks := new(mockHooks)
	return command.New(ctrl, mockScraper{}, hooks), hooks, new(mockContext)
}

func run(t *testing.T, h *command.Handler, uictx *mockContext, line string) error {
	t.Helper()
	return h.Handle(t.Context(), ui.ParseEvent(uictx, line))
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_command_001(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{agents: []schema.Agent{{ID: schema.ParseID("1"), Name: "first"}}}
	h, _, uictx := newHandler(t, svc)

	assert.NoError(h.Start(t.Context(), uictx))
	assert.Contains(uictx.last(), "Welcome tester")
	assert.Contains(uictx.last(), "1 agent loaded")
	assert.Equal(1, uictx.status.Agents)
	assert.Equal(ui.TabAgents, uictx.status.Tab)
	assert.Equal("visual", uictx.status.Mode)
	assert.Equal(1, uictx.busy)
}

// Start with an unreachable service shows the banner
func Test_command_002(t *testing.T) {
	assert := assert.New(t)
	h, _, uictx := newHandler(t, &mockService{fail: errors.New("refused")})

	assert.NoError(h.Start(t.Context(), uictx))
	assert.Equal("Failed to load agents", uictx.status.Error)
	assert.Equal(0, uictx.status.Agents)

	assert.NoError(run(t, h, uictx, "/error"))
	require.Len(t, uictx.errs, 1)
	assert.Equal("Failed to load agents", uictx.errs[0].Error())

	assert.NoError(run(t, h, uictx, "/dismiss"))
	assert.Empty(uictx.status.Error)
	assert.NoError(run(t, h, uictx, "/error"))
	assert.Equal("No error", uictx.last())
}

// Create an embeddings agent in visual mode
func Test_command_003(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{}
	h, _, uictx := newHandler(t, svc)

	// Validation fails without a name
	err := run(t, h, uictx, "/save")
	assert.EqualError(err, "name required")
	assert.Empty(svc.created)

	assert.NoError(run(t, h, uictx, "/name MyAgent"))
	assert.NoError(run(t, h, uictx, "/model 2"))
	assert.Equal("Model: sentence-transformers/all-mpnet-base-v2", uictx.last())
	assert.NoError(run(t, h, uictx, "/save"))

	require.Len(t, svc.created, 1)
	assert.Equal(schema.AgentConfig{
		Name:   "MyAgent",
		Type:   "txtai.pipeline.Embeddings",
		Params: schema.Params{"path": "sentence-transformers/all-mpnet-base-v2"},
	}, svc.created[0])
	assert.Contains(uictx.last(), "MyAgent")
	assert.Equal(1, uictx.status.Agents)
	assert.Empty(h.Editor().Name())
}

// Type selection
func Test_command_004(t *testing.T) {
	assert := assert.New(t)
	h, _, uictx := newHandler(t, &mockService{})

	assert.Error(run(t, h, uictx, "/type unknown"))
	assert.NoError(run(t, h, uictx, "/type Segmentation"))
	assert.Contains(uictx.last(), "txtai.pipeline.Segmentation")
	assert.NoError(run(t, h, uictx, "/types"))
	assert.Contains(uictx.last(), "* segmentation")
	assert.NoError(run(t, h, uictx, "/models"))
	assert.Contains(uictx.last(), "* 1")
	assert.Error(run(t, h, uictx, "/model 9"))
}

// Raw JSON mode
func Test_command_005(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{}
	h, _, uictx := newHandler(t, svc)

	assert.NoError(run(t, h, uictx, "/mode json"))
	assert.Equal("json", uictx.status.Mode)
	assert.NoError(run(t, h, uictx, `{"name": "raw",`))
	assert.Contains(uictx.last(), "1 line")
	assert.NoError(run(t, h, uictx, `"type": "custom", "params": {"k": 1}}`))
	assert.Contains(uictx.last(), "2 lines")
	assert.NoError(run(t, h, uictx, "/save"))
	require.Len(t, svc.created, 1)
	assert.Equal("raw", svc.created[0].Name)
	assert.Equal("custom", svc.created[0].Type)

	// Malformed input is not sent
	assert.NoError(run(t, h, uictx, "/raw {"))
	err := run(t, h, uictx, "/save")
	assert.ErrorIs(err, txtai.ErrParse)
	assert.Len(svc.created, 1)

	assert.Error(run(t, h, uictx, "/mode other"))
}

// Plain text in visual mode is a hint
func Test_command_006(t *testing.T) {
	assert := assert.New(t)
	h, _, uictx := newHandler(t, &mockService{})
	assert.NoError(run(t, h, uictx, "hello"))
	assert.Contains(uictx.last(), "/mode json")
	assert.Empty(h.Editor().Raw())
}

// Build and run a workflow
func Test_command_007(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{agents: []schema.Agent{
		{ID: schema.ParseID("1"), Name: "first"},
		{ID: schema.ParseID("2"), Name: "second"},
	}}
	h, hooks, uictx := newHandler(t, svc)
	require.NoError(t, h.Start(t.Context(), uictx))

	assert.Error(run(t, h, uictx, "/run"))
	assert.NoError(run(t, h, uictx, "/add 1 second ghost"))
	assert.Contains(uictx.last(), "Added step 3: ghost (unknown agent)")
	assert.Equal(3, uictx.status.Steps)
	assert.Equal(ui.TabWorkflows, uictx.status.Tab)

	assert.NoError(run(t, h, uictx, "/steps"))
	assert.Contains(uictx.last(), "**first**")
	assert.Contains(uictx.last(), "ghost")

	assert.Error(run(t, h, uictx, "/rm 4"))
	assert.Error(run(t, h, uictx, "/rm x"))
	assert.NoError(run(t, h, uictx, "/rm 3"))
	assert.Equal(2, h.Workflow().Len())

	assert.NoError(run(t, h, uictx, "/run"))
	require.Len(t, svc.executed, 1)
	ids := []string{}
	for _, step := range svc.executed[0].Steps {
		ids = append(ids, step.AgentID.String())
	}
	assert.Equal([]string{"1", "2"}, ids)
	assert.True(h.Workflow().Empty())
	assert.Equal("wf-1", uictx.status.Result)
	assert.Contains(uictx.last(), `"status": "complete"`)

	// Hooks saw every change
	require.NotEmpty(t, hooks.steps)
	assert.Empty(hooks.steps[len(hooks.steps)-1])
	assert.Len(hooks.steps[0], 3)
}

// A failed run keeps the draft and sets the banner
func Test_command_008(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{}
	h, _, uictx := newHandler(t, svc)

	assert.NoError(run(t, h, uictx, "/add x"))
	svc.fail = errors.New("refused")
	err := run(t, h, uictx, "/run")
	assert.ErrorIs(err, txtai.ErrTransport)
	assert.Equal("Failed to execute workflow", uictx.status.Error)
	assert.Equal(1, h.Workflow().Len())

	// The error stays after a successful action
	svc.fail = nil
	assert.NoError(run(t, h, uictx, "/run"))
	assert.Equal("Failed to execute workflow", uictx.status.Error)
}

// Results and tabs
func Test_command_009(t *testing.T) {
	assert := assert.New(t)
	h, _, uictx := newHandler(t, &mockService{})

	assert.NoError(run(t, h, uictx, "/result"))
	assert.Equal("No workflow result", uictx.last())
	assert.NoError(run(t, h, uictx, "/result wf-7"))
	assert.Contains(uictx.last(), `"wf-7"`)
	assert.Equal("wf-7", uictx.status.Result)

	assert.NoError(run(t, h, uictx, "/tab agents"))
	assert.Equal(ui.TabAgents, uictx.status.Tab)
	assert.NoError(run(t, h, uictx, "/tab"))
	assert.Equal(ui.TabWorkflows, uictx.status.Tab)
	assert.Contains(uictx.last(), "No steps")
	assert.Error(run(t, h, uictx, "/tab other"))
}

// Scrape and misc commands
func Test_command_010(t *testing.T) {
	assert := assert.New(t)
	h, _, uictx := newHandler(t, &mockService{})

	assert.Error(run(t, h, uictx, "/scrape http://example.com"))
	assert.NoError(run(t, h, uictx, "/scrape http://example.com div p"))
	assert.Contains(uictx.last(), "hello from http://example.com")
	assert.Contains(uictx.last(), "1 element")
	assert.NoError(run(t, h, uictx, "/scrape http://example.com none"))
	assert.Contains(uictx.last(), "No elements")

	assert.NoError(run(t, h, uictx, "/help"))
	assert.Contains(uictx.last(), "/scrape")
	err := run(t, h, uictx, "/unknown")
	assert.Error(err)
	assert.True(strings.Contains(err.Error(), "/help"))
}

// An initial draft is kept
func Test_command_011(t *testing.T) {
	assert := assert.New(t)
	ctrl, err := controller.New(&mockService{})
	require.NoError(t, err)
	h := command.New(ctrl, nil, nil, schema.NewWorkflowStep(schema.StringID("a")))
	uictx := new(mockContext)

	assert.Equal(1, h.Workflow().Len())
	assert.NoError(run(t, h, uictx, "/clear"))
	assert.True(h.Workflow().Empty())
	assert.Error(run(t, h, uictx, "/scrape http://example.com p"))
}

// Resolve agent names and identifiers
func Test_command_012(t *testing.T) {
	assert := assert.New(t)
	agents := []schema.Agent{
		{ID: schema.ParseID("1"), Name: "2"},
		{ID: schema.ParseID("2"), Name: "named"},
	}
	agent, ok := command.Resolve(agents, "2")
	assert.True(ok)
	assert.Equal("named", agent.Name)
	agent, ok = command.Resolve(agents, "named")
	assert.True(ok)
	assert.Equal("2", agent.ID.String())
	_, ok = command.Resolve(agents, "missing")
	assert.False(ok)
}
