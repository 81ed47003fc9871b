package controller

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	// Packages
	txtai "github.com/mutablelogic/go-txtai"
	logging "github.com/mutablelogic/go-txtai/pkg/logging"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK SERVICE

// mockService keeps agents in memory. Each call can be made to fail by
// setting the matching error field.
type mockService struct {
	sync.Mutex
	agents     []schema.Agent
	listErr    error
	createErr  error
	executeErr error
	getErr     error
	lists      int
	executed   []schema.WorkflowRequest
}

var _ Service = (*mockService)(nil)

func (m *mockService) ListAgents(ctx context.Context) ([]schema.Agent, error) {
	m.Lock()
	defer m.Unlock()
	m.lists++
	if m.listErr != nil {
		return nil, txtai.ErrTransport.Wrap(m.listErr)
	}
	return append([]schema.Agent(nil), m.agents...), nil
}

func (m *mockService) CreateAgent(ctx context.Context, config schema.AgentConfig) (*schema.Agent, error) {
	m.Lock()
	defer m.Unlock()
	if m.createErr != nil {
		return nil, txtai.ErrTransport.Wrap(m.createErr)
	}
	agent := schema.Agent{ID: schema.StringID(config.Name + "-id"), Name: config.Name, Config: config}
	m.agents = append(m.agents, agent)
	return &agent, nil
}

func (m *mockService) ExecuteWorkflow(ctx context.Context, request schema.WorkflowRequest) (schema.WorkflowResult, error) {
	m.Lock()
	defer m.Unlock()
	if m.executeErr != nil {
		return nil, txtai.ErrTransport.Wrap(m.executeErr)
	}
	m.executed = append(m.executed, request)
	return schema.WorkflowResult(`{"id":"wf-1","status":"complete"}`), nil
}

func (m *mockService) GetWorkflowResult(ctx context.Context, id string) (schema.WorkflowResult, error) {
	m.Lock()
	defer m.Unlock()
	if m.getErr != nil {
		return nil, txtai.ErrTransport.Wrap(m.getErr)
	}
	return schema.WorkflowResult(`{"id":"` + id + `"}`), nil
}

func (m *mockService) set(fn func(m *mockService)) {
	m.Lock()
	defer m.Unlock()
	fn(m)
}

var errNetwork = errors.New("connection refused")

func agentNames(agents []schema.Agent) []string {
	result := make([]string, len(agents))
	for i, agent := range agents {
		result[i] = agent.Name
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

// Test New rejects a nil service
func Test_controller_001(t *testing.T) {
	assert := assert.New(t)
	_, err := New(nil)
	assert.ErrorIs(err, txtai.ErrBadParameter)

	_, err = New(&mockService{}, WithLogger(nil))
	assert.ErrorIs(err, txtai.ErrBadParameter)

	c, err := New(&mockService{}, WithTracer(nil))
	assert.NoError(err)
	assert.NotNil(c.Agents())
	assert.Empty(c.Agents())
	assert.False(c.Loaded())
	assert.Nil(c.Err())
	assert.True(c.Result().IsEmpty())
}

// Test LoadAgents fills the snapshot in service order
func Test_controller_002(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{agents: []schema.Agent{
		{ID: schema.ParseID("2"), Name: "b"},
		{ID: schema.ParseID("1"), Name: "a"},
	}}
	c, err := New(svc)
	require.NoError(t, err)

	assert.NoError(c.LoadAgents(t.Context()))
	assert.True(c.Loaded())
	assert.Equal([]string{"b", "a"}, agentNames(c.Agents()))

	agent, ok := c.Agent(schema.StringID("1"))
	assert.True(ok)
	assert.Equal("a", agent.Name)
	_, ok = c.Agent(schema.StringID("3"))
	assert.False(ok)
}

// A failed first load leaves the snapshot empty and sets the load message
func Test_controller_003(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{listErr: errNetwork}
	c, err := New(svc)
	require.NoError(t, err)

	err = c.LoadAgents(t.Context())
	assert.Error(err)
	assert.ErrorIs(err, txtai.ErrTransport)
	assert.ErrorIs(err, errNetwork)
	assert.Empty(c.Agents())
	assert.False(c.Loaded())
	require.NotNil(t, c.Err())
	assert.Equal("Failed to load agents", c.Err().Message)
	assert.Equal(ActionLoad, c.Err().Action)
}

// A failed reload keeps the previous snapshot
func Test_controller_004(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{agents: []schema.Agent{{ID: schema.StringID("x"), Name: "x"}}}
	c, err := New(svc)
	require.NoError(t, err)
	require.NoError(t, c.LoadAgents(t.Context()))

	svc.set(func(m *mockService) {
		m.agents = nil
		m.listErr = errNetwork
	})
	assert.Error(c.LoadAgents(t.Context()))
	assert.Equal([]string{"x"}, agentNames(c.Agents()))
	assert.Equal("Failed to load agents", c.Err().Error())
}

// CreateAgent reloads the snapshot from the service
func Test_controller_005(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{}
	c, err := New(svc)
	require.NoError(t, err)

	agent, err := c.CreateAgent(t.Context(), schema.AgentConfig{Name: "MyAgent", Type: "txtai.pipeline.Embeddings"})
	assert.NoError(err)
	assert.Equal("MyAgent", agent.Name)
	assert.Equal([]string{"MyAgent"}, agentNames(c.Agents()))
	assert.Equal(1, svc.lists)
	assert.Nil(c.Err())
}

// A failed create leaves the snapshot unchanged and makes no reload
func Test_controller_006(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{agents: []schema.Agent{{ID: schema.StringID("x"), Name: "x"}}}
	c, err := New(svc)
	require.NoError(t, err)
	require.NoError(t, c.LoadAgents(t.Context()))

	svc.set(func(m *mockService) { m.createErr = errNetwork })
	agent, err := c.CreateAgent(t.Context(), schema.AgentConfig{Name: "new"})
	assert.Nil(agent)
	assert.ErrorIs(err, txtai.ErrTransport)
	assert.Equal("Failed to create agent", c.Err().Message)
	assert.Equal([]string{"x"}, agentNames(c.Agents()))
	assert.Equal(1, svc.lists)
}

// A reload failure after create is recorded but the create succeeds
func Test_controller_007(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{listErr: errNetwork}
	c, err := New(svc)
	require.NoError(t, err)

	agent, err := c.CreateAgent(t.Context(), schema.AgentConfig{Name: "new"})
	assert.NoError(err)
	assert.NotNil(agent)
	assert.Empty(c.Agents())
	assert.Equal(ActionLoad, c.Err().Action)
}

// ExecuteWorkflow stores the result, a failure keeps the previous one
func Test_controller_008(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{}
	c, err := New(svc)
	require.NoError(t, err)

	request := schema.WorkflowRequest{Steps: []schema.WorkflowStep{schema.NewWorkflowStep(schema.StringID("x"))}}
	result, err := c.ExecuteWorkflow(t.Context(), request)
	assert.NoError(err)
	assert.Equal("wf-1", result.ID())
	assert.Equal(result, c.Result())
	assert.Len(svc.executed, 1)

	svc.set(func(m *mockService) { m.executeErr = errNetwork })
	_, err = c.ExecuteWorkflow(t.Context(), request)
	assert.ErrorIs(err, txtai.ErrTransport)
	assert.Equal("Failed to execute workflow", c.Err().Message)
	assert.Equal("wf-1", c.Result().ID())
}

// An empty workflow is refused locally
func Test_controller_009(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{}
	c, err := New(svc)
	require.NoError(t, err)

	_, err = c.ExecuteWorkflow(t.Context(), schema.WorkflowRequest{})
	assert.ErrorIs(err, txtai.ErrBadParameter)
	assert.Nil(c.Err())
	assert.Empty(svc.executed)

	_, err = c.FetchResult(t.Context(), "")
	assert.ErrorIs(err, txtai.ErrBadParameter)
	assert.Nil(c.Err())
}

// The error slot is sticky until cleared
func Test_controller_010(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{listErr: errNetwork}
	c, err := New(svc)
	require.NoError(t, err)

	assert.Error(c.LoadAgents(t.Context()))
	svc.set(func(m *mockService) { m.listErr = nil })
	assert.NoError(c.LoadAgents(t.Context()))
	assert.NotNil(c.Err())

	c.ClearError()
	assert.Nil(c.Err())
}

// The error slot holds the last error only
func Test_controller_011(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{listErr: errNetwork, createErr: errNetwork}
	c, err := New(svc)
	require.NoError(t, err)

	assert.Error(c.LoadAgents(t.Context()))
	_, err = c.CreateAgent(t.Context(), schema.AgentConfig{Name: "x"})
	assert.Error(err)
	assert.Equal(ActionCreate, c.Err().Action)
}

// FetchResult stores the result, or sets the fetch message
func Test_controller_012(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{}
	c, err := New(svc)
	require.NoError(t, err)

	result, err := c.FetchResult(t.Context(), "wf-9")
	assert.NoError(err)
	assert.Equal("wf-9", result.ID())
	assert.Equal("wf-9", c.Result().ID())

	svc.set(func(m *mockService) { m.getErr = errNetwork })
	_, err = c.FetchResult(t.Context(), "wf-10")
	assert.Error(err)
	assert.Equal("Failed to fetch workflow result", c.Err().Message)
	assert.Equal("wf-9", c.Result().ID())
}

// A stale snapshot is not applied over a newer one
func Test_controller_013(t *testing.T) {
	assert := assert.New(t)
	c, err := New(&mockService{})
	require.NoError(t, err)

	first, second := c.begin(), c.begin()
	assert.True(c.apply(second, []schema.Agent{{Name: "new"}}))
	assert.False(c.apply(first, []schema.Agent{{Name: "old"}}))
	assert.Equal([]string{"new"}, agentNames(c.Agents()))
}

// Failures are logged
func Test_controller_014(t *testing.T) {
	assert := assert.New(t)
	var buf bytes.Buffer
	c, err := New(&mockService{listErr: errNetwork}, WithLogger(logging.New(&buf, "debug")))
	require.NoError(t, err)

	assert.Error(c.LoadAgents(t.Context()))
	assert.Contains(buf.String(), "Failed to load agents")
	assert.Contains(buf.String(), "connection refused")
	assert.Contains(buf.String(), "controller")
}

// The snapshot returned to callers is a copy
func Test_controller_015(t *testing.T) {
	assert := assert.New(t)
	svc := &mockService{agents: []schema.Agent{{ID: schema.StringID("x"), Name: "x"}}}
	c, err := New(svc)
	require.NoError(t, err)
	require.NoError(t, c.LoadAgents(t.Context()))

	agents := c.Agents()
	agents[0].Name = "changed"
	assert.Equal([]string{"x"}, agentNames(c.Agents()))
}
