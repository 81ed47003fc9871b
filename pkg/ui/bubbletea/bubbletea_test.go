package bubbletea

import (
	"testing"

	// Packages
	spinner "github.com/charmbracelet/bubbles/spinner"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	ui "github.com/mutablelogic/go-txtai/pkg/ui"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (*model, chan ui.Event) {
	t.Helper()
	events := make(chan ui.Event, eventBuffer)
	m := &model{
		input:     textinput.New(),
		spinner:   spinner.New(),
		events:    events,
		stylePath: "dark",
		ctx:       &termContext{userName: "tester"},
		status:    ui.Status{Tab: ui.TabAgents},
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, events
}

func Test_bubbletea_001(t *testing.T) {
	// Enter sends the parsed event and clears the input
	assert := assert.New(t)
	require := require.New(t)
	m, events := newTestModel(t)

	m.input.SetValue("/add first second")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(events, 1)
	evt := <-events
	assert.Equal(ui.EventCommand, evt.Type)
	assert.Equal("add", evt.Command)
	assert.Equal([]string{"first", "second"}, evt.Args)
	assert.Equal("tester", evt.Context.UserName())
	assert.Empty(m.input.Value())
}

func Test_bubbletea_002(t *testing.T) {
	// Input is refused while busy
	assert := assert.New(t)
	m, events := newTestModel(t)

	m.Update(busyMsg{busy: true})
	m.input.SetValue("/agents")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Len(events, 0)
	assert.Equal("/agents", m.input.Value())

	m.Update(busyMsg{busy: false})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if assert.Len(events, 1) {
		assert.Equal("tab", (<-events).Command)
	}
}

func Test_bubbletea_003(t *testing.T) {
	// The error banner appears with the status, and shrinks the history
	assert := assert.New(t)
	m, _ := newTestModel(t)
	height := m.viewport.Height

	assert.NotContains(m.View(), "Failed to load agents")
	m.Update(statusMsg{status: ui.Status{Tab: ui.TabWorkflows, Error: "Failed to load agents"}})
	view := m.View()
	assert.Contains(view, "Failed to load agents")
	assert.Contains(view, "/dismiss")
	assert.Contains(view, "workflows")
	assert.Equal(height-1, m.viewport.Height)

	m.Update(statusMsg{status: ui.Status{Tab: ui.TabWorkflows}})
	assert.NotContains(m.View(), "Failed to load agents")
	assert.Equal(height, m.viewport.Height)
}

func Test_bubbletea_004(t *testing.T) {
	// Messages are kept in the history
	assert := assert.New(t)
	m, _ := newTestModel(t)

	m.Update(appendMsg{role: "system", text: "hello"})
	m.Update(appendMsg{role: "error", text: "bad thing"})
	m.Update(appendMsg{role: "system", text: "**bold**", markdown: true})
	assert.Len(m.history, 3)
	assert.Equal("hello", m.history[0].text)
	assert.Equal("bad thing", m.history[1].text)
	assert.Equal("**bold**", m.history[2].rawText)
	assert.Contains(m.viewport.View(), "bad thing")
}

func Test_bubbletea_005(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("  a\n\n  b", indentText("a\n\n  b"))
}
