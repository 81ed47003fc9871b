// Package bubbletea implements ui.Console for interactive terminals using
// the Charm bubbletea framework. It provides a tab bar, an error banner, a
// scrollable history, a text input prompt, a busy indicator, and Markdown
// rendering via glamour.
package bubbletea

import (
	"context"
	"fmt"
	"io"
	"os/user"
	"strings"
	"sync"

	// Packages
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"github.com/mutablelogic/go-txtai/pkg/ui"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Terminal implements ui.Console for interactive terminal sessions.
type Terminal struct {
	program *tea.Program
	events  chan ui.Event // incoming events from the TUI to the caller
	done    chan struct{} // closed when the program exits
	err     error         // error from program.Run
	mu      sync.Mutex
	model   *model
}

// model is the bubbletea model that manages the TUI state.
type model struct {
	viewport  viewport.Model
	input     textinput.Model
	spinner   spinner.Model
	history   []historyEntry
	status    ui.Status
	busy      bool
	width     int
	height    int
	ready     bool
	events    chan<- ui.Event
	renderer  *glamour.TermRenderer
	stylePath string // glamour style ("dark" or "light"), detected before TUI starts
	ctx       *termContext
	quitting  bool
}

type historyEntry struct {
	role      string // "user", "system", "error"
	text      string // rendered text
	rawText   string // raw text before rendering
	markdown  bool   // true if rawText is markdown
	glamoured bool   // true if text was rendered through glamour
}

// termContext implements ui.Context for terminal sessions.
type termContext struct {
	program  *tea.Program
	userName string
}

///////////////////////////////////////////////////////////////////////////////
// MESSAGES (bubbletea internal)

type appendMsg struct {
	role     string
	text     string
	markdown bool
}

type busyMsg struct {
	busy bool
}

type statusMsg struct {
	status ui.Status
}

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")) // blue
	systemStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")) // green
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))  // red
	bannerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	dimStyle       = lipgloss.NewStyle().Faint(true)
)

var tabs = []ui.Tab{ui.TabAgents, ui.TabWorkflows}

// eventBuffer bounds the events queued before the caller receives them.
// Input is refused while the caller is busy, so only a few are ever queued.
const eventBuffer = 8

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new terminal console. The console takes over the terminal
// and should be closed when done.
func New() (*Terminal, error) {
	// Resolve current user
	username := "user"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}

	// Detect terminal background BEFORE starting bubbletea, so that
	// the escape-sequence response is consumed here rather than leaking
	// into bubbletea's input reader.
	stylePath := "dark"
	if !termenv.HasDarkBackground() {
		stylePath = "light"
	}

	events := make(chan ui.Event, eventBuffer)
	tctx := &termContext{
		userName: username,
	}

	// Create bubbles components
	ti := textinput.New()
	ti.Placeholder = "Type a /command, or JSON in json mode..."
	ti.Focus()
	ti.CharLimit = 0 // unlimited

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := &model{
		input:     ti,
		spinner:   sp,
		events:    events,
		stylePath: stylePath,
		ctx:       tctx,
		status:    ui.Status{Tab: ui.TabAgents},
	}

	t := &Terminal{
		events: events,
		done:   make(chan struct{}),
		model:  m,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	t.program = p
	tctx.program = p

	// Run the TUI in a background goroutine
	go func() {
		defer close(t.done)
		if _, err := p.Run(); err != nil {
			t.mu.Lock()
			t.err = err
			t.mu.Unlock()
		}
		close(events)
	}()

	return t, nil
}

///////////////////////////////////////////////////////////////////////////////
// ui.Console IMPLEMENTATION

// Receive blocks until the next user event or until the context is cancelled.
func (t *Terminal) Receive(ctx context.Context) (ui.Event, error) {
	select {
	case <-ctx.Done():
		return ui.Event{}, ctx.Err()
	case evt, ok := <-t.events:
		if !ok {
			t.mu.Lock()
			err := t.err
			t.mu.Unlock()
			if err != nil {
				return ui.Event{}, err
			}
			return ui.Event{}, io.EOF
		}
		return evt, nil
	}
}

// Close shuts down the terminal console.
func (t *Terminal) Close() error {
	t.program.Quit()
	<-t.done
	return nil
}

// Context returns the context for messages which are not a reply to an
// event, such as the greeting.
func (t *Terminal) Context() ui.Context {
	return t.model.ctx
}

///////////////////////////////////////////////////////////////////////////////
// ui.Context IMPLEMENTATION

func (c *termContext) UserName() string { return c.userName }

func (c *termContext) SendText(ctx context.Context, text string) error {
	c.program.Send(appendMsg{role: "system", text: text})
	return nil
}

func (c *termContext) SendMarkdown(ctx context.Context, markdown string) error {
	c.program.Send(appendMsg{role: "system", text: markdown, markdown: true})
	return nil
}

func (c *termContext) SendError(ctx context.Context, err error) error {
	c.program.Send(appendMsg{role: "error", text: err.Error()})
	return nil
}

func (c *termContext) SetBusy(ctx context.Context, busy bool) error {
	c.program.Send(busyMsg{busy: busy})
	return nil
}

func (c *termContext) SetStatus(ctx context.Context, status ui.Status) error {
	c.program.Send(statusMsg{status: status})
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// BUBBLETEA MODEL

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyTab:
			// Switch tabs without typing the command
			if !m.busy {
				m.send("/tab")
			}
			return m, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.input.SetValue("")
			m.send(text)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.viewportHeight())
			m.viewport.YPosition = 1
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.viewportHeight()
		}
		m.input.Width = msg.Width - 4

		// (Re)create glamour renderer with new width and re-render history
		m.newRenderer()
		m.rerenderHistory()
		m.updateViewport()
		return m, nil

	case appendMsg:
		entry := historyEntry{role: msg.role, text: msg.text, rawText: msg.text, markdown: msg.markdown}
		if msg.markdown {
			m.render(&entry)
		}
		m.history = append(m.history, entry)
		m.updateViewport()
		return m, nil

	case busyMsg:
		m.busy = msg.busy
		return m, nil

	case statusMsg:
		m.status = msg.status
		if m.ready {
			m.viewport.Height = m.viewportHeight()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Update text input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	// Forward navigation keys to viewport for scrolling, but block regular
	// typing keys to prevent the viewport jumping on each keystroke.
	if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
		switch keyMsg.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	// Header: tabs, then the error banner when there is one
	header := m.tabBar()
	if m.status.Error != "" {
		header += "\n" + bannerStyle.Render("! "+m.status.Error) + dimStyle.Render("  /dismiss to clear")
	}

	// Status line
	var status string
	if m.busy {
		status = dimStyle.Render(m.spinner.View() + " waiting for the service...")
	} else {
		status = dimStyle.Render(m.status.String() + " · tab to switch · ctrl+c to quit")
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, m.viewport.View(), m.input.View(), status)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// send adds the line to the history and passes it to the caller as an event
func (m *model) send(text string) {
	m.history = append(m.history, historyEntry{role: "user", text: text})
	m.updateViewport()
	m.events <- ui.ParseEvent(m.ctx, text)
}

// viewportHeight is the window less the header, input and status lines
func (m *model) viewportHeight() int {
	header := 1
	if m.status.Error != "" {
		header++
	}
	return max(m.height-header-2, 1)
}

func (m *model) tabBar() string {
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab == m.status.Tab {
			parts = append(parts, activeTabStyle.Render(string(tab)))
		} else {
			parts = append(parts, tabStyle.Render(string(tab)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// render renders a markdown entry through glamour, falling back to
// word-wrapped text.
func (m *model) render(entry *historyEntry) {
	if m.renderer != nil {
		if out, err := m.renderer.Render(entry.rawText); err == nil {
			entry.text = strings.TrimSpace(out)
			entry.glamoured = true
			return
		}
	}
	entry.text = wordwrap.String(entry.rawText, m.wrapWidth())
	entry.glamoured = false
}

// indentText ensures every line has a 2-space indent, matching glamour's
// default left margin so all content is visually consistent.
func indentText(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		if len(line) < 2 || line[:2] != "  " {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

// wrapWidth returns the available text width for content
func (m *model) wrapWidth() int {
	const margin = 4
	return max(m.width-margin, 20)
}

// newRenderer creates a glamour terminal renderer with the current wrap
// width. Uses the pre-detected style path to avoid querying the terminal
// inside bubbletea's event loop.
func (m *model) newRenderer() {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.stylePath),
		glamour.WithWordWrap(m.wrapWidth()),
	)
	if err == nil {
		m.renderer = r
	}
}

// rerenderHistory re-renders markdown entries with the current renderer
// (e.g. after a terminal resize).
func (m *model) rerenderHistory() {
	for i := range m.history {
		if m.history[i].markdown {
			m.render(&m.history[i])
		}
	}
}

func (m *model) updateViewport() {
	var b strings.Builder
	for _, entry := range m.history {
		if entry.role != "" {
			b.WriteString(m.styleRole(entry.role))
		}
		if entry.text != "" {
			if entry.glamoured {
				b.WriteString("\n" + entry.text)
			} else {
				b.WriteString("\n" + indentText(wordwrap.String(entry.text, m.wrapWidth())))
			}
		}
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *model) styleRole(role string) string {
	switch role {
	case "user":
		return userStyle.Render(m.ctx.userName + ":")
	case "system":
		return systemStyle.Render("txtai:")
	case "error":
		return errorStyle.Render("error:")
	default:
		return role + ":"
	}
}
