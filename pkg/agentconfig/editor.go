package agentconfig

import (
	"fmt"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Mode selects how the editor produces a configuration.
type Mode int

// Editor holds the state of the agent editor form: the interaction mode,
// the selected catalog entry, the agent name, the embeddings model and
// the raw document text. It is not safe for concurrent use.
type Editor struct {
	mode  Mode
	key   string
	name  string
	model string
	raw   strings.Builder
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ModeVisual Mode = iota // Build from a catalog template
	ModeRaw                // Parse a hand-authored document
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewEditor returns an editor in visual mode with the embeddings template
// and the default model selected.
func NewEditor() *Editor {
	return &Editor{
		mode:  ModeVisual,
		key:   Embeddings,
		model: DefaultModel(),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e *Editor) Mode() Mode {
	return e.mode
}

func (e *Editor) SetMode(mode Mode) {
	e.mode = mode
}

// Type returns the selected catalog key.
func (e *Editor) Type() string {
	return e.key
}

// SelectType makes key the active template. Keys which are not in the
// catalog are ignored.
func (e *Editor) SelectType(key string) {
	if _, ok := Lookup(key); ok {
		e.key = key
	}
}

func (e *Editor) Name() string {
	return e.name
}

func (e *Editor) SetName(name string) {
	e.name = name
}

// Model returns the embeddings model path.
func (e *Editor) Model() string {
	return e.model
}

// SetModel sets the embeddings model path. Any path is accepted, not only
// those returned by Models.
func (e *Editor) SetModel(model string) {
	e.model = model
}

// Raw returns the raw document text.
func (e *Editor) Raw() string {
	return e.raw.String()
}

// SetRaw replaces the raw document text.
func (e *Editor) SetRaw(text string) {
	e.raw.Reset()
	e.raw.WriteString(text)
}

// AppendRaw appends a line to the raw document text.
func (e *Editor) AppendRaw(line string) {
	if e.raw.Len() > 0 {
		e.raw.WriteByte('\n')
	}
	e.raw.WriteString(line)
}

// Build returns the configuration for the current form state. In visual
// mode the selected model is the only override, and only for embeddings
// agents. In raw mode the document text is parsed with ParseRaw.
func (e *Editor) Build() (schema.AgentConfig, error) {
	if e.mode == ModeRaw {
		return ParseRaw(e.Raw())
	}
	var overrides schema.Params
	if e.key == Embeddings {
		overrides = schema.Params{ParamPath: e.model}
	}
	return BuildFromTemplate(e.name, e.key, overrides)
}

// Summary describes the agent the editor would create in visual mode.
func (e *Editor) Summary() string {
	template, ok := Lookup(e.key)
	if !ok {
		return ""
	}
	source := "default configuration"
	if e.key == Embeddings {
		source = "selected model"
	}
	return fmt.Sprintf("This will create a %s agent using the %s.", strings.ToLower(template.Name), source)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Mode) String() string {
	switch m {
	case ModeVisual:
		return "visual"
	case ModeRaw:
		return "json"
	default:
		return "unknown"
	}
}

// ParseMode returns the mode for its name.
func ParseMode(v string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "visual", "form":
		return ModeVisual, true
	case "json", "raw":
		return ModeRaw, true
	default:
		return ModeVisual, false
	}
}
