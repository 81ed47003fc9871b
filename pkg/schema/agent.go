package schema

import (
	"bytes"
	"encoding/json"
	"maps"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Params is a schema-less parameter document for a remote pipeline. Its
// shape is defined by the remote service, not by this package.
type Params map[string]any

// AgentConfig is the document submitted to create an agent. Top-level keys
// other than name, type and params are kept in Extra, so hand-authored
// documents are transmitted verbatim.
type AgentConfig struct {
	Name   string         `json:"name,omitempty" yaml:"name"`
	Type   string         `json:"type,omitempty" yaml:"type"`
	Params Params         `json:"params,omitempty" yaml:"params"`
	Extra  map[string]any `json:"-" yaml:"-"`
}

// Agent is an agent persisted by the remote service.
type Agent struct {
	ID     ID          `json:"id"`
	Name   string      `json:"name"`
	Config AgentConfig `json:"config"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	keyName   = "name"
	keyType   = "type"
	keyParams = "params"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewAgentConfig returns a configuration from a decoded document. Values
// under name, type or params with an unexpected shape, and an empty name
// or type, are kept in Extra under the same key rather than dropped.
func NewAgentConfig(doc map[string]any) AgentConfig {
	var config AgentConfig
	for key, value := range doc {
		switch key {
		case keyName:
			if v, ok := value.(string); ok && v != "" {
				config.Name = v
				continue
			}
		case keyType:
			if v, ok := value.(string); ok && v != "" {
				config.Type = v
				continue
			}
		case keyParams:
			if v, ok := value.(map[string]any); ok {
				config.Params = Params(v)
				continue
			}
		}
		if config.Extra == nil {
			config.Extra = make(map[string]any)
		}
		config.Extra[key] = value
	}
	return config
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Document returns the configuration as a single key-value document.
func (c AgentConfig) Document() map[string]any {
	doc := make(map[string]any, len(c.Extra)+3)
	maps.Copy(doc, c.Extra)
	if c.Name != "" {
		doc[keyName] = c.Name
	}
	if c.Type != "" {
		doc[keyType] = c.Type
	}
	if c.Params != nil {
		doc[keyParams] = map[string]any(c.Params)
	}
	return doc
}

// Clone returns a copy of the parameters. Nested values are shared.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

////////////////////////////////////////////////////////////////////////////////
// JSON

func (c AgentConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Document())
}

func (c *AgentConfig) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	*c = NewAgentConfig(doc)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (c AgentConfig) String() string {
	return types.Stringify(c)
}

func (a Agent) String() string {
	return types.Stringify(a)
}
