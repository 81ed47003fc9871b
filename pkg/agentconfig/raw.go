package agentconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Packages
	txtai "github.com/mutablelogic/go-txtai"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ParseError is returned when a hand-authored configuration document
// cannot be parsed. No partial configuration accompanies it.
type ParseError struct {
	Message string
	Err     error
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	msgInvalidJSON = "invalid JSON configuration"
	msgInvalidYAML = "invalid YAML configuration"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ParseRaw parses text as a JSON configuration document and returns it
// as-is: no template merge and no catalog validation is applied. Numbers
// are kept verbatim. The document must be a single JSON object.
func ParseRaw(text string) (schema.AgentConfig, error) {
	var doc map[string]any
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return schema.AgentConfig{}, &ParseError{Message: msgInvalidJSON, Err: err}
	} else if doc == nil {
		return schema.AgentConfig{}, &ParseError{Message: msgInvalidJSON, Err: errors.New("document is not an object")}
	}

	// Trailing content after the document is malformed input
	if _, err := dec.Token(); err != io.EOF {
		return schema.AgentConfig{}, &ParseError{Message: msgInvalidJSON, Err: errors.New("unexpected content after document")}
	}

	return schema.NewAgentConfig(doc), nil
}

// ParseRawYAML parses text as a YAML configuration document, with the
// same contract as ParseRaw.
func ParseRawYAML(text string) (schema.AgentConfig, error) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return schema.AgentConfig{}, &ParseError{Message: msgInvalidYAML, Err: err}
	} else if doc == nil {
		return schema.AgentConfig{}, &ParseError{Message: msgInvalidYAML, Err: errors.New("document is not a mapping")}
	}
	return schema.NewAgentConfig(normalise(doc).(map[string]any)), nil
}

// ParseValue parses a single parameter value as YAML, so numbers, booleans,
// lists and mappings keep their type. Empty text is the empty string.
func ParseValue(text string) (any, error) {
	var value any
	if err := yaml.Unmarshal([]byte(text), &value); err != nil {
		return nil, &ParseError{Message: msgInvalidYAML, Err: err}
	} else if value == nil {
		return text, nil
	}
	return normalise(value), nil
}

// ReadFile reads a configuration document from a file. Files with a
// .yaml or .yml extension are parsed as YAML, anything else as JSON.
func ReadFile(path string) (schema.AgentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.AgentConfig{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseRawYAML(string(data))
	default:
		return ParseRaw(string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	}
}

///////////////////////////////////////////////////////////////////////////////
// ERROR

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes a ParseError match txtai.ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == txtai.ErrParse
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// normalise converts the map[any]any values yaml produces for non-string
// keys into map[string]any, so the document can be encoded as JSON.
func normalise(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for key, value := range v {
			v[key] = normalise(value)
		}
		return v
	case map[any]any:
		result := make(map[string]any, len(v))
		for key, value := range v {
			result[fmt.Sprint(key)] = normalise(value)
		}
		return result
	case []any:
		for i, value := range v {
			v[i] = normalise(value)
		}
		return v
	default:
		return v
	}
}
