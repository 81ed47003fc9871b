package agentconfig

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	// Packages
	txtai "github.com/mutablelogic/go-txtai"
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ValidationError maps a form field to the message to show next to it.
type ValidationError map[string]string

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	FieldName = "name"
	FieldType = "type"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// BuildFromTemplate returns the configuration for an agent called name,
// using the catalog template for key. The template defaults are merged
// with overrides one level deep, and an override wins on a key collision.
//
// A blank name or a key which is not in the catalog returns a
// ValidationError carrying every failing field.
func BuildFromTemplate(name, key string, overrides schema.Params) (schema.AgentConfig, error) {
	errs := make(ValidationError)
	if strings.TrimSpace(name) == "" {
		errs[FieldName] = "name required"
	}
	template, ok := Lookup(key)
	if key == "" {
		errs[FieldType] = "agent type required"
	} else if !ok {
		errs[FieldType] = fmt.Sprintf("unknown agent type %q", key)
	}
	if len(errs) > 0 {
		return schema.AgentConfig{}, errs
	}

	// Template is already a copy, so merge in place
	params := template.Params
	if params == nil {
		params = make(schema.Params, len(overrides))
	}
	maps.Copy(params, overrides)

	return schema.AgentConfig{
		Name:   name,
		Type:   template.Type,
		Params: params,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// ERROR

func (e ValidationError) Error() string {
	fields := slices.Sorted(maps.Keys(e))
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = field + ": " + e[field]
	}
	return txtai.ErrBadParameter.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes a ValidationError match txtai.ErrBadParameter.
func (e ValidationError) Is(target error) bool {
	return target == txtai.ErrBadParameter
}

// Field returns the message for a field, or an empty string.
func (e ValidationError) Field(name string) string {
	return e[name]
}
