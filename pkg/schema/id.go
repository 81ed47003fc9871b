package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ID is an opaque identifier assigned by the remote service. It may be a
// JSON string or a JSON number on the wire, and is written back in the
// same form. Two identifiers refer to the same entity when their
// string forms are equal.
type ID struct {
	value   string
	numeric bool
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// StringID returns an identifier which is sent as a JSON string.
func StringID(v string) ID {
	return ID{value: v}
}

// ParseID returns an identifier from user input. Input which is a valid
// JSON number is sent as a number, anything else as a string.
func ParseID(v string) ID {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, `"`) && json.Valid([]byte(v)) {
		var n json.Number
		if err := json.Unmarshal([]byte(v), &n); err == nil {
			return ID{value: n.String(), numeric: true}
		}
	}
	return ID{value: v}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (id ID) String() string {
	return id.value
}

// IsZero returns true for an identifier which was never set.
func (id ID) IsZero() bool {
	return id.value == "" && !id.numeric
}

// Equal compares two identifiers by their string form.
func (id ID) Equal(other ID) bool {
	return id.value == other.value
}

////////////////////////////////////////////////////////////////////////////////
// JSON

func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ID{}
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*id = ID{value: v}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid identifier %s", data)
		}
		*id = ID{value: n.String(), numeric: true}
	}
	return nil
}
