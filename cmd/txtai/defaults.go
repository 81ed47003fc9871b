package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	// Packages
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Defaults is a persistent key-value store backed by a JSON file on disk.
// Values are kept as raw JSON so typed accessors can decode them.
type Defaults struct {
	mu   sync.RWMutex
	path string
	data map[string]json.RawMessage
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	keyWorkflow = "workflow"
	keyType     = "type"
	keyModel    = "model"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewDefaults creates a Defaults store at the given file path.
// If the file exists, its contents are loaded; otherwise the store starts empty.
func NewDefaults(path string) (*Defaults, error) {
	d := &Defaults{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	// Load existing file (ignore if it doesn't exist)
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(&d.data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return d, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetString retrieves a string value by key. Returns empty string if the key
// does not exist or the value is not a string.
func (d *Defaults) GetString(key string) string {
	var v string
	if !d.get(key, &v) {
		return ""
	}
	return v
}

// Set stores a value by key and persists the store to disk.
// Pass nil to remove a key.
func (d *Defaults) Set(key string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if value == nil {
		delete(d.data, key)
	} else if data, err := json.Marshal(value); err != nil {
		return err
	} else {
		d.data[key] = data
	}
	return d.save()
}

// Steps returns the stored workflow draft, or nil if there is none.
func (d *Defaults) Steps() []schema.WorkflowStep {
	var steps []schema.WorkflowStep
	if !d.get(keyWorkflow, &steps) {
		return nil
	}
	return steps
}

// SetSteps stores the workflow draft. An empty draft removes the key.
func (d *Defaults) SetSteps(steps []schema.WorkflowStep) error {
	if len(steps) == 0 {
		return d.Set(keyWorkflow, nil)
	}
	return d.Set(keyWorkflow, steps)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// get decodes the value for key into v, and returns false if the key does
// not exist or cannot be decoded.
func (d *Defaults) get(key string, v any) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	data, exists := d.data[key]
	if !exists {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// save writes the store to disk as indented JSON, creating parent directories
// as needed.
func (d *Defaults) save() error {
	if err := os.MkdirAll(filepath.Dir(d.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(d.path, data, 0600)
}
