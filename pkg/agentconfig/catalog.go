// Package agentconfig produces agent configuration documents, either by
// merging user choices into a catalog template or by parsing a
// hand-authored document.
//
// The catalog is a closed table of templates. Adding an agent type means
// adding a row to the table; the merge rule is the same for every entry.
package agentconfig

import (
	// Packages
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Template is a catalog entry which provides the remote type name and
// default parameters for one category of agent.
type Template struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Params      schema.Params `json:"params"`
}

// ModelOption is a selectable model path for embeddings agents.
type ModelOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Embeddings   = "embeddings"
	Extractor    = "extractor"
	Segmentation = "segmentation"
	Similarity   = "similarity"
)

const (
	// The parameter which carries the model path for embeddings agents
	ParamPath = "path"
)

var catalog = []Template{
	{
		Key:         Embeddings,
		Name:        "Embeddings",
		Description: "Create and search text embeddings",
		Type:        "txtai.pipeline.Embeddings",
		Params:      schema.Params{ParamPath: "sentence-transformers/all-MiniLM-L6-v2"},
	},
	{
		Key:         Extractor,
		Name:        "Extractor",
		Description: "Extract answers from text",
		Type:        "txtai.pipeline.Extractor",
		Params:      schema.Params{"embeddings": "embeddings"},
	},
	{
		Key:         Segmentation,
		Name:        "Segmentation",
		Description: "Split text into segments",
		Type:        "txtai.pipeline.Segmentation",
		Params:      schema.Params{"sentences": true},
	},
	{
		Key:         Similarity,
		Name:        "Similarity",
		Description: "Calculate text similarity scores",
		Type:        "txtai.pipeline.Similarity",
		Params:      schema.Params{"embeddings": "embeddings"},
	},
}

var models = []ModelOption{
	{Value: "sentence-transformers/all-MiniLM-L6-v2", Label: "MiniLM-L6 (Default)"},
	{Value: "sentence-transformers/all-mpnet-base-v2", Label: "MPNet Base"},
	{Value: "sentence-transformers/multi-qa-mpnet-base-dot-v1", Label: "Multi-QA MPNet"},
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Templates returns a copy of the catalog, in display order.
func Templates() []Template {
	result := make([]Template, len(catalog))
	for i, t := range catalog {
		result[i] = t.clone()
	}
	return result
}

// Keys returns the catalog keys, in display order.
func Keys() []string {
	keys := make([]string, len(catalog))
	for i, t := range catalog {
		keys[i] = t.Key
	}
	return keys
}

// Lookup returns a copy of the template for key.
func Lookup(key string) (Template, bool) {
	for _, t := range catalog {
		if t.Key == key {
			return t.clone(), true
		}
	}
	return Template{}, false
}

// Models returns the selectable embeddings models. The first is the
// default.
func Models() []ModelOption {
	return append([]ModelOption(nil), models...)
}

// DefaultModel returns the default embeddings model path.
func DefaultModel() string {
	return models[0].Value
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (t Template) clone() Template {
	t.Params = t.Params.Clone()
	return t
}
