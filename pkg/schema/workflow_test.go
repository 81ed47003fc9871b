package schema_test

import (
	"encoding/json"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-txtai/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// Identifiers round-trip through JSON
func Test_workflow_001(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	for _, input := range []string{`"abc"`, `7`, `"7"`, `1e3`} {
		var id schema.ID
		require.NoError(json.Unmarshal([]byte(input), &id))
		data, err := json.Marshal(id)
		require.NoError(err)
		assert.Equal(input, string(data))
	}
}

// Parse identifiers
func Test_workflow_002(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(`3`, mustMarshal(t, schema.ParseID("3")))
	assert.Equal(`"x"`, mustMarshal(t, schema.ParseID("x")))
	assert.Equal(`"true"`, mustMarshal(t, schema.ParseID("true")))
	assert.True(schema.ParseID("3").Equal(schema.StringID("3")))
	assert.True(schema.ID{}.IsZero())
}

// An empty request encodes an empty step list
func Test_workflow_003(t *testing.T) {
	assert := assert.New(t)
	assert.JSONEq(`{"steps":[]}`, mustMarshal(t, schema.WorkflowRequest{Steps: []schema.WorkflowStep{}}))
}

// Steps encode as objects
func Test_workflow_004(t *testing.T) {
	assert := assert.New(t)
	step := schema.NewWorkflowStep(schema.StringID("x"))
	assert.JSONEq(`{"agentId":"x","params":{}}`, mustMarshal(t, step))
}

// Results decode verbatim
func Test_workflow_005(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var result schema.WorkflowResult
	assert.True(result.IsEmpty())
	assert.Equal("null", result.String())
	assert.Equal("", result.ID())

	require.NoError(json.Unmarshal([]byte(`{"id":"wf-1","output":[1,2]}`), &result))
	assert.False(result.IsEmpty())
	assert.Equal("wf-1", result.ID())
	assert.Contains(result.String(), "\n  \"output\"")

	var list schema.WorkflowResult
	require.NoError(json.Unmarshal([]byte(`[1,2,3]`), &list))
	assert.Equal("", list.ID())
	assert.JSONEq(`[1,2,3]`, mustMarshal(t, list))
}

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
