package version

import (
	"encoding/json"
	"runtime"
	"testing"

	// Packages
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_version_001(t *testing.T) {
	assert := assert.New(t)

	// Tag wins over branch
	GitTag, GitBranch = "v1.2.3", "main"
	t.Cleanup(func() { GitTag, GitBranch = "", "" })
	assert.Equal("v1.2.3", Version())

	GitTag = ""
	assert.Equal("main", Version())
}

func Test_version_002(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	info := New("txtai")
	assert.Equal("txtai", info.Name)
	assert.Equal(runtime.Version(), info.Compiler)
	assert.NotEmpty(info.Version)

	var decoded map[string]any
	require.NoError(json.Unmarshal([]byte(info.String()), &decoded))
	assert.Equal("txtai", decoded["name"])
}

func Test_version_003(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("0123456789ab", short("0123456789abcdef"))
	assert.Equal("abc", short("abc"))
}
