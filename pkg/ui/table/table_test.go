package table_test

import (
	"strings"
	"testing"

	// Packages
	table "github.com/mutablelogic/go-txtai/pkg/ui/table"
	assert "github.com/stretchr/testify/assert"
)

type testData [][]any

func (d testData) Header() []string { return []string{"NAME", "VALUE"} }
func (d testData) Len() int         { return len(d) }
func (d testData) Row(i int) []any  { return d[i] }

// Render a table as markdown
func Test_table_001(t *testing.T) {
	assert := assert.New(t)
	out := table.RenderMarkdown(testData{
		{table.Bold{Value: "a"}, "x|y"},
		nil,
		{"", nil},
	})
	lines := strings.Split(out, "\n")
	assert.Len(lines, 4)
	assert.Equal("| NAME | VALUE |", lines[0])
	assert.Equal("|---|---|", lines[1])
	assert.Equal("| **a** | x\\|y |", lines[2])
	assert.Equal("| - | - |", lines[3])
}

// Render a table
func Test_table_002(t *testing.T) {
	assert := assert.New(t)
	out := table.Render(testData{{"alpha", "beta"}})
	assert.Contains(out, "NAME")
	assert.Contains(out, "alpha")
	assert.Contains(out, "beta")
}

// Truncate long cells
func Test_table_003(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("abc", table.Truncate("abc", 5))
	assert.Equal("a b", table.Truncate("a\nb", 5))
	assert.Equal("abcd…", table.Truncate("abcdefgh", 5))
}

// Summary line
func Test_table_004(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("No agents", table.Summary(0, "agent"))
	assert.Equal("1 agent", table.Summary(1, "agent"))
	assert.Equal("3 steps", table.Summary(3, "step"))
}

// Format cell values
func Test_table_005(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("-", table.FormatCell(nil))
	assert.Equal("-", table.FormatCell(""))
	assert.Equal("42", table.FormatCell(42))
	assert.Equal("-", table.FormatCell(table.Bold{Value: ""}))
}
