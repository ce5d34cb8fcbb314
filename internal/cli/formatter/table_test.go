package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	got := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{{"long", "x"}, {"s", "yy"}}))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "A     BB", lines[0])
	assert.Equal(t, "────  ──", lines[1])
	assert.Equal(t, "long  x", lines[2])
	assert.Equal(t, "s     yy", lines[3])
}

func TestRenderAlignedTable_RightAlign(t *testing.T) {
	got := stripANSI(RenderAlignedTable(
		[]string{"NAME", "N"},
		[][]string{{"a", "5"}, {"b", "120"}},
		[]Align{AlignLeft, AlignRight},
	))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "a       5", lines[2])
	assert.Equal(t, "b     120", lines[3])
}

func TestRenderTable_StyledCellsMeasureVisibleWidth(t *testing.T) {
	got := stripANSI(RenderTable([]string{"X", "Y"}, [][]string{{StyleRed.Render("ab"), "z"}}))
	assert.Contains(t, got, "ab  z")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
