package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTableWriterRender(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"id", "rule"})
	w.AppendRow([]string{"browser", "default"})
	w.AppendRow([]string{"sync", "always"})
	w.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[0], "RULE")
	assert.Contains(t, lines[1], "browser")
	assert.Contains(t, lines[2], "always")
}

func TestPlainTableWriterColumnAlignment(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"name", "x"})
	w.AppendRow([]string{"a-much-longer-name", "1"})
	w.AppendRow([]string{"b", "2"})
	w.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	// Second column starts at the same offset on every line.
	offset := strings.Index(lines[1], "1")
	assert.Equal(t, offset, strings.Index(lines[2], "2"))
}

func TestPlainTableWriterNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"id"})
	w.SetNoHeaders(true)
	w.AppendRow([]string{"browser"})
	w.Render()

	assert.Equal(t, "browser\n", buf.String())
}

func TestPlainTableWriterShortRowIsPadded(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlainTableWriter(&buf)
	w.SetHeaders([]string{"a", "b", "c"})
	w.AppendRow([]string{"only"})
	w.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "only", strings.TrimSpace(lines[1]))
}

func TestFormatterHelpers(t *testing.T) {
	assert.Equal(t, "", str(nil))
	assert.Equal(t, "text", str("text"))
	assert.Equal(t, "true", str(true))
	assert.Equal(t, "3", str(float64(3)))
	assert.Equal(t, "1.5", str(1.5))
	assert.Equal(t, "a,b", joinList([]interface{}{"a", "b"}))
	assert.Equal(t, "true", boolStr(true))
	assert.Equal(t, "false", boolStr(nil))
}
