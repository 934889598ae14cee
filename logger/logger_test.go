package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloseWithoutSummary(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false, true)
	Close()
	assert.Empty(t, buf.String())
}

func TestSummaryBlock(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false, true)
	AddSummaryError("passthrough links partially updated", "dir", "dist")
	AddSummaryWarn("slow")
	Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "------------", lines[0])
	assert.Contains(t, lines[1], `"msg":"passthrough links partially updated"`)
	assert.Contains(t, lines[1], `"dir":"dist"`)
	assert.Contains(t, lines[2], `"level":"WARN"`)
	assert.Equal(t, "------------", lines[3])

	buf.Reset()
	Close()
	assert.Empty(t, buf.String())
}

func TestVerboseLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false, true)
	Debug("hidden")
	assert.Empty(t, buf.String())

	InitWriter(&buf, true, true)
	Debug("shown", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
