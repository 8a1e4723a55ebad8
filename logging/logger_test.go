package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggersKeepAllLevels(t *testing.T) {
	c := &CapturingLogger{}
	loggers := CapturingLoggers(c)
	loggers.Debugf("sending %d", 1)
	loggers.Error("it broke")

	output := c.Output()
	require.Len(t, output, 2)
	assert.Contains(t, output[0].Message, "DEBUG")
	assert.Contains(t, output[0].Message, "RaceTrack: sending 1")
	assert.Contains(t, output[1].Message, "ERROR")
	assert.Contains(t, output[1].Message, "it broke")

	c.Reset()
	assert.Len(t, c.Output(), 0)
}

func TestCapturedOutputDump(t *testing.T) {
	when := time.Date(2021, 3, 4, 5, 6, 7, 8000000, time.Local)
	output := CapturedOutput{
		{Time: when, Message: "first"},
		{Time: when, Message: "second"},
	}
	var buf bytes.Buffer
	output.Dump(&buf, "  > ")
	assert.Equal(t,
		"  > [2021-03-04 05:06:07.008] first\n  > [2021-03-04 05:06:07.008] second\n",
		buf.String())
}

func TestConsoleLoggersHideDebugUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	ConsoleLoggers(&buf, false).Debug("hidden")
	ConsoleLoggers(&buf, false).Warn("shown")
	assert.False(t, strings.Contains(buf.String(), "hidden"))
	assert.True(t, strings.Contains(buf.String(), "WARN"))
	assert.True(t, strings.Contains(buf.String(), "shown"))

	buf.Reset()
	ConsoleLoggers(&buf, true).Debug("now shown")
	assert.True(t, strings.Contains(buf.String(), "now shown"))
}
