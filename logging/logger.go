package logging

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldlog"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// CapturedMessage is a single line of log output kept by a CapturingLogger.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger is an ldlog.BaseLogger that keeps every message in memory instead of writing
// it anywhere, so that the output can be shown later only if it turns out to be relevant.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Println(values ...interface{}) {
	l.add(fmt.Sprintln(values...))
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.add(fmt.Sprintf(message, args...))
}

func (l *CapturingLogger) add(message string) {
	if n := len(message); n > 0 && message[n-1] == '\n' {
		message = message[:n-1]
	}
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: message})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Reset discards everything captured so far.
func (l *CapturingLogger) Reset() {
	l.lock.Lock()
	l.output = nil
	l.lock.Unlock()
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}

// ConsoleLoggers returns loggers that write to dest with the standard RaceTrack prefix. Debug
// output is only enabled if debug is true.
func ConsoleLoggers(dest io.Writer, debug bool) ldlog.Loggers {
	return loggersFor(log.New(dest, "", log.LstdFlags), debug)
}

// CapturingLoggers returns loggers whose output goes only to the given CapturingLogger.
func CapturingLoggers(c *CapturingLogger) ldlog.Loggers {
	return loggersFor(c, true)
}

// NullLoggers returns loggers that discard everything.
func NullLoggers() ldlog.Loggers {
	return ldlog.NewDisabledLoggers()
}

func loggersFor(base ldlog.BaseLogger, debug bool) ldlog.Loggers {
	loggers := ldlog.Loggers{}
	loggers.SetBaseLogger(base)
	loggers.SetPrefix("RaceTrack:")
	if debug {
		loggers.SetMinLevel(ldlog.Debug)
	} else {
		loggers.SetMinLevel(ldlog.Info)
	}
	return loggers
}
