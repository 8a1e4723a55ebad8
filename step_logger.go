package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/racetrack/racetrack-client/logging"

	"github.com/fatih/color"
)

type ConsoleStepLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

var (
	passLabel = color.New(color.FgGreen).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

func (c *ConsoleStepLogger) StepStarted(name string) {
	fmt.Fprintf(c.Out, "[%s]\n", name)
}

func (c *ConsoleStepLogger) StepFinished(result StepResult, debugOutput logging.CapturedOutput) {
	failed := result.Err != nil
	if failed {
		fmt.Fprintf(c.Out, "  %s", failLabel("FAIL"))
		for _, line := range strings.Split(result.Err.Error(), "\n") {
			fmt.Fprintf(c.Out, " %s\n", line)
		}
	} else if result.Detail != "" {
		fmt.Fprintf(c.Out, "  %s %s\n", passLabel("PASS"), result.Detail)
	} else {
		fmt.Fprintf(c.Out, "  %s\n", passLabel("PASS"))
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}
