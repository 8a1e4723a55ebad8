package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alessio/shellescape"
)

const selfTestCommand = "test"

type commandParams struct {
	program    string
	serviceURL string
	configFile string
	screenshot string
	logFile    string
	timeout    time.Duration
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	c.program = args[0]
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.serviceURL, "url", "", "RaceTrack server base URL")
	fs.StringVar(&c.configFile, "config", "", "YAML file with testSet/testCase field values")
	fs.StringVar(&c.screenshot, "screenshot", "", "image file to upload as a screenshot")
	fs.StringVar(&c.logFile, "log", "", "file to upload as a log")
	fs.DurationVar(&c.timeout, "timeout", 0, "timeout for each request (default 10s)")
	fs.BoolVar(&c.debug, "debug", false, "show debug logging for failed steps")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show debug logging for all steps")
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s -url URL [options] %s\n", args[0], selfTestCommand)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if c.serviceURL == "" {
		fmt.Fprintln(errOut, "-url is required")
		fs.Usage()
		return false
	}
	if fs.NArg() != 1 || fs.Arg(0) != selfTestCommand {
		fmt.Fprintf(errOut, "expected the %q command\n", selfTestCommand)
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand returns a shell command line that repeats this run with debug output enabled.
func (c *commandParams) rerunCommand() string {
	var b commandBuilder
	b.add(c.program, "-url", c.serviceURL)
	if c.configFile != "" {
		b.add("-config", c.configFile)
	}
	if c.screenshot != "" {
		b.add("-screenshot", c.screenshot)
	}
	if c.logFile != "" {
		b.add("-log", c.logFile)
	}
	if c.timeout != 0 {
		b.add("-timeout", c.timeout.String())
	}
	b.add("-debug-all", selfTestCommand)
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
