package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	var params commandParams
	if !params.Read(args, errOut) {
		return 2
	}
	config, err := loadRunConfig(params.configFile)
	if err != nil {
		fmt.Fprintf(errOut, "Invalid config: %s\n", err)
		return 1
	}

	fmt.Fprintf(out, "Running RaceTrack self-test against %s\n\n", params.serviceURL)
	stepLogger := &ConsoleStepLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results := newSelfTest(params, config, stepLogger).run()

	fmt.Fprintln(out)
	results.Print(out)
	if !results.OK() {
		if !params.debugAll {
			fmt.Fprintf(out, "\nTo see debug output, run:\n  %s\n", params.rerunCommand())
		}
		return 1
	}
	return 0
}
