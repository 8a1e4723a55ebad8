package main

import (
	"fmt"
	"io"
)

type Results struct {
	Steps    []StepResult
	Failures []StepResult
}

type StepResult struct {
	Name   string
	Detail string
	Err    error
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

func (r *Results) add(result StepResult) {
	r.Steps = append(r.Steps, result)
	if result.Err != nil {
		r.Failures = append(r.Failures, result)
	}
}

func (r Results) Print(dest io.Writer) {
	if r.OK() {
		fmt.Fprintf(dest, "All %d steps passed\n", len(r.Steps))
		return
	}
	fmt.Fprintf(dest, "%d of %d steps failed:\n", len(r.Failures), len(r.Steps))
	for _, f := range r.Failures {
		fmt.Fprintf(dest, "  %s: %s\n", f.Name, f.Err)
	}
}
