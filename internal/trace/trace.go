// Package trace provides functions to read environment variables for enabling
// trace targets in the go-arbor library.
package trace

import (
	"os"
	"strconv"

	"github.com/go-git/go-arbor/utils/trace"
)

// envToTarget maps what environment variables can be used
// to enable specific trace targets.
var envToTarget = map[string]trace.Target{
	"ARBOR_TRACE":       trace.General,
	"ARBOR_TRACE_BUILD": trace.Build,
	"ARBOR_TRACE_DIFF":  trace.Diff,
	"ARBOR_TRACE_PATCH": trace.Patch,
	"ARBOR_TRACE_INDEX": trace.Index,
}

// ReadEnv reads the environment variables and sets the trace targets.
// This is used to enable tracing in the go-arbor library.
func ReadEnv() {
	trace.SetTarget(Env())
}

// Env returns the trace targets enabled by the environment variables.
func Env() trace.Target {
	var target trace.Target
	for k, v := range envToTarget {
		env := os.Getenv(k)
		if val, _ := strconv.ParseBool(env); val {
			target |= v
		}
	}
	return target
}

// Parse returns the targets matching the given names (general, build, diff,
// patch, index). Unknown names are ignored.
func Parse(names []string) trace.Target {
	var target trace.Target
	for _, n := range names {
		switch n {
		case "general":
			target |= trace.General
		case "build":
			target |= trace.Build
		case "diff":
			target |= trace.Diff
		case "patch":
			target |= trace.Patch
		case "index":
			target |= trace.Index
		}
	}
	return target
}
