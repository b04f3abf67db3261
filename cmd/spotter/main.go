// Package main is the single-binary entrypoint for Spotter —
// the gym accountability engine: log workouts, keep streaks, settle scores.
package main

import "github.com/spotter-app/spotter/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
