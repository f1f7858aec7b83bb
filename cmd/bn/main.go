// Package main is the entrypoint for bn, the battery notifier.
// bn is meant to be run periodically; each run checks one battery once.
package main

import "github.com/bn-notify/bn/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
