// Package main is the entry point for the streaming XML validation CLI.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/farukalpay/xml-lib-sub000/cmd"
	"github.com/farukalpay/xml-lib-sub000/internal/constants"
)

// Version information injected at build time via ldflags.
var version = "dev"

// init updates the version variable with an injected build-time value.
func init() {
	if version != "dev" {
		constants.Version = version
	}
}

// main executes the root command and exits with status code 1 on failure.
func main() {
	if err := fang.Execute(context.Background(), cmd.GetRootCmd()); err != nil {
		os.Exit(1)
	}
}
