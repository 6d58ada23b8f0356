// Package main is the entry point for the planner CLI and API server.
// Its sole responsibility is running the command tree and reporting failure.
// No business logic belongs here.
package main

import (
	"context"
	"os"

	"github.com/pkordes/trip-planner/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
