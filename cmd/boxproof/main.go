// Command boxproof is the layout conformance harness CLI.
package main

import (
	"fmt"
	"os"

	"github.com/boxproof/boxproof/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
