// Command lumeq turns fully-timed experiment programs into flat, timestamped
// hardware event lists.
package main

import (
	"fmt"
	"os"

	"github.com/lumeq/lumeq/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
