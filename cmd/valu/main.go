// Command valu classifies raw payloads and converts JSON, YAML and CUE
// documents through the dynamic value model.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/valu/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		// Value errors were already reported by the command's formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || (exitErr.Code == cli.ExitCommandError && exitErr.Err == nil) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
