package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rshade/rosterview/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Set by the linker.

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run executes the CLI and returns the process exit code. Errors the command
// already rendered, such as a failed load, are not printed again.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := cli.NewRootCmd(version)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && !cli.IsReported(err) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}
