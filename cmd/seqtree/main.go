// Command seqtree grows melodic variation trees from a trunk sequence.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/leandrodaf/seqtree/internal/cli"
)

func main() {
	err := cli.NewRootCommand().ExecuteContext(context.Background())
	if err == nil {
		return
	}

	// Command failures were already printed by the output formatter.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
