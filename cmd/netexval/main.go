// Command netexval validates NeTEx transit-schedule documents and datasets.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/netexval/cmd/netexval/commands"
	"github.com/erraggy/netexval/internal/cliutil"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.NewRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		cliutil.WriteError(root.ErrOrStderr(), err)
		return commands.ExitCode(err)
	}
	return 0
}
