// Command tempo plans a week of tasks into the hours you are available.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/adapter/cli/availability"
	"github.com/felixgeelhaar/tempo/adapter/cli/schedule"
	"github.com/felixgeelhaar/tempo/adapter/cli/task"
	"github.com/felixgeelhaar/tempo/pkg/observability"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Warnings only until the config has been read.
	cli.SetLogger(observability.NewLogger(observability.DefaultLogConfig()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, cmd := range []*cobra.Command{availability.Cmd, task.Cmd, schedule.Cmd} {
		cli.AddCommand(cmd)
	}
	return cli.Execute(ctx)
}
