package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jurgelenas/xbps/internal/cli"
)

var (
	configPath string
	logLevel   string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xbps",
		Short: "Binary package transaction planner",
		Long: `xbps plans binary package transactions: it aggregates the configured
repository indexes, resolves dependencies and conflicts, orders the
result and accounts for download and disk sizes. Plans are printed,
never executed.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (error, warn, info, debug)")

	cli.ConfigPath = &configPath
	cli.LogLevel = &logLevel

	cmd.AddCommand(
		cli.NewSyncCmd(),
		cli.NewInstallCmd(),
		cli.NewRemoveCmd(),
		cli.NewRepoCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
