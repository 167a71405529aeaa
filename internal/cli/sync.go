package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jurgelenas/xbps/internal/logger"
	"github.com/jurgelenas/xbps/pkg/orchestrator"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [REPOSITORY]",
		Short: "Synchronize repository indexes",
		Long: `Synchronize repository indexes by downloading the latest package
lists from the configured repositories. With an argument only that
repository is refreshed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSync,
	}

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	orch, err := orchestrator.New(cfg)
	if err != nil {
		return err
	}

	uri := ""
	if len(args) == 1 {
		uri = args[0]
	}

	logger.Debug("synchronizing repository indexes")
	if err := orch.Sync(cmd.Context(), uri); err != nil {
		return fmt.Errorf("failed to sync repositories: %w", err)
	}

	logger.Info("repository indexes synchronized")
	return nil
}
