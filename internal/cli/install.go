package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jurgelenas/xbps/pkg/model"
	"github.com/jurgelenas/xbps/pkg/orchestrator"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var preserve bool

	cmd := &cobra.Command{
		Use:   "install [PACKAGE[@CONSTRAINT]...]",
		Short: "Plan the installation of packages",
		Long: `Resolve one or more packages against the configured repositories and
print the resulting transaction plan. Dependencies are resolved
recursively; nothing is installed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args, model.ActionInstall, preserve)
		},
	}

	cmd.Flags().BoolVar(&preserve, "preserve", false, "Keep installed configuration when updating")

	return cmd
}

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [PACKAGE...]",
		Short: "Plan the removal of packages",
		Long: `Build and print the transaction plan removing one or more installed
packages, including the reverse dependency check. Nothing is removed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args, model.ActionRemove, false)
		},
	}

	return cmd
}

func runPlan(cmd *cobra.Command, args []string, action model.Action, preserve bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	orch, err := orchestrator.New(cfg)
	if err != nil {
		return err
	}

	requests := make([]orchestrator.Request, 0, len(args))
	for _, arg := range args {
		name, constraint := arg, ""
		if i := strings.Index(arg, "@"); i >= 0 {
			name, constraint = arg[:i], arg[i+1:]
		}
		requests = append(requests, orchestrator.Request{
			Name:              name,
			VersionConstraint: constraint,
			Action:            action,
			Preserve:          preserve,
		})
	}

	plan, err := orch.Plan(cmd.Context(), requests)
	if err != nil {
		return fmt.Errorf("failed to prepare transaction: %w", err)
	}

	printPlan(plan)
	return nil
}
