package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewRepoCmd creates the repo command with its subcommands.
func NewRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage configured repositories",
	}

	cmd.AddCommand(newRepoListCmd())

	return cmd
}

func newRepoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured repositories",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tURL\tENABLED")
			for _, repo := range cfg.Repositories {
				fmt.Fprintf(w, "%s\t%s\t%t\n", repo.Name, repo.URL, repo.Enabled)
			}
			return w.Flush()
		},
	}
}
