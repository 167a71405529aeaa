// Package cli implements the cobra commands of the xbps planning front end.
// Every command only builds and prints plans; execution belongs to an
// external installer.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/jurgelenas/xbps/internal/logger"
	"github.com/jurgelenas/xbps/pkg/config"
	"github.com/jurgelenas/xbps/pkg/transaction"
)

// Shared flag storage, wired up by the root command.
var (
	ConfigPath *string
	LogLevel   *string
)

func loadConfig() (*config.Config, error) {
	path := ""
	if ConfigPath != nil {
		path = *ConfigPath
	}
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine config directory: %w", err)
		}
		path = filepath.Join(configDir, "xbps", "config.yaml")
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.Settings.LogLevel
	if LogLevel != nil && *LogLevel != "" {
		level = *LogLevel
	}
	logger.InitLogger(level)
	return cfg, nil
}

func printPlan(plan *transaction.Plan) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tVERSION\tACTION\tREPOSITORY\tDOWNLOAD")
	for _, e := range plan.Packages() {
		download := "no"
		if e.Download {
			download = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Version, e.Action, e.Repository, download)
	}
	_ = w.Flush()

	stats := plan.Stats()
	fmt.Printf("\n%d install, %d update, %d configure, %d remove (%d to download)\n",
		stats.InstallCount, stats.UpdateCount, stats.ConfigureCount, stats.RemoveCount, stats.DownloadCount)
	fmt.Printf("Download size: %d bytes\n", stats.TotalDownloadSize)
	if stats.TotalInstalledSize > 0 {
		fmt.Printf("Disk space required: %d bytes\n", stats.TotalInstalledSize)
	}
	if stats.TotalRemovedSize > 0 {
		fmt.Printf("Disk space freed: %d bytes\n", stats.TotalRemovedSize)
	}
	if stats.FreeDiskSpaceKnown {
		fmt.Printf("Free space after transaction: %d bytes\n", stats.FreeDiskSpace)
	}
}
