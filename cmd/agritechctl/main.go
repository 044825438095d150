package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/config"
	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/pkg/logger"
)

var (
	// Global flags
	envFile string
	verbose bool

	cfg       *config.Config
	catalog   *dataset.Catalog
	appLogger *zap.Logger
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "agritechctl",
	Short: "Inspect the farm dataset and publish reports from the terminal",
	Long: `agritechctl runs the same listing pipeline and reporting jobs as the
agritech server, without starting it.

Tables honour the search, filter, sort and paging options of the web views.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := cfg.Server.LogLevel
		if verbose {
			level = "debug"
		}
		appLogger, err = logger.New(level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		catalog, err = dataset.Load()
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(listCmd, snapshotCmd, publishCmd, pdfCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
