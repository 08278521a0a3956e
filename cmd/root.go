package main

import (
	"fmt"
	"os"

	"asset-manager/internal/shared/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile    string
	logLevel   string
	logBackend string
	logFormat  string

	appLogger logger.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asset-manager",
	Short: "Asset manager access services for open metadata",
	Long: `asset-manager serves the external reference, glossary, lineage and security tag
REST services of one or more metadata server instances, and streams their
change events on the out topic.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(envFile); err != nil && cmd.Flags().Changed("env-file") {
			fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", envFile, err)
		}
		if logLevel != "" || logBackend != "" || logFormat != "" {
			appLogger = logger.NewLoggerWithConfig(logBackend, logLevel, logFormat)
		} else {
			appLogger = logger.NewLogger()
		}
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logBackend, "log-backend", "", "Log backend (logrus or zap)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text or json)")
}
