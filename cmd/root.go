package cmd

import (
	"attendance/config"
	"attendance/db"
	"attendance/logging"
	"attendance/models"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is the application version.
const Version = "0.1.0"

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:           "attendance",
	Short:         "Classroom attendance server with face recognition",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			config.DEBUG_MODE = true
		}
		return logging.Init(config.DEBUG_MODE)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "verbose logging (same as DEBUG_MODE=true)")
}

// openDB connects to the configured database and migrates the schema
func openDB() error {
	if err := db.Init(); err != nil {
		return err
	}
	if err := models.Init(); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
