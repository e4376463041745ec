package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"workflow-toolbox/internal/config"
	"workflow-toolbox/internal/logger"
	"workflow-toolbox/internal/tracker"
)

const (
	appName = "Daily Tracker"
	appID   = "com.workflowtoolbox.daily-tracker"
)

var (
	logLevel string
	dataDir  string
)

var rootCmd = &cobra.Command{
	Use:   "daily-tracker",
	Short: "One note, status and progress entry per day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	log := logger.NewConsoleLogger(logger.ParseLevel(logLevel))

	dir := dataDir
	if dir == "" {
		var err error
		dir, err = config.DataDir()
		if err != nil {
			return err
		}
	}

	db, err := tracker.NewDB(config.TrackerDBPath(dir))
	if err != nil {
		return fmt.Errorf("open tracker storage: %w", err)
	}

	repo := tracker.NewRepository(db)
	service := tracker.NewService(repo, log)

	fyneApp := app.NewWithID(appID)
	window := fyneApp.NewWindow(appName)
	window.CenterOnScreen()

	tracker.NewWindow(window, service, log)

	log.Info("tracker", "tracker ready", map[string]interface{}{
		"data_dir": dir,
	})

	window.Show()
	fyneApp.Run()
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "directory for the tracker database")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
