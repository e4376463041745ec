package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"workflow-toolbox/internal/automator"
	"workflow-toolbox/internal/config"
	"workflow-toolbox/internal/logger"
)

const (
	appName = "Image Automator"
	appID   = "com.workflowtoolbox.image-automator"
)

var (
	logLevel string
	dataDir  string
)

var rootCmd = &cobra.Command{
	Use:   "image-automator",
	Short: "Batch optimize, crop and export images",
	Long: `image-automator walks an input folder, enhances each image with the
selected preset, crops to 1:1 and 4:3, resizes to exact output dimensions
and writes JPG or PNG exports next to the input.`,
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

	fyneApp := app.NewWithID(appID)
	window := fyneApp.NewWindow(appName)
	window.CenterOnScreen()

	processor := automator.NewProcessor(log)
	automator.NewWindow(window, processor, log, config.SettingsPath(dir))

	log.Info("automator", "automator ready", map[string]interface{}{
		"data_dir": dir,
	})

	window.Show()
	fyneApp.Run()
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "directory for persisted settings")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
