package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"workflow-toolbox/internal/launcher"
	"workflow-toolbox/internal/logger"
)

const (
	appName = "Workflow Toolbox"
	appID   = "com.workflowtoolbox.launcher"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "toolbox",
	Short: "Launcher for the workflow toolbox desktop tools",
	Long: `toolbox opens a small window with one button per tool. Each tool
runs as an independent process and keeps running when the launcher closes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func run() error {
	log := logger.NewConsoleLogger(logger.ParseLevel(logLevel))

	fyneApp := app.NewWithID(appID)
	window := fyneApp.NewWindow(appName)
	window.CenterOnScreen()

	l := launcher.New(log)
	launcher.NewWindow(window, l)

	log.Info("launcher", "launcher ready", map[string]interface{}{
		"tools": len(launcher.Tools()),
	})

	window.Show()
	fyneApp.Run()
	return nil
}

func main() {
	rootCmd.Flags().StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "log level (debug, info, warn, error)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
