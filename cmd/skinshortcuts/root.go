package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/gou/application"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/skinshortcuts/config"
)

var appPath string

var rootCmd = &cobra.Command{
	Use:   "skinshortcuts",
	Short: "Compile skin-menu includes from the shortcuts configuration and the user's customizations",
	Long:  "skinshortcuts reads the declarative shortcuts configuration and the user's overlay, merges them, and writes the resulting <include> document the skin consumes at runtime.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&appPath, "app", "", "application root directory (defaults to SKINSHORTCUTS_ROOT or the current directory)")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

// boot resolves the application root, loads Conf and the application
// file abstraction every pipeline package reads through. It returns an
// error when the working directory or the application root cannot be
// opened.
func boot() error {
	root := appPath
	if root == "" {
		root = os.Getenv("SKINSHORTCUTS_ROOT")
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = cwd
	}

	config.Conf = config.LoadWithRoot(root)
	config.ApplyMode()

	app, err := application.OpenFromDisk(config.Conf.Root)
	if err != nil {
		return fmt.Errorf("open application root %s: %w", config.Conf.Root, err)
	}
	application.Load(app)

	log.Info("skinshortcuts: booted from %s", config.Conf.Root)
	return nil
}
