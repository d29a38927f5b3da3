package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/log"
	"github.com/yaoapp/skinshortcuts/config"
	"github.com/yaoapp/skinshortcuts/shortcuts"
)

var buildForce bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the include document",
	Long:  "Check the hash gate and, if anything relevant changed, merge the shortcuts configuration with the user's overlay and write every configured output path.",
	Run:   runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "rebuild even if the fingerprint is unchanged")
}

func runBuild(cmd *cobra.Command, args []string) {
	if err := boot(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	if _, err := shortcuts.Build(shortcutsConfig(), buildForce); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	log.Info("skinshortcuts: includes up to date at %v", config.Conf.OutputPaths)
	fmt.Println(color.GreenString("includes up to date"))
}

func shortcutsConfig() shortcuts.Config {
	return shortcuts.Config{
		ShortcutsDir:    config.Conf.ShortcutsDir,
		UserDataPath:    config.Conf.UserDataFile,
		OutputPaths:     config.Conf.OutputPaths,
		FingerprintPath: config.Conf.FingerprintFile,
		ScriptVersion:   config.Conf.ScriptVersion,
		SkinDir:         config.Conf.SkinDir,
		HostVersion:     config.Conf.HostVersion,
	}
}
