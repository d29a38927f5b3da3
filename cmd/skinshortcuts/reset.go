package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/skinshortcuts/shortcuts"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard user customizations and rebuild",
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Discard the entire user-data overlay",
	Run:   runResetAll,
}

var resetMenusCmd = &cobra.Command{
	Use:   "menus",
	Short: "Discard menu overrides, keeping view selections",
	Run:   runResetMenus,
}

var resetViewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Discard view selections, keeping menu overrides",
	Run:   runResetViews,
}

var clearWidgetCmd = &cobra.Command{
	Use:   "clear-widget <menu> <item>",
	Short: "Remove one item's custom-widget properties",
	Args:  cobra.ExactArgs(2),
	Run:   runClearWidget,
}

func init() {
	resetCmd.AddCommand(resetAllCmd)
	resetCmd.AddCommand(resetMenusCmd)
	resetCmd.AddCommand(resetViewsCmd)
	resetCmd.AddCommand(clearWidgetCmd)
}

func runResetAll(cmd *cobra.Command, args []string) {
	runReset(func() (bool, error) { return shortcuts.ResetAll(shortcutsConfig()) })
}

func runResetMenus(cmd *cobra.Command, args []string) {
	runReset(func() (bool, error) { return shortcuts.ResetMenus(shortcutsConfig()) })
}

func runResetViews(cmd *cobra.Command, args []string) {
	runReset(func() (bool, error) { return shortcuts.ResetViews(shortcutsConfig()) })
}

func runClearWidget(cmd *cobra.Command, args []string) {
	menuName, itemName := args[0], args[1]
	runReset(func() (bool, error) { return shortcuts.ClearCustomWidget(shortcutsConfig(), menuName, itemName) })
}

func runReset(action func() (bool, error)) {
	if err := boot(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	if _, err := action(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	fmt.Println(color.GreenString("reset complete, includes rebuilt"))
}
