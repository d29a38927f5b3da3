package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/skinshortcuts/config"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the resolved configuration as JSON",
	Long:  "Print every resolved path and setting the build pipeline would use, for debugging .env and flag resolution.",
	Run:   runDump,
}

func runDump(cmd *cobra.Command, args []string) {
	if err := boot(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(config.Conf, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to serialize configuration: %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}
