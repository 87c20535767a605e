package main

import (
	"fmt"
	"os"

	"github.com/aretw0/remat/internal/cli"
	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Report how a document's materials resolve against the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		jsonMode, _ := cmd.Flags().GetBool("json")

		err = cli.Inspect(cmd.Context(), cli.InspectOptions{
			Config: cfg,
			Input:  args[0],
			JSON:   jsonMode,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "Emit the report as JSON")
}
