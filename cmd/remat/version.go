package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/remat"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of remat",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("remat version %s\n", strings.TrimSpace(remat.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
