package main

import (
	"fmt"
	"os"

	"github.com/aretw0/remat/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "remat",
	Short: "Remat re-associates game material identity with mesh documents",
	Long: `Remat post-processes glTF mesh documents for game asset pipelines.
It normalizes material records against a catalog of game definitions,
applies queued transforms and writes self-contained output.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default .remat.yaml)")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file (.json/.yaml) or loam directory")
	rootCmd.PersistentFlags().String("game-dir", "", "Game installation directory")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// loadConfig merges the config file, environment and persistent flags.
func loadConfig(cmd *cobra.Command) (cli.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := cli.LoadConfig(configPath)
	if err != nil {
		return cli.Config{}, err
	}

	if cmd.Flags().Changed("catalog") {
		cfg.CatalogPath, _ = cmd.Flags().GetString("catalog")
	}
	if cmd.Flags().Changed("game-dir") {
		cfg.GameDir, _ = cmd.Flags().GetString("game-dir")
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	}
	return cfg, nil
}
