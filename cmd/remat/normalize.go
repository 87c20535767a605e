package main

import (
	"fmt"
	"os"

	"github.com/aretw0/remat/internal/cli"
	"github.com/spf13/cobra"
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize <input>",
	Short: "Normalize material identity in a document and write the result",
	Long: `Opens a .gltf or .glb document, resolves every material record against
the catalog, applies the requested transforms and writes the output.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		output, _ := cmd.Flags().GetString("output")
		text, _ := cmd.Flags().GetBool("text")
		scale, _ := cmd.Flags().GetFloat64("scale")
		prune, _ := cmd.Flags().GetBool("prune")
		applyAttrs, _ := cmd.Flags().GetBool("apply-attributes")
		stamp, _ := cmd.Flags().GetBool("stamp-source-files")
		quiet, _ := cmd.Flags().GetBool("quiet")

		err = cli.Normalize(cmd.Context(), cli.NormalizeOptions{
			Config:           cfg,
			Input:            args[0],
			Output:           output,
			Text:             text,
			Scale:            scale,
			Prune:            prune,
			ApplyAttributes:  applyAttrs,
			StampSourceFiles: stamp,
			Quiet:            quiet,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringP("output", "o", "out", "Output path (.glb file, or directory in text mode)")
	normalizeCmd.Flags().Bool("text", false, "Write a .gltf directory instead of a single .glb")
	normalizeCmd.Flags().Float64("scale", 0, "Uniform scene scale factor")
	normalizeCmd.Flags().Bool("prune", false, "Drop material records no primitive references")
	normalizeCmd.Flags().Bool("apply-attributes", false, "Copy catalog attributes into material extras")
	normalizeCmd.Flags().Bool("stamp-source-files", false, "Record game source file paths in material extras (needs --game-dir)")
	normalizeCmd.Flags().BoolP("quiet", "q", false, "Suppress summary output")
}
