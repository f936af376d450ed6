// Package cli provides the command-line interface for Pigment.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/pigment/internal/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pigment",
	Short: "A colour quantizer for images",
	Long: `Pigment reduces an image's colour palette by clustering similar pixel
colours with k-means and repainting each pixel with its cluster's
representative colour.

It can write the colour-reduced image or just report the extracted
palette in hex, rgb or json form.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(quantizeCmd)
}

// newLogger builds the command logger. Verbose mode logs at debug level to
// stderr; otherwise logging is off entirely so command output stays clean.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "pigment",
			Output: os.Stderr,
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "pigment",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
