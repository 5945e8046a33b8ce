package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/specforge/config"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "specforge",
	Short: "Compile cloud resource schemas into package specifications",
	Long: `Specforge translates raw cloud-resource schema definitions into
normalized package specifications: typed property trees, connection
sockets, and behavioral functions that a modeling platform consumes.

Quick start:
  specforge generate   # Compile all schemas and emit specs
  specforge watch      # Regenerate on schema changes, serve the spec API

Inspection:
  specforge validate   # Parse and translate schemas without emitting
  specforge list       # List emitted specs from the catalog
  specforge show       # Show one spec's catalog entry`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "specforge.yaml", "config file path")
}

// loadConfig reads the configured file, falling back to built-in defaults
// when the default config file is absent.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}
