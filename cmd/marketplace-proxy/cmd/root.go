// Package cmd implements the CLI commands for the marketplace proxy server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "marketplace-proxy",
	Short: "Authentication and forwarding proxy for the marketplace seller API",
	Long: "A thin proxy that accepts simplified requests carrying marketplace\n" +
		"credentials, translates them into the marketplace's REST endpoint shape,\n" +
		"forwards them over TLS, and relays the response in a normalized envelope.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
