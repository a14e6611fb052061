// Package cmd implements the mpx CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/sellerbridge/marketplace-proxy/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "mpx",
		Short: "CLI client for the marketplace proxy",
		Long: "mpx is a command-line client for the marketplace proxy API.\n" +
			"It lets you verify credentials, inspect the seller account, and\n" +
			"page through products and orders from the terminal.",
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.mpx.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "proxy server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("api-key", "", "marketplace API key")
	rootCmd.PersistentFlags().
		String("api-secret", "", "marketplace API secret")
	rootCmd.PersistentFlags().
		String("seller-id", "", "marketplace seller id")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key")))
	cobra.CheckErr(viper.BindPFlag("api_secret", rootCmd.PersistentFlags().Lookup("api-secret")))
	cobra.CheckErr(viper.BindPFlag("seller_id", rootCmd.PersistentFlags().Lookup("seller-id")))

	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(sellerCmd())
	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(ordersCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mpx")
	}

	viper.SetEnvPrefix("MPX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func credentials() apiclient.Credentials {
	return apiclient.Credentials{
		APIKey:    viper.GetString("api_key"),
		APISecret: viper.GetString("api_secret"),
		SellerID:  viper.GetString("seller_id"),
	}
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
