// Package main is the entry point for the marketplace proxy server.
package main

import (
	"os"

	"github.com/sellerbridge/marketplace-proxy/cmd/marketplace-proxy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
