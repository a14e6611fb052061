// Package main is the entry point for mpx, the proxy's CLI client.
package main

import (
	"github.com/sellerbridge/marketplace-proxy/cmd/mpx/cmd"
)

func main() {
	cmd.Execute()
}
