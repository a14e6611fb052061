package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "health",
		Short:   "Check the proxy server health",
		Example: `  mpx health`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			envelope, err := c.Health(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(envelope)
			}

			fmt.Printf("Status: %v\nTimestamp: %v\n",
				envelope["status"], envelope["timestamp"])
			return nil
		},
	}
}
