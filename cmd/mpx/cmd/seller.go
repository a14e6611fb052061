package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func sellerCmd() *cobra.Command {
	sellerRoot := &cobra.Command{
		Use:   "seller",
		Short: "Inspect the seller account",
	}

	sellerRoot.AddCommand(
		sellerInfoCmd(),
		sellerTestCmd(),
	)

	return sellerRoot
}

func sellerInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Short:   "Show the seller record for the credential pair",
		Example: `  mpx seller info --api-key KEY --api-secret SECRET`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			info, err := c.SellerInfo(context.Background(), credentials())
			if err != nil {
				return err
			}
			return outputJSON(info)
		},
	}
}

func sellerTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "test",
		Short:   "Verify the credential pair against the marketplace",
		Example: `  mpx seller test --api-key KEY --api-secret SECRET`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			info, err := c.TestConnection(context.Background(), credentials())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(info)
			}

			fmt.Println("Connection OK.")
			return nil
		},
	}
}
