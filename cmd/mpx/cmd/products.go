package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	var (
		page int
		size int
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the seller's products",
		Example: `  # First page with defaults
  mpx products --api-key KEY --api-secret SECRET --seller-id 12345

  # Page through larger result sets
  mpx products --page 3 --size 100`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			products, err := c.Products(context.Background(), credentials(), page, size)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(products)
			}

			return printPayloadTable(products)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&size, "size", 0, "page size")

	return cmd
}
