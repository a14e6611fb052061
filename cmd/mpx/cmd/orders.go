package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func ordersCmd() *cobra.Command {
	var (
		page   int
		size   int
		status string
	)

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List the seller's orders",
		Example: `  # First page with defaults
  mpx orders --api-key KEY --api-secret SECRET --seller-id 12345

  # Only orders awaiting shipment
  mpx orders --status Created`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			orders, err := c.Orders(
				context.Background(), credentials(), page, size, status,
			)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(orders)
			}

			return printPayloadTable(orders)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&size, "size", 0, "page size")
	cmd.Flags().StringVar(&status, "status", "", "order status filter")

	return cmd
}
