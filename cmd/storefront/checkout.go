package main

import (
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(c *cli) *cobra.Command {
	var form domain.DeliveryForm

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checkout := c.app.Checkout()
			if _, err := checkout.PlaceOrder(cmd.Context(), form); err != nil {
				return fail(checkout.Notice(), err)
			}
			renderSuccess(cmd.OutOrStdout(), checkout.Confirmation())
			return nil
		},
	}

	// the server validates the form
	fs := cmd.Flags()
	fs.StringVar(&form.FullName, "full-name", "", "recipient full name")
	fs.StringVar(&form.Phone, "phone", "", "contact phone")
	fs.StringVar(&form.AddressLine1, "address", "", "address line")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.Pincode, "pincode", "", "postal code")
	return cmd
}

func newOrdersCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List placed orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders := c.app.Orders()
			if err := orders.Load(cmd.Context()); err != nil {
				return fail(orders.Notice(), err)
			}
			renderOrders(cmd.OutOrStdout(), orders.Orders())
			return nil
		},
	}
}
