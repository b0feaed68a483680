package main

import (
	"fmt"
	"strconv"

	"github.com/niksmo/storefront/internal/core/service"
	"github.com/spf13/cobra"
)

func newProductsCmd(c *cli) *cobra.Command {
	var f service.Filter

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := c.app.Catalog()
			if err := catalog.Load(cmd.Context()); err != nil {
				return fail(catalog.Notice(), err)
			}

			ps := catalog.Search(cmd.Context(), f)
			renderProducts(cmd.OutOrStdout(), ps)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Query, "query", "q", "", "search in names and descriptions")
	cmd.Flags().StringVarP(
		&f.Category, "category", "c", service.AllCategories, "category slug",
	)
	return cmd
}

func newCategoriesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := c.app.Catalog()
			if err := catalog.Load(cmd.Context()); err != nil {
				return fail(catalog.Notice(), err)
			}
			renderCategories(cmd.OutOrStdout(), catalog.Categories())
			return nil
		},
	}
}

func newAddCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}

			catalog := c.app.Catalog()
			if err := catalog.Load(cmd.Context()); err != nil {
				return fail(catalog.Notice(), err)
			}

			if err := catalog.AddToCart(cmd.Context(), productID); err != nil {
				return fail(catalog.Toast(), err)
			}
			renderSuccess(cmd.OutOrStdout(), catalog.Toast())
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
