package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cart := c.app.Cart()
			if err := cart.Load(cmd.Context()); err != nil {
				return fail(cart.Notice(), err)
			}
			v, _ := cart.Cart()
			renderCart(cmd.OutOrStdout(), v)
			return nil
		},
	}

	cmd.AddCommand(
		newCartSetCmd(c),
		newCartStepCmd(c, "inc", "Increase the quantity of an item by one"),
		newCartStepCmd(c, "dec", "Decrease the quantity of an item by one"),
		newCartRemoveCmd(c),
	)
	return cmd
}

func newCartSetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set <item-id> <quantity>",
		Short: "Set the quantity of an item, zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}

			cart := c.app.Cart()
			if err := cart.UpdateQuantity(cmd.Context(), itemID, quantity); err != nil {
				return fail(cart.Notice(), err)
			}
			v, _ := cart.Cart()
			renderCart(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newCartStepCmd(c *cli, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <item-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}

			cart := c.app.Cart()
			if err := cart.Load(cmd.Context()); err != nil {
				return fail(cart.Notice(), err)
			}

			step := cart.Increase
			if use == "dec" {
				step = cart.Decrease
			}
			if err := step(cmd.Context(), itemID); err != nil {
				return fail(cart.Notice(), err)
			}
			v, _ := cart.Cart()
			renderCart(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newCartRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0])
			if err != nil {
				return err
			}

			cart := c.app.Cart()
			if err := cart.Remove(cmd.Context(), itemID); err != nil {
				return fail(cart.Notice(), err)
			}
			v, _ := cart.Cart()
			renderCart(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
