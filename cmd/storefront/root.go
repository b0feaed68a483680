package main

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/app"
	"github.com/spf13/cobra"
)

// A failure carries the notice the view set for a failed command.
type failure struct {
	notice string
	err    error
}

func (f failure) Error() string {
	return fmt.Sprintf("%s: %v", f.notice, f.err)
}

func (f failure) Unwrap() error {
	return f.err
}

// fail returns err with the view notice attached. A blank notice leaves err
// as is.
func fail(notice string, err error) error {
	if notice == "" {
		return err
	}
	return failure{notice: notice, err: err}
}

type cli struct {
	app *app.App
}

func (c *cli) open(cmd *cobra.Command) error {
	const op = "cli.open"

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	a, err := app.New(cmd.Context(), cfg, app.LogOutputOpt(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	c.app = a
	return nil
}

func (c *cli) close(ctx context.Context) {
	if c.app != nil {
		c.app.Close(ctx)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the shop, manage the cart and place orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd)
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newProductsCmd(c),
		newCategoriesCmd(c),
		newAddCmd(c),
		newCartCmd(c),
		newCheckoutCmd(c),
		newOrdersCmd(c),
		newLoginCmd(c),
		newRegisterCmd(c),
		newSessionCmd(c),
		newConfigCmd(c),
	)
	return root
}
