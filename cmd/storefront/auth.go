package main

import (
	"fmt"
	"time"

	"github.com/niksmo/storefront/internal/adapter/session"
	"github.com/spf13/cobra"
)

func newLoginCmd(c *cli) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := c.app.Auth()
			if err := auth.Login(cmd.Context(), username, password); err != nil {
				return fail(auth.Notice(), err)
			}
			renderSuccess(cmd.OutOrStdout(), fmt.Sprintf("Logged in as %s ✅", username))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			auth := c.app.Auth()
			if err := auth.Register(cmd.Context(), username, email, password); err != nil {
				return fail(auth.Notice(), err)
			}
			renderSuccess(cmd.OutOrStdout(), fmt.Sprintf("Welcome, %s ✅", username))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSessionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := c.app.Session().Credentials()
			if creds.Empty() {
				renderMuted(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}

			info, err := session.Inspect(creds.Access)
			if err != nil {
				renderMuted(cmd.OutOrStdout(), "Logged in (opaque token).")
				return nil
			}
			renderSession(cmd.OutOrStdout(), info, time.Now())
			return nil
		},
	}
}

func newConfigCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the loaded configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Config().Print(cmd.OutOrStdout())
			return nil
		},
	}
}
