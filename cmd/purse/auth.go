package main

import (
	"fmt"

	"github.com/pursecli/purse/internal/cli"
	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a new wallet user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if password == "" {
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				return fmt.Errorf("password is required")
			}

			if err := a.client.Register(ctx, args[0], password); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Registered. Log in with 'purse login' to get started."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func loginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and start a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if password == "" {
				password, err = promptLine("Password: ")
				if err != nil {
					return err
				}
			}

			creds, err := a.client.Login(ctx, args[0], password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := a.store.Init(ctx, creds.UserID, creds.Username, creds.Token); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome back, %s!", creds.Username)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Clear(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Logged out."))
			return nil
		},
	}
}
