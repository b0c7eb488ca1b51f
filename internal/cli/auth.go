package cli

import (
	"github.com/andyle182810/storefront/shopapi"
	"github.com/spf13/cobra"
)

func registerCmd(a *app) *cobra.Command {
	var req shopapi.RegisterRequest

	c := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.api.Auth.Register(cmd.Context(), req)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	c.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	c.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	c.Flags().StringVar(&req.Email, "email", "", "email address")
	c.Flags().StringVar(&req.Password, "password", "", "password")

	return c
}

func loginCmd(a *app) *cobra.Command {
	var req shopapi.LoginRequest

	c := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.api.Auth.Login(cmd.Context(), req)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	c.Flags().StringVar(&req.Email, "email", "", "email address")
	c.Flags().StringVar(&req.Password, "password", "", "password")

	return c
}
