package cli

import (
	"fmt"

	"github.com/andyle182810/storefront/money"
	"github.com/andyle182810/storefront/shopapi"
	"github.com/spf13/cobra"
)

func paymentsCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "payments",
		Short: "Pay for orders",
	}

	c.AddCommand(
		createIntentCmd(a),
		&cobra.Command{
			Use:   "success <payment-intent-id>",
			Short: "Report a successful payment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				confirmation, err := a.api.Payments.ConfirmSuccess(cmd.Context(), args[0], a.token)
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), confirmation)
			},
		},
		&cobra.Command{
			Use:   "failure <payment-intent-id>",
			Short: "Report a failed payment",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				confirmation, err := a.api.Payments.ConfirmFailure(cmd.Context(), args[0], a.token)
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), confirmation)
			},
		},
	)

	return c
}

func createIntentCmd(a *app) *cobra.Command {
	var (
		orderID  int64
		amount   string
		currency string
	)

	c := &cobra.Command{
		Use:   "intent",
		Short: "Open a payment intent for an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := money.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			intent, err := a.api.Payments.CreateIntent(cmd.Context(), shopapi.PaymentIntentRequest{
				OrderID:  orderID,
				Amount:   value,
				Currency: currency,
			}, a.token)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), intent)
		},
	}

	c.Flags().Int64Var(&orderID, "order-id", 0, "order to pay for")
	c.Flags().StringVar(&amount, "amount", "", "amount, must equal the order total")
	c.Flags().StringVar(&currency, "currency", "", "ISO currency code, the server defaults to usd")

	return c
}
