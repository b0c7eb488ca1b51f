package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/andyle182810/storefront/shopapi"
	"github.com/spf13/cobra"
)

var ErrInvalidItem = errors.New("item must be <product-id>:<quantity>")

func ordersCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "orders",
		Short: "Place and inspect orders",
	}

	c.AddCommand(
		createOrderCmd(a),
		&cobra.Command{
			Use:   "list",
			Short: "List your orders",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				orders, err := a.api.Orders.List(cmd.Context(), a.token)
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), orders)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show an order by id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid order id %q: %w", args[0], err)
				}

				order, err := a.api.Orders.Get(cmd.Context(), id, a.token)
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), order)
			},
		},
		&cobra.Command{
			Use:   "code <order-code>",
			Short: "Show an order by its public code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				order, err := a.api.Orders.GetByCode(cmd.Context(), args[0], a.token)
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), order)
			},
		},
	)

	return c
}

func createOrderCmd(a *app) *cobra.Command {
	var (
		items   []string
		address string
	)

	c := &cobra.Command{
		Use:   "create",
		Short: "Place an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := shopapi.CreateOrderRequest{ShippingAddress: address}

			for _, raw := range items {
				item, err := parseItem(raw)
				if err != nil {
					return err
				}

				req.Items = append(req.Items, item)
			}

			order, err := a.api.Orders.Create(cmd.Context(), req, a.token)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), order)
		},
	}

	c.Flags().StringArrayVar(&items, "item", nil, "line item as <product-id>:<quantity>, repeatable")
	c.Flags().StringVar(&address, "address", "", "shipping address")

	return c
}

func parseItem(raw string) (shopapi.OrderItemRequest, error) {
	productID, quantity, ok := strings.Cut(raw, ":")
	if !ok {
		return shopapi.OrderItemRequest{}, fmt.Errorf("%w: %q", ErrInvalidItem, raw)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(productID), 10, 64)
	if err != nil {
		return shopapi.OrderItemRequest{}, fmt.Errorf("%w: %q", ErrInvalidItem, raw)
	}

	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return shopapi.OrderItemRequest{}, fmt.Errorf("%w: %q", ErrInvalidItem, raw)
	}

	return shopapi.OrderItemRequest{ProductID: id, Quantity: qty}, nil
}
