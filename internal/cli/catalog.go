package cli

import (
	"github.com/spf13/cobra"
)

func productsCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
	}

	c.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all products",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				products, err := a.api.Products.List(cmd.Context())
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), products)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				product, err := a.api.Products.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), product)
			},
		},
		&cobra.Command{
			Use:   "category <category-id>",
			Short: "List the products of a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				products, err := a.api.Products.ListByCategory(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), products)
			},
		},
	)

	return c
}

func categoriesCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "categories",
		Short: "Browse product categories",
	}

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := a.api.Categories.List(cmd.Context())
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), categories)
		},
	})

	return c
}
