package main

import (
	"context"
	"fmt"

	"gin-shopcart/client"
	"gin-shopcart/dto"
	"gin-shopcart/table"

	"github.com/spf13/cobra"
)

var cartSelect string

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage your cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items in your cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		c := newClient()
		items, err := c.CartItems(ctx)
		if err != nil {
			return err
		}

		t := table.New(table.Options{
			Configuration: table.ClientSide,
			Footer:        &table.FooterConfiguration{},
			Style:         itemRowStyle(),
			Details:       detailsOf(c.CartItemDetails),
		})
		t.SetData(client.ItemRows(items))
		if err := selectRow(t, cartSelect); err != nil {
			return err
		}
		return renderTable(ctx, cmd.OutOrStdout(), t)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Add an item to your cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		items, err := newClient().AddToCart(ctx, args[0])
		if err != nil {
			return err
		}
		return renderCart(cmd, items)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Remove every reference to an item from your cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		items, err := newClient().RemoveFromCart(ctx, args[0])
		if err != nil {
			return err
		}
		return renderCart(cmd, items)
	},
}

var cartDetailsCmd = &cobra.Command{
	Use:   "details <item-id>",
	Short: "Show the details of an item in your cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		details, err := newClient().CartItemDetails(ctx, args[0])
		if err != nil {
			return err
		}
		return renderDetails(cmd, details)
	},
}

var cartSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the number of items and the total price of your cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		summary, err := newClient().CartSummary(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Items: %d\nTotal: %s\n", summary.Count, summary.Total)
		if summary.Skipped > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d items with unreadable prices\n", summary.Skipped)
		}
		return nil
	},
}

func renderCart(cmd *cobra.Command, items []dto.ItemSummary) error {
	t := table.New(table.Options{
		Configuration: table.ClientSide,
		Footer:        &table.FooterConfiguration{},
		Style:         itemRowStyle(),
	})
	t.SetData(client.ItemRows(items))
	return renderTable(cmd.Context(), cmd.OutOrStdout(), t)
}

func init() {
	cartListCmd.Flags().StringVar(&cartSelect, "select", "", "Highlight an item and show its details")
	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartRemoveCmd, cartDetailsCmd, cartSummaryCmd)
}
