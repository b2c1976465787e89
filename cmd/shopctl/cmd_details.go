package main

import (
	"context"
	"fmt"

	"gin-shopcart/client"
	"gin-shopcart/dto"
	"gin-shopcart/table"

	"github.com/spf13/cobra"
)

var (
	detailName  string
	detailValue string
)

var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Manage the details of an item",
}

var detailsListCmd = &cobra.Command{
	Use:   "list <item-id>",
	Short: "List the details of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		details, err := newClient().ItemDetails(ctx, args[0])
		if err != nil {
			return err
		}
		return renderDetails(cmd, details)
	},
}

var detailsAddCmd = &cobra.Command{
	Use:   "add <item-id>",
	Short: "Append a detail to an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		details, err := newClient().AddDetail(ctx, dto.CreateDetailInput{ItemID: args[0], Name: detailName, Value: detailValue})
		if err != nil {
			return err
		}
		return renderDetails(cmd, details)
	},
}

var detailsEditCmd = &cobra.Command{
	Use:   "edit <item-id> <detail-id>",
	Short: "Edit a detail of an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		details, err := newClient().EditDetail(ctx, dto.UpdateDetailInput{
			ItemID:   args[0],
			DetailID: args[1],
			Name:     detailName,
			Value:    detailValue,
		})
		if err != nil {
			return err
		}
		return renderDetails(cmd, details)
	},
}

var detailsDeleteCmd = &cobra.Command{
	Use:   "delete <item-id> <detail-id>",
	Short: "Remove a detail from an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		item, err := newClient().DeleteDetail(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s now has %d details\n", item.Name, len(item.Details))
		return renderDetails(cmd, item.Details)
	},
}

func renderDetails(cmd *cobra.Command, details []dto.DetailResponse) error {
	t := table.New(table.Options{Configuration: table.ClientSide, Style: detailStyle()})
	t.SetData(client.DetailRows(details))
	return renderTable(cmd.Context(), cmd.OutOrStdout(), t)
}

func detailStyle() *table.StyleConfiguration {
	return &table.StyleConfiguration{AlternatingRowColors: true}
}

// itemRowStyle highlights the row picked with --select.
func itemRowStyle() *table.StyleConfiguration {
	return &table.StyleConfiguration{AlternatingRowColors: true, SelectedRowColor: "#5F87FF"}
}

// detailsOf shows the details of the selected item below the item table.
func detailsOf(load func(ctx context.Context, itemID string) ([]dto.DetailResponse, error)) *table.DetailsConfiguration {
	return &table.DetailsConfiguration{
		ChildStyle: *detailStyle(),
		Child: func(ctx context.Context, row table.Row) (*table.Table, error) {
			details, err := load(ctx, row.RowID())
			if err != nil {
				return nil, err
			}
			child := table.New(table.Options{Configuration: table.ClientSide})
			child.SetData(client.DetailRows(details))
			return child, nil
		},
	}
}

func selectRow(t *table.Table, itemID string) error {
	if itemID == "" {
		return nil
	}
	if !t.SelectByID(itemID) {
		return fmt.Errorf("item %s is not in the table", itemID)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{detailsAddCmd, detailsEditCmd} {
		c.Flags().StringVarP(&detailName, "name", "n", "", "Detail name")
		c.Flags().StringVar(&detailValue, "value", "", "Detail value")
		_ = c.MarkFlagRequired("name")
	}

	detailsCmd.AddCommand(detailsListCmd, detailsAddCmd, detailsEditCmd, detailsDeleteCmd)
}
