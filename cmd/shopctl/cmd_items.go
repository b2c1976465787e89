package main

import (
	"context"
	"fmt"

	"gin-shopcart/client"
	"gin-shopcart/dto"
	"gin-shopcart/table"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listFilter string
	listSort   string
	listDesc   bool
	listPage   int
	listSize   int
	listSelect string

	itemName  string
	itemType  string
	itemPrice string
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage catalog items",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all items, filtered, sorted and paged locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		c := newClient()
		items, err := c.Items(ctx)
		if err != nil {
			return err
		}
		logger.Debug("Fetched items", zap.Int("count", len(items)))

		t := table.New(table.Options{
			Configuration: table.ClientSide,
			Filter:        itemFilter(),
			Sort:          &table.SortConfiguration{},
			Paginator:     &table.PaginatorConfiguration{PageSizes: []int{listSize}},
			Footer:        &table.FooterConfiguration{},
			Style:         itemRowStyle(),
			Details:       detailsOf(c.ItemDetails),
		})
		t.SetData(client.ItemRows(items))

		if err := applyListFlags(ctx, t); err != nil {
			return err
		}
		if err := selectRow(t, listSelect); err != nil {
			return err
		}
		return renderTable(ctx, cmd.OutOrStdout(), t)
	},
}

var itemsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse items page by page, filtered and sorted by the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		t := table.New(table.Options{
			Configuration: table.ServerSide,
			Filter:        itemFilter(),
			Sort:          &table.SortConfiguration{Initial: table.Sort{Field: listSort, Direction: sortDirection()}},
			Paginator:     &table.PaginatorConfiguration{PageSizes: []int{listSize}},
			Fetch:         newClient().PagedItemsFetcher(),
			Style:         itemRowStyle(),
		})

		if listFilter != "" {
			err := t.Filter(ctx, listFilter)
			if err != nil {
				return err
			}
		} else if err := t.Load(ctx); err != nil {
			return err
		}
		if listPage > 0 {
			if err := t.Paginate(ctx, listPage, listSize); err != nil {
				return err
			}
		}
		return renderTable(ctx, cmd.OutOrStdout(), t)
	},
}

var itemsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		item, err := newClient().AddItem(ctx, dto.CreateItemInput{Name: itemName, Type: itemType, Price: itemPrice})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item.Name, item.ID)
		return nil
	},
}

var itemsEditCmd = &cobra.Command{
	Use:   "edit <item-id>",
	Short: "Edit an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		item, err := newClient().EditItem(ctx, dto.UpdateItemInput{ID: args[0], Name: itemName, Type: itemType, Price: itemPrice})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Edited %s\n", item.Name)
		t := table.New(table.Options{Footer: &table.FooterConfiguration{}, Style: detailStyle()})
		t.SetData(client.DetailRows(item.Details))
		return renderTable(ctx, cmd.OutOrStdout(), t)
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <item-id>",
	Short: "Delete an item with its details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		message, err := newClient().DeleteItem(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), message)
		return nil
	},
}

func itemFilter() *table.FilterConfiguration {
	return &table.FilterConfiguration{Label: "Filter", Placeholder: "Search by name, type or price"}
}

func sortDirection() table.SortDirection {
	if listSort == "" {
		return table.SortNone
	}
	if listDesc {
		return table.SortDesc
	}
	return table.SortAsc
}

func applyListFlags(ctx context.Context, t *table.Table) error {
	if listFilter != "" {
		if err := t.Filter(ctx, listFilter); err != nil {
			return err
		}
	}
	if listSort != "" {
		if err := t.Sort(ctx, listSort, sortDirection()); err != nil {
			return err
		}
	}
	return t.Paginate(ctx, listPage, listSize)
}

func addListFlags(c *cobra.Command) {
	c.Flags().StringVarP(&listFilter, "filter", "f", "", "Case-insensitive filter")
	c.Flags().StringVarP(&listSort, "sort", "s", "", "Sort field: name, type, price or createdAt")
	c.Flags().BoolVar(&listDesc, "desc", false, "Sort descending")
	c.Flags().IntVar(&listPage, "page", 0, "Zero-based page index")
	c.Flags().IntVar(&listSize, "size", 5, "Page size")
}

func addItemFlags(c *cobra.Command) {
	c.Flags().StringVarP(&itemName, "name", "n", "", "Item name")
	c.Flags().StringVarP(&itemType, "type", "t", "", "Item type")
	c.Flags().StringVarP(&itemPrice, "price", "p", "", "Item price, e.g. 900$")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("price")
}

func init() {
	addListFlags(itemsListCmd)
	addListFlags(itemsBrowseCmd)
	itemsListCmd.Flags().StringVar(&listSelect, "select", "", "Highlight an item and show its details")
	addItemFlags(itemsAddCmd)
	addItemFlags(itemsEditCmd)

	itemsCmd.AddCommand(itemsListCmd, itemsBrowseCmd, itemsAddCmd, itemsEditCmd, itemsDeleteCmd)
}
