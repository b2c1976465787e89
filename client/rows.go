package client

import (
	"context"

	"gin-shopcart/dto"
	"gin-shopcart/table"
)

var itemColumns = []table.ColumnData{
	{Field: "name", Column: "Name", Type: table.String, Formatting: table.String, Alignment: table.Left},
	{Field: "type", Column: "Type", Type: table.String, Formatting: table.String, Alignment: table.Left},
	// 価格は文字列のまま表示し、合計は数値として計算する
	{Field: "price", Column: "Price", Type: table.Float, Formatting: table.String, Alignment: table.Right},
	{Field: "createdAt", Column: "Created", Type: table.Date, Formatting: table.Date, Alignment: table.Center},
}

var detailColumns = []table.ColumnData{
	{Field: "name", Column: "Name", Type: table.String, Formatting: table.String, Alignment: table.Left},
	{Field: "value", Column: "Value", Type: table.String, Formatting: table.String, Alignment: table.Left},
}

type ItemRow struct {
	dto.ItemSummary
}

func (r ItemRow) RowID() string               { return r.ID }
func (r ItemRow) Columns() []table.ColumnData { return itemColumns }
func (r ItemRow) Value(field string) any {
	switch field {
	case "name":
		return r.Name
	case "type":
		return r.Type
	case "price":
		return r.Price
	case "createdAt":
		return r.CreatedAt
	}
	return nil
}

type DetailRow struct {
	dto.DetailResponse
}

func (r DetailRow) RowID() string               { return r.ID }
func (r DetailRow) Columns() []table.ColumnData { return detailColumns }
func (r DetailRow) Value(field string) any {
	switch field {
	case "name":
		return r.Name
	case "value":
		return r.DetailResponse.Value
	}
	return nil
}

func ItemRows(items []dto.ItemSummary) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, ItemRow{item})
	}
	return rows
}

func DetailRows(details []dto.DetailResponse) []table.Row {
	rows := make([]table.Row, 0, len(details))
	for _, d := range details {
		rows = append(rows, DetailRow{d})
	}
	return rows
}

// PagedItemsFetcher adapts the paged items endpoint to a server-side table.
func (c *Client) PagedItemsFetcher() table.FetchFunc {
	return func(ctx context.Context, req table.FetchRequest) (table.FetchResult, error) {
		query := dto.PagedItemsQuery{
			Page:   req.PageIndex,
			Size:   req.PageSize,
			Filter: req.Filter,
		}
		if req.SortColumn != "" && req.SortDirection != table.SortNone {
			query.SortColumn = req.SortColumn
			query.SortDirection = int(req.SortDirection)
		}

		page, err := c.ItemsPaged(ctx, query)
		if err != nil {
			return table.FetchResult{}, err
		}
		return table.FetchResult{Rows: ItemRows(page.Items), Total: int(page.Count)}, nil
	}
}
