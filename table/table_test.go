package table

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type product struct {
	id       string
	name     string
	price    string
	quantity int
	created  time.Time
}

var productColumns = []ColumnData{
	{Field: "name", Column: "Name", Type: String, Formatting: String, Alignment: Left},
	{Field: "price", Column: "Price", Type: Float, Formatting: String, Alignment: Right},
	{Field: "quantity", Column: "Quantity", Type: Integer, Formatting: Integer, Alignment: Right},
	{Field: "created", Column: "Created", Type: Date, Formatting: Date, Alignment: Center},
}

func (p product) RowID() string         { return p.id }
func (p product) Columns() []ColumnData { return productColumns }
func (p product) Value(field string) any {
	switch field {
	case "name":
		return p.name
	case "price":
		return p.price
	case "quantity":
		return p.quantity
	case "created":
		return p.created
	}
	return nil
}

func day(d int) time.Time {
	return time.Date(2023, time.March, d, 12, 0, 0, 0, time.UTC)
}

func products() []Row {
	return []Row{
		product{id: "1", name: "Dell XPS 15", price: "1400$", quantity: 2, created: day(3)},
		product{id: "2", name: "Google Pixel 7", price: "700$", quantity: 1500, created: day(1)},
		product{id: "3", name: "HP Spectre x360 14", price: "900$", quantity: 0, created: day(9)},
		product{id: "4", name: "No name psu", price: "30.5$", quantity: 7, created: day(5)},
	}
}

func ids(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.RowID())
	}
	return out
}

func assertIDs(t *testing.T, want []string, rows []Row) {
	t.Helper()
	if diff := cmp.Diff(want, ids(rows)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func newClientTable() *Table {
	tbl := New(Options{
		Configuration: ClientSide,
		Filter:        &FilterConfiguration{Label: "Filter"},
		Sort:          &SortConfiguration{},
		Paginator:     &PaginatorConfiguration{PageSizes: []int{2, 5}},
		Footer:        &FooterConfiguration{},
	})
	tbl.SetData(products())
	return tbl
}

func TestSetDataInitialisesColumnsOnce(t *testing.T) {
	tbl := New(Options{Configuration: ClientSide})
	assert.False(t, tbl.Loading())
	assert.Nil(t, tbl.Columns())

	tbl.SetData(products())
	assert.Equal(t, []string{"Name", "Price", "Quantity", "Created"}, tbl.Columns())

	tbl.SetData(nil)
	assert.Equal(t, []string{"Name", "Price", "Quantity", "Created"}, tbl.Columns())
	assert.Empty(t, tbl.Rows())
}

func TestClientSidePaginate(t *testing.T) {
	ctx := context.Background()
	tbl := newClientTable()

	assertIDs(t, []string{"1", "2"}, tbl.Rows())
	assert.Equal(t, 4, tbl.PaginatorLength())
	assert.Equal(t, 2, tbl.PageCount())

	require.NoError(t, tbl.Paginate(ctx, 1, 2))
	assertIDs(t, []string{"3", "4"}, tbl.Rows())

	require.NoError(t, tbl.Paginate(ctx, 0, 5))
	assertIDs(t, []string{"1", "2", "3", "4"}, tbl.Rows())
}

func TestClientSideFilterResetsPaginator(t *testing.T) {
	ctx := context.Background()
	tbl := newClientTable()
	require.NoError(t, tbl.Paginate(ctx, 1, 2))

	require.NoError(t, tbl.Filter(ctx, "  GOOGLE "))
	assert.Equal(t, "GOOGLE", tbl.FilterValue())
	assert.Equal(t, 0, tbl.PaginatorState().PageIndex)
	assertIDs(t, []string{"2"}, tbl.Rows())
	assert.Equal(t, 1, tbl.PaginatorLength())

	// 価格の列も検索対象
	require.NoError(t, tbl.Filter(ctx, "900"))
	assertIDs(t, []string{"3"}, tbl.Rows())

	require.NoError(t, tbl.Filter(ctx, ""))
	assert.Equal(t, 4, tbl.PaginatorLength())
}

func TestClientSideSortIsTyped(t *testing.T) {
	ctx := context.Background()
	tbl := newClientTable()
	require.NoError(t, tbl.Paginate(ctx, 0, 5))

	require.NoError(t, tbl.Sort(ctx, "price", SortAsc))
	assertIDs(t, []string{"4", "2", "3", "1"}, tbl.Rows())

	require.NoError(t, tbl.Sort(ctx, "created", SortDesc))
	assertIDs(t, []string{"3", "4", "1", "2"}, tbl.Rows())

	require.NoError(t, tbl.Sort(ctx, "name", SortNone))
	assertIDs(t, []string{"1", "2", "3", "4"}, tbl.Rows())
}

func TestUnconfiguredFeatures(t *testing.T) {
	ctx := context.Background()
	tbl := New(Options{Configuration: ClientSide})
	tbl.SetData(products())

	assert.ErrorIs(t, tbl.Filter(ctx, "x"), ErrNotConfigured)
	assert.ErrorIs(t, tbl.Sort(ctx, "name", SortAsc), ErrNotConfigured)
	assert.ErrorIs(t, tbl.Paginate(ctx, 1, 1), ErrNotConfigured)
	assert.Len(t, tbl.Rows(), 4)
}

func TestServerSideFetch(t *testing.T) {
	ctx := context.Background()
	var requests []FetchRequest
	all := products()

	tbl := New(Options{
		Configuration: ServerSide,
		Filter:        &FilterConfiguration{},
		Sort:          &SortConfiguration{Initial: Sort{Field: "name", Direction: SortAsc}},
		Paginator:     &PaginatorConfiguration{PageSizes: []int{2}, TotalData: 0},
		Fetch: func(ctx context.Context, req FetchRequest) (FetchResult, error) {
			requests = append(requests, req)
			end := min(req.PageIndex*req.PageSize+req.PageSize, len(all))
			return FetchResult{Rows: all[req.PageIndex*req.PageSize : end], Total: len(all)}, nil
		},
	})
	assert.True(t, tbl.Loading())

	require.NoError(t, tbl.Load(ctx))
	assert.False(t, tbl.Loading())
	assertIDs(t, []string{"1", "2"}, tbl.Rows())
	assert.Equal(t, 4, tbl.PaginatorLength())

	require.NoError(t, tbl.Paginate(ctx, 1, 2))
	assertIDs(t, []string{"3", "4"}, tbl.Rows())

	require.NoError(t, tbl.Sort(ctx, "price", SortDesc))
	require.NoError(t, tbl.Filter(ctx, "pixel"))
	// 変化のないフィルタはリクエストしない
	require.NoError(t, tbl.Filter(ctx, "pixel "))

	want := []FetchRequest{
		{SortColumn: "name", SortDirection: SortAsc, PageIndex: 0, PageSize: 2},
		{SortColumn: "name", SortDirection: SortAsc, PageIndex: 1, PageSize: 2},
		{SortColumn: "price", SortDirection: SortDesc, PageIndex: 0, PageSize: 2},
		{Filter: "pixel", SortColumn: "price", SortDirection: SortDesc, PageIndex: 0, PageSize: 2},
	}
	if diff := cmp.Diff(want, requests); diff != "" {
		t.Errorf("fetch requests mismatch (-want +got):\n%s", diff)
	}
}

func TestServerSideFetchErrorStopsLoading(t *testing.T) {
	boom := errors.New("boom")
	tbl := New(Options{
		Configuration: ServerSide,
		Fetch: func(context.Context, FetchRequest) (FetchResult, error) {
			return FetchResult{}, boom
		},
	})

	assert.ErrorIs(t, tbl.Load(context.Background()), boom)
	assert.False(t, tbl.Loading())
	assert.Empty(t, tbl.Rows())
}

func TestClickRowTogglesSelection(t *testing.T) {
	var clicked []Row
	tbl := New(Options{RowClicked: func(r Row) { clicked = append(clicked, r) }})
	rows := products()
	tbl.SetData(rows)

	tbl.ClickRow(rows[0])
	assert.Equal(t, "1", tbl.Selected().RowID())
	tbl.ClickRow(rows[1])
	assert.Equal(t, "2", tbl.Selected().RowID())
	tbl.ClickRow(rows[1])
	assert.Nil(t, tbl.Selected())

	require.Len(t, clicked, 3)
	assert.Nil(t, clicked[2])
}

func TestCellFormatting(t *testing.T) {
	tbl := newClientTable()
	rows := products()

	assert.Equal(t, "1400$", tbl.CellFormatting(rows[0], "Price"))
	assert.Equal(t, "1,500", tbl.CellFormatting(rows[1], "Quantity"))
	assert.Equal(t, "", tbl.CellFormatting(rows[2], "Quantity"))
	assert.Equal(t, "03/03/2023", tbl.CellFormatting(rows[0], "Created"))
	assert.Equal(t, "", tbl.CellFormatting(rows[0], "Missing"))

	assert.Equal(t, Right, tbl.CellAlignment("Price"))
	assert.Equal(t, Normal, tbl.CellAlignment("Missing"))
	assert.Equal(t, "created", tbl.SortHeader("Created"))
}

func TestFormatCellFloatAndCustomDate(t *testing.T) {
	row := customRow{values: map[string]any{
		"amount": 1234.5,
		"when":   day(14),
		"flag":   true,
	}}

	assert.Equal(t, "1,234.50", FormatCell(row, "Amount"))
	assert.Equal(t, "2023-03-14", FormatCell(row, "When"))
	assert.Equal(t, "true", FormatCell(row, "Flag"))

	row.values["amount"] = decimal.Zero
	assert.Equal(t, "", FormatCell(row, "Amount"))
}

func TestFooter(t *testing.T) {
	tbl := newClientTable()

	assert.Equal(t, "Total", tbl.FooterCell("Name"))
	assert.Equal(t, "3,030.50", tbl.FooterCell("Price"))
	assert.Equal(t, "1,509", tbl.FooterCell("Quantity"))
	assert.Equal(t, "Mar 01, 23 - Mar 09, 23", tbl.FooterCell("Created"))

	custom := New(Options{Footer: &FooterConfiguration{CustomFooter: func(c string) string { return "#" + c }}})
	custom.SetData(products())
	assert.Equal(t, "#Price", custom.FooterCell("Price"))

	assert.Equal(t, "", FooterValue(nil, "Price"))
}

func TestDataSourceEditAndRemove(t *testing.T) {
	for name, ds := range map[string]DataSource{
		"client": NewClientSideDataSource(products()...),
		"server": NewServerSideDataSource(products()...),
	} {
		t.Run(name, func(t *testing.T) {
			ds.Edit(product{id: "2", name: "Pixel 8"})
			assert.Equal(t, "Pixel 8", ds.Get(1).Value("name"))

			ds.Remove(product{id: "1"})
			assert.Equal(t, 3, ds.Len())
			assert.Equal(t, "2", ds.Get(0).RowID())

			ds.Add(product{id: "9"})
			assert.Equal(t, "9", ds.Get(3).RowID())
			assert.Nil(t, ds.Get(10))
		})
	}
}

type customRow struct {
	values map[string]any
}

func (r customRow) RowID() string { return "custom" }
func (r customRow) Columns() []ColumnData {
	return []ColumnData{
		{Field: "amount", Column: "Amount", Type: Float, Formatting: Float},
		{Field: "when", Column: "When", Type: Date, Formatting: Date, DateFormat: func(t time.Time) string {
			return t.Format("2006-01-02")
		}},
		{Field: "flag", Column: "Flag", Type: Boolean, Formatting: Boolean},
	}
}
func (r customRow) Value(field string) any { return r.values[field] }

type ledgerRow struct {
	label  string
	amount decimal.Decimal
}

func (r ledgerRow) RowID() string { return r.label }
func (r ledgerRow) Columns() []ColumnData {
	return []ColumnData{
		{Field: "label", Column: "Label", Type: String, Formatting: String},
		{Field: "amount", Column: "Amount", Type: Float, Formatting: Float, Alignment: Right},
	}
}
func (r ledgerRow) Value(field string) any {
	if field == "label" {
		return r.label
	}
	return r.amount
}

func TestFormatCellKeepsEveryDigit(t *testing.T) {
	huge := ledgerRow{label: "huge", amount: decimal.RequireFromString("12345678901234567.89")}
	cent := ledgerRow{label: "cent", amount: decimal.RequireFromString("0.01")}
	negative := ledgerRow{label: "negative", amount: decimal.RequireFromString("-1234567.5")}

	assert.Equal(t, "12,345,678,901,234,567.89", FormatCell(huge, "Amount"))
	assert.Equal(t, "12,345,678,901,234,567.90", FooterValue([]Row{huge, cent}, "Amount"))
	assert.Equal(t, "-1,234,567.50", FormatCell(negative, "Amount"))
	assert.Equal(t, "100.00", FormatCell(ledgerRow{amount: decimal.NewFromInt(100)}, "Amount"))
}

func TestClientSideFilterMatchesRenderedCells(t *testing.T) {
	ctx := context.Background()
	tbl := newClientTable()

	require.NoError(t, tbl.Filter(ctx, "1,500"))
	assertIDs(t, []string{"2"}, tbl.Rows())

	require.NoError(t, tbl.Filter(ctx, "03/03/2023"))
	assertIDs(t, []string{"1"}, tbl.Rows())

	// 生の値でも一致する
	require.NoError(t, tbl.Filter(ctx, "1500"))
	assertIDs(t, []string{"2"}, tbl.Rows())
}

func TestServerSideFilterCanBeRetriedAfterFailure(t *testing.T) {
	ctx := context.Background()
	calls, failNext := 0, false
	all := products()

	tbl := New(Options{
		Configuration: ServerSide,
		Filter:        &FilterConfiguration{},
		Paginator:     &PaginatorConfiguration{PageSizes: []int{2}},
		Fetch: func(_ context.Context, req FetchRequest) (FetchResult, error) {
			calls++
			if failNext {
				failNext = false
				return FetchResult{}, errors.New("connection reset")
			}
			if req.Filter == "pixel" {
				return FetchResult{Rows: all[1:2], Total: 1}, nil
			}
			end := min(req.PageIndex*req.PageSize+req.PageSize, len(all))
			return FetchResult{Rows: all[req.PageIndex*req.PageSize : end], Total: len(all)}, nil
		},
	})
	require.NoError(t, tbl.Load(ctx))
	require.NoError(t, tbl.Paginate(ctx, 1, 2))
	require.Equal(t, 2, calls)

	failNext = true
	require.Error(t, tbl.Filter(ctx, "pixel"))
	assert.Equal(t, 3, calls)
	assert.Equal(t, "", tbl.FilterValue())
	assert.Equal(t, 1, tbl.PaginatorState().PageIndex)
	assertIDs(t, []string{"3", "4"}, tbl.Rows())

	// 同じ値で再試行できる
	require.NoError(t, tbl.Filter(ctx, "pixel"))
	assert.Equal(t, 4, calls)
	assert.Equal(t, "pixel", tbl.FilterValue())
	assert.Equal(t, 0, tbl.PaginatorState().PageIndex)
	assertIDs(t, []string{"2"}, tbl.Rows())
}

func TestFilterPrompt(t *testing.T) {
	ctx := context.Background()

	_, ok := New(Options{}).FilterPrompt()
	assert.False(t, ok)

	tbl := New(Options{
		Configuration: ClientSide,
		Filter:        &FilterConfiguration{Label: "Filter", Placeholder: "Search by name"},
	})
	tbl.SetData(products())

	prompt, ok := tbl.FilterPrompt()
	require.True(t, ok)
	assert.Equal(t, FilterPrompt{Label: "Filter", Text: "Search by name", Placeholder: true}, prompt)

	require.NoError(t, tbl.Filter(ctx, "dell"))
	prompt, _ = tbl.FilterPrompt()
	assert.Equal(t, FilterPrompt{Label: "Filter", Text: "dell"}, prompt)
}

func TestSelectedDetails(t *testing.T) {
	ctx := context.Background()

	plain := New(Options{})
	plain.SetData(products())
	_, err := plain.SelectedDetails(ctx)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, plain.HasDetails())

	var parents []string
	tbl := New(Options{
		Style: &StyleConfiguration{AlternatingRowColors: true, SelectedRowColor: "#5F87FF"},
		Details: &DetailsConfiguration{
			ChildStyle: StyleConfiguration{SelectedRowColor: "#AF87FF"},
			Child: func(_ context.Context, row Row) (*Table, error) {
				parents = append(parents, row.RowID())
				child := New(Options{})
				child.SetData([]Row{customRow{values: map[string]any{"amount": 1.5}}})
				return child, nil
			},
		},
	})
	tbl.SetData(products())
	assert.True(t, tbl.HasDetails())
	assert.Equal(t, StyleConfiguration{AlternatingRowColors: true, SelectedRowColor: "#5F87FF"}, tbl.Style())

	child, err := tbl.SelectedDetails(ctx)
	require.NoError(t, err)
	assert.Nil(t, child)

	assert.False(t, tbl.SelectByID("missing"))
	require.True(t, tbl.SelectByID("3"))
	assert.Equal(t, "3", tbl.Selected().RowID())

	child, err = tbl.SelectedDetails(ctx)
	require.NoError(t, err)
	require.NotNil(t, child)
	assert.Equal(t, []string{"3"}, parents)
	assert.Equal(t, StyleConfiguration{SelectedRowColor: "#AF87FF"}, child.Style())
	assert.Equal(t, "1.50", child.CellFormatting(child.Rows()[0], "Amount"))
}

func TestSelectedDetailsKeepsChildStyle(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	tbl := New(Options{
		Details: &DetailsConfiguration{
			ChildStyle: StyleConfiguration{AlternatingRowColors: true},
			Child: func(context.Context, Row) (*Table, error) {
				if fail {
					return nil, boom
				}
				return New(Options{Style: &StyleConfiguration{SelectedRowColor: "1"}}), nil
			},
		},
	})
	tbl.SetData(products())
	require.True(t, tbl.SelectByID("1"))

	_, err := tbl.SelectedDetails(context.Background())
	assert.ErrorIs(t, err, boom)

	fail = false
	child, err := tbl.SelectedDetails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StyleConfiguration{SelectedRowColor: "1"}, child.Style())
}
