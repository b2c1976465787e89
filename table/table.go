// Package table is a column-metadata driven data table that can either filter, sort
// and page its rows locally or delegate those operations to a server through a Fetch callback.
package table

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotConfigured = errors.New("table: feature not configured")

type Configuration int

const (
	ClientSide Configuration = iota
	ServerSide
)

// FilterConfiguration enables filtering. Label and Placeholder describe the filter
// input; see FilterPrompt.
type FilterConfiguration struct {
	Label       string
	Placeholder string
}

// FilterPrompt is the filter input as it should be shown. Text is the current filter,
// or the placeholder while no filter is set.
type FilterPrompt struct {
	Label       string
	Text        string
	Placeholder bool
}

// SortConfiguration enables sorting and sets the initial sort state.
type SortConfiguration struct {
	Initial Sort
}

// PaginatorConfiguration enables paging. The first page size is used initially.
// TotalData is the server-side dataset length until the first fetch reports one.
type PaginatorConfiguration struct {
	PageSizes []int
	TotalData int
}

type FooterConfiguration struct {
	CustomFooter func(column string) string
}

// StyleConfiguration controls row highlighting.
type StyleConfiguration struct {
	AlternatingRowColors bool
	// SelectedRowColor is a colour such as "#5F87FF". Empty keeps the renderer's default.
	SelectedRowColor string
}

// DetailsConfiguration shows a child table for the selected row.
type DetailsConfiguration struct {
	Child func(ctx context.Context, row Row) (*Table, error)
	// ChildStyle applies to child tables that have no style of their own.
	ChildStyle StyleConfiguration
}

type FetchRequest struct {
	Filter        string
	SortColumn    string
	SortDirection SortDirection
	PageIndex     int
	PageSize      int
}

type FetchResult struct {
	Rows  []Row
	Total int
}

type FetchFunc func(ctx context.Context, req FetchRequest) (FetchResult, error)

type Options struct {
	Configuration Configuration
	Filter        *FilterConfiguration
	Sort          *SortConfiguration
	Paginator     *PaginatorConfiguration
	Footer        *FooterConfiguration
	Style         *StyleConfiguration
	Details       *DetailsConfiguration
	// Fetch loads a page for server-side tables.
	Fetch FetchFunc
	// RowClicked receives the newly selected row, or nil when the selection is cleared.
	RowClicked func(Row)
}

const defaultPageSize = 10

type Table struct {
	opts      Options
	source    DataSource
	columns   []string
	filter    string
	sort      Sort
	paginator Paginator
	totalData int
	selected  Row
}

func New(opts Options) *Table {
	t := &Table{opts: opts}
	if opts.Configuration == ServerSide {
		t.source = NewServerSideDataSource()
	} else {
		t.source = NewClientSideDataSource()
	}

	if opts.Sort != nil {
		t.sort = opts.Sort.Initial
	}
	if opts.Paginator != nil {
		t.paginator.PageSize = defaultPageSize
		if len(opts.Paginator.PageSizes) > 0 {
			t.paginator.PageSize = opts.Paginator.PageSizes[0]
		}
		t.totalData = opts.Paginator.TotalData
	}

	// クライアント側ではソートとページングをデータソースに任せる
	if opts.Configuration == ClientSide {
		if opts.Sort != nil {
			t.source.SetSort(&t.sort)
		}
		if opts.Paginator != nil {
			t.source.SetPaginator(&t.paginator)
		}
	}

	t.source.LoadingOn()
	return t
}

func (t *Table) DataSource() DataSource { return t.source }
func (t *Table) Loading() bool          { return t.source.Loading() }
func (t *Table) SortState() Sort        { return t.sort }
func (t *Table) PaginatorState() Paginator {
	return t.paginator
}
func (t *Table) FilterValue() string { return t.filter }
func (t *Table) Selected() Row       { return t.selected }

func (t *Table) Style() StyleConfiguration {
	if t.opts.Style == nil {
		return StyleConfiguration{}
	}
	return *t.opts.Style
}

func (t *Table) FilterPrompt() (FilterPrompt, bool) {
	if t.opts.Filter == nil {
		return FilterPrompt{}, false
	}
	prompt := FilterPrompt{Label: t.opts.Filter.Label, Text: t.filter}
	if t.filter == "" && t.opts.Filter.Placeholder != "" {
		prompt.Text = t.opts.Filter.Placeholder
		prompt.Placeholder = true
	}
	return prompt, true
}

// SetData replaces the rows. Columns are taken from the first non-empty data set.
func (t *Table) SetData(rows []Row) {
	t.source.Set(rows)
	if t.columns == nil && t.source.HasData() {
		t.columns = columnNames(t.source.Get(0))
	}
	t.source.LoadingOff()
}

// Load performs the initial fetch of a server-side table.
func (t *Table) Load(ctx context.Context) error {
	if t.opts.Configuration != ServerSide {
		return nil
	}
	return t.tableEvent(ctx)
}

// Filter applies a new filter value. Unchanged values are ignored. When the
// server-side fetch fails the previous filter and page are kept, so the same value
// can be retried.
func (t *Table) Filter(ctx context.Context, value string) error {
	if t.opts.Filter == nil {
		return fmt.Errorf("%w: filter", ErrNotConfigured)
	}
	value = strings.TrimSpace(value)
	if value == t.filter {
		return nil
	}

	previousFilter, previousPage := t.filter, t.paginator
	t.filter = value
	t.resetPaginator()
	if err := t.tableEvent(ctx); err != nil {
		t.filter, t.paginator = previousFilter, previousPage
		return err
	}
	return nil
}

func (t *Table) Sort(ctx context.Context, field string, direction SortDirection) error {
	if t.opts.Sort == nil {
		return fmt.Errorf("%w: sort", ErrNotConfigured)
	}
	t.sort = Sort{Field: field, Direction: direction}
	if t.opts.Configuration == ServerSide {
		t.resetPaginator()
	}
	return t.tableEvent(ctx)
}

func (t *Table) Paginate(ctx context.Context, pageIndex, pageSize int) error {
	if t.opts.Paginator == nil {
		return fmt.Errorf("%w: paginator", ErrNotConfigured)
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageSize <= 0 {
		pageSize = t.paginator.PageSize
	}
	t.paginator = Paginator{PageIndex: pageIndex, PageSize: pageSize}
	return t.tableEvent(ctx)
}

func (t *Table) tableEvent(ctx context.Context) error {
	if t.opts.Configuration == ClientSide {
		if t.opts.Filter != nil {
			t.source.SetFilter(t.filter)
		}
		return nil
	}
	return t.fetch(ctx)
}

func (t *Table) fetch(ctx context.Context) error {
	if t.opts.Fetch == nil {
		return nil
	}
	t.source.LoadingOn()
	defer t.source.LoadingOff()

	req := FetchRequest{Filter: t.filter}
	if t.opts.Sort != nil {
		req.SortColumn = t.sort.Field
		req.SortDirection = t.sort.Direction
	}
	if t.opts.Paginator != nil {
		req.PageIndex = t.paginator.PageIndex
		req.PageSize = t.paginator.PageSize
	}

	result, err := t.opts.Fetch(ctx, req)
	if err != nil {
		return err
	}
	t.SetData(result.Rows)
	t.totalData = result.Total
	return nil
}

func (t *Table) resetPaginator() {
	t.paginator.FirstPage()
}

// ClickRow toggles the selection of row and notifies RowClicked.
func (t *Table) ClickRow(row Row) {
	if t.selected != nil && row != nil && t.selected.RowID() == row.RowID() {
		t.selected = nil
	} else {
		t.selected = row
	}
	if t.opts.RowClicked != nil {
		t.opts.RowClicked(t.selected)
	}
}

// SelectByID clicks the row with the given id. It reports whether such a row exists.
func (t *Table) SelectByID(id string) bool {
	i := indexOf(t.source.All(), id)
	if i < 0 {
		return false
	}
	t.ClickRow(t.source.Get(i))
	return true
}

// SelectedDetails builds the child table of the selected row. It returns nil when
// nothing is selected.
func (t *Table) SelectedDetails(ctx context.Context) (*Table, error) {
	if t.opts.Details == nil || t.opts.Details.Child == nil {
		return nil, fmt.Errorf("%w: details", ErrNotConfigured)
	}
	if t.selected == nil {
		return nil, nil
	}
	child, err := t.opts.Details.Child(ctx, t.selected)
	if err != nil || child == nil {
		return nil, err
	}
	if child.opts.Style == nil {
		style := t.opts.Details.ChildStyle
		child.opts.Style = &style
	}
	return child, nil
}

func (t *Table) HasDetails() bool {
	return t.opts.Details != nil && t.opts.Details.Child != nil
}

func (t *Table) Columns() []string {
	return t.columns
}

// Rows returns the rows to display on the current page.
func (t *Table) Rows() []Row {
	return t.source.View()
}

func (t *Table) FooterCell(column string) string {
	if t.opts.Footer != nil && t.opts.Footer.CustomFooter != nil {
		return t.opts.Footer.CustomFooter(column)
	}
	return FooterValue(t.source.All(), column)
}

func (t *Table) CellAlignment(column string) Alignment {
	c, _, ok := findColumn(t.source.Get(0), column)
	if !ok {
		return Normal
	}
	return c.Alignment
}

func (t *Table) CellFormatting(row Row, column string) string {
	return FormatCell(row, column)
}

// SortHeader returns the field a header click sorts by.
func (t *Table) SortHeader(column string) string {
	c, _, ok := findColumn(t.source.Get(0), column)
	if !ok {
		return ""
	}
	return c.Field
}

// PaginatorLength is the number of rows the paginator pages over.
func (t *Table) PaginatorLength() int {
	if t.opts.Configuration == ServerSide {
		return t.totalData
	}
	if cs, ok := t.source.(*ClientSideDataSource); ok {
		return len(cs.Filtered())
	}
	return t.source.Len()
}

// PageCount is the number of pages, at least one.
func (t *Table) PageCount() int {
	size := t.paginator.PageSize
	if size <= 0 {
		return 1
	}
	return max(1, (t.PaginatorLength()+size-1)/size)
}

func (t *Table) HasFooter() bool {
	return t.opts.Footer != nil
}
