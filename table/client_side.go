package table

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClientSideDataSource keeps every row in memory and derives the visible page
// from the filter, sort and paginator it was given.
type ClientSideDataSource struct {
	rows      []Row
	filter    string
	sort      *Sort
	paginator *Paginator
}

func NewClientSideDataSource(rows ...Row) *ClientSideDataSource {
	return &ClientSideDataSource{rows: append([]Row{}, rows...)}
}

func (s *ClientSideDataSource) Len() int      { return len(s.rows) }
func (s *ClientSideDataSource) HasData() bool { return len(s.rows) > 0 }
func (s *ClientSideDataSource) Set(rows []Row) {
	s.rows = append([]Row{}, rows...)
}
func (s *ClientSideDataSource) Get(index int) Row { return getRow(s.rows, index) }
func (s *ClientSideDataSource) All() []Row        { return s.rows }
func (s *ClientSideDataSource) Add(row Row)       { s.rows = append(s.rows, row) }
func (s *ClientSideDataSource) Remove(row Row)    { s.rows = removeRow(s.rows, row) }

func (s *ClientSideDataSource) Edit(row Row) {
	if i := indexOf(s.rows, row.RowID()); i > -1 {
		s.rows[i] = row
	}
}

// ローカルデータなので読み込み状態は持たない
func (s *ClientSideDataSource) Loading() bool { return false }
func (s *ClientSideDataSource) LoadingOn()    {}
func (s *ClientSideDataSource) LoadingOff()   {}

func (s *ClientSideDataSource) SetSort(sort *Sort)                { s.sort = sort }
func (s *ClientSideDataSource) SetPaginator(paginator *Paginator) { s.paginator = paginator }
func (s *ClientSideDataSource) Paginator() *Paginator             { return s.paginator }

func (s *ClientSideDataSource) SetFilter(filter string) {
	s.filter = cases.Lower(language.Und).String(strings.TrimSpace(filter))
}

// Filtered returns the rows matching the filter, sorted but not paged.
func (s *ClientSideDataSource) Filtered() []Row {
	filtered := make([]Row, 0, len(s.rows))
	lower := cases.Lower(language.Und)
	for _, r := range s.rows {
		if s.filter == "" || strings.Contains(filterText(lower, r), s.filter) {
			filtered = append(filtered, r)
		}
	}

	if s.sort != nil && s.sort.active() {
		field, desc := s.sort.Field, s.sort.Direction == SortDesc
		sort.SliceStable(filtered, func(i, j int) bool {
			c := compareRows(filtered[i], filtered[j], field)
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	return filtered
}

func (s *ClientSideDataSource) View() []Row {
	filtered := s.Filtered()
	if s.paginator == nil || s.paginator.PageSize <= 0 {
		return filtered
	}

	size := s.paginator.PageSize
	start := s.paginator.PageIndex * size
	if start >= len(filtered) && len(filtered) > 0 {
		// 範囲外のページは最後のページに寄せる
		s.paginator.PageIndex = (len(filtered) - 1) / size
		start = s.paginator.PageIndex * size
	}
	if start >= len(filtered) {
		return []Row{}
	}
	end := min(start+size, len(filtered))
	return filtered[start:end]
}

// filterText joins the raw and the rendered value of every column, so a filter matches
// both "1500" and "1,500".
func filterText(lower cases.Caser, row Row) string {
	var b strings.Builder
	for _, c := range row.Columns() {
		v := row.Value(c.Field)
		if v == nil {
			continue
		}
		b.WriteString(lower.String(fmt.Sprint(v)))
		b.WriteString("◬")
		if formatted := FormatCell(row, c.Column); formatted != "" {
			b.WriteString(lower.String(formatted))
			b.WriteString("◬")
		}
	}
	return b.String()
}

func compareRows(a, b Row, field string) int {
	kind := String
	for _, c := range a.Columns() {
		if c.Field == field {
			kind = c.Type
			break
		}
	}
	return compareValues(a.Value(field), b.Value(field), kind)
}
