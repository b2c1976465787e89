package table

type SortDirection int

const (
	SortNone SortDirection = 0
	SortAsc  SortDirection = 1
	SortDesc SortDirection = -1
)

// Sort is the active sort state. An empty Field or SortNone keeps the data order.
type Sort struct {
	Field     string
	Direction SortDirection
}

func (s Sort) active() bool {
	return s.Field != "" && s.Direction != SortNone
}

// Paginator is the active page state. PageSize <= 0 disables paging.
type Paginator struct {
	PageIndex int
	PageSize  int
}

func (p *Paginator) FirstPage() {
	p.PageIndex = 0
}

// DataSource holds the rows of a Table. ClientSideDataSource filters, sorts and pages
// in memory; ServerSideDataSource shows exactly the rows the server returned.
type DataSource interface {
	Len() int
	HasData() bool
	Set(rows []Row)
	Get(index int) Row
	All() []Row
	Add(row Row)
	Remove(row Row)
	Edit(row Row)
	Loading() bool
	LoadingOn()
	LoadingOff()
	SetSort(sort *Sort)
	SetPaginator(paginator *Paginator)
	Paginator() *Paginator
	SetFilter(filter string)
	View() []Row
}

func indexOf(rows []Row, id string) int {
	for i, r := range rows {
		if r.RowID() == id {
			return i
		}
	}
	return -1
}

func removeRow(rows []Row, row Row) []Row {
	kept := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.RowID() != row.RowID() {
			kept = append(kept, r)
		}
	}
	return kept
}

func getRow(rows []Row, index int) Row {
	if index < 0 || index >= len(rows) {
		return nil
	}
	return rows[index]
}
