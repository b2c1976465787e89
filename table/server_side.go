package table

// ServerSideDataSource shows exactly the rows the server returned. Filtering, sorting
// and paging are the server's job, so the corresponding setters do nothing.
type ServerSideDataSource struct {
	rows    []Row
	loading bool
}

func NewServerSideDataSource(rows ...Row) *ServerSideDataSource {
	return &ServerSideDataSource{rows: append([]Row{}, rows...)}
}

func (s *ServerSideDataSource) Len() int      { return len(s.rows) }
func (s *ServerSideDataSource) HasData() bool { return len(s.rows) > 0 }
func (s *ServerSideDataSource) Set(rows []Row) {
	s.rows = append([]Row{}, rows...)
}
func (s *ServerSideDataSource) Get(index int) Row { return getRow(s.rows, index) }
func (s *ServerSideDataSource) All() []Row        { return s.rows }
func (s *ServerSideDataSource) Add(row Row)       { s.rows = append(s.rows, row) }
func (s *ServerSideDataSource) Remove(row Row)    { s.rows = removeRow(s.rows, row) }

func (s *ServerSideDataSource) Edit(row Row) {
	if i := indexOf(s.rows, row.RowID()); i > -1 {
		s.rows[i] = row
	}
}

func (s *ServerSideDataSource) Loading() bool { return s.loading }
func (s *ServerSideDataSource) LoadingOn()    { s.loading = true }
func (s *ServerSideDataSource) LoadingOff()   { s.loading = false }

func (s *ServerSideDataSource) SetSort(*Sort)           {}
func (s *ServerSideDataSource) SetPaginator(*Paginator) {}
func (s *ServerSideDataSource) Paginator() *Paginator   { return nil }
func (s *ServerSideDataSource) SetFilter(string)        {}

func (s *ServerSideDataSource) View() []Row { return s.rows }
