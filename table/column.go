package table

import "time"

// DataType describes either how a column's values compare and aggregate (ColumnData.Type)
// or how they are rendered (ColumnData.Formatting).
type DataType int

const (
	Date DataType = iota
	String
	Integer
	Float
	Boolean
)

func (d DataType) numeric() bool {
	return d == Integer || d == Float
}

type Alignment int

const (
	Normal Alignment = iota
	Left
	Center
	Right
)

func (a Alignment) String() string {
	switch a {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	default:
		return "normal"
	}
}

// ColumnData is the metadata a row carries for each displayed column.
// Field is the key passed to Row.Value, Column is the header label.
type ColumnData struct {
	Field      string
	Column     string
	Type       DataType
	Formatting DataType
	DateFormat func(time.Time) string
	Alignment  Alignment
}

// Row is implemented by anything displayed in a Table.
type Row interface {
	RowID() string
	Columns() []ColumnData
	Value(field string) any
}

func findColumn(row Row, column string) (ColumnData, int, bool) {
	if row == nil {
		return ColumnData{}, -1, false
	}
	for i, c := range row.Columns() {
		if c.Column == column {
			return c, i, true
		}
	}
	return ColumnData{}, -1, false
}

func columnNames(row Row) []string {
	cols := row.Columns()
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Column)
	}
	return names
}
