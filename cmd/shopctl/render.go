package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"gin-shopcart/table"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Italic(true).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	infoStyle   = lipgloss.NewStyle().Faint(true)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	childStyle  = lipgloss.NewStyle().MarginLeft(4)

	alternateRowColor = lipgloss.Color("236")
)

func lipglossAlign(a table.Alignment) lipgloss.Position {
	switch a {
	case table.Center:
		return lipgloss.Center
	case table.Right:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// renderTable writes the filter prompt, the current page of t with its footer, the
// paging state and, when a row is selected, the details of that row.
func renderTable(ctx context.Context, w io.Writer, t *table.Table) error {
	if prompt, ok := t.FilterPrompt(); ok {
		if _, err := fmt.Fprintln(w, renderPrompt(prompt)); err != nil {
			return err
		}
	}

	columns := t.Columns()
	visible := t.Rows()
	if len(columns) == 0 || len(visible) == 0 {
		_, err := fmt.Fprintln(w, "No data.")
		return err
	}

	rows := make([][]string, 0, len(visible)+1)
	for _, row := range visible {
		cells := make([]string, 0, len(columns))
		for _, column := range columns {
			cells = append(cells, t.CellFormatting(row, column))
		}
		rows = append(rows, cells)
	}

	if t.HasFooter() {
		cells := make([]string, 0, len(columns))
		for _, column := range columns {
			cells = append(cells, t.FooterCell(column))
		}
		rows = append(rows, cells)
	}

	style := t.Style()
	selected := t.Selected()
	lt := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			align := lipgloss.Left
			if col < len(columns) {
				align = lipglossAlign(t.CellAlignment(columns[col]))
			}
			switch {
			case row == ltable.HeaderRow:
				return headerStyle.Align(align)
			case row == len(visible):
				return footerStyle.Align(align)
			case selected != nil && row < len(visible) && visible[row].RowID() == selected.RowID():
				return selectedStyle(style).Align(align)
			case style.AlternatingRowColors && row%2 == 1:
				return cellStyle.Align(align).Background(alternateRowColor)
			default:
				return cellStyle.Align(align)
			}
		})

	if _, err := fmt.Fprintln(w, lt.Render()); err != nil {
		return err
	}

	p := t.PaginatorState()
	if p.PageSize > 0 {
		info := fmt.Sprintf("Page %d of %d (%d rows)", p.PageIndex+1, t.PageCount(), t.PaginatorLength())
		if _, err := fmt.Fprintln(w, infoStyle.Render(info)); err != nil {
			return err
		}
	}

	if selected == nil || !t.HasDetails() {
		return nil
	}
	return renderDetailsOf(ctx, w, t, selected)
}

func renderPrompt(prompt table.FilterPrompt) string {
	label := prompt.Label
	if label == "" {
		label = "Filter"
	}
	text := prompt.Text
	if prompt.Placeholder {
		text = infoStyle.Render(text)
	}
	return labelStyle.Render(label+":") + " " + text
}

// 選択行の色が無ければ反転表示にする
func selectedStyle(style table.StyleConfiguration) lipgloss.Style {
	if style.SelectedRowColor == "" {
		return cellStyle.Reverse(true)
	}
	return cellStyle.Background(lipgloss.Color(style.SelectedRowColor))
}

func renderDetailsOf(ctx context.Context, w io.Writer, t *table.Table, selected table.Row) error {
	child, err := t.SelectedDetails(ctx)
	if err != nil {
		return fmt.Errorf("details of %s: %w", selected.RowID(), err)
	}
	if child == nil {
		return nil
	}

	var buf bytes.Buffer
	title := "Details"
	if columns := t.Columns(); len(columns) > 0 {
		title += " of " + t.CellFormatting(selected, columns[0])
	}
	fmt.Fprintln(&buf, labelStyle.Render(title))
	if err := renderTable(ctx, &buf, child); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, childStyle.Render(strings.TrimRight(buf.String(), "\n")))
	return err
}
