package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
	alignCenter
)

// tableLayout describes one rendered table. A nil row renders as a separator.
type tableLayout struct {
	Title     string
	Headers   []string
	Rows      [][]string
	Aligns    []columnAlignment
	MaxWidths []int // 0 leaves a column unbounded
	Style     table.Style
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	return renderTableLayout(tableLayout{Headers: headers, Rows: rows, Aligns: aligns})
}

func renderTableLayout(layout tableLayout) string {
	columns := len(layout.Headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if layout.Style.Name == "" {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(layout.Style)
	}
	if layout.Title != "" {
		tw.SetTitle(layout.Title)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = layout.Headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range layout.Rows {
		if row == nil {
			tw.AppendSeparator()
			continue
		}
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(layout.Aligns) {
			switch layout.Aligns[i] {
			case alignRight:
				align = text.AlignRight
			case alignCenter:
				align = text.AlignCenter
			}
		}
		cc := table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
		if i < len(layout.MaxWidths) && layout.MaxWidths[i] > 0 {
			cc.WidthMax = layout.MaxWidths[i]
			cc.WidthMaxEnforcer = text.WrapHard
		}
		columnConfigs = append(columnConfigs, cc)
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
