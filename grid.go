package main

import (
	"strings"
)

// splits `cells` into rows of `columns` cells.
// order is preserved and a short final row is kept.
func layout_grid[T any](cells []T, columns int) [][]T {
	ensure(columns >= 1, "grid needs at least one column")
	rows := [][]T{}
	for i := 0; i < len(cells); i += columns {
		end := min(i+columns, len(cells))
		rows = append(rows, cells[i:end])
	}
	return rows
}

// "| a | b |"
func table_row(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |\n"
}

// "| :---: | :---: |"
func table_separator(n int) string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = ":---:"
	}
	return table_row(cells)
}

// writes `rows` as a single table, the first row is the header.
func write_table(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	b.WriteString(table_row(rows[0]))
	b.WriteString(table_separator(len(rows[0])))
	for _, row := range rows[1:] {
		b.WriteString(table_row(row))
	}
}
