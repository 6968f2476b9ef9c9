// Copyright (c) 2025 The xgtsh Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"xgtsh/cli/internal/xgt"

	"github.com/olekukonko/tablewriter"
)

// renderTable prints a result set column aligned with a header row.
func renderTable(w io.Writer, result *xgt.QueryResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(result.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatCell(v)
		}
		table.Append(cells)
	}
	table.Render()
}

// renderCSV prints a header row followed by one comma-separated line
// per data row. No index column is emitted.
func renderCSV(w io.Writer, result *xgt.QueryResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(result.Columns); err != nil {
		return err
	}
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderJSON prints the result as a pretty-printed array: objects keyed
// by column name when a schema is present, raw rows otherwise.
func renderJSON(w io.Writer, result *xgt.QueryResult) error {
	var v any
	if len(result.Columns) > 0 {
		records := make([]map[string]any, len(result.Rows))
		for i, row := range result.Rows {
			record := make(map[string]any, len(result.Columns))
			for j, col := range result.Columns {
				if j < len(row) {
					record[col] = row[j]
				}
			}
			records[i] = record
		}
		v = records
	} else {
		v = result.Rows
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// formatCell renders one result value for table and csv output.
func formatCell(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
