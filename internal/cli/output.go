// Package cli renders query results for the non-interactive commands.
// Rendering goes through typed column definitions so formatting never
// leaks into the contract client.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// AllFormats lists the accepted values of the --output flag.
var AllFormats = []Format{FormatTable, FormatCSV, FormatJSON}

var plainStyle = table.Style{
	Name:   "StyleDefault",
	Box:    table.StyleBoxDefault,
	Color:  table.ColorOptionsDefault,
	Format: table.FormatOptionsDefault,
	HTML:   table.DefaultHTMLOptions,
	Options: table.Options{
		DrawBorder:      false,
		SeparateColumns: false,
		SeparateFooter:  false,
		SeparateHeader:  false,
		SeparateRows:    false,
	},
	Title: table.TitleOptionsDefault,
}

// Options controls tabular rendering.
type Options struct {
	Format     Format
	Pretty     bool // indent JSON output
	HideHeader bool
	NoStyle    bool
	Wide       bool // lift per-column width caps
}

// Column pairs a go-pretty column config with a typed value extractor.
type Column[T any] struct {
	table.ColumnConfig
	Value func(T) string
}

// Output renders items in the requested format.
func Output[T any](w io.Writer, columns []Column[T], opts Options, items []T) error {
	switch opts.Format {
	case FormatTable, FormatCSV:
		renderTable(w, columns, opts, items)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		if opts.Pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(items)
	default:
		return fmt.Errorf("invalid output format %q", opts.Format)
	}
}

// OutputOne renders a single item.
func OutputOne[T any](w io.Writer, columns []Column[T], opts Options, item T) error {
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		if opts.Pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(item)
	}
	return Output(w, columns, opts, []T{item})
}

func renderTable[T any](w io.Writer, columns []Column[T], opts Options, items []T) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		config := c.ColumnConfig
		config.Number = i + 1
		if opts.Wide {
			config.WidthMax = 0
			config.WidthMaxEnforcer = nil
		}
		configs[i] = config
	}
	tw.SetColumnConfigs(configs)

	if !opts.HideHeader {
		headers := make(table.Row, len(columns))
		for i, c := range columns {
			headers[i] = c.Name
		}
		tw.AppendHeader(headers)
	}

	tw.SetStyle(table.StyleColoredGreenWhiteOnBlack)
	if opts.NoStyle {
		tw.SetStyle(plainStyle)
	}

	for _, item := range items {
		row := make(table.Row, len(columns))
		for i, c := range columns {
			row[i] = c.Value(item)
		}
		tw.AppendRow(row)
	}

	switch opts.Format {
	case FormatTable:
		tw.Render()
	case FormatCSV:
		tw.RenderCSV()
	}
}
