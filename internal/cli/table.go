package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/wellmap/wellmap/pkg/errors"
	"github.com/wellmap/wellmap/pkg/wells"
)

func (c *CLI) tableCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "table <toml>",
		Short: "List the wells defined by a layout",
		Long: `List every well of a layout with its attributes.

Without --output the table is printed to the terminal. With --output it is
exported as CSV or as an Excel workbook, depending on the extension.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayoutArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, _, err := c.newRunner(true).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Fprintln(c.Stdout, renderWellTable(tbl))
				return nil
			}
			out := outputPath(output, args[0])
			if err := exportWellTable(tbl, out); err != nil {
				return err
			}
			printSuccess(c.Stdout, "Wells written to: %s", out)
			printKeyValue(c.Stdout, "wells", fmt.Sprint(tbl.Len()))
			printKeyValue(c.Stdout, "attributes", strings.Join(tbl.Attrs, ", "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "export to `PATH` (.csv or .xlsx, $ is replaced by the layout name)")
	return cmd
}

// displayColumns are the columns worth showing in a terminal.
func displayColumns(t *wells.Table) []string {
	var cols []string
	if t.HasPlate() {
		cols = append(cols, wells.ColPlate)
	}
	cols = append(cols, wells.ColWell)
	return append(cols, t.Attrs...)
}

func renderWellTable(t *wells.Table) string {
	cols := displayColumns(t)
	rows := make([][]string, t.Len())
	for i := range rows {
		rows[i] = make([]string, len(cols))
		for k, col := range cols {
			rows[i][k] = t.Get(i, col).String()
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(cols...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

func exportWellTable(t *wells.Table, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
		}
		if err := writeCSV(f, t); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return writeXLSX(path, t)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "cannot export wells to %q (use .csv or .xlsx)", path)
	}
}

// writeCSV writes every structural column and attribute, one row per well.
func writeCSV(w io.Writer, t *wells.Table) error {
	cols := t.Columns()
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	rec := make([]string, len(cols))
	for i := range t.Len() {
		for k, col := range cols {
			rec[k] = t.Get(i, col).String()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeXLSX writes the same columns as writeCSV to a workbook, keeping
// numbers and booleans typed.
func writeXLSX(path string, t *wells.Table) error {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName("wells")

	cols := t.Columns()
	header := sheet.AddRow()
	for _, col := range cols {
		header.AddCell().SetString(col)
	}
	for i := range t.Len() {
		row := sheet.AddRow()
		for _, col := range cols {
			cell := row.AddCell()
			v := t.Get(i, col)
			switch v.Kind() {
			case wells.Missing:
			case wells.Int, wells.Float:
				cell.SetNumber(v.Float())
			case wells.Bool:
				cell.SetBool(v.Interface().(bool))
			default:
				cell.SetString(v.String())
			}
		}
	}
	if err := wb.SaveToFile(path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", path)
	}
	return nil
}
