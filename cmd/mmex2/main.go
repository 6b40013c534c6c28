// Command mmex2 extracts tables from a Money Manager Ex database file and
// renders them to the terminal or to CSV/XLSX report files.
//
// Usage:
//
//	mmex2 tables     -db Finances.mmb
//	mmex2 read       -db Finances.mmb -table PAYEE_V1 [-format table|csv] [-o out.csv]
//	mmex2 categories -db Finances.mmb [-o categories.xlsx]
//	mmex2 joined     -db Finances.mmb [-o joined.csv]
//	mmex2 normalized -db Finances.mmb [-o report.xlsx]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/taekyunk/mmex2"
	"github.com/taekyunk/mmex2/internal/export"
	"github.com/taekyunk/mmex2/internal/report"
	"github.com/taekyunk/mmex2/internal/table"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	dbPath := fs.String("db", "", "path to the MMEX database file (required)")
	tableName := fs.String("table", "", "table name (read command only)")
	format := fs.String("format", "table", "terminal output format: table or csv")
	output := fs.String("o", "", "write to file instead of stdout (.csv or .xlsx)")
	fs.Parse(os.Args[2:])

	if *dbPath == "" {
		slog.Error("missing required -db flag")
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := run(ctx, cmd, *dbPath, *tableName, *format, *output); err != nil {
		slog.Error("command failed", "command", cmd, "db", *dbPath, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd, dbPath, tableName, format, output string) error {
	var (
		result *table.Table
		sheet  string
	)

	switch cmd {
	case "tables":
		names, err := mmex2.ListTables(ctx, dbPath)
		if err != nil {
			return err
		}
		result = table.New("name")
		for _, n := range names {
			result.Rows = append(result.Rows, []any{n})
		}
		sheet = "tables"

	case "read":
		if tableName == "" {
			return fmt.Errorf("read requires -table")
		}
		t, err := mmex2.ReadTableByName(ctx, tableName, dbPath)
		if err != nil {
			return err
		}
		result, sheet = t, strings.ToLower(tableName)

	case "categories":
		cats, err := mmex2.ReadResolvedCategories(ctx, dbPath)
		if err != nil {
			return err
		}
		result, sheet = report.CategoriesTable(cats), "categories"

	case "joined":
		joined, err := mmex2.BuildJoinedTable(ctx, dbPath)
		if err != nil {
			return err
		}
		result, sheet = report.JoinedTable(joined), "joined"

	case "normalized":
		normalized, err := mmex2.ReadNormalizedTable(ctx, dbPath)
		if err != nil {
			return err
		}
		result, sheet = report.NormalizedTable(normalized), "normalized"

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	slog.Info("extracted", "command", cmd, "rows", result.Len())
	return emit(result, sheet, format, output)
}

// emit routes a result to stdout or to a file based on its extension.
func emit(t *table.Table, sheet, format, output string) error {
	if output == "" {
		if format == "csv" {
			return export.WriteCSV(os.Stdout, t)
		}
		render(t)
		return nil
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create %s: %w", output, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".xlsx":
		err = export.WriteXLSX(f, sheet, t)
	case ".csv":
		err = export.WriteCSV(f, t)
	default:
		err = fmt.Errorf("unsupported output extension %q (want .csv or .xlsx)", ext)
	}
	if err != nil {
		return err
	}
	slog.Info("wrote output file", "path", output)
	return nil
}

func render(t *table.Table) {
	w := tablewriter.NewWriter(os.Stdout)
	w.SetHeader(t.Columns)
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = export.FormatCell(v)
		}
		w.Append(record)
	}
	w.Render()
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: mmex2 <command> -db <file> [flags]

commands:
  tables      list all tables in the database
  read        fetch one table verbatim (-table required)
  categories  resolved category names
  joined      transactions joined with accounts, payees, categories
  normalized  the analysis-ready flat table

flags:
  -db      path to the MMEX database file
  -table   table name for the read command
  -format  terminal output: table (default) or csv
  -o       write to a .csv or .xlsx file instead of stdout`)
}
