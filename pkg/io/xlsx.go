package io

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// SheetName is the worksheet written by [WriteXLSX].
const SheetName = "Graph"

// ReadXLSX parses the first worksheet of a spreadsheet using the same strict
// two-column layout as [ReadCSV]. Reading stops at the first row with an
// empty vertex cell.
func ReadXLSX(r io.Reader) (*graph.Store, LoadReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, LoadReport{}, errors.New("spreadsheet has no worksheets")
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	b := newTableBuilder()
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		if len(rec) == 0 || rec[0] == "" {
			break
		}
		if err := b.addRow(i+1, rec); err != nil {
			return nil, LoadReport{}, err
		}
	}
	return b.g, report(b.g, 0), nil
}

// WriteXLSX writes a workbook with a single "Graph" sheet.
func WriteXLSX(w io.Writer, g *graph.Store) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &[]any{headerVertex, headerEdges}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for v, ns := range rows(g) {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]any{v, formatNeighbors(ns)}); err != nil {
			return fmt.Errorf("write vertex %d: %w", v, err)
		}
		row++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
