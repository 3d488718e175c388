// Package export produces XLSX workbooks from persisted shipment records.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"lading/internal/port"
)

// Service produces XLSX bytes for record exports.
type Service struct {
	recordRepo port.RecordRepository
}

// NewService creates an export service over the record repository.
func NewService(recordRepo port.RecordRepository) *Service {
	return &Service{recordRepo: recordRepo}
}

// exportPageSize bounds how many rows are fetched per repository call.
const exportPageSize = 500

// ExportRecordsXLSX returns an XLSX workbook holding every persisted record
// summary, newest first.
func (s *Service) ExportRecordsXLSX(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Shipment Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Record ID",
		"BOL Number",
		"Shipper",
		"Consignee",
		"Carrier",
		"Ship Date",
		"Confidence",
		"Source File",
		"Created At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	offset := 0
	for {
		rows, total, err := s.recordRepo.List(ctx, offset, exportPageSize)
		if err != nil {
			return nil, fmt.Errorf("listing records: %w", err)
		}

		for _, r := range rows {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}

			write(1, r.RecordID)
			write(2, r.BOLNumber)
			write(3, r.ShipperName)
			write(4, r.ConsigneeName)
			write(5, r.CarrierName)
			if r.ShipDate != nil {
				write(6, r.ShipDate.Format("2006-01-02"))
			} else {
				write(6, "")
			}
			write(7, r.OverallConfidence)
			write(8, r.SourceFileName)
			write(9, r.CreatedAt.Format("2006-01-02 15:04:05"))
			row++
		}

		offset += len(rows)
		if offset >= total || len(rows) == 0 {
			break
		}
	}

	_ = f.SetColWidth(sheet, "A", "B", 18)
	_ = f.SetColWidth(sheet, "C", "E", 28)
	_ = f.SetColWidth(sheet, "F", "F", 12)
	_ = f.SetColWidth(sheet, "H", "I", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
