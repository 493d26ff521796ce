package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

func (s *service) CSV(ctx context.Context, q Query) ([]byte, error) {
	rows, err := s.Rows(ctx, q)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row.values()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) XLSX(ctx context.Context, q Query) ([]byte, error) {
	rows, err := s.Rows(ctx, q)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for col, title := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		for col, value := range row.values() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *service) PDF(ctx context.Context, q Query) ([]byte, error) {
	rows, err := s.Rows(ctx, q)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, fmt.Sprintf("Attendance Report %s - %s", q.StartDate, q.EndDate))
	lines = append(lines, "")
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf(
			"%s  %s  %s  In %s  Out %s  Worked %s  %s",
			row.EmployeeID, row.EmployeeName, row.Date,
			row.InTime, row.OutTime, row.WorkedHours, row.Status,
		))
	}

	return buildAttendancePDF(lines)
}
