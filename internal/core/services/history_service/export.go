package history_service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

const (
	exportFilePrefix = "historico-consultas-"
	exportSheetName  = "Histórico"

	contentTypeCSV  = "text/csv;charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	notAvailable = "N/A"
)

var exportHeaders = []string{"Data", "Horário", "Profissional", "Especialidade", "Tipo", "Status", "Avaliação", "Valor"}

func exportFileName(now time.Time, format domain.ExportFormat) string {
	return exportFilePrefix + now.Format("2006-01-02") + "." + string(format)
}

// BuildExport renders the given view, already filtered and sorted, as a file.
func BuildExport(records []domain.ConsultationRecord, format domain.ExportFormat, now time.Time) (*domain.ExportFile, error) {
	switch format {
	case domain.ExportFormatCSV:
		data, err := buildCSV(records)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{Name: exportFileName(now, format), ContentType: contentTypeCSV, Data: data}, nil
	case domain.ExportFormatXLSX:
		data, err := buildXLSX(records)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{Name: exportFileName(now, format), ContentType: contentTypeXLSX, Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExport, format)
}

func exportRow(record domain.ConsultationRecord) []string {
	rating := notAvailable
	if r := record.Rating(); r > 0 {
		rating = strconv.Itoa(r)
	}
	cost := notAvailable
	if record.Cost != 0 {
		cost = "R$ " + strconv.FormatFloat(record.Cost, 'f', -1, 64)
	}

	return []string{
		utils.FormatShortPtBR(record.Date),
		record.Time,
		record.CounterpartName,
		record.Specialty,
		record.ServiceType,
		string(record.Status),
		rating,
		cost,
	}
}

func buildCSV(records []domain.ConsultationRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(exportRow(record)); err != nil {
			return nil, fmt.Errorf("failed to write csv row %q: %w", record.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func buildXLSX(records []domain.ConsultationRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, record := range records {
		row := i + 2
		values := exportRow(record)
		for col, value := range values {
			var cellValue interface{} = value
			// ratings stay numeric in the spreadsheet
			if col == 6 && record.Rating() > 0 {
				cellValue = record.Rating()
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheetName, cell, cellValue); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetColWidth(exportSheetName, "A", "H", 18); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
