package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
)

// Service turns extraction results into XLSX bytes for downstream analysts.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultsXLSX renders one row per meeting. Empty extraction fields render as
// empty cells, set fields as comma-joined token lists.
func (s *Service) ResultsXLSX(results []*entity.ExtractionResult) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	defaultSheet, _ := f.GetSheetIndex("Sheet1")
	if defaultSheet != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Meeting ID",
		"Status",
		"Error",
		"Industry",
		"Business Model",
		"Lead Source",
		"Process Maturity",
		"Tooling Maturity",
		"Knowledge Complexity",
		"Risk Level",
		"Urgency",
		"Sentiment",
		"Jobs To Be Done",
		"Pain Points",
		"Integrations",
		"Success Metrics",
		"Objections",
		"Volume Quantity",
		"Volume Unit",
		"Volume Is Peak",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, res := range results {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, res.MeetingID.String())
		write(2, string(res.Status))
		write(3, res.Error)

		ex := res.Extraction
		if ex == nil {
			ex = &entity.Extraction{}
		}
		write(4, deref(ex.Industry))
		write(5, deref(ex.BusinessModel))
		write(6, deref(ex.LeadSource))
		write(7, deref(ex.ProcessMaturity))
		write(8, deref(ex.ToolingMaturity))
		write(9, deref(ex.KnowledgeComplexity))
		write(10, deref(ex.RiskLevel))
		write(11, deref(ex.Urgency))
		write(12, deref(ex.Sentiment))
		write(13, strings.Join(ex.JtbdPrimary, ", "))
		write(14, strings.Join(ex.PainPoints, ", "))
		write(15, strings.Join(ex.Integrations, ", "))
		write(16, strings.Join(ex.SuccessMetrics, ", "))
		write(17, strings.Join(ex.Objections, ", "))

		if ex.Volume != nil {
			if ex.Volume.Quantity != nil {
				write(18, *ex.Volume.Quantity)
			}
			write(19, deref(ex.Volume.Unit))
			write(20, ex.Volume.IsPeak)
		}

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 38) // meeting id
	_ = f.SetColWidth(sheet, "B", "B", 10)
	_ = f.SetColWidth(sheet, "C", "C", 48) // error
	_ = f.SetColWidth(sheet, "D", "L", 20)
	_ = f.SetColWidth(sheet, "M", "Q", 34) // token sets

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(results),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
