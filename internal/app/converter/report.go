package converter

import (
	"fmt"

	"github.com/tealeg/xlsx"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/model"
)

// ExportReport writes one row per converted file to an xlsx workbook.
func ExportReport(report *model.ConversionReport, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Conversions")
	if err != nil {
		return apperrors.Wrap(err, "failed to add sheet")
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "Input"
	headerRow.AddCell().Value = "Output"
	headerRow.AddCell().Value = "Status"
	headerRow.AddCell().Value = "Size (KB)"
	headerRow.AddCell().Value = "Duration (s)"
	headerRow.AddCell().Value = "Error Message"

	addRow := func(r model.ConversionResult) {
		row := sheet.AddRow()
		row.AddCell().Value = r.Input
		row.AddCell().Value = r.Output
		if r.Succeeded() {
			row.AddCell().Value = "ok"
		} else {
			row.AddCell().Value = "failed"
		}
		row.AddCell().Value = fmt.Sprintf("%.1f", float64(r.SizeBytes)/1024)
		row.AddCell().SetInt(r.DurationSec)
		if r.Err != nil {
			row.AddCell().Value = r.Err.Error()
		} else {
			row.AddCell().Value = ""
		}
	}

	for _, r := range report.Succeeded {
		addRow(r)
	}
	for _, r := range report.Failed {
		addRow(r)
	}

	if err := file.Save(outputFilePath); err != nil {
		return apperrors.Wrapf(err, "failed to save report to %s", outputFilePath)
	}
	return nil
}
