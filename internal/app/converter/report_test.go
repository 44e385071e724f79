package converter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	apperrors "speech-kit/internal/app/errors"
	"speech-kit/internal/app/model"
)

func TestExportReport(t *testing.T) {
	report := &model.ConversionReport{}
	report.Add(model.ConversionResult{Input: "a.mp3", Output: "a_16k.wav", SizeBytes: 2048, DurationSec: 12})
	report.Add(model.ConversionResult{Input: "b.mp3", Err: apperrors.New("ffmpeg error")})

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, ExportReport(report, path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	rows := file.Sheets[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, "Input", rows[0].Cells[0].Value)
	assert.Equal(t, "a.mp3", rows[1].Cells[0].Value)
	assert.Equal(t, "ok", rows[1].Cells[2].Value)
	assert.Equal(t, "2.0", rows[1].Cells[3].Value)
	assert.Equal(t, "failed", rows[2].Cells[2].Value)
	assert.Equal(t, "ffmpeg error", rows[2].Cells[5].Value)
}

func TestExportReport_BadPath(t *testing.T) {
	err := ExportReport(&model.ConversionReport{}, filepath.Join(t.TempDir(), "missing", "report.xlsx"))
	assert.Error(t, err)
}
