package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResults() []model.AnalysisResult {
	return []model.AnalysisResult{
		{
			SimNumber:      "0987654321",
			BatCucScore:    8.5,
			FolkScore:      7,
			Interpretation: "Sinh Khí tốt",
			Conclusion:     "Nên mua",
			IsValid:        true,
		},
		{
			SimNumber:    "0912345678",
			BatCucScore:  4,
			Conclusion:   "Không nên",
			ErrorMessage: "thiếu dữ liệu",
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResults())
	require.Len(t, rows, 2)

	assert.Equal(t, []any{1, "0987654321", 8.5, 7.0, "Sinh Khí tốt", "Nên mua", "Mua", ""}, rows[0])
	assert.Equal(t, []any{2, "0912345678", 4.0, 0.0, "", "Không nên", "Không mua", "thiếu dữ liệu"}, rows[1])

	for _, row := range rows {
		assert.Len(t, row, len(Header))
	}
	assert.Empty(t, Rows(nil))
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 123456789, time.UTC)
	assert.Equal(t, "Phan_Tich_Sim_2024-03-05T14-07-09.xlsx", FileName(now))

	local := time.Date(2024, 3, 5, 21, 7, 9, 0, time.FixedZone("ICT", 7*60*60))
	assert.Equal(t, "Phan_Tich_Sim_2024-03-05T14-07-09.xlsx", FileName(local))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResults()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])

	tests := []struct {
		cell string
		want string
	}{
		{"A2", "1"},
		{"B2", "0987654321"},
		{"C2", "8.5"},
		{"D2", "7"},
		{"E2", "Sinh Khí tốt"},
		{"G2", "Mua"},
		{"A3", "2"},
		{"G3", "Không mua"},
		{"H3", "thiếu dữ liệu"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(SheetName, tt.cell)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.cell)
	}

	for i, want := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		width, err := f.GetColWidth(SheetName, col)
		require.NoError(t, err)
		assert.InDelta(t, want, width, 0.01, col)
	}
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, nil)
	assert.ErrorIs(t, err, common.ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestSaveXLSX(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	path, err := SaveXLSX(dir, sampleResults(), now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Phan_Tich_Sim_2024-03-05T14-07-09.xlsx"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	got, err := f.GetCellValue(SheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "0912345678", got)
}

func TestSaveXLSX_Empty(t *testing.T) {
	dir := t.TempDir()
	_, err := SaveXLSX(dir, []model.AnalysisResult{}, time.Now())
	assert.ErrorIs(t, err, ErrNoData)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
