package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cvergara/balance-rli/dto"
)

func tok(text string, x0, x1, y float64) dto.PositionedToken {
	return dto.PositionedToken{Text: text, X0: x0, X1: x1, Y0: y, Y1: y, Page: 1}
}

func TestClusterRows(t *testing.T) {
	tokens := []dto.PositionedToken{
		tok("300101", 20, 50, 700),
		tok("VENTAS", 100, 140, 700.8),
		tok("400101", 20, 50, 688),
		tok("COSTO", 100, 130, 687.5),
	}

	rows := ClusterRows(tokens, 3.0)

	assert.Len(t, rows, 2)
	assert.Equal(t, "300101", rows[0][0].Text)
	assert.Equal(t, "VENTAS", rows[0][1].Text)
	assert.Equal(t, "400101", rows[1][0].Text)
	assert.Equal(t, "COSTO", rows[1][1].Text)
}

func TestClusterRowsEpsilonBoundary(t *testing.T) {
	tokens := []dto.PositionedToken{
		tok("a", 0, 10, 100),
		tok("b", 20, 30, 97), // exactly epsilon below the baseline: same row
		tok("c", 40, 50, 96.9),
	}

	rows := ClusterRows(tokens, 3.0)

	assert.Len(t, rows, 2)
	assert.Len(t, rows[0], 2)
	assert.Equal(t, "c", rows[1][0].Text)
}

func TestAssignColumnsDiscardsNoise(t *testing.T) {
	bands := []dto.ColumnBand{
		{Label: dto.ColCode, X0: 0, X1: 80},
		{Label: dto.ColName, X0: 80, X1: 200},
	}
	row := []dto.PositionedToken{
		tok("300101", 10, 40, 700),
		tok("VENTAS", 90, 130, 700),
		tok("Página 1", 400, 450, 700), // outside every band
	}

	cells := AssignColumns(row, bands)

	assert.Len(t, cells[dto.ColCode], 1)
	assert.Len(t, cells[dto.ColName], 1)
	assert.Len(t, cells, 2)
}

func TestAssignColumnsOverlapTie(t *testing.T) {
	bands := []dto.ColumnBand{
		{Label: dto.ColDebitos, X0: 0, X1: 100},
		{Label: dto.ColCreditos, X0: 100, X1: 110},
	}
	// Center sits exactly on the shared boundary; the token overlaps the
	// debitos band by 15 units and the narrow creditos band by 10.
	row := []dto.PositionedToken{tok("1.000", 85, 115, 700)}

	cells := AssignColumns(row, bands)

	assert.Len(t, cells[dto.ColDebitos], 1)
	assert.Empty(t, cells[dto.ColCreditos])
}

func TestDetectBandsFromHeaders(t *testing.T) {
	headers := []dto.PositionedToken{
		tok("CODIGO", 20, 60, 750),
		tok("CUENTA", 100, 140, 750),
		tok("DEBITOS", 190, 230, 750),
		tok("CREDITOS", 245, 285, 750),
		tok("DEUDOR", 300, 340, 750),
		tok("ACREEDOR", 350, 390, 750),
		tok("ACTIVOS", 400, 440, 750),
		tok("PASIVOS", 445, 485, 750),
		tok("PERDIDAS", 495, 535, 750),
		tok("GANANCIAS", 550, 600, 750),
	}

	bands := DetectBands(headers, 612)

	assert.Len(t, bands, 10)
	assert.Equal(t, dto.ColCode, bands[0].Label)
	assert.Equal(t, dto.ColGanancias, bands[9].Label)
	assert.Equal(t, 0.0, bands[0].X0)
	assert.Equal(t, 612.0, bands[9].X1)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].X1, bands[i].X0)
	}

	// A value under the GANANCIAS header lands in the ganancias band.
	cells := AssignColumns([]dto.PositionedToken{tok("222.137.351", 555, 595, 700)}, bands)
	assert.Len(t, cells[dto.ColGanancias], 1)
}

func TestDetectBandsFallsBackWithoutHeaders(t *testing.T) {
	tokens := []dto.PositionedToken{
		tok("300101", 20, 50, 700),
		tok("VENTAS", 100, 140, 700),
	}

	bands := DetectBands(tokens, 612)

	assert.Equal(t, RelativeBands(612), bands)
}

func TestRelativeBandsCoverPage(t *testing.T) {
	bands := RelativeBands(612)

	assert.Len(t, bands, 10)
	assert.Equal(t, 0.0, bands[0].X0)
	assert.Equal(t, 612.0, bands[len(bands)-1].X1)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].X1, bands[i].X0)
		assert.Less(t, bands[i].X0, bands[i].X1)
	}
}

func TestBuildRecordFromRow(t *testing.T) {
	bands := RelativeBands(612)
	row := []dto.PositionedToken{
		tok("300101", 20, 50, 700),
		tok("VENTAS", 100, 140, 700),
		tok("222.137.351", 540, 580, 700), // ganancias column
	}

	cells := AssignColumns(row, bands)
	rec, ok := BuildRecord(cells)

	assert.True(t, ok)
	assert.Equal(t, "300101", rec.Code)
	assert.Equal(t, "VENTAS", rec.Name)
	assert.Equal(t, int64(222137351), rec.Values[dto.ColGanancias])
	assert.Equal(t, int64(0), rec.Values[dto.ColPerdidas])
}

func TestBuildRecordKeepsRowWithUnparsableField(t *testing.T) {
	cells := map[dto.ColumnLabel][]dto.PositionedToken{
		dto.ColCode:      {tok("430101", 20, 50, 700)},
		dto.ColName:      {tok("Impuesto", 100, 130, 700), tok("Renta", 135, 160, 700)},
		dto.ColPerdidas:  {tok("##ruido##", 500, 530, 700)},
		dto.ColGanancias: {tok("1.500", 560, 580, 700)},
	}

	rec, ok := BuildRecord(cells)

	assert.True(t, ok)
	assert.Equal(t, "430101", rec.Code)
	assert.Equal(t, "Impuesto Renta", rec.Name)
	assert.Equal(t, int64(0), rec.Values[dto.ColPerdidas])
	assert.Equal(t, int64(1500), rec.Values[dto.ColGanancias])
}

func TestBuildRecordRejectsRowWithoutCode(t *testing.T) {
	cells := map[dto.ColumnLabel][]dto.PositionedToken{
		dto.ColName:      {tok("TOTALES", 100, 140, 700)},
		dto.ColGanancias: {tok("999.999", 560, 580, 700)},
	}

	_, ok := BuildRecord(cells)

	assert.False(t, ok)
}

func TestPageText(t *testing.T) {
	tokens := []dto.PositionedToken{
		tok("COMERCIAL", 10, 80, 750),
		tok("EJEMPLO", 85, 140, 750),
		tok("76.123.456-7", 10, 80, 738),
	}

	text := PageText(tokens, 3.0)

	assert.Equal(t, "COMERCIAL EJEMPLO\n76.123.456-7\n", text)
}
