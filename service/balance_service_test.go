package service

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cvergara/balance-rli/dto"
)

type stubProcessor struct {
	doc *TokenDocument
	err error
}

func (s *stubProcessor) ExtractTokens(pdfData []byte) (*TokenDocument, error) {
	return s.doc, s.err
}

func (s *stubProcessor) ExtractImages(pdfData []byte) ([]image.Image, error) {
	return nil, nil
}

func balancePage() []dto.PositionedToken {
	return []dto.PositionedToken{
		// Company header block.
		tok("COMERCIAL", 10, 70, 780),
		tok("EJEMPLO", 75, 130, 780),
		tok("LIMITADA", 135, 190, 780),
		tok("76.123.456-7", 10, 70, 768),

		// Table header row.
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

		// Account rows.
		tok("300101", 20, 60, 700),
		tok("VENTAS", 100, 140, 700),
		tok("100.000.000", 550, 600, 700),

		tok("400101", 20, 60, 688),
		tok("COSTO", 100, 140, 688),
		tok("60.000.000", 495, 535, 688),

		tok("101090", 20, 60, 676),
		tok("PPM", 100, 140, 676),
		tok("1.000.000", 400, 440, 676),
	}
}

func TestExtractBalanceFromTokens(t *testing.T) {
	processor := &stubProcessor{doc: &TokenDocument{
		Pages:     [][]dto.PositionedToken{balancePage()},
		PageWidth: 612,
	}}
	svc := NewBalanceService(processor, nil, false)

	extract, err := svc.ExtractBalance([]byte("pdf"))

	assert.NoError(t, err)
	assert.Equal(t, "COMERCIAL EJEMPLO LIMITADA", extract.Company.RazonSocial)
	assert.Equal(t, "76.123.456-7", extract.Company.RUT)

	ingresos := blockLines(extract.Accounts, dto.BlockIngresos)
	assert.Equal(t, "300101", ingresos[0].Code)
	assert.Equal(t, "VENTAS", ingresos[0].Name)
	assert.Equal(t, int64(100000000), ingresos[0].Amount)
	assert.True(t, ingresos[0].FoundInBalance)

	egresos := blockLines(extract.Accounts, dto.BlockEgresos)
	assert.Equal(t, "400101", egresos[0].Code)
	assert.Equal(t, int64(60000000), egresos[0].Amount)

	// 101090 feeds the suggested PPM and stays out of the three blocks.
	assert.Equal(t, int64(1000000), extract.Suggested.PPM)
	unclassified := blockLines(extract.Accounts, dto.BlockUnclassified)
	assert.Len(t, unclassified, 1)
	assert.Equal(t, "101090", unclassified[0].Code)
}

func TestExtractBalanceUnreadableWithoutTextLayer(t *testing.T) {
	processor := &stubProcessor{doc: &TokenDocument{
		Pages:     [][]dto.PositionedToken{nil},
		PageWidth: 612,
	}}
	svc := NewBalanceService(processor, nil, false)

	_, err := svc.ExtractBalance([]byte("pdf"))

	assert.ErrorIs(t, err, dto.ErrDocumentUnreadable)
}

func TestExtractBalanceAccumulatesAcrossPages(t *testing.T) {
	page2 := []dto.PositionedToken{
		tok("300101", 20, 60, 700),
		tok("VENTAS", 100, 140, 700),
		tok("50.000.000", 550, 600, 700),
	}
	for i := range page2 {
		page2[i].Page = 2
	}

	processor := &stubProcessor{doc: &TokenDocument{
		Pages:     [][]dto.PositionedToken{balancePage(), page2},
		PageWidth: 612,
	}}
	svc := NewBalanceService(processor, nil, false)

	extract, err := svc.ExtractBalance([]byte("pdf"))

	assert.NoError(t, err)
	ingresos := blockLines(extract.Accounts, dto.BlockIngresos)
	assert.Equal(t, "300101", ingresos[0].Code)
	assert.Equal(t, int64(150000000), ingresos[0].Amount)
}
