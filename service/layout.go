package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cvergara/balance-rli/dto"
)

// DefaultRowEpsilon is the vertical tolerance, in page units, for two tokens
// to share a row. Calibrated against the standard balance line spacing.
const DefaultRowEpsilon = 3.0

var accountCodePattern = regexp.MustCompile(`^\d{6}$`)

// headerLabels maps table header words to their column. The balance prints
// headers with and without accents depending on the emitting software.
var headerLabels = map[string]dto.ColumnLabel{
	"CODIGO":    dto.ColCode,
	"CÓDIGO":    dto.ColCode,
	"CUENTA":    dto.ColName,
	"DEBITOS":   dto.ColDebitos,
	"DÉBITOS":   dto.ColDebitos,
	"CREDITOS":  dto.ColCreditos,
	"CRÉDITOS":  dto.ColCreditos,
	"DEUDOR":    dto.ColDeudor,
	"ACREEDOR":  dto.ColAcreedor,
	"ACTIVOS":   dto.ColActivos,
	"PASIVOS":   dto.ColPasivos,
	"PERDIDAS":  dto.ColPerdidas,
	"PÉRDIDAS":  dto.ColPerdidas,
	"GANANCIAS": dto.ColGanancias,
}

// relativeCenters places each column at a fraction of the page width,
// calibrated for the standard A4/letter eight-column balance. Used when the
// page yields too few header words to anchor the bands.
var relativeCenters = []struct {
	label    dto.ColumnLabel
	fraction float64
}{
	{dto.ColCode, 0.06},
	{dto.ColName, 0.18},
	{dto.ColDebitos, 0.33},
	{dto.ColCreditos, 0.42},
	{dto.ColDeudor, 0.51},
	{dto.ColAcreedor, 0.59},
	{dto.ColActivos, 0.67},
	{dto.ColPasivos, 0.73},
	{dto.ColPerdidas, 0.82},
	{dto.ColGanancias, 0.92},
}

// DetectBands derives the column bands for one page. Header words give the
// column centers when present; otherwise the relative calibration applies.
func DetectBands(tokens []dto.PositionedToken, pageWidth float64) []dto.ColumnBand {
	centers := make(map[dto.ColumnLabel]float64)
	for _, tok := range tokens {
		label, ok := headerLabels[strings.ToUpper(tok.Text)]
		if !ok {
			continue
		}
		if _, seen := centers[label]; seen {
			continue
		}
		centers[label] = (tok.X0 + tok.X1) / 2
	}

	numericDetected := 0
	for _, col := range dto.NumericColumns {
		if _, ok := centers[col]; ok {
			numericDetected++
		}
	}
	if numericDetected < 4 {
		return RelativeBands(pageWidth)
	}

	// Fill gaps from the relative calibration so a partially detected header
	// row still produces a full band set.
	for _, rc := range relativeCenters {
		if _, ok := centers[rc.label]; !ok {
			centers[rc.label] = rc.fraction * pageWidth
		}
	}
	return bandsFromCenters(centers, pageWidth)
}

// RelativeBands builds the fallback band set from the relative calibration.
func RelativeBands(pageWidth float64) []dto.ColumnBand {
	centers := make(map[dto.ColumnLabel]float64, len(relativeCenters))
	for _, rc := range relativeCenters {
		centers[rc.label] = rc.fraction * pageWidth
	}
	return bandsFromCenters(centers, pageWidth)
}

// bandsFromCenters converts column centers into non-overlapping bands split
// at the midpoints between adjacent centers.
func bandsFromCenters(centers map[dto.ColumnLabel]float64, pageWidth float64) []dto.ColumnBand {
	bands := make([]dto.ColumnBand, 0, len(centers))
	for label, x := range centers {
		bands = append(bands, dto.ColumnBand{Label: label, X0: x, X1: x})
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i].X0 < bands[j].X0 })

	for i := range bands {
		center := bands[i].X0
		if i == 0 {
			bands[i].X0 = 0
		} else {
			bands[i].X0 = (bands[i-1].X1 + center) / 2
		}
		if i == len(bands)-1 {
			bands[i].X1 = pageWidth
		} else {
			// Temporarily keep the center in X1; the next iteration reads it
			// to place the shared boundary.
			bands[i].X1 = center
		}
	}
	for i := 0; i < len(bands)-1; i++ {
		bands[i].X1 = bands[i+1].X0
	}
	return bands
}

// ClusterRows buckets tokens into rows. A token joins the current row when
// its vertical center falls within RowEpsilon of the row's reference
// baseline (the first token's center), else it opens a new row. Rows come
// back top-to-bottom with tokens ordered left-to-right.
func ClusterRows(tokens []dto.PositionedToken, epsilon float64) [][]dto.PositionedToken {
	if len(tokens) == 0 {
		return nil
	}

	sorted := make([]dto.PositionedToken, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		ci := (sorted[i].Y0 + sorted[i].Y1) / 2
		cj := (sorted[j].Y0 + sorted[j].Y1) / 2
		if ci != cj {
			return ci > cj
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var rows [][]dto.PositionedToken
	var baseline float64

	for _, tok := range sorted {
		center := (tok.Y0 + tok.Y1) / 2
		if len(rows) == 0 || baseline-center > epsilon {
			rows = append(rows, []dto.PositionedToken{tok})
			baseline = center
			continue
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], tok)
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X0 < row[j].X0 })
	}
	return rows
}

// AssignColumns places each token of a row into a band. A token belongs to
// the band containing its horizontal center; a token spanning two bands goes
// to the one with the greatest horizontal overlap. Tokens matching no band
// are layout noise (headers, page numbers, footnotes) and are dropped.
func AssignColumns(row []dto.PositionedToken, bands []dto.ColumnBand) map[dto.ColumnLabel][]dto.PositionedToken {
	cells := make(map[dto.ColumnLabel][]dto.PositionedToken)
	for _, tok := range row {
		if band, ok := bandFor(tok, bands); ok {
			cells[band.Label] = append(cells[band.Label], tok)
		}
	}
	return cells
}

func bandFor(tok dto.PositionedToken, bands []dto.ColumnBand) (dto.ColumnBand, bool) {
	center := (tok.X0 + tok.X1) / 2

	var candidates []dto.ColumnBand
	for _, b := range bands {
		if center >= b.X0 && center <= b.X1 {
			candidates = append(candidates, b)
		}
	}
	switch len(candidates) {
	case 0:
		return dto.ColumnBand{}, false
	case 1:
		return candidates[0], true
	}

	// Bands are non-overlapping by construction, so more than one candidate
	// only happens at a shared boundary; the overlap rule breaks the tie.
	best := candidates[0]
	bestOverlap := overlap(tok, best)
	for _, b := range candidates[1:] {
		if o := overlap(tok, b); o > bestOverlap {
			best, bestOverlap = b, o
		}
	}
	return best, true
}

func overlap(tok dto.PositionedToken, band dto.ColumnBand) float64 {
	left := tok.X0
	if band.X0 > left {
		left = band.X0
	}
	right := tok.X1
	if band.X1 < right {
		right = band.X1
	}
	if right < left {
		return 0
	}
	return right - left
}

// PageText flattens a page's tokens back into plain text lines, for the
// company header parser.
func PageText(tokens []dto.PositionedToken, epsilon float64) string {
	rows := ClusterRows(tokens, epsilon)
	var b strings.Builder
	for _, row := range rows {
		for i, tok := range row {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(tok.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}
