package service

import (
	"sort"

	"github.com/cvergara/balance-rli/dto"
)

// CatalogLine is one entry of the static account catalog for a reporting
// block: which balance column feeds it and which F22 form box it lands in.
type CatalogLine struct {
	Code   string
	Name   string
	F22    string
	Column dto.ColumnLabel
}

// Catalogs of the 14 D N°3 regime. Account 430101/430102 appear both as
// egresos and as gastos rechazados; that duplication is part of the form.
var (
	ingresosCatalog = []CatalogLine{
		{Code: "300101", Name: "Ingresos Del Giro Percibido", F22: "1600", Column: dto.ColGanancias},
		{Code: "311102", Name: "Reajuste", F22: "1588", Column: dto.ColGanancias},
	}

	egresosCatalog = []CatalogLine{
		{Code: "400101", Name: "Compras netas existencias", F22: "1409", Column: dto.ColPerdidas},
		// Remuneraciones group: the four lines report jointly under F22 1411.
		{Code: "410101", Name: "Remuneraciones imponibles", Column: dto.ColPerdidas},
		{Code: "410102", Name: "Leyes sociales", Column: dto.ColPerdidas},
		{Code: "410110", Name: "Remuneraciones no imponibles", Column: dto.ColPerdidas},
		{Code: "410111", Name: "Finiquitos", Column: dto.ColPerdidas},
		{Code: "410106", Name: "Honorarios", F22: "1412", Column: dto.ColPerdidas},
		{Code: "410105", Name: "Arriendos", F22: "1415", Column: dto.ColPerdidas},
		{Code: "430101", Name: "Impuesto de Primera Categoría", F22: "1422", Column: dto.ColPerdidas},
		{Code: "430102", Name: "Multas e Intereses", F22: "1422", Column: dto.ColPerdidas},
	}

	gastosRechazadosCatalog = []CatalogLine{
		{Code: "430101", Name: "Impuesto de Primera Categoría", F22: "1431", Column: dto.ColPerdidas},
		{Code: "430102", Name: "Multas e Intereses", F22: "1431", Column: dto.ColPerdidas},
	}
)

// remuneracionesCodes are the egresos subaccounts summed as one group.
var remuneracionesCodes = map[string]bool{
	"410101": true,
	"410102": true,
	"410110": true,
	"410111": true,
}

// fallbackColumns is the column priority when an account is shown without a
// block context (unclassified lines).
var fallbackColumns = []dto.ColumnLabel{
	dto.ColGanancias, dto.ColPerdidas, dto.ColActivos,
	dto.ColPasivos, dto.ColAcreedor, dto.ColDeudor,
}

// Classifier maps extracted account records into the three reporting blocks.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify places every extracted record and every catalog line. Catalog
// lines present in the balance keep extraction order; catalog lines the
// balance is missing are synthesized with amount 0 and appended at the end
// of their block, so the presentation layer can prompt for manual entry.
// Extracted codes matching no catalog are retained as unclassified, never
// dropped.
func (c *Classifier) Classify(records []dto.AccountRecord) []dto.ClassifiedAccount {
	index := make(map[string]int, len(records))
	for i, rec := range records {
		if _, ok := index[rec.Code]; !ok {
			index[rec.Code] = i
		}
	}

	var out []dto.ClassifiedAccount
	out = append(out, c.classifyBlock(dto.BlockIngresos, ingresosCatalog, records, index)...)
	out = append(out, c.classifyBlock(dto.BlockEgresos, egresosCatalog, records, index)...)
	out = append(out, c.classifyBlock(dto.BlockGastosRechazados, gastosRechazadosCatalog, records, index)...)

	catalogCodes := make(map[string]bool)
	for _, cat := range [][]CatalogLine{ingresosCatalog, egresosCatalog, gastosRechazadosCatalog} {
		for _, line := range cat {
			catalogCodes[line.Code] = true
		}
	}

	for _, rec := range records {
		if catalogCodes[rec.Code] {
			continue
		}
		out = append(out, dto.ClassifiedAccount{
			Code:           rec.Code,
			Name:           rec.Name,
			Block:          dto.BlockUnclassified,
			Origin:         dto.OriginExtracted,
			FoundInBalance: true,
			Amount:         fallbackAmount(rec),
		})
	}

	return out
}

func (c *Classifier) classifyBlock(block dto.Block, catalog []CatalogLine, records []dto.AccountRecord, index map[string]int) []dto.ClassifiedAccount {
	type present struct {
		line     dto.ClassifiedAccount
		position int
	}

	var found []present
	var missing []dto.ClassifiedAccount

	for _, line := range catalog {
		pos, ok := index[line.Code]
		if !ok {
			missing = append(missing, dto.ClassifiedAccount{
				Code:           line.Code,
				Name:           line.Name,
				Block:          block,
				Origin:         dto.OriginSynthesized,
				FoundInBalance: false,
				F22:            line.F22,
				Amount:         0,
			})
			continue
		}

		rec := records[pos]
		name := rec.Name
		if name == "" {
			name = line.Name
		}
		found = append(found, present{
			line: dto.ClassifiedAccount{
				Code:           line.Code,
				Name:           name,
				Block:          block,
				Origin:         dto.OriginExtracted,
				FoundInBalance: true,
				F22:            line.F22,
				Amount:         rec.Values[line.Column],
			},
			position: pos,
		})
	}

	// Extraction order for present lines, catalog order for synthesized.
	sort.SliceStable(found, func(i, j int) bool { return found[i].position < found[j].position })

	out := make([]dto.ClassifiedAccount, 0, len(found)+len(missing))
	for _, f := range found {
		out = append(out, f.line)
	}
	return append(out, missing...)
}

// fallbackAmount picks the first positive balance column for accounts shown
// outside a block context.
func fallbackAmount(rec dto.AccountRecord) int64 {
	for _, col := range fallbackColumns {
		if v := rec.Values[col]; v > 0 {
			return v
		}
	}
	return 0
}

// RemuneracionesTotal sums the remuneraciones group within a line set.
func RemuneracionesTotal(lines []dto.ClassifiedAccount) int64 {
	var total int64
	for _, l := range lines {
		if remuneracionesCodes[l.Code] {
			total += l.Amount
		}
	}
	return total
}

// SuggestedDefaults mines computation defaults from the extracted balance:
// PPM from 101090 (or 105101), retiros 101120, multas 430102 and the prior
// IDPC payment from 430101. Every figure stays caller-editable.
func SuggestedDefaults(records []dto.AccountRecord) dto.SuggestedInputs {
	byCode := make(map[string]dto.AccountRecord, len(records))
	for _, rec := range records {
		if _, ok := byCode[rec.Code]; !ok {
			byCode[rec.Code] = rec
		}
	}

	value := func(code string, col dto.ColumnLabel) int64 {
		return byCode[code].Values[col]
	}

	ppm := value("101090", dto.ColActivos)
	if ppm == 0 {
		ppm = value("105101", dto.ColActivos)
	}

	return dto.SuggestedInputs{
		PPM:                ppm,
		Retiros:            value("101120", dto.ColActivos),
		Multas:             value("430102", dto.ColPerdidas),
		IDPCPagadoAnterior: value("430101", dto.ColPerdidas),
	}
}
