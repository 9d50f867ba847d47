package dto

import "github.com/shopspring/decimal"

// ColumnLabel identifies one column of the eight-column trial balance,
// plus the leading code and account-name columns.
type ColumnLabel string

const (
	ColCode      ColumnLabel = "codigo"
	ColName      ColumnLabel = "cuenta"
	ColDebitos   ColumnLabel = "debitos"
	ColCreditos  ColumnLabel = "creditos"
	ColDeudor    ColumnLabel = "saldo_deudor"
	ColAcreedor  ColumnLabel = "saldo_acreedor"
	ColActivos   ColumnLabel = "activos"
	ColPasivos   ColumnLabel = "pasivos"
	ColPerdidas  ColumnLabel = "perdidas"
	ColGanancias ColumnLabel = "ganancias"
)

// NumericColumns lists the eight value columns in left-to-right order.
var NumericColumns = []ColumnLabel{
	ColDebitos, ColCreditos, ColDeudor, ColAcreedor,
	ColActivos, ColPasivos, ColPerdidas, ColGanancias,
}

// PositionedToken is a single piece of text placed on a page. Coordinates
// are in page units with Y growing upward (PDF convention).
type PositionedToken struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	X1   float64 `json:"x1"`
	Y0   float64 `json:"y0"`
	Y1   float64 `json:"y1"`
	Page int     `json:"page"`
}

// ColumnBand is the horizontal range a column occupies. Bands are
// non-overlapping and ordered left to right for the life of an extraction run.
type ColumnBand struct {
	Label ColumnLabel `json:"label"`
	X0    float64     `json:"x0"`
	X1    float64     `json:"x1"`
}

// AccountRecord is one reconstructed ledger line. Amounts are whole pesos;
// the source format carries thousands separators only, no cents.
type AccountRecord struct {
	Code   string                `json:"codigo"`
	Name   string                `json:"cuenta"`
	Values map[ColumnLabel]int64 `json:"valores"`
}

// Block is the tax-reporting section an account belongs to.
type Block string

const (
	BlockIngresos         Block = "ingresos"
	BlockEgresos          Block = "egresos"
	BlockGastosRechazados Block = "gastos_rechazados"
	BlockUnclassified     Block = "sin_clasificar"
)

// AccountOrigin distinguishes accounts read from the balance from catalog
// lines synthesized because the balance did not contain them.
type AccountOrigin string

const (
	OriginExtracted   AccountOrigin = "extracted"
	OriginSynthesized AccountOrigin = "synthesized_missing"
)

// ClassifiedAccount is an AccountRecord placed in a reporting block.
// Amount carries the value of the block's source column, so callers can edit
// a single figure per line without re-deriving which column applies.
type ClassifiedAccount struct {
	Code           string        `json:"codigo"`
	Name           string        `json:"cuenta"`
	Block          Block         `json:"bloque"`
	Origin         AccountOrigin `json:"origen"`
	FoundInBalance bool          `json:"existe_en_balance"`
	F22            string        `json:"f22,omitempty"`
	Amount         int64         `json:"monto"`
}

// CompanyInfo is the header block of the first balance page.
type CompanyInfo struct {
	RazonSocial string `json:"razon_social"`
	RUT         string `json:"rut"`
	Giro        string `json:"giro"`
	Direccion   string `json:"direccion"`
	Comuna      string `json:"comuna"`
	Periodo     string `json:"periodo"`
}

// SuggestedInputs are computation defaults mined from the balance itself.
// Every figure is editable before the computation is requested.
type SuggestedInputs struct {
	PPM                int64 `json:"ppm"`
	Retiros            int64 `json:"retiros"`
	Multas             int64 `json:"multas"`
	IDPCPagadoAnterior int64 `json:"idpc_pagado_anterior"`
}

// BalanceExtract is the full result of one extraction run.
type BalanceExtract struct {
	Company   CompanyInfo         `json:"empresa"`
	Accounts  []ClassifiedAccount `json:"cuentas"`
	Suggested SuggestedInputs     `json:"sugeridos"`
}

// Regime selects the legal regime of computation.
type Regime string

const (
	Regime14D3 Regime = "14d3"
	Regime14A  Regime = "14a"
)

// ComputationMode selects the 14 D N°3 formula variant.
type ComputationMode string

const (
	ModeSimple           ComputationMode = "simple"
	ModeSavingsIncentive ComputationMode = "incentivo_ahorro"
)

// LineAmount is one user-adjustable line of a computation block.
type LineAmount struct {
	Code   string `json:"codigo"`
	Name   string `json:"cuenta"`
	Amount int64  `json:"monto"`
}

// ComputationInputs is everything the tax engine reads. It is an explicit,
// serializable value; the engine keeps no state between calls.
type ComputationInputs struct {
	Regime Regime          `json:"regimen"`
	Mode   ComputationMode `json:"modo"`

	Ingresos         []LineAmount `json:"ingresos"`
	Egresos          []LineAmount `json:"egresos"`
	GastosRechazados []LineAmount `json:"gastos_rechazados"`

	PPM int64 `json:"ppm"`

	// Savings-incentive parameters, read only in ModeSavingsIncentive.
	UFValue            decimal.Decimal `json:"valor_uf"`
	UFLimitCount       decimal.Decimal `json:"uf_cantidad"`
	Retiros            int64           `json:"retiros"`
	Multas             int64           `json:"multas"`
	IDPCPagadoAnterior int64           `json:"idpc_pagado_anterior"`
}

// ComputationResult is a pure function of ComputationInputs. The incentive
// fields are nil under ModeSimple.
type ComputationResult struct {
	TotalIngresos         int64 `json:"total_ingresos"`
	TotalEgresos          int64 `json:"total_egresos"`
	TotalGastosRechazados int64 `json:"total_gastos_rechazados"`

	BaseImponible decimal.Decimal `json:"base_imponible"`
	IDPC          int64           `json:"idpc"`
	PPM           int64           `json:"ppm"`
	Saldo         int64           `json:"saldo"`

	RLIInvertida  *int64           `json:"rli_invertida,omitempty"`
	PorcentajeRLI *decimal.Decimal `json:"porcentaje_rli,omitempty"`
	UFLimite      *decimal.Decimal `json:"uf_limite,omitempty"`
	Deduccion     *decimal.Decimal `json:"deduccion_incentivo,omitempty"`
}
