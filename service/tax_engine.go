package service

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/cvergara/balance-rli/dto"
)

// IDPC rate of the 14 D N°3 regime (12.5%).
var tasaIDPC = decimal.RequireFromString("0.125")

var half = decimal.RequireFromString("0.5")

// TaxEngine computes the Renta Líquida Imponible and the resulting IDPC.
// It is stateless: identical inputs always produce identical results, and
// concurrent calls are safe as long as inputs are not aliased across calls.
type TaxEngine struct{}

func NewTaxEngine() *TaxEngine {
	return &TaxEngine{}
}

// Compute applies the selected regime and mode to the classified, possibly
// user-edited block amounts. It raises no domain errors for well-typed
// 14 D N°3 inputs; UF parameters are passed through without validation, so a
// negative UF value yields a mathematically consistent (if nonsensical)
// deduction. Régimen 14 A has no computation yet and returns
// dto.ErrRegimeNotImplemented.
func (e *TaxEngine) Compute(in dto.ComputationInputs) (dto.ComputationResult, error) {
	if in.Regime == dto.Regime14A {
		return dto.ComputationResult{}, dto.ErrRegimeNotImplemented
	}

	totalIngresos := sumLines(in.Ingresos)
	totalEgresos := sumLines(in.Egresos)
	totalGastos := sumLines(in.GastosRechazados)

	result := dto.ComputationResult{
		TotalIngresos:         totalIngresos,
		TotalEgresos:          totalEgresos,
		TotalGastosRechazados: totalGastos,
		PPM:                   in.PPM,
	}

	subBase := totalIngresos - totalEgresos + totalGastos

	switch in.Mode {
	case dto.ModeSimple:
		result.BaseImponible = decimal.NewFromInt(subBase)

	case dto.ModeSavingsIncentive:
		rliInvertida := subBase - in.Retiros - in.Multas - in.IDPCPagadoAnterior
		porcentajeRLI := decimal.NewFromInt(rliInvertida).Mul(half)
		ufLimite := in.UFValue.Mul(in.UFLimitCount)

		deduccion := decimal.Zero
		if rliInvertida > 0 {
			deduccion = decimal.Min(porcentajeRLI, ufLimite)
			if deduccion.IsNegative() {
				deduccion = decimal.Zero
			}
		}

		result.RLIInvertida = &rliInvertida
		result.PorcentajeRLI = &porcentajeRLI
		result.UFLimite = &ufLimite
		result.Deduccion = &deduccion
		result.BaseImponible = deduccion

	default:
		return dto.ComputationResult{}, errors.New("modo de cálculo desconocido")
	}

	// The only rounding step: half-up at the rate multiplication.
	// Intermediate sums stay exact.
	result.IDPC = result.BaseImponible.Mul(tasaIDPC).Round(0).IntPart()
	result.Saldo = result.IDPC - in.PPM

	return result, nil
}

func sumLines(lines []dto.LineAmount) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount
	}
	return total
}
