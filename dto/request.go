package dto

import (
	"errors"
	"mime/multipart"
)

// ExtractRequest carries the uploaded balance PDF.
type ExtractRequest struct {
	File *multipart.FileHeader `form:"file" binding:"required"`
}

// Validate performs basic validation on the request.
func (r *ExtractRequest) Validate() error {
	if r.File == nil {
		return errors.New("se requiere un archivo PDF de balance")
	}
	if r.File.Size == 0 {
		return errors.New("el archivo está vacío")
	}
	return nil
}

// ComputeRequest wraps ComputationInputs as the compute endpoint body.
type ComputeRequest struct {
	ComputationInputs
}

// Validate checks the selector fields. Amounts and UF parameters are
// deliberately not validated; the engine is total over well-typed inputs.
func (r *ComputeRequest) Validate() error {
	switch r.Regime {
	case Regime14D3, Regime14A:
	case "":
		return errors.New("se requiere el campo regimen")
	default:
		return errors.New("regimen desconocido: use 14d3 o 14a")
	}
	switch r.Mode {
	case ModeSimple, ModeSavingsIncentive:
	case "":
		return errors.New("se requiere el campo modo")
	default:
		return errors.New("modo desconocido: use simple o incentivo_ahorro")
	}
	return nil
}
