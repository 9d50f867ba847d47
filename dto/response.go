package dto

import "errors"

// Domain errors surfaced across package boundaries.
var (
	// ErrDocumentUnreadable means the uploaded bytes are not a valid PDF or
	// carry no extractable text layer. Terminal for the extraction run.
	ErrDocumentUnreadable = errors.New("documento ilegible: no es un PDF válido o no contiene capa de texto")

	// ErrRegimeNotImplemented is returned for régimen 14 A, which is exposed
	// as a selector but has no computation yet.
	ErrRegimeNotImplemented = errors.New("régimen 14 A en desarrollo: seleccione régimen 14 D N°3")
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ExtractResponse is returned by POST /balance/extract.
type ExtractResponse struct {
	Company      CompanyInfo         `json:"empresa"`
	Accounts     []ClassifiedAccount `json:"cuentas"`
	Suggested    SuggestedInputs     `json:"sugeridos"`
	AccountCount int                 `json:"total_cuentas"`
	ProcessedAt  string              `json:"procesado_en"`
}

// ComputeResponse is returned by POST /tax/compute.
type ComputeResponse struct {
	Regime Regime            `json:"regimen"`
	Mode   ComputationMode   `json:"modo"`
	Result ComputationResult `json:"resultado"`
}
