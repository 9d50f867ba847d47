package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cvergara/balance-rli/dto"
	"github.com/cvergara/balance-rli/service"
)

type TaxHandler struct {
	taxEngine *service.TaxEngine
}

func NewTaxHandler(taxEngine *service.TaxEngine) *TaxHandler {
	return &TaxHandler{
		taxEngine: taxEngine,
	}
}

// Compute handles POST /tax/compute: user-edited block amounts and regime
// parameters in, the RLI/IDPC result out.
func (h *TaxHandler) Compute(c *gin.Context) {
	var request dto.ComputeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Cuerpo JSON inválido", err)
		return
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	result, err := h.taxEngine.Compute(request.ComputationInputs)
	if err != nil {
		if errors.Is(err, dto.ErrRegimeNotImplemented) {
			h.sendError(c, http.StatusNotImplemented, "Régimen no implementado", err)
			return
		}
		h.sendError(c, http.StatusBadRequest, "Falló el cálculo", err)
		return
	}

	c.JSON(http.StatusOK, dto.ComputeResponse{
		Regime: request.Regime,
		Mode:   request.Mode,
		Result: result,
	})
}

// sendError sends a structured error response
func (h *TaxHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "COMPUTATION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
