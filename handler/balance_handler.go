package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cvergara/balance-rli/dto"
	"github.com/cvergara/balance-rli/service"
)

type BalanceHandler struct {
	balanceService *service.BalanceService
}

func NewBalanceHandler(balanceService *service.BalanceService) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// ExtractBalance handles POST /balance/extract: one uploaded balance PDF in,
// the classified account listing out.
func (h *BalanceHandler) ExtractBalance(c *gin.Context) {
	log.Println("Received balance extraction request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Se requiere el archivo 'file'", err)
		return
	}

	request := &dto.ExtractRequest{File: fileHeader}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No se pudo abrir el archivo", err)
		return
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No se pudo leer el archivo", err)
		return
	}

	extract, err := h.balanceService.ExtractBalance(pdfData)
	if err != nil {
		if errors.Is(err, dto.ErrDocumentUnreadable) {
			h.sendError(c, http.StatusUnprocessableEntity, "Documento ilegible", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Falló la extracción del balance", err)
		return
	}

	log.Printf("Balance extraction completed: %d accounts", len(extract.Accounts))
	c.JSON(http.StatusOK, dto.ExtractResponse{
		Company:      extract.Company,
		Accounts:     extract.Accounts,
		Suggested:    extract.Suggested,
		AccountCount: len(extract.Accounts),
		ProcessedAt:  time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *BalanceHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
