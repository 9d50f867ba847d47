package service

import (
	"fmt"
	"log"

	"github.com/cvergara/balance-rli/client"
	"github.com/cvergara/balance-rli/dto"
	"github.com/cvergara/balance-rli/utils"
)

// BalanceService drives the extraction pipeline: positioned tokens, row and
// column reconstruction, record building and classification. Each call
// allocates its own token/record graph, so concurrent requests are safe.
type BalanceService struct {
	pdfProcessor    PDFProcessor
	tesseractClient *client.TesseractClient
	ocrFallback     bool
}

func NewBalanceService(pdfProcessor PDFProcessor, tesseractClient *client.TesseractClient, ocrFallback bool) *BalanceService {
	return &BalanceService{
		pdfProcessor:    pdfProcessor,
		tesseractClient: tesseractClient,
		ocrFallback:     ocrFallback,
	}
}

// ExtractBalance converts a balance PDF into classified account records plus
// the company header and suggested computation defaults. A document without
// a text layer is terminal (dto.ErrDocumentUnreadable) unless the OCR
// fallback is enabled and produces tokens.
func (s *BalanceService) ExtractBalance(pdfData []byte) (*dto.BalanceExtract, error) {
	doc, err := s.pdfProcessor.ExtractTokens(pdfData)
	if err != nil {
		return nil, err
	}

	if doc.TokenCount() == 0 {
		if !s.ocrFallback || s.tesseractClient == nil {
			return nil, fmt.Errorf("%w: sin capa de texto", dto.ErrDocumentUnreadable)
		}

		log.Println("Balance has no text layer, attempting OCR fallback")
		doc, err = s.ocrTokens(pdfData)
		if err != nil {
			return nil, err
		}
		if doc.TokenCount() == 0 {
			return nil, fmt.Errorf("%w: OCR no produjo texto", dto.ErrDocumentUnreadable)
		}
	}

	// The row tolerance is calibrated for letter-width pages; OCR token
	// coordinates are pixels, so the tolerance scales with the page width.
	epsilon := DefaultRowEpsilon * doc.PageWidth / defaultPageWidth

	var company dto.CompanyInfo
	if len(doc.Pages) > 0 {
		company = utils.ParseCompanyInfo(PageText(doc.Pages[0], epsilon))
	}

	set := newRecordSet()
	for _, pageTokens := range doc.Pages {
		if len(pageTokens) == 0 {
			continue
		}

		bands := DetectBands(pageTokens, doc.PageWidth)
		for _, row := range ClusterRows(pageTokens, epsilon) {
			cells := AssignColumns(row, bands)
			if rec, ok := BuildRecord(cells); ok {
				set.add(rec)
			}
		}
	}

	records := set.records()
	log.Printf("Extracted %d accounts from balance (%d pages)", len(records), len(doc.Pages))

	classifier := NewClassifier()
	return &dto.BalanceExtract{
		Company:   company,
		Accounts:  classifier.Classify(records),
		Suggested: SuggestedDefaults(records),
	}, nil
}

// ocrTokens runs the scanned-balance fallback: page images through Tesseract
// word boxes, converted into positioned tokens so the standard reconstructor
// applies unchanged. Pixel Y grows downward; tokens are flipped to the
// bottom-up convention the layout code expects.
func (s *BalanceService) ocrTokens(pdfData []byte) (*TokenDocument, error) {
	images, err := s.pdfProcessor.ExtractImages(pdfData)
	if err != nil || len(images) == 0 {
		return nil, fmt.Errorf("%w: %v", dto.ErrDocumentUnreadable, err)
	}

	doc := &TokenDocument{}
	for i, img := range images {
		bounds := img.Bounds()
		height := float64(bounds.Dy())
		if doc.PageWidth == 0 {
			doc.PageWidth = float64(bounds.Dx())
		}

		words, err := s.tesseractClient.ExtractWords(img)
		if err != nil {
			log.Printf("OCR failed for page image %d: %v", i+1, err)
			doc.Pages = append(doc.Pages, nil)
			continue
		}

		var tokens []dto.PositionedToken
		for _, w := range words {
			tokens = append(tokens, dto.PositionedToken{
				Text: w.Text,
				X0:   w.X0,
				X1:   w.X1,
				Y0:   height - w.Y1,
				Y1:   height - w.Y0,
				Page: i + 1,
			})
		}
		doc.Pages = append(doc.Pages, tokens)
	}

	return doc, nil
}
