package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/cvergara/balance-rli/dto"
)

// wordGap is the maximum horizontal gap, in page units, between two text
// runs that still belong to the same word. Matches the 3pt tolerance the
// balance layout was calibrated against.
const wordGap = 3.0

// defaultPageWidth is US letter width in points, used when the page carries
// no resolvable MediaBox.
const defaultPageWidth = 612.0

// TokenDocument is the output of the token geometry reader: one token slice
// per page, in reading order, not yet merged into rows.
type TokenDocument struct {
	Pages     [][]dto.PositionedToken
	PageWidth float64
}

// TokenCount returns the number of tokens across all pages.
func (d *TokenDocument) TokenCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p)
	}
	return n
}

type PDFProcessor interface {
	ExtractTokens(pdfData []byte) (*TokenDocument, error)
	ExtractImages(pdfData []byte) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractTokens reads positioned word tokens from every page. A byte stream
// that is not a valid PDF fails with dto.ErrDocumentUnreadable.
func (p *pdfProcessor) ExtractTokens(pdfData []byte) (*TokenDocument, error) {
	if err := p.validate(pdfData); err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrDocumentUnreadable, err)
	}

	doc := &TokenDocument{PageWidth: defaultPageWidth}
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, nil)
			continue
		}

		if pageIndex == 1 {
			if w := mediaBoxWidth(page); w > 0 {
				doc.PageWidth = w
			}
		}

		content := page.Content()
		tokens := coalesceWords(content.Text, pageIndex)
		doc.Pages = append(doc.Pages, tokens)
	}

	return doc, nil
}

// validate runs the document through pdfcpu before any text extraction is
// attempted. pdfcpu operates on files, so the bytes go through a temp file,
// the same way image extraction does.
func (p *pdfProcessor) validate(pdfData []byte) error {
	tempFile, err := os.CreateTemp("", "balance-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if err := api.ValidateFile(tempFile.Name(), conf); err != nil {
		return fmt.Errorf("%w: %v", dto.ErrDocumentUnreadable, err)
	}
	return nil
}

// ExtractImages renders each embedded page image to an image.Image, for the
// OCR fallback on scanned balances.
func (p *pdfProcessor) ExtractImages(pdfData []byte) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "balance_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "balance-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		tempFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var images []image.Image
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(tempDir, file.Name()))
		if err != nil {
			continue
		}

		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

// coalesceWords merges adjacent text runs on the same baseline into word
// tokens. PDF writers frequently emit one run per glyph; clustering them here
// keeps the layout reconstructor working on words, like the source layout
// assumes.
func coalesceWords(texts []pdf.Text, pageIndex int) []dto.PositionedToken {
	runs := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		runs = append(runs, t)
	}
	if len(runs) == 0 {
		return nil
	}

	// Reading order: top of page first (Y grows upward), then left to right.
	sort.SliceStable(runs, func(i, j int) bool {
		if math.Abs(runs[i].Y-runs[j].Y) > 0.5 {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var tokens []dto.PositionedToken
	cur := newToken(runs[0], pageIndex)

	for _, t := range runs[1:] {
		sameBaseline := math.Abs(t.Y-cur.Y0) <= 0.5
		if sameBaseline && t.X-cur.X1 <= wordGap && t.X >= cur.X0 {
			cur.Text += t.S
			if right := t.X + t.W; right > cur.X1 {
				cur.X1 = right
			}
			if top := t.Y + t.FontSize; top > cur.Y1 {
				cur.Y1 = top
			}
			continue
		}
		tokens = append(tokens, trimToken(cur))
		cur = newToken(t, pageIndex)
	}
	tokens = append(tokens, trimToken(cur))

	out := tokens[:0]
	for _, tok := range tokens {
		if tok.Text != "" {
			out = append(out, tok)
		}
	}
	return out
}

func newToken(t pdf.Text, pageIndex int) dto.PositionedToken {
	return dto.PositionedToken{
		Text: t.S,
		X0:   t.X,
		X1:   t.X + t.W,
		Y0:   t.Y,
		Y1:   t.Y + t.FontSize,
		Page: pageIndex,
	}
}

func trimToken(tok dto.PositionedToken) dto.PositionedToken {
	trimmed := tok
	trimmed.Text = strings.TrimSpace(tok.Text)
	return trimmed
}

func mediaBoxWidth(page pdf.Page) float64 {
	mb := page.V.Key("MediaBox")
	if mb.IsNull() || mb.Len() < 4 {
		return 0
	}
	return mb.Index(2).Float64() - mb.Index(0).Float64()
}
