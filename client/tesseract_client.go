package client

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// OCRWord is one recognized word with its bounding box in pixel coordinates
// (origin top-left, Y growing downward).
type OCRWord struct {
	Text       string
	X0, Y0     float64
	X1, Y1     float64
	Confidence float64
}

type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// ExtractWords runs Tesseract over a page image and returns word-level
// bounding boxes, so scanned balances can flow through the same layout
// reconstruction as text-layer PDFs. A fresh gosseract client is created per
// call; they are not safe for concurrent reuse.
func (tc *TesseractClient) ExtractWords(img image.Image) ([]OCRWord, error) {
	tempFile, err := saveTempImage(img)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tempFile)

	c := gosseract.NewClient()
	defer c.Close()

	c.SetTessdataPrefix(tc.dataPath)

	// Balance statements are Spanish-language documents.
	if err := c.SetLanguage("spa", "eng"); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}

	if err := c.SetImage(tempFile); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("failed to read bounding boxes: %w", err)
	}

	words := make([]OCRWord, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, OCRWord{
			Text:       box.Word,
			X0:         float64(box.Box.Min.X),
			Y0:         float64(box.Box.Min.Y),
			X1:         float64(box.Box.Max.X),
			Y1:         float64(box.Box.Max.Y),
			Confidence: box.Confidence,
		})
	}

	return words, nil
}

// saveTempImage saves an image.Image to a temporary PNG file.
func saveTempImage(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "balance-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return tempFile.Name(), nil
}

// Close performs cleanup.
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
