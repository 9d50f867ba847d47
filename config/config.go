package config

import "os"

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRFallback       bool
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata"
	}

	// Scanned balances are rejected as unreadable unless the OCR fallback
	// is switched on explicitly.
	ocrFallback := os.Getenv("OCR_FALLBACK") == "true"

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		OCRFallback:       ocrFallback,
		MaxFileSize:       32 * 1024 * 1024, // 32 MB
	}
}
