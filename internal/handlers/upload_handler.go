package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"placementprime/internal/models"
	"placementprime/internal/services"
)

type UploadHandler struct {
	pdfParser   services.PDFParserService
	maxFileSize int64
}

func NewUploadHandler(pdfParser services.PDFParserService, maxFileSize int64) *UploadHandler {
	return &UploadHandler{
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
	}
}

// HandleUploadPDF handles POST /api/resumes/upload-pdf. The file is held
// in memory only long enough to extract its text; nothing is written to
// disk. Size and media-type gates run before extraction is attempted.
func (h *UploadHandler) HandleUploadPDF(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if contentType != "application/pdf" && ext != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "only PDF files are supported",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("❌ Failed to open uploaded file: %v", err)
		return internalError(c)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("❌ Failed to read uploaded file: %v", err)
		return internalError(c)
	}

	text, err := h.pdfParser.ExtractText(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, services.ErrExtractionFailed) {
			log.Printf("❌ No extractable text in %s", fileHeader.Filename)
		} else {
			log.Printf("❌ Failed to parse %s: %v", fileHeader.Filename, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to extract text from PDF",
		})
	}

	return c.JSON(models.UploadTextResponse{Text: text})
}
