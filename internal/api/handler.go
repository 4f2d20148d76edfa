package api

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/siamledger/amex-extract/internal/extractor"
	"github.com/siamledger/amex-extract/internal/models"
	"github.com/siamledger/amex-extract/internal/normalize"
	"github.com/siamledger/amex-extract/internal/parser"
	"github.com/siamledger/amex-extract/internal/writer"
)

const version = "1.0.0"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	Format  string               `json:"format,omitempty"`
	Records []models.Transaction `json:"records"`
	CSV     string               `json:"csv,omitempty"`
	Total   string               `json:"total"`
	Count   int                  `json:"count"`
	Version string               `json:"version,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   "amex-extract",
		BodyLimit: 32 << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
	return app
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleConvert accepts a multipart PDF upload, runs extraction and parsing,
// and returns the records plus ready-to-download CSV text. An optional
// "year" form field triggers date normalization.
func HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	tmpFile, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	if err := c.SaveFile(fileHeader, tmpFile.Name()); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	pages, err := extractor.ExtractText(tmpFile.Name())
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}

	format, err := parser.AutoDetect(pages)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	p, err := parser.New(format)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	records := p.Parse(pages)
	for i := range records {
		records[i].SourceFile = fileHeader.Filename
	}

	if yearParam := c.FormValue("year"); yearParam != "" {
		year, convErr := strconv.Atoi(yearParam)
		if convErr != nil {
			return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid year: %q", yearParam))
		}
		normalize.Records(records, year)
		normalize.SortByDate(records)
	}

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{}
	if err := csvWriter.Write(&csvBuf, records); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	// nil marshals to JSON null, not [].
	if records == nil {
		records = []models.Transaction{}
	}

	return c.JSON(ConvertResponse{
		Success: true,
		Format:  p.FormatName(),
		Records: records,
		CSV:     csvBuf.String(),
		Total:   writer.GrandTotal(records).StringFixed(2),
		Count:   len(records),
		Version: version,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
		Records: []models.Transaction{},
		Total:   "0.00",
	})
}
