// Package api exposes the message parser over HTTP.
package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/mpesa-sms-parser/internal/batch"
	"github.com/insightdelivered/mpesa-sms-parser/internal/ingest"
	"github.com/insightdelivered/mpesa-sms-parser/internal/models"
	"github.com/insightdelivered/mpesa-sms-parser/internal/parser"
)

const version = "1.0.0"

// ParseRequest is the JSON body of POST /api/parse.
type ParseRequest struct {
	Message string `json:"message"`
}

// ParseResponse is the JSON response for a single-message parse.
type ParseResponse struct {
	Success bool                      `json:"success"`
	Error   string                    `json:"error,omitempty"`
	Record  *models.TransactionRecord `json:"record,omitempty"`
}

// BatchResponse is the JSON response for a batch upload.
type BatchResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error,omitempty"`
	Report  *models.BatchReport `json:"report,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	parser *parser.MessageParser
	runner *batch.Runner
}

// NewHandler builds a Handler sharing one parser and batch runner.
func NewHandler(runner *batch.Runner) *Handler {
	return &Handler{parser: parser.New(), runner: runner}
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/parse", h.HandleParse)
	app.Post("/api/batch", h.HandleBatch)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleParse parses the single message in the JSON body. Parse failures
// are reported with 422 and the typed error's message; they are expected
// outcomes, not server faults.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	var req ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return parseError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return parseError(c, fiber.StatusBadRequest, "message is required")
	}

	// Every member of the parse-error taxonomy is a caller-recoverable
	// condition, so all of them map to 422 rather than a server fault.
	rec, err := h.parser.Parse(req.Message)
	if err != nil {
		return parseError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	return c.JSON(ParseResponse{Success: true, Record: rec})
}

// HandleBatch parses every message line in an uploaded .txt or .pdf file.
func (h *Handler) HandleBatch(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return batchError(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}

	name := strings.ToLower(fileHeader.Filename)
	var messages []string

	switch {
	case strings.HasSuffix(name, ".pdf"):
		messages, err = h.pdfMessages(fileHeader)
	case strings.HasSuffix(name, ".txt"):
		messages, err = h.textMessages(fileHeader)
	default:
		return batchError(c, fiber.StatusBadRequest, "only .txt and .pdf files are supported")
	}
	if err != nil {
		return batchError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if len(messages) == 0 {
		return batchError(c, fiber.StatusUnprocessableEntity, "uploaded file contains no messages")
	}

	report := h.runner.Run(fileHeader.Filename, messages)
	return c.JSON(BatchResponse{Success: true, Report: report})
}

func (h *Handler) textMessages(fileHeader *multipart.FileHeader) ([]string, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return ingest.MessagesFromText(string(data)), nil
}

// pdfMessages stages the upload on disk; the PDF library needs a seekable
// file.
func (h *Handler) pdfMessages(fileHeader *multipart.FileHeader) ([]string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "sms-export-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}
	tmp.Close()

	return ingest.ExtractPDFMessages(tmp.Name())
}

func parseError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ParseResponse{Success: false, Error: msg})
}

func batchError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(BatchResponse{Success: false, Error: msg})
}
