package handlers

import (
	"io"
	"time"

	"legaldesk/internal/dto"
	"legaldesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentHandler struct {
	docService *service.DocumentService
	logger     *zap.Logger
}

func NewDocumentHandler(docService *service.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// UploadDocument godoc
// @Summary Attach a document to a request
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Request ID"
// @Param file formData file true "Document file"
// @Security Bearer
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/requests/{id}/documents [post]
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}
	requestID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	// Get file from form
	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is required")
	}

	// Open file
	src, err := file.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to open file")
	}
	defer src.Close()

	body, err := io.ReadAll(src)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Failed to read file")
	}

	doc, err := h.docService.Attach(c.UserContext(), caller, requestID, body, file.Filename, file.Header.Get("Content-Type"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewDocumentResponse(doc))
}

// ListDocuments godoc
// @Summary List a request's documents
// @Description Oldest first
// @Tags documents
// @Produce json
// @Param id path string true "Request ID"
// @Security Bearer
// @Success 200 {array} dto.DocumentResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/requests/{id}/documents [get]
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}
	requestID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	docs, err := h.docService.ListFor(c.UserContext(), caller, requestID)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewDocumentResponses(docs))
}

// DeleteDocument godoc
// @Summary Detach a document
// @Description Only the uploader or an admin may detach
// @Tags documents
// @Param id path string true "Document ID"
// @Security Bearer
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}
	documentID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.docService.Detach(c.UserContext(), caller, documentID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ResolveURL godoc
// @Summary Get a temporary download URL
// @Tags documents
// @Produce json
// @Param path query string true "Document path"
// @Security Bearer
// @Success 200 {object} dto.SignedURLResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/documents/url [get]
func (h *DocumentHandler) ResolveURL(c *fiber.Ctx) error {
	caller, err := getCaller(c)
	if err != nil {
		return err
	}

	signed, err := h.docService.ResolveURL(c.UserContext(), caller, c.Query("path"))
	if err != nil {
		return err
	}

	return c.JSON(dto.SignedURLResponse{
		URL:       signed.URL,
		ExpiresAt: signed.ExpiresAt.Format(time.RFC3339),
	})
}
