package handlers

import (
	"errors"

	"legaldesk/internal/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FileOpener resolves a signed file token to a path on disk.
type FileOpener interface {
	Open(token string) (string, error)
}

// FileHandler serves objects of the local store behind signed URLs.
type FileHandler struct {
	files  FileOpener
	logger *zap.Logger
}

func NewFileHandler(files FileOpener, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		files:  files,
		logger: logger,
	}
}

func (h *FileHandler) ServeFile(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "token is required")
	}

	fullPath, err := h.files.Open(token)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "file not found")
		}
		h.logger.Debug("Rejected file token", zap.Error(err))
		return fiber.NewError(fiber.StatusForbidden, "invalid or expired link")
	}

	return c.SendFile(fullPath)
}
