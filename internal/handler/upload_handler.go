package handler

import (
	"io"

	"uhs-recruit/internal/service"
	"uhs-recruit/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	uploadService service.UploadService
	log           *logger.Logger
}

func NewUploadHandler(uploadService service.UploadService, log *logger.Logger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, log: log}
}

// Upload stores the multipart field "file" under the optional "folder" form value.
// POST /api/uploads
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is required")
	}
	if fh.Size > h.uploadService.MaxBytes() {
		return fiber.NewError(fiber.StatusBadRequest, "File is too large")
	}

	f, err := fh.Open()
	if err != nil {
		return writeError(c, h.log, err)
	}
	defer f.Close()

	// one extra byte is enough to detect an oversized body whose header lied
	data, err := io.ReadAll(io.LimitReader(f, h.uploadService.MaxBytes()+1))
	if err != nil {
		return writeError(c, h.log, err)
	}

	res, err := h.uploadService.Upload(c.UserContext(), service.UploadInput{
		Filename: fh.Filename,
		Folder:   c.FormValue("folder"),
		Data:     data,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(201).JSON(res)
}
