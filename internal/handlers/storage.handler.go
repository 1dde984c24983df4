package handlers

import (
	"agency/internal/app"
	storageController "agency/internal/controllers/storage"

	"github.com/gofiber/fiber/v2"
)

type StorageHandler struct {
	Handler
	controller *storageController.StorageController
}

func NewStorageHandler(app app.App, router fiber.Router) *StorageHandler {
	return &StorageHandler{
		controller: app.StorageController,
		Handler:    newHandler(app, router, "storage_handler"),
	}
}

func (h *StorageHandler) Register() {
	files := h.router.Group("/storage", h.middleware.AuthRequired())
	files.Post("/upload-url", h.getUploadURL)
	files.Post("/download-url", h.getDownloadURL)
	files.Get("/files", h.getFiles)
}

func (h *StorageHandler) getUploadURL(c *fiber.Ctx) error {
	var request storageController.UploadRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse upload request")
	}

	upload, err := h.controller.GetUploadURL(c.Context(), request)
	if err != nil {
		return h.fail(c, err, "File", "failed to generate upload URL")
	}
	return c.JSON(fiber.Map{"message": "success", "uploadUrl": upload.UploadURL, "key": upload.Key})
}

type downloadRequest struct {
	Key string `json:"key"`
}

func (h *StorageHandler) getDownloadURL(c *fiber.Ctx) error {
	var request downloadRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse download request")
	}

	url, err := h.controller.GetDownloadURL(c.Context(), request.Key)
	if err != nil {
		return h.fail(c, err, "File", "failed to generate download URL")
	}
	return c.JSON(fiber.Map{"message": "success", "downloadUrl": url})
}

func (h *StorageHandler) getFiles(c *fiber.Ctx) error {
	listing, err := h.controller.GetFiles(c.Context())
	if err != nil {
		return h.fail(c, err, "File", "failed to list files")
	}
	return c.JSON(fiber.Map{"message": "success", "files": listing.Files, "stats": listing.Stats})
}
