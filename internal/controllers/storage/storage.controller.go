package storageController

import (
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/storage"
	"context"
	"errors"
	"strings"
)

var ErrStorageDisabled = errors.New("file storage is not configured")

type FileStore interface {
	PresignUpload(ctx context.Context, filename, contentType string) (storage.UploadURL, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	ListFiles(ctx context.Context) ([]storage.File, error)
}

type FileListing struct {
	Files []storage.File `json:"files"`
	Stats storage.Stats  `json:"stats"`
}

type StorageController struct {
	store FileStore
	log   logger.Logger
}

// New accepts a nil store; every operation then reports ErrStorageDisabled.
func New(store FileStore) *StorageController {
	return &StorageController{
		store: store,
		log:   logger.New("StorageController"),
	}
}

func (sc *StorageController) Enabled() bool {
	return sc.store != nil
}

type UploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

func (sc *StorageController) GetUploadURL(ctx context.Context, request UploadRequest) (storage.UploadURL, error) {
	if !sc.Enabled() {
		return storage.UploadURL{}, ErrStorageDisabled
	}
	if strings.TrimSpace(request.Filename) == "" || strings.TrimSpace(request.ContentType) == "" {
		return storage.UploadURL{}, NewValidationError("filename", "filename and contentType are required")
	}

	upload, err := sc.store.PresignUpload(ctx, request.Filename, request.ContentType)
	if err != nil {
		return storage.UploadURL{}, sc.log.Function("GetUploadURL").Err("failed to presign upload", err, "filename", request.Filename)
	}
	return upload, nil
}

func (sc *StorageController) GetDownloadURL(ctx context.Context, key string) (string, error) {
	if !sc.Enabled() {
		return "", ErrStorageDisabled
	}
	if strings.TrimSpace(key) == "" {
		return "", NewValidationError("key", "file key is required")
	}

	url, err := sc.store.PresignDownload(ctx, key)
	if err != nil {
		return "", sc.log.Function("GetDownloadURL").Err("failed to presign download", err, "key", key)
	}
	return url, nil
}

func (sc *StorageController) GetFiles(ctx context.Context) (FileListing, error) {
	if !sc.Enabled() {
		return FileListing{}, ErrStorageDisabled
	}

	files, err := sc.store.ListFiles(ctx)
	if err != nil {
		return FileListing{}, sc.log.Function("GetFiles").Err("failed to list files", err)
	}
	return FileListing{Files: files, Stats: storage.CalculateStats(files)}, nil
}
