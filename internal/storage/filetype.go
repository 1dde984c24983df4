package storage

import (
	"path"
	"strings"
)

type FileType string

const (
	FileTypePDF         FileType = "pdf"
	FileTypeImage       FileType = "image"
	FileTypeDocument    FileType = "document"
	FileTypeSpreadsheet FileType = "spreadsheet"
	FileTypeOther       FileType = "other"
)

func ClassifyFile(filename string) FileType {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")) {
	case "pdf":
		return FileTypePDF
	case "jpg", "jpeg", "png", "gif":
		return FileTypeImage
	case "doc", "docx":
		return FileTypeDocument
	case "xls", "xlsx":
		return FileTypeSpreadsheet
	default:
		return FileTypeOther
	}
}
