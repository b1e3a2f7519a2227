package service

import (
	"context"
	"path/filepath"
	"strings"

	"uhs-recruit/pkg/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// allowedUploads maps each accepted extension to the sniffed MIME types it may carry.
var allowedUploads = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".webp": {"image/webp"},
}

var uploadFolders = map[string]bool{"resumes": true, "avatars": true, "attachments": true}

const defaultUploadFolder = "attachments"

type UploadInput struct {
	Filename string
	Folder   string
	Data     []byte
}

type UploadResult struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type UploadService interface {
	MaxBytes() int64
	Upload(ctx context.Context, in UploadInput) (*UploadResult, error)
}

type uploadService struct {
	store    storage.Provider
	maxBytes int64
}

func NewUploadService(store storage.Provider, maxBytes int64) UploadService {
	return &uploadService{store: store, maxBytes: maxBytes}
}

func (s *uploadService) MaxBytes() int64 {
	return s.maxBytes
}

func (s *uploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if len(in.Data) == 0 {
		return nil, invalid("File is required")
	}
	if int64(len(in.Data)) > s.maxBytes {
		return nil, invalid("File exceeds the %d MB limit", s.maxBytes/(1024*1024))
	}

	folder := strings.TrimSpace(in.Folder)
	if folder == "" {
		folder = defaultUploadFolder
	}
	if !uploadFolders[folder] {
		return nil, invalid("Unsupported upload folder %q", folder)
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	accepted, ok := allowedUploads[ext]
	if !ok {
		return nil, invalid("File type %q is not allowed", ext)
	}
	mt := mimetype.Detect(in.Data)
	if !mimeAllowed(mt, accepted) {
		return nil, invalid("File content (%s) does not match its extension", mt.String())
	}

	key := folder + "/" + uuid.NewString() + ext
	url, err := s.store.Save(ctx, key, in.Data, mt.String())
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:      url,
		Name:     filepath.Base(in.Filename),
		Size:     int64(len(in.Data)),
		MimeType: mt.String(),
	}, nil
}

func mimeAllowed(mt *mimetype.MIME, accepted []string) bool {
	for _, m := range accepted {
		if mt.Is(m) {
			return true
		}
	}
	return false
}
