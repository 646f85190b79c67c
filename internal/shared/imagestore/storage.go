package imagestore

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
)

const (
	unsupportedImage = "UNSUPPORTED_IMAGE" // errInfo
	imageTooLarge    = "IMAGE_TOO_LARGE"   // errInfo
)

var (
	ErrUnsupportedImage = sharedError.NewDomainError(unsupportedImage)
	ErrImageTooLarge    = sharedError.NewDomainError(imageTooLarge)
)

func init() {
	sharedError.RegisterDomainErrorResponse(unsupportedImage, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "IMAGE-001",
		Message: "지원하지 않는 이미지 형식입니다. (jpg, png, gif, webp)",
	})
	sharedError.RegisterDomainErrorResponse(imageTooLarge, sharedError.ErrorResponse{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "IMAGE-002",
		Message: "이미지 파일이 너무 큽니다.",
	})
}

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is a stored image: Key identifies it for deletion, URL is public
type Image struct {
	Key string
	URL string
}

// Storage stores uploaded images
type Storage interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*Image, error)
	Delete(ctx context.Context, key string) error
}

// New returns the storage configured by STORAGE_DRIVER
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageS3:
		return NewS3Storage(cfg.Storage, cfg.Server.MaxUploadSize)
	default:
		return NewLocalStorage(cfg.Storage.LocalPath, cfg.Storage.LocalURL, cfg.Server.MaxUploadSize)
	}
}

// inspect validates size and sniffed content type, returning the content type and a new object name
func inspect(file multipart.File, header *multipart.FileHeader, maxSize int64) (string, string, error) {
	if maxSize > 0 && header.Size > maxSize {
		return "", "", fmt.Errorf("image %s (%d bytes): %w", header.Filename, header.Size, ErrImageTooLarge)
	}

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", "", fmt.Errorf("read image header: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("rewind image: %w", err)
	}

	contentType := http.DetectContentType(sniff[:n])
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("image %s is %s: %w", header.Filename, contentType, ErrUnsupportedImage)
	}

	return contentType, uuid.New().String() + ext, nil
}

func objectKey(folder, name string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
