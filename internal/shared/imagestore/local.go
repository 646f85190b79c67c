package imagestore

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
)

// LocalStorage saves images on the server filesystem; the router serves baseURL from basePath
type LocalStorage struct {
	basePath string
	baseURL  string
	maxSize  int64
}

func NewLocalStorage(basePath, baseURL string, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("이미지 저장 경로 생성 실패 %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		maxSize:  maxSize,
	}, nil
}

// BasePath is the directory served as static files
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

func (s *LocalStorage) Upload(ctx context.Context, header *multipart.FileHeader, folder string) (*Image, error) {
	log := logger.FromContext(ctx)

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded image: %w", err)
	}
	defer file.Close()

	_, name, err := inspect(file, header, s.maxSize)
	if err != nil {
		return nil, err
	}

	key := objectKey(folder, name)
	dstPath := filepath.Join(s.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	if err := writeFile(dstPath, file); err != nil {
		return nil, err
	}

	log.Info("이미지 저장 완료", "key", key, "size", header.Size)
	return &Image{Key: key, URL: s.baseURL + "/" + key}, nil
}

// createFile is replaced in tests to simulate flush failures
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// writeFile copies src to path; a failed write or close leaves no partial file behind
func writeFile(path string, src io.Reader) error {
	dst, err := createFile(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close image file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	path := filepath.Join(s.basePath, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("invalid image key %q", key)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image %s: %w", key, err)
	}

	logger.FromContext(ctx).Info("이미지 삭제 완료", "key", key)
	return nil
}
