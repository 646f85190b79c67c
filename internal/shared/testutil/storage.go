package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
)

// PNG is the smallest payload the image sniffing accepts as image/png
var PNG = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

// NewTestStorage returns a local image storage rooted in a temp dir
func NewTestStorage(t *testing.T) *imagestore.LocalStorage {
	t.Helper()

	storage, err := imagestore.NewLocalStorage(t.TempDir(), "/uploads", 1<<20)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	return storage
}

// StoredFiles counts the files kept by storage
func StoredFiles(t *testing.T, storage *imagestore.LocalStorage) int {
	t.Helper()

	count := 0
	err := filepath.WalkDir(storage.BasePath(), func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk storage: %v", err)
	}
	return count
}

// ImageFile builds the multipart header of an uploaded PNG
func ImageFile(t *testing.T, filename string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(PNG); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("Failed to read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}

// ExecuteMultipart posts form fields plus an optional PNG under "image", the way the
// browser forms submit uploads
func ExecuteMultipart(t *testing.T, router http.Handler, method, url string, fields map[string]string, filename string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("Failed to write field %s: %v", k, err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("image", filename)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(PNG); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}
