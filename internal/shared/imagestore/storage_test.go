package imagestore_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := imagestore.NewLocalStorage(dir, "/uploads/", 1<<20)
	require.NoError(t, err)

	image, err := storage.Upload(context.Background(), fileHeader(t, "work.png", pngBytes), "artworks")
	require.NoError(t, err)

	assert.Regexp(t, `^artworks/[0-9a-f-]{36}\.png$`, image.Key)
	assert.Equal(t, "/uploads/"+image.Key, image.URL)

	stored := filepath.Join(dir, filepath.FromSlash(image.Key))
	_, err = os.Stat(stored)
	require.NoError(t, err)

	require.NoError(t, storage.Delete(context.Background(), image.Key))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, storage.Delete(context.Background(), image.Key))
}

func TestLocalStorage_RejectsNonImage(t *testing.T) {
	storage, err := imagestore.NewLocalStorage(t.TempDir(), "/uploads", 1<<20)
	require.NoError(t, err)

	_, err = storage.Upload(context.Background(), fileHeader(t, "notes.png", []byte("plain text, not an image")), "artworks")
	assert.ErrorIs(t, err, imagestore.ErrUnsupportedImage)
}

func TestLocalStorage_RejectsLargeImage(t *testing.T) {
	storage, err := imagestore.NewLocalStorage(t.TempDir(), "/uploads", 16)
	require.NoError(t, err)

	_, err = storage.Upload(context.Background(), fileHeader(t, "work.png", pngBytes), "artworks")
	assert.ErrorIs(t, err, imagestore.ErrImageTooLarge)
}

func TestLocalStorage_DeleteOutsideBase(t *testing.T) {
	storage, err := imagestore.NewLocalStorage(t.TempDir(), "/uploads", 1<<20)
	require.NoError(t, err)

	assert.Error(t, storage.Delete(context.Background(), "../../etc/passwd"))
}

func TestOptimizeURL(t *testing.T) {
	assert.Equal(t, "", imagestore.OptimizeURL("", 400))
	assert.Equal(t, "/uploads/a.png", imagestore.OptimizeURL("/uploads/a.png", 400))
	assert.Equal(t,
		"https://cdn.skku-gallery.kr/artworks/a.png?fm=webp&q=80&w=400",
		imagestore.OptimizeURL("https://cdn.skku-gallery.kr/artworks/a.png", 400))
	assert.Equal(t,
		"https://cdn.skku-gallery.kr/a.png?fm=png&q=60",
		imagestore.OptimizeURL("https://cdn.skku-gallery.kr/a.png?q=60&fm=png", 0))
}
