package imagestore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingClose writes to a real file but reports a flush error on Close
type failingClose struct {
	*os.File
}

func (f failingClose) Close() error {
	_ = f.File.Close()
	return errors.New("disk quota exceeded")
}

func TestWriteFile_CloseFailureRemovesFile(t *testing.T) {
	original := createFile
	t.Cleanup(func() { createFile = original })
	createFile = func(name string) (io.WriteCloser, error) {
		f, err := os.Create(name)
		if err != nil {
			return nil, err
		}
		return failingClose{f}, nil
	}

	path := filepath.Join(t.TempDir(), "work.png")
	err := writeFile(path, strings.NewReader("image bytes"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close image file")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial upload must not remain")
}

func TestWriteFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.png")
	require.NoError(t, writeFile(path, strings.NewReader("image bytes")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(content))
}
