package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("resume", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload-resume", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, header, err := req.FormFile("resume")
	require.NoError(t, err)
	return header
}

func TestSaveResumeStoresFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageService(dir)

	filename, path, err := storage.SaveResume(uploadedFile(t, "juan-dela-cruz.pdf", "%PDF-1.4 fake"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "resume_"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
	assert.Equal(t, filepath.Join(dir, filename), path)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(saved))
}

func TestSaveResumeNamesAreUnique(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	first, _, err := storage.SaveResume(uploadedFile(t, "resume.docx", "a"))
	require.NoError(t, err)
	second, _, err := storage.SaveResume(uploadedFile(t, "resume.docx", "b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSaveResumeRejectsUnsupportedExtension(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	_, _, err := storage.SaveResume(uploadedFile(t, "resume.txt", "plain"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedInputFormat)
}

func TestDeleteFileRemovesStoredResume(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	filename, path, err := storage.SaveResume(uploadedFile(t, "resume.pdf", "x"))
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(filename))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureUploadDirCreatesNestedPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	storage := NewStorageService(dir)

	require.NoError(t, storage.EnsureUploadDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
