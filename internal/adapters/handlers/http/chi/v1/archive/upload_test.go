package archive_test

import (
	"bytes"
	"file-researcher/internal/core/domain"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, recipient string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if recipient != "" {
		require.NoError(t, mw.WriteField("recipientEmail", recipient))
	}
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestUploadAndSendV1(t *testing.T) {
	t.Run("success - uploads handed to dispatch", func(t *testing.T) {
		// Arrange
		f := newFixture()
		f.dispatch.On("StartUploadTask", mock.Anything, int64(7), int64(3), "bob@example.com",
			mock.MatchedBy(func(uploads []domain.Upload) bool {
				names := map[string]bool{}
				for _, u := range uploads {
					names[u.Name] = true
				}
				return len(uploads) == 2 && names["a.txt"] && names["b.txt"]
			})).Return("task-3", nil)

		body, contentType := multipartBody(t, "bob@example.com", map[string]string{"a.txt": "alpha", "b.txt": "beta"})
		w := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/file-sets/3/archives/upload", body), "7")
		req.Header.Set("Content-Type", contentType)

		// Act
		f.router(1 << 20).ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"task_id":"task-3"`)
		f.dispatch.AssertExpectations(t)
	})

	t.Run("error - no files", func(t *testing.T) {
		// Arrange
		f := newFixture()
		body, contentType := multipartBody(t, "bob@example.com", nil)
		w := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/file-sets/3/archives/upload", body), "7")
		req.Header.Set("Content-Type", contentType)

		// Act
		f.router(1 << 20).ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.dispatch.AssertNotCalled(t, "StartUploadTask")
	})

	t.Run("error - upload too large", func(t *testing.T) {
		// Arrange
		f := newFixture()
		body, contentType := multipartBody(t, "", map[string]string{"big.bin": strings.Repeat("x", 4096)})
		w := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/file-sets/3/archives/upload", body), "7")
		req.Header.Set("Content-Type", contentType)

		// Act
		f.router(512).ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		f.dispatch.AssertNotCalled(t, "StartUploadTask")
	})

	t.Run("error - every upload skipped", func(t *testing.T) {
		// Arrange
		f := newFixture()
		f.dispatch.On("StartUploadTask", mock.Anything, int64(7), int64(3), "", mock.Anything).
			Return("", domain.ErrEmptyFileSet)
		body, contentType := multipartBody(t, "", map[string]string{"a.txt": "alpha"})
		w := httptest.NewRecorder()
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/file-sets/3/archives/upload", body), "7")
		req.Header.Set("Content-Type", contentType)

		// Act
		f.router(1 << 20).ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.dispatch.AssertExpectations(t)
	})
}
