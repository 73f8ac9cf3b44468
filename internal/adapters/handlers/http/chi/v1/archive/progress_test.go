package archive_test

import (
	"context"
	"file-researcher/internal/adapters/eventbroker"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStreamProgressV1(t *testing.T) {
	t.Run("success - events until terminal", func(t *testing.T) {
		// Arrange
		f := newFixture()
		server := httptest.NewServer(f.router(0))
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/v1/progress/task-1")
		require.NoError(t, err)
		defer resp.Body.Close()

		// Act
		f.broker.Publish(context.Background(), "task-1", 45, "Processing: a.txt")
		f.broker.Publish(context.Background(), "task-2", 10, "other task")
		f.broker.Publish(context.Background(), "task-1", 100, "Completed!")
		body, err := io.ReadAll(resp.Body)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
		assert.Equal(t,
			"data: {\"percent\":45,\"message\":\"Processing: a.txt\"}\n\n"+
				"data: {\"percent\":100,\"message\":\"Completed!\"}\n\n",
			string(body))
	})

	t.Run("success - failure event closes stream", func(t *testing.T) {
		// Arrange
		f := newFixture()
		server := httptest.NewServer(f.router(0))
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/v1/progress/task-3")
		require.NoError(t, err)
		defer resp.Body.Close()

		// Act
		f.broker.Publish(context.Background(), "task-3", -1, "Error: file set not found")
		body, err := io.ReadAll(resp.Body)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "data: {\"percent\":-1,\"message\":\"Error: file set not found\"}\n\n", string(body))
	})

	t.Run("error - subscription failed", func(t *testing.T) {
		// Arrange
		f := newFixture()
		subscriber := eventbroker.NewMockProgressSubscriber()
		subscriber.On("Subscribe", mock.Anything, "task-4", mock.Anything).Return(nil, assert.AnError)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/progress/task-4", nil)

		// Act
		f.routerWith(subscriber, 0).ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		subscriber.AssertExpectations(t)
	})
}
