package archive

import (
	"encoding/json"
	"fmt"
	"net/http"
	"file-researcher/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

const progressBuffer = 32

// StreamProgressV1 streams the progress of a task as server sent events until
// a terminal event or the client goes away
func (h *HandlerV1) StreamProgressV1(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	if taskID == "" {
		http.Error(w, "task id is required", http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	updates := make(chan domain.ProgressUpdate, progressBuffer)
	done := make(chan struct{})
	defer close(done)

	unsubscribe, err := h.progress.Subscribe(r.Context(), taskID, func(update domain.ProgressUpdate) {
		select {
		case updates <- update:
		case <-done:
		}
	})
	if err != nil {
		h.logger.Error("error subscribing to progress", "task_id", taskID, "error", err)
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.Warn("streaming not supported", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case update := <-updates:
			data, err := json.Marshal(update)
			if err != nil {
				h.logger.Error("error encoding progress", "task_id", taskID, "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
			if update.Terminal() {
				return
			}
		}
	}
}
