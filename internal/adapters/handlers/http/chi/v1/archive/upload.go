package archive

import (
	"errors"
	"mime/multipart"
	"net/http"
	"file-researcher/internal/core/domain"
)

const multipartMemory = 32 << 20

// UploadAndSendV1 archives the uploaded files and emails the result
func (h *HandlerV1) UploadAndSendV1(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	fileSetID, err := pathID(r, "fileSetID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("failed to remove multipart files", "error", err)
		}
	}()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}

	uploads := make([]domain.Upload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("error opening uploaded file", "filename", fh.Filename, "error", err)
			http.Error(w, "invalid upload", http.StatusBadRequest)
			return
		}
		opened = append(opened, f)
		uploads = append(uploads, domain.Upload{Name: fh.Filename, Content: f})
	}

	taskID, err := h.dispatchService.StartUploadTask(r.Context(), uid, fileSetID, r.FormValue("recipientEmail"), uploads)
	if err != nil {
		h.writeServiceError(w, err, "error starting upload task")
		return
	}

	h.writeJSON(w, http.StatusAccepted, V1TaskResponse{TaskID: taskID})
}
