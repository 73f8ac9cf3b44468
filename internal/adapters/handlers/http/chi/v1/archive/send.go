package archive

import (
	"net/http"
)

// SendV1 starts archiving the resident files of a file set
func (h *HandlerV1) SendV1(w http.ResponseWriter, r *http.Request) {
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

	taskID, err := h.dispatchService.StartPathBasedTask(r.Context(), uid, fileSetID, r.URL.Query().Get("recipientEmail"))
	if err != nil {
		h.writeServiceError(w, err, "error starting send task")
		return
	}

	h.writeJSON(w, http.StatusAccepted, V1TaskResponse{TaskID: taskID})
}

// ResendV1 delivers an existing archive again
func (h *HandlerV1) ResendV1(w http.ResponseWriter, r *http.Request) {
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
	archiveID, err := pathID(r, "archiveID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	taskID, err := h.dispatchService.StartResendTask(r.Context(), uid, fileSetID, archiveID, r.URL.Query().Get("recipientEmail"))
	if err != nil {
		h.writeServiceError(w, err, "error starting resend task")
		return
	}

	h.writeJSON(w, http.StatusAccepted, V1TaskResponse{TaskID: taskID})
}
