package archive

import (
	"net/http"
	"strconv"
)

// ListFileSetArchivesV1 lists every archive built from a file set
func (h *HandlerV1) ListFileSetArchivesV1(w http.ResponseWriter, r *http.Request) {
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

	archives, err := h.historyService.ListFileSetArchives(r.Context(), uid, fileSetID)
	if err != nil {
		h.writeServiceError(w, err, "error listing file set archives")
		return
	}
	h.writeJSON(w, http.StatusOK, toArchiveResponses(archives))
}

func (h *HandlerV1) ListUserArchivesV1(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	archives, err := h.historyService.ListUserArchives(r.Context(), uid)
	if err != nil {
		h.writeServiceError(w, err, "error listing user archives")
		return
	}
	h.writeJSON(w, http.StatusOK, toArchiveResponses(archives))
}

// ListLargeArchivesV1 lists archives above minSize bytes, the service default applies when absent
func (h *HandlerV1) ListLargeArchivesV1(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var minSize int64
	if raw := r.URL.Query().Get("minSize"); raw != "" {
		minSize, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || minSize < 0 {
			http.Error(w, "invalid minSize", http.StatusBadRequest)
			return
		}
	}

	archives, err := h.historyService.ListLargeArchives(r.Context(), uid, minSize)
	if err != nil {
		h.writeServiceError(w, err, "error listing large archives")
		return
	}
	h.writeJSON(w, http.StatusOK, toArchiveResponses(archives))
}

func (h *HandlerV1) GetStatsV1(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	stats, err := h.historyService.GetStats(r.Context(), uid)
	switch {
	case err != nil:
		h.writeServiceError(w, err, "error getting archive stats")
	case stats == nil:
		h.logger.Error("archive stats are nil")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	default:
		h.writeJSON(w, http.StatusOK, V1StatsResponse{
			Success: stats.Success,
			Failed:  stats.Failed,
			Pending: stats.Pending,
		})
	}
}

// GetHistoryV1 lists delivery attempts of an archive, most recent first
func (h *HandlerV1) GetHistoryV1(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	archiveID, err := pathID(r, "archiveID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	attempts, err := h.historyService.GetDeliveryHistory(r.Context(), uid, archiveID)
	if err != nil {
		h.writeServiceError(w, err, "error getting delivery history")
		return
	}
	h.writeJSON(w, http.StatusOK, toAttemptResponses(attempts))
}

func (h *HandlerV1) GetLastRecipientV1(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	archiveID, err := pathID(r, "archiveID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recipient, err := h.historyService.GetLastRecipient(r.Context(), uid, archiveID)
	if err != nil {
		h.writeServiceError(w, err, "error getting last recipient")
		return
	}
	h.writeJSON(w, http.StatusOK, V1LastRecipientResponse{RecipientEmail: recipient})
}
