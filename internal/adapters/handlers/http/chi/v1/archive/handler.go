package archive

import (
	"log/slog"
	"file-researcher/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// UserIDHeader carries the caller identity resolved by the authentication layer
const UserIDHeader = "X-User-ID"

// HandlerV1 is the handler for v1 archive routes
type HandlerV1 struct {
	dispatchService port.DispatchService
	historyService  port.HistoryService
	progress        port.ProgressSubscriber
	maxUploadBytes  int64
	logger          *slog.Logger
}

// NewArchiveHandlerV1 creates HandlerV1
func NewArchiveHandlerV1(dispatchService port.DispatchService, historyService port.HistoryService,
	progress port.ProgressSubscriber, maxUploadBytes int64, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		dispatchService: dispatchService,
		historyService:  historyService,
		progress:        progress,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	// progress streams stay open until the task ends
	router.Get("/progress/{taskID}", h.StreamProgressV1)
	router.Post("/file-sets/{fileSetID}/archives/upload", h.UploadAndSendV1)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Use(middleware.RequestSize(1 << 20))

		r.Post("/file-sets/{fileSetID}/archives/send", h.SendV1)
		r.Put("/file-sets/{fileSetID}/archives/{archiveID}/resend", h.ResendV1)
		r.Get("/file-sets/{fileSetID}/archives", h.ListFileSetArchivesV1)

		r.Get("/archives", h.ListUserArchivesV1)
		r.Get("/archives/stats", h.GetStatsV1)
		r.Get("/archives/large", h.ListLargeArchivesV1)
		r.Get("/archives/{archiveID}/history", h.GetHistoryV1)
		r.Get("/archives/{archiveID}/history/last-recipient", h.GetLastRecipientV1)
	})

	return router
}
