package archive_test

import (
	"io"
	"log/slog"
	"net/http"
	"file-researcher/internal/adapters/eventbroker"
	"file-researcher/internal/adapters/handlers/http/chi"
	"file-researcher/internal/adapters/handlers/http/chi/v1/archive"
	"file-researcher/internal/core/port"
	"file-researcher/internal/core/service/dispatch"
	"file-researcher/internal/core/service/history"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	dispatch *dispatch.MockDispatchService
	history  *history.MockHistoryService
	broker   *eventbroker.ChannelBroker
}

func newFixture() *fixture {
	return &fixture{
		dispatch: dispatch.NewMockDispatchService(),
		history:  history.NewMockHistoryService(),
		broker:   eventbroker.NewChannelBroker(),
	}
}

func (f *fixture) router(maxUploadBytes int64) http.Handler {
	return f.routerWith(f.broker, maxUploadBytes)
}

func (f *fixture) routerWith(progress port.ProgressSubscriber, maxUploadBytes int64) http.Handler {
	handler := archive.NewArchiveHandlerV1(f.dispatch, f.history, progress, maxUploadBytes, discardLogger)
	return chi.NewRouter(discardLogger, handler, "")
}

func withUser(req *http.Request, id string) *http.Request {
	req.Header.Set(archive.UserIDHeader, id)
	return req
}
