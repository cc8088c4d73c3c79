package api

import (
	"fmt"
	"path/filepath"
	"time"

	"ChipTick/internal/domain/models"
	drepo "ChipTick/internal/domain/repository"
	"ChipTick/internal/usecase"
	"ChipTick/pkg/cache"
	xhttp "ChipTick/pkg/http"
	xlogger "ChipTick/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HistoryEchoHandler serves the public price history over HTTP: the raw
// series, the latest quote, and the static chart page.
type HistoryEchoHandler struct {
	logger  *xlogger.Logger
	history drepo.HistoryStore
	cache   cache.Service
	page    *usecase.PageWriter
	ttl     time.Duration

	pagePath    string
	historyPath string
}

func NewHistoryEchoHandler(
	logger *xlogger.Logger,
	history drepo.HistoryStore,
	cacheSvc cache.Service,
	page *usecase.PageWriter,
	pagePath string,
	historyPath string,
	ttl time.Duration,
) *HistoryEchoHandler {
	return &HistoryEchoHandler{
		logger:      logger,
		history:     history,
		cache:       cacheSvc,
		page:        page,
		ttl:         ttl,
		pagePath:    pagePath,
		historyPath: historyPath,
	}
}

func (h *HistoryEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Page)
	// The chart page fetches the raw document relative to itself.
	e.GET("/"+filepath.Base(h.historyPath), func(c echo.Context) error {
		return c.File(h.historyPath)
	})
	g := e.Group("/api")
	g.GET("/history", h.History)
	g.GET("/latest", h.Latest)
}

// History returns the tail of the series; ?n=0 (the default) returns all.
func (h *HistoryEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	key := fmt.Sprintf("history:%d", req.N)

	var cached models.History
	if err := h.cache.Get(ctx, key, &cached); err == nil {
		return xhttp.SuccessResponse(c, &cached)
	}

	doc, _, err := h.history.Load()
	if err != nil {
		h.logger.Error("load history", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	doc.History = doc.Tail(req.N)

	if err := h.cache.Set(ctx, key, doc, h.ttl); err != nil {
		h.logger.Warn("cache history", xlogger.Error(err))
	}
	return xhttp.SuccessResponse(c, doc)
}

// Latest returns the most recent point as a quote.
func (h *HistoryEchoHandler) Latest(c echo.Context) error {
	ctx := c.Request().Context()

	var cached models.LatestQuote
	if err := h.cache.Get(ctx, "latest", &cached); err == nil {
		return xhttp.SuccessResponse(c, &cached)
	}

	doc, _, err := h.history.Load()
	if err != nil {
		h.logger.Error("load history", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	last, ok := doc.Last()
	if !ok {
		return xhttp.NotFoundResponse(c, "no price has been recorded yet")
	}

	quote := models.LatestQuote{
		Symbol: doc.Symbol,
		Name:   doc.Name,
		Unit:   doc.Unit,
		Date:   last.Date,
		Price:  last.Price,
	}
	if err := h.cache.Set(ctx, "latest", &quote, h.ttl); err != nil {
		h.logger.Warn("cache latest", xlogger.Error(err))
	}
	return xhttp.SuccessResponse(c, &quote)
}

// Page serves the static chart page, materializing it on first request.
func (h *HistoryEchoHandler) Page(c echo.Context) error {
	if err := h.page.Ensure(); err != nil {
		h.logger.Error("ensure chart page", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return c.File(h.pagePath)
}
