// Package api exposes the crawl over HTTP, both as a gin server and as an
// API Gateway Lambda handler. Both share the same parameter and error policy.
package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ArticleCrawler/internal/logging"
	"ArticleCrawler/internal/params"
	"ArticleCrawler/internal/ports"
)

// CrawlPath is the route of the crawl endpoint.
const CrawlPath = "/api/ai-today"

// ErrorResponse is the body returned for any failed crawl request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Server handles crawl requests over gin.
type Server struct {
	crawler  ports.Crawler
	defaults params.Defaults
	location *time.Location
	logger   *slog.Logger
}

// NewServer creates a server that runs crawls with the given defaults.
func NewServer(crawler ports.Crawler, defaults params.Defaults, location *time.Location, logger *slog.Logger) *Server {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		crawler:  crawler,
		defaults: defaults,
		location: location,
		logger:   logger,
	}
}

// SetupRouter configures the gin router with the crawl and health routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET(CrawlPath, s.HandleCrawl)
	router.POST(CrawlPath, s.HandleCrawl)

	return router
}

// HandleCrawl handles GET and POST /api/ai-today. Query parameters are read
// first; a JSON body on POST overrides them field by field.
func (s *Server) HandleCrawl(c *gin.Context) {
	raw := params.RawParams{
		CategoryURL: c.Query("category_url"),
		Date:        c.Query("date"),
		Limit:       c.Query("limit"),
		Sleep:       c.Query("sleep"),
	}

	if c.Request.Method == http.MethodPost && c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err == nil {
			raw = params.MergeJSON(raw, body)
		}
	}

	status, payload := s.run(c.Request.Context(), raw)
	c.PureJSON(status, payload)
}

// run validates raw, performs the crawl and maps the outcome to a status and
// a JSON-ready payload.
func (s *Server) run(ctx context.Context, raw params.RawParams) (int, any) {
	req, err := params.Parse(raw, s.defaults, s.location)
	if err != nil {
		s.logger.Info("rejected crawl request", "error", err)
		return errorStatus(err)
	}

	result, err := s.crawler.Crawl(ctx, req)
	if err != nil {
		s.logger.Error("crawl failed", "category", req.CategoryURL, "error", err)
		return errorStatus(err)
	}

	return http.StatusOK, result
}

func errorStatus(err error) (int, any) {
	switch {
	case errors.Is(err, params.ErrInvalidDate):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid_date", Detail: err.Error()}
	case errors.Is(err, params.ErrInvalidParameter):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid_parameter", Detail: err.Error()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal_error", Detail: err.Error()}
	}
}
