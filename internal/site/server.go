// Package site serves the download surfaces of the Memfit AI website: the
// download button redirect, the localized listing page it falls back to,
// and their JSON counterparts.
package site

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/yaklang/memfit-dl/download"
	"github.com/yaklang/memfit-dl/internal/locale"
)

// Server is the download site HTTP service.
type Server struct {
	server   *http.Server
	logger   *slog.Logger
	resolver *download.Resolver
	locale   locale.Locale
	page     *template.Template
}

// New builds a Server listening on addr. Pages fall back to defaultLocale
// when a request names no supported language.
func New(logger *slog.Logger, resolver *download.Resolver, defaultLocale locale.Locale, addr string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:   logger,
		resolver: resolver,
		locale:   defaultLocale,
		page:     downloadsPage,
		server: &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	mux.HandleFunc("GET /download", s.handleDownload)
	mux.HandleFunc("GET /downloads", s.handleDownloads)
	mux.HandleFunc("GET /api/download", s.handleAPIDownload)
	mux.HandleFunc("GET /api/catalog", s.handleAPICatalog)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.server.Handler = gzhttp.GzipHandler(s.withRequestLog(mux))

	return s
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("site listening", "addr", s.server.Addr, "base_url", s.resolver.BaseURL())

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
