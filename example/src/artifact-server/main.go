package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
)

// Serves the output of memfit-publish the way the artifact host does, so
// memfit-dl can be pointed at it with --base-url http://localhost:8080.

var servePath = flag.String("dir", "./public", "path to serve")

type logHandler struct {
	handler http.Handler
	logger  *slog.Logger
}

func (lh *logHandler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	lh.logger.Info("received request", "uri", r.URL.RequestURI())
	lh.handler.ServeHTTP(rw, r)
}

func main() {
	flag.Parse()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Simple static webserver with logging:
	logger.Info("starting artifact server on :8080, Ctrl + C to quit", "dir", *servePath)
	err := http.ListenAndServe(":8080", &logHandler{
		handler: http.FileServer(http.Dir(*servePath)),
		logger:  logger,
	})
	logger.Error("server stopped", "error", err)
	os.Exit(1)
}
