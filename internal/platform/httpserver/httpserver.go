// Package httpserver builds the process HTTP server.
package httpserver

import (
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	// writeTimeout covers a webhook delivery, which is answered only after
	// the update has been handed to the dispatcher.
	writeTimeout = 30 * time.Second
	idleTimeout  = 2 * time.Minute
)

// New serves handler on addr with bounded read and write times.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    1 << 16,
	}
}
