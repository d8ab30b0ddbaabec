package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with defaults sized for this service. The write
// timeout leaves headroom for the 10s currency lookup plus evaluation work.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}
