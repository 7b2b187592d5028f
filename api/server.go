package api

import (
	"net"
	"net/http"

	"github.com/viscontilabs/bitstore-backend/pkg/config"
)

// NewServer builds the HTTP server with the configured timeouts applied.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         net.JoinHostPort("", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
}
