package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	requestTimeout  = 5 * time.Second
	idleTimeout     = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

type Server struct {
	httpServer *http.Server
}

func NewServer(addr string, stakes StakeReader) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      NewRouter(stakes),
			ReadTimeout:  requestTimeout,
			WriteTimeout: requestTimeout,
			IdleTimeout:  idleTimeout,
		},
	}
}

// Run serves until ctx is cancelled, then shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	log := log.Ctx(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("Starting stake api server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Stake api server stopped")
	return nil
}
