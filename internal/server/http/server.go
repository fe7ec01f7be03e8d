package http

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/lifemgmt/internal/logging"
	"github.com/gofiber/fiber/v2"
)

// Server runs a fiber app until its context is cancelled.
type Server struct {
	address         string
	app             *fiber.App
	logger          logging.Logger
	shutdownTimeout time.Duration
}

func NewServer(address string, app *fiber.App, logger logging.Logger, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		app:             app,
		logger:          logger.With("module", "http_server"),
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is done, then drains in-flight requests. Requests
// still running after the shutdown timeout are abandoned and Run returns
// context.DeadlineExceeded.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		stopped <- s.app.ShutdownWithTimeout(s.shutdownTimeout)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := s.app.Listener(listen); err != nil {
		return err
	}

	if err := <-stopped; err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Error(ctx, "Forcing shutdown after timeout")
		}
		return err
	}
	s.logger.Info(ctx, "HTTP server closed")
	return nil
}
