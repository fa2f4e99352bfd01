package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

type Server struct {
	*http.Server
	*http.ServeMux
	shutdownTimeout time.Duration

	lock     sync.Mutex
	listener net.Listener
}

func NewServer(port int, shutdownTimeout time.Duration) *Server {
	mux := http.NewServeMux()
	return &Server{
		Server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
		ServeMux:        mux,
		shutdownTimeout: shutdownTimeout,
	}
}

// Address returns the address the server is listening on.
// It is empty before the server has been started.
func (s *Server) Address() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start opens the listener and serves requests in the background
// until the context is cancelled. The returned Syncher waits for
// the server to be shut down.
func (s *Server) Start(ctx context.Context) (Syncher, error) {
	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return nil, err
	}
	s.lock.Lock()
	s.listener = l
	s.lock.Unlock()

	log.Info("listening on {{address}}", "address", l.Addr())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	done := Sync(wg)
	go func() {
		defer wg.Done()
		done.SetError(s.serve(ctx, func() error { return s.Serve(l) }))
	}()
	return done, nil
}

func (s *Server) ListenAndServeContext(ctx context.Context) error {
	return s.ListenAndServeTLSContext(ctx, "", "")
}

func (s *Server) ListenAndServeTLSContext(ctx context.Context, certFile, keyFile string) error {
	return s.serve(ctx, func() error {
		if certFile != "" && keyFile != "" {
			return s.ListenAndServeTLS(certFile, keyFile)
		}
		return s.ListenAndServe()
	})
}

func (s *Server) serve(ctx context.Context, run func() error) error {
	serverErr := make(chan error, 1)
	go func() {
		// Shutdown causes the serve functions to return http.ErrServerClosed.
		serverErr <- run()
	}()
	var err error
	select {
	case <-ctx.Done():
		log.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		err = s.Shutdown(ctx)
	case err = <-serverErr:
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
