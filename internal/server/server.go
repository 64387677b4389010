// Package server implements the SLIM accept loop: bind a TCP listener and
// hand each accepted connection to its own independent Session, per the
// spec's contract "one session per accepted connection, sessions
// independent".
package server

import (
	"context"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/AleksandrIakhnev/waferslim/internal/convert"
	"github.com/AleksandrIakhnev/waferslim/internal/security"
	"github.com/AleksandrIakhnev/waferslim/internal/session"
	"github.com/AleksandrIakhnev/waferslim/internal/telemetry"
)

// Option is a functional option for configuring a Server, the same
// construction pattern the teacher uses for its Responder/Querier types.
type Option func(*Server) error

// Server accepts TCP connections and runs one session per connection.
type Server struct {
	addr        string
	keepalive   bool
	listener    net.Listener
	logger      *telemetry.Logger
	converters  *convert.Registry
	rateLimiter *security.RateLimiter
}

// New constructs a Server bound to addr (not yet listening; call Serve to
// accept connections) with opts applied in order. Connection-rate limiting
// is disabled by default; enable it with WithRateLimit.
func New(addr string, opts ...Option) (*Server, error) {
	s := &Server{
		addr:        addr,
		logger:      telemetry.New(noopWriter{}, telemetry.INFO),
		converters:  convert.NewRegistry(),
		rateLimiter: security.NewRateLimiter(0, time.Minute, 1),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithKeepalive sets whether Serve accepts connections until ctx is
// cancelled (true) or returns after the first connection finishes
// (false), matching the --keepalive CLI flag.
func WithKeepalive(keepalive bool) Option {
	return func(s *Server) error {
		s.keepalive = keepalive
		return nil
	}
}

// WithLogger overrides the server's telemetry logger.
func WithLogger(logger *telemetry.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithConverters overrides the base converter registry every session's
// Execution Context is cloned from.
func WithConverters(registry *convert.Registry) Option {
	return func(s *Server) error {
		s.converters = registry
		return nil
	}
}

// WithRateLimit caps accepted connections to threshold/second per remote
// IP, imposing cooldown after a source exceeds it and tracking at most
// maxSources distinct addresses at once. A threshold <= 0 disables the
// limiter (the default).
func WithRateLimit(threshold int, cooldown time.Duration, maxSources int) Option {
	return func(s *Server) error {
		s.rateLimiter = security.NewRateLimiter(threshold, cooldown, maxSources)
		return nil
	}
}

// Serve binds the listener and accepts connections until ctx is cancelled
// or (without --keepalive) the first session ends. It returns nil on a
// clean shutdown driven by ctx, or the first fatal accept/bind error.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if !s.admit(conn) {
			continue
		}

		if s.keepalive {
			go s.handle(conn)
			continue
		}

		s.handle(conn)
		return nil
	}
}

// Addr returns the listener's bound address once Serve has started, or
// the empty string before that.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// admit applies the rate limiter to a freshly accepted connection, closing
// and refusing it when its remote host has exceeded its connection budget.
func (s *Server) admit(conn net.Conn) bool {
	host := conn.RemoteAddr().String()
	if tcpAddr, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		host = tcpAddr.IP.String()
	}

	if !s.rateLimiter.Allow(host) {
		s.logger.Warn("connection rejected by rate limiter", telemetry.KV{Key: "remote_addr", Value: host})
		conn.Close()
		return false
	}
	return true
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	sessionID := uuid.NewString()
	s.logger.Info("session opened", telemetry.KV{Key: "session_id", Value: sessionID}, telemetry.KV{Key: "remote_addr", Value: conn.RemoteAddr().String()})

	sess := session.New(conn, s.converters)
	sess.SetLogger(s.logger)
	err := sess.Run()

	if err != nil {
		s.logger.Warn("session terminated", telemetry.KV{Key: "session_id", Value: sessionID}, telemetry.KV{Key: "error", Value: err.Error()})
		return
	}
	s.logger.Info("session closed", telemetry.KV{Key: "session_id", Value: sessionID})
}

// noopWriter discards everything; the zero-value default logger before a
// caller supplies a real one via WithLogger.
type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }
