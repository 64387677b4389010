package server

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWithoutKeepaliveHandlesOneSessionThenReturns(t *testing.T) {
	s, err := New("127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ctx) }()

	addr := waitForAddr(t, s)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	greeting := make([]byte, 13)
	_, err = conn.Read(greeting)
	require.NoError(t, err)
	assert.Equal(t, "Slim -- V0.0\n", string(greeting))

	_, err = conn.Write([]byte("000003:bye"))
	require.NoError(t, err)

	select {
	case err := <-serveErr:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after single session finished")
	}
}

func TestServeWithKeepaliveHandlesMultipleSessions(t *testing.T) {
	s, err := New("127.0.0.1:0", WithKeepalive(true))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ctx) }()

	addr := waitForAddr(t, s)

	for i := 0; i < 2; i++ {
		conn, err := net.Dial("tcp", addr)
		require.NoError(t, err)
		r := bufio.NewReader(conn)
		greeting := make([]byte, 13)
		_, err = r.Read(greeting)
		require.NoError(t, err)
		_, err = conn.Write([]byte("000003:bye"))
		require.NoError(t, err)
		conn.Close()
	}

	cancel()
	select {
	case <-serveErr:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not shut down after context cancellation")
	}
}

func TestServeRejectsConnectionsOverRateLimit(t *testing.T) {
	s, err := New("127.0.0.1:0", WithKeepalive(true), WithRateLimit(1, time.Minute, 10))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = s.Serve(ctx) }()
	addr := waitForAddr(t, s)

	first, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer first.Close()
	greeting := make([]byte, 13)
	_, err = first.Read(greeting)
	require.NoError(t, err)

	second, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer second.Close()

	second.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	n, err := second.Read(make([]byte, 13))
	assert.Zero(t, n)
	assert.Error(t, err)
}

func waitForAddr(t *testing.T, s *Server) string {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if addr := s.Addr(); addr != "" {
			return addr
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("server never bound a listener")
	return ""
}
