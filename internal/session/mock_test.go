package session

import (
	"bytes"
	"sync"
)

// mockConn is a test double standing in for a net.Conn: a thread-safe
// buffer pair so a test can write a scripted request stream and read back
// whatever the session wrote, without a real socket. This mirrors the
// teacher's MockTransport, which records calls against an in-memory
// buffer instead of a UDP socket.
type mockConn struct {
	mu  sync.Mutex
	in  *bytes.Buffer
	out *bytes.Buffer
}

func newMockConn(script string) *mockConn {
	return &mockConn{in: bytes.NewBufferString(script), out: &bytes.Buffer{}}
}

func (m *mockConn) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.in.Read(p)
}

func (m *mockConn) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.out.Write(p)
}

func (m *mockConn) written() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.out.String()
}
