// Package session implements the Request-Responder session loop: the
// state machine that owns one TCP connection's greeting, frame-by-frame
// instruction dispatch, and orderly (or abrupt) termination.
package session

import (
	"io"

	"github.com/AleksandrIakhnev/waferslim/internal/convert"
	"github.com/AleksandrIakhnev/waferslim/internal/fixture"
	"github.com/AleksandrIakhnev/waferslim/internal/instruction"
	"github.com/AleksandrIakhnev/waferslim/internal/telemetry"
	"github.com/AleksandrIakhnev/waferslim/internal/wire"
)

// State is one point in the session lifecycle: New -> Greeted ->
// (Executing -> Greeted)* -> Closed.
type State int

const (
	StateNew State = iota
	Greeted
	Executing
	Closed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "New"
	case Greeted:
		return "Greeted"
	case Executing:
		return "Executing"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// byePayload is the literal request payload that ends a session cleanly.
const byePayload = "bye"

// Session drives one connection end to end: handshake, repeated
// frame-read/dispatch/frame-write cycles, and termination. It owns
// exactly one fixture.Context for its whole lifetime and never shares it.
type Session struct {
	rw     io.ReadWriter
	ctx    *fixture.Context
	state  State
	logger *telemetry.Logger

	bytesRead    int64
	bytesWritten int64
}

// New returns a Session ready to Run over rw, with its own fresh
// Execution Context cloned from baseConverters. No logger is attached by
// default; set one with SetLogger to have failed instructions recorded.
func New(rw io.ReadWriter, baseConverters *convert.Registry) *Session {
	return &Session{
		rw:    rw,
		ctx:   fixture.NewContext(baseConverters),
		state: StateNew,
	}
}

// SetLogger attaches logger so dispatch can record a structured log line
// for each instruction that fails (resolution error, fixture error, or a
// recovered panic).
func (s *Session) SetLogger(logger *telemetry.Logger) { s.logger = logger }

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// BytesRead returns the total payload bytes read so far (frame payloads
// only, not the 7-byte frame headers).
func (s *Session) BytesRead() int64 { return s.bytesRead }

// BytesWritten returns the total bytes written so far: the greeting plus
// each response frame's payload (not the 7-byte frame headers).
func (s *Session) BytesWritten() int64 { return s.bytesWritten }

// Run sends the greeting, then repeatedly reads a frame, executes it (or
// honors "bye"), and writes the response frame, until the client sends
// "bye" or a protocol/IO error terminates the session. It returns nil for
// a clean "bye" termination, or the terminating error otherwise.
func (s *Session) Run() error {
	if _, err := io.WriteString(s.rw, greeting); err != nil {
		s.state = Closed
		return err
	}
	s.bytesWritten += int64(len(greeting))
	s.state = Greeted

	for {
		payload, err := readFrame(s.rw)
		if err != nil {
			s.state = Closed
			return err
		}
		s.bytesRead += int64(len(payload))

		if payload == byePayload {
			s.state = Closed
			return nil
		}

		s.state = Executing
		response, err := s.dispatch(payload)
		if err != nil {
			s.state = Closed
			return err
		}

		if err := writeFrame(s.rw, response); err != nil {
			s.state = Closed
			return err
		}
		s.bytesWritten += int64(len(response))
		s.state = Greeted
	}
}

// dispatch unpacks one request payload into instruction records, executes
// each against the session's Execution Context, and packs the results
// back into a response payload. A malformed request list is itself a
// protocol error (abort the session); per-instruction failures are always
// recovered and returned as ordinary result payloads.
func (s *Session) dispatch(payload string) (string, error) {
	records, err := wire.Unpack(payload)
	if err != nil {
		return "", err
	}
	results := instruction.Execute(s.ctx, records)
	s.logFailures(results)
	return wire.Pack(instruction.Pack(results))
}

// logFailures emits a structured log line for each result that failed,
// the "failed-instruction events" SPEC_FULL.md's logging section promises.
// A nil logger (the default) makes this a no-op.
func (s *Session) logFailures(results []instruction.Result) {
	if s.logger == nil {
		return
	}
	for _, r := range results {
		if instruction.IsFailure(r.Payload) {
			s.logger.Warn("instruction failed",
				telemetry.KV{Key: "instruction_id", Value: r.ID},
				telemetry.KV{Key: "payload", Value: r.Payload},
			)
		}
	}
}
