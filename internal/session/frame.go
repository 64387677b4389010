package session

import (
	"fmt"
	"io"

	"github.com/AleksandrIakhnev/waferslim/internal/slimerr"
)

// frameWidth is the fixed decimal width of a frame's length prefix, same
// as the list codec's count/length fields (wire.countWidth) -- the SLIM
// protocol uses one width everywhere.
const frameWidth = 6

// greeting is the fixed 13-byte handshake every session begins with.
const greeting = "Slim -- V0.0\n"

// readFrame reads one "NNNNNN:<payload>" frame from r and returns the
// payload. Any short read or malformed length is a ProtocolError, which
// always terminates the session.
func readFrame(r io.Reader) (string, error) {
	header := make([]byte, frameWidth+1)
	if _, err := io.ReadFull(r, header); err != nil {
		return "", &slimerr.ProtocolError{Operation: "read frame header", Err: err, Details: "connection closed or truncated"}
	}
	if header[frameWidth] != ':' {
		return "", &slimerr.ProtocolError{Operation: "read frame header", Details: fmt.Sprintf("expected ':' after length, found %q", header[frameWidth])}
	}

	length := 0
	for i := 0; i < frameWidth; i++ {
		d := header[i]
		if d < '0' || d > '9' {
			return "", &slimerr.ProtocolError{Operation: "read frame header", Details: fmt.Sprintf("%q is not a 6-digit length", header[:frameWidth])}
		}
		length = length*10 + int(d-'0')
	}

	bufPtr := getBuffer(length)
	defer putBuffer(bufPtr)
	if _, err := io.ReadFull(r, *bufPtr); err != nil {
		return "", &slimerr.ProtocolError{Operation: "read frame payload", Err: err, Details: fmt.Sprintf("expected %d bytes", length)}
	}
	return string(*bufPtr), nil
}

// writeFrame writes payload as a "NNNNNN:<payload>" frame to w.
func writeFrame(w io.Writer, payload string) error {
	_, err := fmt.Fprintf(w, "%0*d:%s", frameWidth, len(payload), payload)
	if err != nil {
		return &slimerr.ProtocolError{Operation: "write frame", Err: err}
	}
	return nil
}
