// Package telemetry is the ambient structured-logging layer: a small
// leveled logger writing RFC 5424 syslog-style structured data elements to
// stderr, in the same spirit as gravwell's ingest/log package (leveled,
// key/value structured data via github.com/crewjam/rfc5424) but scaled
// down to what a single TCP fixture server needs: connection lifecycle and
// per-instruction failures.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/crewjam/rfc5424"
)

// Level is a logging threshold, ordered the same way gravwell's
// ingest/log levels are.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, structured log lines. It is safe for concurrent
// use by multiple sessions.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	level    Level
	hostname string
	appname  string
}

// New returns a Logger at level writing to w (os.Stderr in production,
// a bytes.Buffer in tests).
func New(w io.Writer, level Level) *Logger {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	return &Logger{out: w, level: level, hostname: hostname, appname: "slimrelay"}
}

// SetLevel changes the logger's threshold; lower-priority calls below it
// are dropped without formatting cost beyond the level comparison.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// KV is one structured-data key/value pair attached to a log line.
type KV struct {
	Key   string
	Value string
}

func (l *Logger) log(level Level, msg string, kvs []KV) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	params := make([]rfc5424.SDParam, 0, len(kvs))
	for _, kv := range kvs {
		params = append(params, rfc5424.SDParam{Name: kv.Key, Value: kv.Value})
	}

	msgObj := rfc5424.Message{
		Priority:  level.priority(),
		Timestamp: time.Now(),
		Hostname:  l.hostname,
		AppName:   l.appname,
		Message:   []byte(fmt.Sprintf("[%s] %s", level, msg)),
	}
	if len(params) > 0 {
		msgObj.StructuredData = []rfc5424.StructuredData{
			{ID: "slimrelay@0", Parameters: params},
		}
	}

	encoded, err := msgObj.MarshalBinary()
	if err != nil {
		return
	}
	encoded = append(encoded, '\n')
	_, _ = l.out.Write(encoded)
}

func (lvl Level) priority() rfc5424.Priority {
	switch lvl {
	case DEBUG:
		return rfc5424.User | rfc5424.Debug
	case INFO:
		return rfc5424.User | rfc5424.Info
	case WARN:
		return rfc5424.User | rfc5424.Warning
	case ERROR:
		return rfc5424.User | rfc5424.Error
	default:
		return rfc5424.User | rfc5424.Info
	}
}

func (l *Logger) Debug(msg string, kvs ...KV) { l.log(DEBUG, msg, kvs) }
func (l *Logger) Info(msg string, kvs ...KV)  { l.log(INFO, msg, kvs) }
func (l *Logger) Warn(msg string, kvs ...KV)  { l.log(WARN, msg, kvs) }
func (l *Logger) Error(msg string, kvs ...KV) { l.log(ERROR, msg, kvs) }
