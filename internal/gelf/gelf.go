package gelf

import (
	"encoding/json"
	"net"
	"os"
	"strings"
	"time"
)

// Writer sends GELF messages over UDP and implements io.Writer so it
// can be fanned out from the slog handler via io.MultiWriter.
type Writer struct {
	conn     net.Conn
	hostname string
}

// New creates a GELF UDP writer connected to addr (e.g. "172.17.0.1:12201").
func New(addr string) (*Writer, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "data-entry-server"
	}

	return &Writer{conn: conn, hostname: hostname}, nil
}

// Write implements io.Writer. Each call sends one GELF message.
// Lines from the slog JSON handler carry "msg" and "level" fields;
// those become short_message and syslog level. Anything else (text
// handler lines) is forwarded as-is at informational level.
func (w *Writer) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")

	short := line
	level := 6 // Informational
	var record struct {
		Msg   string `json:"msg"`
		Level string `json:"level"`
	}
	if err := json.Unmarshal(p, &record); err == nil && record.Msg != "" {
		short = record.Msg
		switch record.Level {
		case "ERROR":
			level = 3
		case "WARN":
			level = 4
		case "DEBUG":
			level = 7
		}
	} else if strings.Contains(line, "level=ERROR") {
		level = 3
	} else if strings.Contains(line, "level=WARN") {
		level = 4
	}

	gelf := map[string]interface{}{
		"version":       "1.1",
		"host":          w.hostname,
		"short_message": short,
		"full_message":  line,
		"timestamp":     float64(time.Now().UnixNano()) / 1e9,
		"level":         level,
		"_service":      "data-entry",
	}

	payload, err := json.Marshal(gelf)
	if err != nil {
		return len(p), nil // don't fail the log call
	}

	// Fire-and-forget
	w.conn.Write(payload)
	return len(p), nil
}
