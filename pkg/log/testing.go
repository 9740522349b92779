package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
)

// NewTestLogger returns a logger writing JSON records to the returned buffer.
// The logger goes through the same ErrFmtHandler as the production setup, so
// tests can assert on stacktrace handling as well as message content.
func NewTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	handler := slog.NewJSONHandler(buffer, &slog.HandlerOptions{Level: level})
	return slog.New(WrapByErrFmtHandler(handler)), buffer
}

// ParseLogEntries decodes captured JSON log output into one map per record.
func ParseLogEntries(buffer *bytes.Buffer) ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(buffer.String(), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
