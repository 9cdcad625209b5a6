package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// RetryEventMessage is the message of the record written for every retry
// decision of the generation pipeline.
const RetryEventMessage = "retrying generation request"

// TestLogBuffer collects JSON log lines written concurrently by handlers,
// pipelines and emitters under test.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset drops everything logged so far.
func (b *TestLogBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// GetLogEntries decodes one JSON record per non-empty line.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(b.String(), "\n") {
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

// EntriesWithMessage returns the records whose msg equals msg, in order.
func (b *TestLogBuffer) EntriesWithMessage(t *testing.T, msg string) []map[string]interface{} {
	t.Helper()

	entries, err := b.GetLogEntries()
	if err != nil {
		t.Fatalf("log buffer holds a non-JSON line: %v\n%s", err, b.String())
	}

	var matched []map[string]interface{}
	for _, entry := range entries {
		if entry[slog.MessageKey] == msg {
			matched = append(matched, entry)
		}
	}
	return matched
}

// GetTestLogger returns a debug-level JSON logger and the buffer it writes to.
func GetTestLogger(t *testing.T) (*slog.Logger, *TestLogBuffer) {
	t.Helper()

	buf := &TestLogBuffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// AssertLogContains fails the test unless content appears somewhere in the log.
func AssertLogContains(t *testing.T, logBuf *TestLogBuffer, content string) {
	t.Helper()

	if logs := logBuf.String(); !strings.Contains(logs, content) {
		t.Errorf("log does not contain %q\nlog:\n%s", content, logs)
	}
}

// AssertLogField fails the test unless some record has field set to expected.
// JSON numbers decode as float64.
func AssertLogField(t *testing.T, logBuf *TestLogBuffer, field string, expected interface{}) {
	t.Helper()

	entries, err := logBuf.GetLogEntries()
	if err != nil {
		t.Fatalf("log buffer holds a non-JSON line: %v", err)
	}
	for _, entry := range entries {
		if value, ok := entry[field]; ok && value == expected {
			return
		}
	}
	t.Errorf("no log record has %s=%v\nlog:\n%s", field, expected, logBuf.String())
}

// AssertRetryEventsLogged checks the retry records in order: one per failed
// attempt that was followed by another attempt, each carrying the attempt
// number, the attempt budget and the failure class.
func AssertRetryEventsLogged(t *testing.T, logBuf *TestLogBuffer, maxAttempts int, reasons ...string) {
	t.Helper()

	entries := logBuf.EntriesWithMessage(t, RetryEventMessage)
	if len(entries) != len(reasons) {
		t.Fatalf("got %d retry records, want %d\nlog:\n%s", len(entries), len(reasons), logBuf.String())
	}

	for i, entry := range entries {
		attempt := float64(i + 1)
		if entry["attempt"] != attempt {
			t.Errorf("retry record %d: attempt = %v, want %v", i, entry["attempt"], attempt)
		}
		if entry["max_attempts"] != float64(maxAttempts) {
			t.Errorf("retry record %d: max_attempts = %v, want %d", i, entry["max_attempts"], maxAttempts)
		}
		if entry["reason"] != reasons[i] {
			t.Errorf("retry record %d: reason = %v, want %q", i, entry["reason"], reasons[i])
		}
		if _, ok := entry["event_id"]; !ok {
			t.Errorf("retry record %d has no event_id", i)
		}
	}
}
