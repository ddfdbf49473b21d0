package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleMessageAppendsLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "booking.log")
	c := &Consumer{LogPath: logPath}

	events := []BookingEvent{
		{Type: BookingCreated, BookingID: "b_1", AccountID: "ann123", MovieID: "m_1", MovieTitle: "X", Date: "2024-01-01", Time: "18:00", Seats: 2, OccurredAt: "2024-01-01T10:00:00Z"},
		{Type: BookingCancelled, BookingID: "b_1", AccountID: "ann123", MovieID: "m_1", MovieTitle: "X", Date: "2024-01-01", Time: "18:00", Seats: 2, OccurredAt: "2024-01-01T11:00:00Z"},
	}
	for _, ev := range events {
		body, _ := json.Marshal(ev)
		if err := c.HandleMessage(body); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	raw, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), raw)
	}
	if !strings.Contains(lines[0], "Booking created") || !strings.Contains(lines[0], "seats=2") {
		t.Fatalf("unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Booking cancelled") || !strings.Contains(lines[1], `movie="X"`) {
		t.Fatalf("unexpected second line: %s", lines[1])
	}
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
	c := &Consumer{LogPath: filepath.Join(t.TempDir(), "booking.log")}
	for name, body := range map[string]string{
		"not json":   "{",
		"no type":    `{"booking_id":"b_1"}`,
		"no booking": `{"type":"booking.created"}`,
	} {
		t.Run(name, func(t *testing.T) {
			if err := c.HandleMessage([]byte(body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := os.Stat(c.LogPath); !os.IsNotExist(err) {
		t.Fatalf("rejected messages must not create the log: %v", err)
	}
}
