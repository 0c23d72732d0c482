package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"magen/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("magen gen", []string{"a.magen", "b.magen"}, events).(*progressModel)

	m.Update(eventMsg{File: "a.magen", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.Update(eventMsg{File: "b.magen", Stage: driver.StageWrite, Status: driver.StatusError})
	m.Update(eventMsg{File: "unknown.magen", Stage: driver.StageLoad, Status: driver.StatusWorking})

	if got := m.sources[0].label(); got != "parsing" {
		t.Fatalf("a status = %q", got)
	}
	if got := m.sources[1].label(); got != "error" {
		t.Fatalf("b status = %q", got)
	}
	if got := m.percent(); math.Abs(got-0.65) > 1e-9 {
		t.Fatalf("percent = %v", got)
	}

	view := m.View()
	for _, want := range []string{"magen gen", "parsing", "error", "a.magen", "b.magen"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}

	m.Update(eventMsg{File: "a.magen", Stage: driver.StageEmit, Status: driver.StatusCached})
	_, cmd := m.Update(doneMsg{})
	if cmd == nil || !m.done {
		t.Fatalf("done message did not quit")
	}
	if !strings.Contains(m.View(), "done: magen gen") {
		t.Fatalf("final view:\n%s", m.View())
	}
	if m.percent() != 1 {
		t.Fatalf("percent = %v", m.percent())
	}
}

func TestListenForEventCloses(t *testing.T) {
	events := make(chan driver.Event, 1)
	m := NewProgressModel("t", []string{"x"}, events).(*progressModel)
	events <- driver.Event{File: "x", Stage: driver.StageLoad, Status: driver.StatusWorking}
	if _, ok := m.listenForEvent()().(eventMsg); !ok {
		t.Fatal("expected an event message")
	}
	close(events)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatal("expected done after close")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a/very/long/path.magen", 10); runewidth.StringWidth(got) > 10 || !strings.HasSuffix(got, "...") {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("got %q", got)
	}
}
