// Package observ measures compile phases for --timings.
package observ

import (
	"log/slog"
	"time"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
}

// Timer records sequential phases of one compilation. Not safe for
// concurrent use.
type Timer struct {
	phases []phase
	now    func() time.Time
}

func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Track starts a phase; calling the returned func ends it with a note.
// Ending twice keeps the first duration.
func (t *Timer) Track(name string) func(note string) {
	t.phases = append(t.phases, phase{name: name, start: t.now()})
	i := len(t.phases) - 1
	return func(note string) {
		p := &t.phases[i]
		if p.dur == 0 {
			p.dur = t.now().Sub(p.start)
			p.note = note
		}
	}
}

// PhaseReport - одна фаза в JSON примечании OBS6001.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the phases tracked so far.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	var r Report
	for _, p := range t.phases {
		ms := millis(p.dur)
		r.TotalMS += ms
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: ms, Note: p.note})
	}
	return r
}

// LogValue groups the phase durations under their names.
func (r Report) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(r.Phases)+1)
	for _, p := range r.Phases {
		attrs = append(attrs, slog.Float64(p.Name, p.DurationMS))
	}
	attrs = append(attrs, slog.Float64("total", r.TotalMS))
	return slog.GroupValue(attrs...)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
