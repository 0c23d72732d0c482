package driver

// Stage is the pipeline phase a source is in.
type Stage uint8

const (
	StageQueued Stage = iota
	StageLoad
	StageParse
	StageLayout
	StageEmit
	StageWrite
)

var stageNames = [...]string{"queued", "load", "parse", "layout", "emit", "write"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Status is where a source stands within its Stage. Done, Cached and Error
// are final.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusCached
	StatusError
)

// Final reports whether no further events follow for the file.
func (s Status) Final() bool { return s >= StatusDone }

// Event reports progress for one source file. Err is set with StatusError.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink consumes progress events. CompileAll calls it from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel; the receiver must keep up.
type ChannelSink chan<- Event

func (s ChannelSink) OnEvent(ev Event) { s <- ev }

func (o *Options) notify(file string, stage Stage, status Status, err error) {
	if o.Progress != nil {
		o.Progress.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
	}
}
