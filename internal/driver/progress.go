package driver

import "time"

// Phase names reported to PhaseObserver and progress sinks, in pipeline order.
const (
	PhaseParse   = "parse"
	PhaseAnalyze = "analyze"
	PhaseLower   = "lower"
	PhaseResolve = "resolve"
	PhaseExecute = "execute"
)

// Status captures progress state of one file in a batch.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is inside a pipeline phase.
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError: файл не прочитан или ответ содержит ошибки.
	StatusError Status = "error"
)

// Event reports progress for a file. Phase is empty for queued/done/error.
type Event struct {
	File    string
	Phase   string
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: batch workers report in parallel.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// sinkObserver переводит события фаз одного файла в события прогресса.
func sinkObserver(sink ProgressSink, file string) PhaseObserver {
	return func(ev PhaseEvent) {
		if ev.Status != PhaseStart {
			return
		}
		sink.OnEvent(Event{File: file, Phase: ev.Name, Status: StatusWorking})
	}
}
