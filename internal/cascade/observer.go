package cascade

import (
	"time"

	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/rs/zerolog"
)

// Stage is the lifecycle point of a provider attempt
type Stage string

const (
	StageStarted   Stage = "started"
	StageFailed    Stage = "failed"
	StageSucceeded Stage = "succeeded"
)

// Event describes one step of a provider attempt
type Event struct {
	RequestID string
	Provider  string
	Attempt   int
	Stage     Stage
	Err       error
	Elapsed   time.Duration
}

// Observer receives attempt events from the controller
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

// Observe calls f(e)
func (f ObserverFunc) Observe(e Event) { f(e) }

// LogObserver writes attempt events as structured log lines
type LogObserver struct {
	logger *zerolog.Logger
}

// NewLogObserver creates an observer writing to logger, or to the
// application logger when logger is nil
func NewLogObserver(logger *zerolog.Logger) *LogObserver {
	if logger == nil {
		logger = utils.Logger()
	}
	return &LogObserver{logger: logger}
}

// Observe logs the event
func (o *LogObserver) Observe(e Event) {
	var ev *zerolog.Event
	switch e.Stage {
	case StageFailed:
		ev = o.logger.Warn()
	case StageSucceeded:
		ev = o.logger.Info()
	default:
		ev = o.logger.Debug()
	}

	ev = ev.Str("request_id", e.RequestID).
		Str("provider", e.Provider).
		Int("attempt", e.Attempt).
		Str("stage", string(e.Stage))
	if e.Elapsed > 0 {
		ev = ev.Dur("elapsed", e.Elapsed)
	}
	if e.Err != nil {
		ev = ev.Err(e.Err)
	}
	ev.Msg("provider attempt")
}
