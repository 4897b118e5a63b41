package pipeline

import "log"

// Observer receives diagnostic events from the pipeline. It is injected at
// construction; the pipeline holds no process-wide logger state.
type Observer interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// LogObserver writes events through the standard log package with severity
// prefixes
type LogObserver struct {
	debug bool
}

// NewLogObserver creates an observer backed by the standard logger. Debug
// events are dropped unless debug is enabled.
func NewLogObserver(debug bool) *LogObserver {
	return &LogObserver{debug: debug}
}

func (o *LogObserver) Debugf(format string, args ...any) {
	if o.debug {
		log.Printf("[debug] "+format, args...)
	}
}

func (o *LogObserver) Infof(format string, args ...any) {
	log.Printf("[info] "+format, args...)
}

func (o *LogObserver) Warnf(format string, args ...any) {
	log.Printf("[warn] "+format, args...)
}

// NopObserver discards all events
type NopObserver struct{}

func (NopObserver) Debugf(string, ...any) {}
func (NopObserver) Infof(string, ...any)  {}
func (NopObserver) Warnf(string, ...any)  {}
