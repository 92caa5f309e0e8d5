package debug

import (
	"github.com/drake/syncux/event"
	"github.com/drake/syncux/internal/logger"
)

// Trace returns an observer that logs every bridge event at debug level,
// or nil when debug mode is off.
func Trace(log *logger.Logger) event.Observer {
	if !Enabled() {
		return nil
	}
	if log == nil {
		log = logger.GetDefault()
	}
	log = log.With("component", "trace")
	return func(e event.Event) {
		log.Debug(e.Type.String(),
			"screen", e.Screen,
			"outcome", e.Outcome,
			"detail", e.Detail,
			"turns", e.Turns,
		)
	}
}
