package events

import "github.com/atomicstack/pkgsorter/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Cycle(n int) {
	logging.Trace("app.cycle", map[string]interface{}{"cycle": n})
}

func (AppTracer) Suspend(argv []string) {
	logging.Trace("app.suspend", map[string]interface{}{"argv": argv})
}

func (AppTracer) CommandExit(argv []string, code int, err error) {
	payload := map[string]interface{}{"argv": argv, "code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.command-exit", payload)
}

func (AppTracer) Quit() {
	logging.Trace("app.quit", nil)
}
