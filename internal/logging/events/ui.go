package events

import "github.com/atomicstack/pkgsorter/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Mode(from, to string) {
	logging.Trace("ui.mode", map[string]interface{}{"from": from, "to": to})
}

func (UITracer) Cursor(pane string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"pane": pane, "cursor": cursor})
}

func (UITracer) Recompute(visible int, show, sort, search string) {
	logging.Trace("ui.recompute", map[string]interface{}{
		"visible": visible,
		"show":    show,
		"sort":    sort,
		"search":  search,
	})
}

func (UITracer) Message(severity, text string) {
	logging.Trace("ui.message", map[string]interface{}{"severity": severity, "text": text})
}

func (FilterTracer) Toggle(kind, key, state string) {
	logging.Trace("filter.toggle", map[string]interface{}{"kind": kind, "key": key, "state": state})
}

func (FilterTracer) Reset() {
	logging.Trace("filter.reset", nil)
}

func (FilterTracer) Cleared(modal string) {
	logging.Trace("filter.clear", map[string]interface{}{"modal": modal})
}

func (FilterTracer) WordBackspace(modal, text string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"modal": modal, "text": text})
}

func (FilterTracer) Cursor(modal string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"modal": modal, "cursor": pos})
}

func (FilterTracer) Append(modal, text string) {
	logging.Trace("filter.append", map[string]interface{}{"modal": modal, "text": text})
}

func (FilterTracer) Backspace(modal, text string) {
	logging.Trace("filter.backspace", map[string]interface{}{"modal": modal, "text": text})
}

func (ActionTracer) Rejected(name, reason string) {
	logging.Trace("action.rejected", map[string]interface{}{"action": name, "reason": reason})
}

func (ActionTracer) Resolved(name string, argv []string) {
	logging.Trace("action.resolved", map[string]interface{}{"action": name, "argv": argv})
}

func (ActionTracer) Local(name string) {
	logging.Trace("action.local", map[string]interface{}{"action": name})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
