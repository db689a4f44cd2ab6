package events

import "github.com/atomicstack/pkgsorter/internal/logging"

type LoadTracer struct{}

type TagsTracer struct{}

var (
	Load = LoadTracer{}
	Tags = TagsTracer{}
)

func (LoadTracer) Start() {
	logging.Trace("load.start", nil)
}

func (LoadTracer) Done(installed, available, orphans, errs int) {
	logging.Trace("load.done", map[string]interface{}{
		"installed": installed,
		"available": available,
		"orphans":   orphans,
		"errors":    errs,
	})
}

func (LoadTracer) Applied(visible int) {
	logging.Trace("load.applied", map[string]interface{}{"visible": visible})
}

func (LoadTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("load.error", map[string]interface{}{"error": err.Error()})
}

func (LoadTracer) DateFallback(value string) {
	logging.Trace("load.date-fallback", map[string]interface{}{"value": value})
}

func (LoadTracer) AURBatch(requested, returned int) {
	logging.Trace("load.aur-batch", map[string]interface{}{"requested": requested, "returned": returned})
}

func (TagsTracer) Added(pkg, tag string) {
	logging.Trace("tags.add", map[string]interface{}{"package": pkg, "tag": tag})
}

func (TagsTracer) Removed(pkg, tag string) {
	logging.Trace("tags.remove", map[string]interface{}{"package": pkg, "tag": tag})
}

func (TagsTracer) Failed(pkg, tag string, err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	logging.Trace("tags.error", map[string]interface{}{"package": pkg, "tag": tag, "error": err.Error()})
}
