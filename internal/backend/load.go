// Package backend runs the catalog load off the UI goroutine.
package backend

import (
	"context"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
)

// Load is a single in-flight catalog load. The loader goroutine sends
// exactly one bundle into a buffered channel, so it never blocks even if
// nobody polls.
type Load struct {
	result chan catalog.Bundle
	done   bool
}

// StartLoad runs loader in its own goroutine. The load is not cancellable
// once started.
func StartLoad(ctx context.Context, loader catalog.Loader) *Load {
	l := &Load{result: make(chan catalog.Bundle, 1)}
	events.Load.Start()
	go func() {
		l.result <- loader.Load(ctx)
	}()
	return l
}

// Completed wraps an already available bundle, mainly for tests.
func Completed(b catalog.Bundle) *Load {
	l := &Load{result: make(chan catalog.Bundle, 1)}
	l.result <- b
	return l
}

// Poll returns the bundle if it has arrived. It never blocks and reports
// true at most once.
func (l *Load) Poll() (catalog.Bundle, bool) {
	if l == nil || l.done {
		return catalog.Bundle{}, false
	}
	select {
	case b := <-l.result:
		l.done = true
		return b, true
	default:
		return catalog.Bundle{}, false
	}
}
