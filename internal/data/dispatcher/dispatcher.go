package dispatcher

import (
	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/pipeline"
	"github.com/atomicstack/pkgsorter/internal/state"
)

// Result carries the per-field load failures of an applied bundle.
type Result struct {
	Errs []error
}

// Dispatcher applies loaded bundles to the catalog store.
type Dispatcher struct {
	store state.CatalogStore
}

func New(store state.CatalogStore) *Dispatcher {
	return &Dispatcher{store: store}
}

// Handle replaces the catalogs wholesale. Known tags are the union of the
// tag store's list and the tags carried by installed packages; repositories
// fall back to those present in the catalogs when the bundle has none.
func (d *Dispatcher) Handle(b catalog.Bundle) Result {
	d.store.SetCatalogs(b.Installed, b.Available)
	d.store.SetOrphans(b.Orphans)

	tags := append([]string(nil), b.Tags...)
	tags = append(tags, pipeline.DistinctTags(b.Installed)...)
	d.store.SetTags(tags)

	repos := b.Repos
	if len(repos) == 0 {
		all := make([]catalog.Package, 0, len(b.Installed)+len(b.Available))
		all = append(all, b.Installed...)
		all = append(all, b.Available...)
		repos = pipeline.DistinctRepos(all)
	}
	d.store.SetRepos(repos)
	return Result{Errs: b.Errs}
}
