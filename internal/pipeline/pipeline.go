// Package pipeline derives the visible package list from the catalog and the
// active filters, search text, show mode and sort key.
package pipeline

import (
	"math"
	"sort"
	"strings"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/sahilm/fuzzy"
)

// Input carries everything Compute reads. Compute never mutates it.
type Input struct {
	Installed   []catalog.Package
	Available   []catalog.Package
	TagFilters  Filters
	RepoFilters Filters
	ShowMode    catalog.ShowMode
	Orphans     []string
	Search      string
	SortKey     catalog.SortKey
}

// Compute returns a fresh, filtered and sorted slice.
func Compute(in Input) []catalog.Package {
	base := in.Installed
	if in.ShowMode == catalog.ShowAllAvailable {
		base = in.Available
	}

	includeTags := in.TagFilters.Keys(Include)
	excludeTags := in.TagFilters.Keys(Exclude)
	includeRepos := in.RepoFilters.Keys(Include)
	excludeRepos := in.RepoFilters.Keys(Exclude)

	var orphans map[string]struct{}
	if in.ShowMode == catalog.ShowOrphans {
		orphans = make(map[string]struct{}, len(in.Orphans))
		for _, name := range in.Orphans {
			orphans[name] = struct{}{}
		}
	}

	out := make([]catalog.Package, 0, len(base))
	for _, p := range base {
		if len(includeTags) > 0 && !hasAnyTag(p, includeTags) {
			continue
		}
		if hasAnyTag(p, excludeTags) {
			continue
		}
		repo := p.Repository.String()
		if len(includeRepos) > 0 && !containsFold(includeRepos, repo) {
			continue
		}
		if containsFold(excludeRepos, repo) {
			continue
		}
		if !showModeKeeps(in.ShowMode, p, orphans) {
			continue
		}
		out = append(out, p.Clone())
	}

	if in.Search != "" {
		out = filterByName(out, in.Search)
	}
	Sort(out, in.SortKey)
	return out
}

func showModeKeeps(mode catalog.ShowMode, p catalog.Package, orphans map[string]struct{}) bool {
	switch mode {
	case catalog.ShowExplicit:
		return p.Explicit
	case catalog.ShowDependencies:
		return !p.Explicit
	case catalog.ShowOrphans:
		_, ok := orphans[p.Name]
		return ok
	default:
		return true
	}
}

func hasAnyTag(p catalog.Package, tags []string) bool {
	for _, tag := range tags {
		if p.HasTag(tag) {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

type names []catalog.Package

func (n names) String(i int) string { return strings.ToLower(n[i].Name) }
func (n names) Len() int            { return len(n) }

// filterByName keeps packages whose name fuzzy-matches query, preserving
// input order. Both sides are lowered so matching ignores case.
func filterByName(pkgs []catalog.Package, query string) []catalog.Package {
	matches := fuzzy.FindFrom(strings.ToLower(query), names(pkgs))
	if len(matches) == 0 {
		return pkgs[:0]
	}
	keep := make([]bool, len(pkgs))
	for _, m := range matches {
		keep[m.Index] = true
	}
	out := pkgs[:0]
	for i, p := range pkgs {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
