// Package catalog holds the package records shown by the dashboard along with
// the enumerations (repository, sort key, show mode) that select and order
// them.
package catalog

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Repository identifies where a package comes from.
type Repository int

const (
	RepoCore Repository = iota
	RepoExtra
	RepoMultilib
	RepoCommunity
	RepoAUR
	RepoUnknown
)

var repositoryNames = [...]string{"Core", "Extra", "Multilib", "Community", "AUR", "Unknown"}

func (r Repository) String() string {
	if r < 0 || int(r) >= len(repositoryNames) {
		return "Unknown"
	}
	return repositoryNames[r]
}

// ParseRepository maps a pacman repository name to a Repository. Foreign
// packages are reported by pacman as "local" and are treated as AUR.
func ParseRepository(name string) Repository {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "core":
		return RepoCore
	case "extra":
		return RepoExtra
	case "multilib":
		return RepoMultilib
	case "community":
		return RepoCommunity
	case "aur", "local":
		return RepoAUR
	default:
		return RepoUnknown
	}
}

// Package is a single catalog record. Tags is kept sorted and unique.
type Package struct {
	Name        string
	Version     string
	Description string
	Repository  Repository
	InstallDate time.Time
	BuildDate   time.Time
	// Size is the installed size in MiB.
	Size       float64
	Explicit   bool
	Tags       []string
	Popularity *float64
	Votes      *int
}

// HasTag reports whether the package carries tag.
func (p Package) HasTag(tag string) bool {
	i := sort.SearchStrings(p.Tags, tag)
	return i < len(p.Tags) && p.Tags[i] == tag
}

// AddTag inserts tag keeping Tags sorted. It reports false when the tag was
// already present.
func (p *Package) AddTag(tag string) bool {
	i := sort.SearchStrings(p.Tags, tag)
	if i < len(p.Tags) && p.Tags[i] == tag {
		return false
	}
	p.Tags = append(p.Tags, "")
	copy(p.Tags[i+1:], p.Tags[i:])
	p.Tags[i] = tag
	return true
}

// RemoveTag drops tag and reports whether it was present.
func (p *Package) RemoveTag(tag string) bool {
	i := sort.SearchStrings(p.Tags, tag)
	if i >= len(p.Tags) || p.Tags[i] != tag {
		return false
	}
	p.Tags = append(p.Tags[:i], p.Tags[i+1:]...)
	return true
}

// SetTags replaces the tag set with a sorted, de-duplicated copy of tags.
func (p *Package) SetTags(tags []string) {
	p.Tags = NormalizeTags(tags)
}

// Clone returns a copy that shares no mutable state with p.
func (p Package) Clone() Package {
	dup := p
	if p.Tags != nil {
		dup.Tags = append([]string(nil), p.Tags...)
	}
	if p.Popularity != nil {
		v := *p.Popularity
		dup.Popularity = &v
	}
	if p.Votes != nil {
		v := *p.Votes
		dup.Votes = &v
	}
	return dup
}

// ClonePackages deep-copies a package slice.
func ClonePackages(pkgs []Package) []Package {
	if pkgs == nil {
		return nil
	}
	dup := make([]Package, len(pkgs))
	for i, p := range pkgs {
		dup[i] = p.Clone()
	}
	return dup
}

// NormalizeTags trims, sorts and de-duplicates tags, dropping empty entries.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Bundle is the result of one catalog load. A collaborator that failed leaves
// its field empty and appends to Errs.
type Bundle struct {
	Installed []Package
	Available []Package
	Repos     []string
	Orphans   []string
	Tags      []string
	Errs      []error
}

// Loader acquires a full catalog snapshot.
type Loader interface {
	Load(ctx context.Context) Bundle
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) Bundle

func (f LoaderFunc) Load(ctx context.Context) Bundle {
	return f(ctx)
}
