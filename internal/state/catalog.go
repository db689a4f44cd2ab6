package state

import "github.com/atomicstack/pkgsorter/internal/catalog"

// CatalogStore owns the application data: both catalogs, the visible list
// and the known tag, repository and orphan names. Setters copy their input.
// Visible returns the stored slice directly; callers must treat it as
// read-only.
type CatalogStore interface {
	Installed() []catalog.Package
	Available() []catalog.Package
	SetCatalogs(installed, available []catalog.Package)
	Visible() []catalog.Package
	SetVisible([]catalog.Package)
	Tags() []string
	SetTags([]string)
	Repos() []string
	SetRepos([]string)
	Orphans() []string
	SetOrphans([]string)
	// Loaded reports whether SetCatalogs has been called.
	Loaded() bool
	// UpdatePackage applies fn to every copy of the named package. It
	// reports whether any copy was found.
	UpdatePackage(name string, fn func(*catalog.Package)) bool
	// FindInstalled returns a copy of the named installed package.
	FindInstalled(name string) (catalog.Package, bool)
}

type catalogStore struct {
	installed []catalog.Package
	available []catalog.Package
	visible   []catalog.Package
	tags      []string
	repos     []string
	orphans   []string
	loaded    bool
}

func NewCatalogStore() CatalogStore {
	return &catalogStore{}
}

func (s *catalogStore) Installed() []catalog.Package {
	return catalog.ClonePackages(s.installed)
}

func (s *catalogStore) Available() []catalog.Package {
	return catalog.ClonePackages(s.available)
}

func (s *catalogStore) SetCatalogs(installed, available []catalog.Package) {
	s.installed = catalog.ClonePackages(installed)
	s.available = catalog.ClonePackages(available)
	s.loaded = true
}

func (s *catalogStore) Visible() []catalog.Package {
	return s.visible
}

func (s *catalogStore) SetVisible(pkgs []catalog.Package) {
	s.visible = pkgs
}

func (s *catalogStore) Tags() []string {
	return cloneStrings(s.tags)
}

func (s *catalogStore) SetTags(tags []string) {
	s.tags = catalog.NormalizeTags(tags)
}

func (s *catalogStore) Repos() []string {
	return cloneStrings(s.repos)
}

func (s *catalogStore) SetRepos(repos []string) {
	s.repos = cloneStrings(repos)
}

func (s *catalogStore) Orphans() []string {
	return cloneStrings(s.orphans)
}

func (s *catalogStore) SetOrphans(orphans []string) {
	s.orphans = cloneStrings(orphans)
}

func (s *catalogStore) Loaded() bool {
	return s.loaded
}

func (s *catalogStore) UpdatePackage(name string, fn func(*catalog.Package)) bool {
	found := false
	for _, list := range [][]catalog.Package{s.installed, s.available, s.visible} {
		for i := range list {
			if list[i].Name == name {
				fn(&list[i])
				found = true
			}
		}
	}
	return found
}

func (s *catalogStore) FindInstalled(name string) (catalog.Package, bool) {
	for _, p := range s.installed {
		if p.Name == name {
			return p.Clone(), true
		}
	}
	return catalog.Package{}, false
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	dup := make([]string, len(in))
	copy(dup, in)
	return dup
}
