package catalog

import "strings"

// SortKey orders the visible list.
type SortKey int

const (
	SortName SortKey = iota
	SortSize
	SortInstallDate
	SortUpdateDate
	SortPopularity
)

var sortKeyNames = [...]string{"Name", "Size", "Install Date", "Update Date", "Popularity"}

func (k SortKey) String() string {
	if k < 0 || int(k) >= len(sortKeyNames) {
		return "Name"
	}
	return sortKeyNames[k]
}

// SortKeys lists every sort key in menu order.
func SortKeys() []SortKey {
	return []SortKey{SortName, SortSize, SortInstallDate, SortUpdateDate, SortPopularity}
}

// ShowMode selects which subset of the catalog is listed.
type ShowMode int

const (
	ShowAllInstalled ShowMode = iota
	ShowExplicit
	ShowDependencies
	ShowOrphans
	ShowAllAvailable
)

var showModeNames = [...]string{"All Installed", "Explicitly Installed", "Dependencies", "Orphans", "All Available"}

func (s ShowMode) String() string {
	if s < 0 || int(s) >= len(showModeNames) {
		return "All Installed"
	}
	return showModeNames[s]
}

// ShowModes lists every show mode in menu order.
func ShowModes() []ShowMode {
	return []ShowMode{ShowAllInstalled, ShowExplicit, ShowDependencies, ShowOrphans, ShowAllAvailable}
}

// Matches reports whether name refers to s. Comparison ignores case and
// spaces, so "AllInstalled" and "all installed" both match ShowAllInstalled.
func (s ShowMode) Matches(name string) bool {
	return foldName(name) == foldName(s.String())
}

// ParseShowMode resolves a display name (as accepted by Matches).
func ParseShowMode(name string) (ShowMode, bool) {
	for _, mode := range ShowModes() {
		if mode.Matches(name) {
			return mode, true
		}
	}
	return ShowAllInstalled, false
}

func foldName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
