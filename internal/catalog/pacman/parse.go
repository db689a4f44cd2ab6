package pacman

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
)

var dateLayouts = []string{
	"Mon Jan _2 15:04:05 2006",
	"Mon Jan 2 15:04:05 2006",
	"Mon 02 Jan 2006 03:04:05 PM MST",
}

// ParseInfo parses `pacman -Qi` output. repoMap resolves the repository of
// each package; names missing from it are foreign and reported as AUR.
// Blocks without a Name field are skipped.
func ParseInfo(output string, repoMap map[string]string, now time.Time) []catalog.Package {
	blocks := strings.Split(strings.TrimSpace(output), "\n\n")
	pkgs := make([]catalog.Package, 0, len(blocks))
	for _, block := range blocks {
		pkg, ok := parseInfoBlock(block, repoMap, now)
		if ok {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs
}

func parseInfoBlock(block string, repoMap map[string]string, now time.Time) (catalog.Package, bool) {
	fields := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, " : ")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	name := fields["Name"]
	if name == "" {
		return catalog.Package{}, false
	}
	repo, ok := fields["Repository"]
	if !ok {
		repo, ok = repoMap[name]
	}
	if !ok {
		repo = "local"
	}
	return catalog.Package{
		Name:        name,
		Version:     fields["Version"],
		Description: fields["Description"],
		Repository:  catalog.ParseRepository(repo),
		InstallDate: parseDate(fields["Install Date"], now),
		BuildDate:   parseDate(fields["Build Date"], now),
		Size:        ParseSize(fields["Installed Size"]),
		Explicit:    fields["Install Reason"] == "Explicitly installed",
	}, true
}

// ParseSize converts a pacman size such as "12,5 MiB" to MiB.
func ParseSize(value string) float64 {
	parts := strings.Fields(strings.ReplaceAll(value, ",", "."))
	if len(parts) == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	unit := "MiB"
	if len(parts) > 1 {
		unit = parts[1]
	}
	switch unit {
	case "GiB":
		return n * 1024
	case "KiB":
		return n / 1024
	case "B":
		return n / (1024 * 1024)
	default:
		return n
	}
}

func parseDate(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	events.Load.DateFallback(value)
	return now
}

// ParseSyncList parses `pacman -Sl` output into available packages, a
// name→repository map and the distinct repository names in first-seen order.
func ParseSyncList(output string) ([]catalog.Package, map[string]string, []string) {
	var pkgs []catalog.Package
	repoMap := make(map[string]string)
	var repos []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			continue
		}
		repo, name, version := parts[0], parts[1], parts[2]
		repoMap[name] = repo
		if _, ok := seen[repo]; !ok {
			seen[repo] = struct{}{}
			repos = append(repos, repo)
		}
		pkgs = append(pkgs, catalog.Package{
			Name:       name,
			Version:    version,
			Repository: catalog.ParseRepository(repo),
		})
	}
	return pkgs, repoMap, repos
}

// ParseOrphans returns the first column of `pacman -Qdt` output.
func ParseOrphans(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		names = append(names, fields[0])
	}
	return names
}

func describe(args []string) string {
	return fmt.Sprintf("pacman %s", strings.Join(args, " "))
}
