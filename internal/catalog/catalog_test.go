package catalog

import (
	"reflect"
	"testing"
)

func TestParseRepository(t *testing.T) {
	cases := map[string]Repository{
		"core":      RepoCore,
		"EXTRA":     RepoExtra,
		"multilib":  RepoMultilib,
		"community": RepoCommunity,
		"aur":       RepoAUR,
		"local":     RepoAUR,
		"chaotic":   RepoUnknown,
		"":          RepoUnknown,
	}
	for in, want := range cases {
		if got := ParseRepository(in); got != want {
			t.Fatalf("ParseRepository(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAddRemoveTagKeepsSortedUnique(t *testing.T) {
	var p Package
	for _, tag := range []string{"zsh", "editor", "cli", "editor"} {
		p.AddTag(tag)
	}
	want := []string{"cli", "editor", "zsh"}
	if !reflect.DeepEqual(p.Tags, want) {
		t.Fatalf("expected %v, got %v", want, p.Tags)
	}
	if !p.HasTag("editor") {
		t.Fatalf("expected editor tag")
	}
	if !p.RemoveTag("editor") {
		t.Fatalf("expected editor removal to report true")
	}
	if p.RemoveTag("editor") {
		t.Fatalf("expected second removal to report false")
	}
	if p.HasTag("editor") {
		t.Fatalf("editor tag still present: %v", p.Tags)
	}
}

func TestCloneDoesNotShareTags(t *testing.T) {
	pop := 1.5
	p := Package{Name: "a", Tags: []string{"x"}, Popularity: &pop}
	dup := p.Clone()
	dup.AddTag("y")
	*dup.Popularity = 9
	if len(p.Tags) != 1 {
		t.Fatalf("original tags mutated: %v", p.Tags)
	}
	if *p.Popularity != 1.5 {
		t.Fatalf("original popularity mutated: %v", *p.Popularity)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" b", "a", "", "b", "a "})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if NormalizeTags([]string{"  "}) != nil {
		t.Fatalf("expected nil for blank input")
	}
}

func TestShowModeMatchesIgnoresCaseAndSpaces(t *testing.T) {
	for _, name := range []string{"All Available", "AllAvailable", "all available", "ALLAVAILABLE"} {
		if !ShowAllAvailable.Matches(name) {
			t.Fatalf("expected %q to match All Available", name)
		}
	}
	if ShowAllAvailable.Matches("All Installed") {
		t.Fatalf("unexpected match")
	}
	mode, ok := ParseShowMode("explicitlyinstalled")
	if !ok || mode != ShowExplicit {
		t.Fatalf("expected explicit mode, got %v %v", mode, ok)
	}
	if _, ok := ParseShowMode("Everything"); ok {
		t.Fatalf("expected unknown show mode")
	}
}

func TestEnumNames(t *testing.T) {
	if SortInstallDate.String() != "Install Date" {
		t.Fatalf("unexpected sort name %q", SortInstallDate.String())
	}
	if ShowOrphans.String() != "Orphans" {
		t.Fatalf("unexpected show name %q", ShowOrphans.String())
	}
	if RepoAUR.String() != "AUR" {
		t.Fatalf("unexpected repo name %q", RepoAUR.String())
	}
	if len(SortKeys()) != 5 || len(ShowModes()) != 5 {
		t.Fatalf("unexpected enum sizes")
	}
}
