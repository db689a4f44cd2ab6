package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsAndAligns(t *testing.T) {
	rows := [][]string{
		{"vim", "9.1", "12 MiB"},
		{"glibc", "2.40", "1.5 GiB"},
	}
	got := Format(rows, []Column{{}, {}, {Align: AlignRight}})
	want := []string{
		"vim    9.1    12 MiB",
		"glibc  2.40  1.5 GiB",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatTruncatesToMax(t *testing.T) {
	got := Format([][]string{{"python-requests-toolbelt", "x"}}, []Column{{Max: 8}})
	if got[0] != "python-…  x" {
		t.Fatalf("unexpected truncation %q", got[0])
	}
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a", "b"}, {"ccc"}}, nil)
	want := []string{"a    b", "ccc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
