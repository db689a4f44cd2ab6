package backend

import (
	"context"
	"testing"
	"time"

	"github.com/atomicstack/pkgsorter/internal/catalog"
)

func TestPollDeliversExactlyOnce(t *testing.T) {
	release := make(chan struct{})
	loader := catalog.LoaderFunc(func(ctx context.Context) catalog.Bundle {
		<-release
		return catalog.Bundle{Orphans: []string{"x"}}
	})
	l := StartLoad(context.Background(), loader)
	if _, ok := l.Poll(); ok {
		t.Fatalf("poll returned before loader finished")
	}
	close(release)

	deadline := time.Now().Add(2 * time.Second)
	var got catalog.Bundle
	for {
		b, ok := l.Poll()
		if ok {
			got = b
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("load never completed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if len(got.Orphans) != 1 {
		t.Fatalf("unexpected bundle %+v", got)
	}
	if _, ok := l.Poll(); ok {
		t.Fatalf("second poll must not deliver")
	}
}

func TestNilLoadNeverDelivers(t *testing.T) {
	var l *Load
	if _, ok := l.Poll(); ok {
		t.Fatalf("nil load delivered")
	}
}

func TestCompleted(t *testing.T) {
	l := Completed(catalog.Bundle{Tags: []string{"a"}})
	if b, ok := l.Poll(); !ok || len(b.Tags) != 1 {
		t.Fatalf("expected completed bundle")
	}
}
