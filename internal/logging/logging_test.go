package logging

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestPrintfTagsServiceName(t *testing.T) {
	var buf bytes.Buffer
	l := New("orders", &buf)
	l.Printf("placed %s", "SC123456ABC")

	if !strings.Contains(buf.String(), "[orders] placed SC123456ABC") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestWarnfMarksEntry(t *testing.T) {
	var buf bytes.Buffer
	l := New("sync", &buf)
	l.Warnf("remote write failed")

	if !strings.Contains(buf.String(), "WARN remote write failed") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestDebugRingIsBounded(t *testing.T) {
	l := Discard("test")
	for i := 0; i < ringSize+15; i++ {
		l.Printf("entry %d", i)
	}

	ring := l.DebugLog()
	if len(ring) != ringSize {
		t.Fatalf("ring holds %d entries, want %d", len(ring), ringSize)
	}
	if !strings.Contains(ring[0], fmt.Sprintf("entry %d", 15)) {
		t.Fatalf("oldest surviving entry = %q, want entry 15", ring[0])
	}
	if !strings.Contains(ring[len(ring)-1], fmt.Sprintf("entry %d", ringSize+14)) {
		t.Fatalf("newest entry = %q", ring[len(ring)-1])
	}
}

func TestNamedSharesOutputNotRing(t *testing.T) {
	var buf bytes.Buffer
	parent := New("app", &buf)
	child := parent.Named("menu")

	child.Printf("saved")
	if !strings.Contains(buf.String(), "[menu] saved") {
		t.Fatalf("output = %q", buf.String())
	}
	if len(parent.DebugLog()) != 0 {
		t.Fatal("child entries leaked into the parent's ring")
	}
}
