package sample

import (
	"strconv"
	"testing"

	"homicide-report/utils"
)

func TestGenerateCount(t *testing.T) {
	g := NewSeeded(utils.NewLogger(), 42)

	incidents := g.Generate(50)
	if len(incidents) != 50 {
		t.Fatalf("expected 50 incidents, got %d", len(incidents))
	}
	for i, inc := range incidents {
		if inc.Name == "" || inc.URL == "" || inc.Source != "sample" {
			t.Errorf("incident %d missing provenance fields: %+v", i, inc)
		}
	}
}

func TestGenerateIncludesDirtyAges(t *testing.T) {
	g := NewSeeded(utils.NewLogger(), 42)

	dirty := 0
	for _, inc := range g.Generate(80) {
		n, err := strconv.Atoi(inc.RawAge)
		if err != nil || n > 100 {
			dirty++
		}
	}
	// Every eighth record carries a malformed or implausible age.
	if dirty == 0 {
		t.Error("expected some dirty age values in the sample")
	}
}

func TestGenerateReproducible(t *testing.T) {
	a := NewSeeded(utils.NewLogger(), 7).Generate(20)
	b := NewSeeded(utils.NewLogger(), 7).Generate(20)

	for i := range a {
		if a[i].RawAge != b[i].RawAge || a[i].Method != b[i].Method {
			t.Fatalf("same seed should generate the same data; diverged at %d", i)
		}
	}
}
