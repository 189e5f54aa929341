package symbolset

import "testing"

func TestTakeConsumesOnce(t *testing.T) {
	s := New("double", "tight")
	if !s.Take("double") {
		t.Fatal("expected first take of double to succeed")
	}
	if s.Take("double") {
		t.Fatal("expected second take of double to fail")
	}
	if !s.Take("tight") {
		t.Fatal("expected take of tight to succeed")
	}
}

func TestRemainingAfterPartialConsumption(t *testing.T) {
	s := New("double", "tight", "closed")
	s.Take("tight")
	rem := s.Remaining()
	if len(rem) != 2 || rem[0] != "closed" || rem[1] != "double" {
		t.Fatalf("unexpected remaining set: %v", rem)
	}
}

func TestNewDeduplicatesAndSorts(t *testing.T) {
	s := New("b", "a", "b")
	if s.Len() != 2 {
		t.Fatalf("expected 2 unique symbols, got %d", s.Len())
	}
	if s.String() != ":a:b" {
		t.Fatalf("unexpected string form: %s", s.String())
	}
}

func TestHasIgnoresConsumption(t *testing.T) {
	s := New("double")
	s.Take("double")
	if !s.Has("double") {
		t.Fatal("expected Has to report true even after Take")
	}
}
