package domain

import (
	"testing"
)

func TestNewRunID_IsValid(t *testing.T) {
	id := NewRunID()
	if !ValidRunID(id) {
		t.Errorf("NewRunID() produced invalid id: %q", id)
	}
}

func TestValidRunID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected bool
	}{
		{"valid id", "2026-08-29-14-05-33", true},
		{"date only", "2026-08-29", false},
		{"empty", "", false},
		{"random dir", "scratch", false},
		{"bad month", "2026-13-29-14-05-33", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidRunID(tt.id); got != tt.expected {
				t.Errorf("ValidRunID(%q) = %v, want %v", tt.id, got, tt.expected)
			}
		})
	}
}

func TestRun_DisplayDate(t *testing.T) {
	r := Run{ID: "2026-08-29-14-05-33"}
	if got := r.DisplayDate(); got != "Aug 29, 2026 14:05" {
		t.Errorf("DisplayDate() = %q", got)
	}

	// Unparseable ids fall back to the raw id
	r = Run{ID: "not-a-run"}
	if got := r.DisplayDate(); got != "not-a-run" {
		t.Errorf("DisplayDate() fallback = %q", got)
	}
}

func TestPicks_Toggle(t *testing.T) {
	var p Picks

	p.Toggle(3)
	if !p.Has(3) {
		t.Error("expected 3 to be picked after toggle")
	}

	p.Toggle(7)
	p.Toggle(3)
	if p.Has(3) {
		t.Error("expected 3 to be unpicked after second toggle")
	}
	if !p.Has(7) {
		t.Error("expected 7 to remain picked")
	}
}

func TestSummaryLine(t *testing.T) {
	if got := SummaryLine(42, 0); got != "42 concepts" {
		t.Errorf("SummaryLine(42, 0) = %q", got)
	}
	if got := SummaryLine(42, 5); got != "42 concepts, 5 picked" {
		t.Errorf("SummaryLine(42, 5) = %q", got)
	}
}
