package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPadString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		align string
		want  string
	}{
		{
			name:  "left pad",
			s:     "ab",
			width: 4,
			align: "left",
			want:  "ab  ",
		},
		{
			name:  "right pad",
			s:     "ab",
			width: 4,
			align: "right",
			want:  "  ab",
		},
		{
			name:  "center pad",
			s:     "ab",
			width: 4,
			align: "center",
			want:  " ab ",
		},
		{
			name:  "already wide enough",
			s:     "abcd",
			width: 4,
			align: "left",
			want:  "abcd",
		},
		{
			name:  "multi-byte icon pads by display width",
			s:     IconSuccess,
			width: 4,
			align: "left",
			want:  IconSuccess + "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padString(tt.s, tt.width, tt.align)
			if got != tt.want {
				t.Errorf("padString(%q, %d, %q) = %q, want %q", tt.s, tt.width, tt.align, got, tt.want)
			}
			if w := lipgloss.Width(got); tt.width > lipgloss.Width(tt.s) && w != tt.width {
				t.Errorf("padded width = %d, want %d", w, tt.width)
			}
		})
	}
}

func TestTableRender_AlignsMultiByteCells(t *testing.T) {
	table := NewTable([]TableColumn{
		{Header: "TITLE", Width: 8},
		{Header: "PICK", Width: 4},
		{Header: "END", Width: 3},
	})
	table.AddRow([]string{"first", IconSuccess, "x"})
	table.AddRow([]string{"second", "", "x"})

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rendered lines, got %d", len(lines))
	}

	// The END column must start at the same cell on every row, icon or not
	rowA, rowB := lines[2], lines[3]
	idxA := strings.Index(rowA, "x")
	idxB := strings.Index(rowB, "x")
	if idxA == -1 || idxB == -1 {
		t.Fatalf("marker column missing: %q / %q", rowA, rowB)
	}
	if lipgloss.Width(rowA[:idxA]) != lipgloss.Width(rowB[:idxB]) {
		t.Errorf("columns misaligned: %q vs %q", rowA, rowB)
	}
}
