package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"State", "Value"})

	table.AddRow([]string{"idle", "#3b82f6"})
	table.AddRow([]string{"hover"})
	table.AddRow([]string{"active", "#2563eb", "extra"})

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected short row to be padded, got %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected long row to be truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"State", "Value", "Quality"})
	table.AddRow([]string{"idle", "#3b82f6", "1.00"})
	table.AddRow([]string{"disabled", "#6a8fd0", "0.95"})

	output := table.Render()
	for _, want := range []string{"State", "Value", "Quality", "idle", "disabled", "#6a8fd0", "0.95"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q:\n%s", want, output)
		}
	}

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d:\n%s", len(lines), output)
	}
	if !strings.HasPrefix(lines[1], "--------") {
		t.Errorf("Expected separator line with dashes, got: %q", lines[1])
	}
	// The second column starts at the same offset on every line.
	col := strings.Index(lines[0], "Value")
	for _, line := range lines[2:] {
		if idx := strings.Index(line, "#"); idx != col {
			t.Errorf("Value column at %d, want %d in %q", idx, col, line)
		}
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if output := NewTable(nil).Render(); output != "" {
		t.Errorf("Expected empty string for empty table, got: %q", output)
	}
}

func TestTableRenderNoRows(t *testing.T) {
	output := NewTable([]string{"Column1", "Column2"}).Render()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected header and separator lines, got %d", len(lines))
	}
}

func TestTableStyledCells(t *testing.T) {
	swatch := lipgloss.NewStyle().Background(lipgloss.Color("#3b82f6")).Render("    ")

	table := NewTable([]string{"Swatch", "Value"})
	table.AddRow([]string{swatch, "#3b82f6"})
	table.AddRow([]string{"", "#2563eb"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d", len(lines))
	}
	// Escape sequences must not widen the column.
	if w0, w1 := lipgloss.Width(lines[2]), lipgloss.Width(lines[3]); w0 != w1 {
		t.Errorf("Styled row width %d differs from plain row width %d", w0, w1)
	}
}

func TestTableAlignRight(t *testing.T) {
	table := NewTable([]string{"Name", "Ratio"})
	table.AlignRight(1)
	table.AddRow([]string{"black", "21.00"})
	table.AddRow([]string{"grey", "4.5"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if !strings.HasSuffix(lines[3], "  4.5") {
		t.Errorf("Expected right-aligned value, got %q", lines[3])
	}
}

func TestTableWrapsLongCells(t *testing.T) {
	table := NewTable([]string{"State", "Reason"})
	table.SetColumnMaxWidth(1, 12)
	table.AddRow([]string{"hover", "lightened by 0.060 OKLCH lightness"})

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) <= 3 {
		t.Fatalf("Expected the reason to wrap, got:\n%s", strings.Join(lines, "\n"))
	}
	for _, line := range lines[2:] {
		if w := lipgloss.Width(line); w > len("State")+2+12 {
			t.Errorf("Wrapped line too wide (%d): %q", w, line)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"}, // Width less than string length
		{"", 5, "     "},
		{"→", 3, "→  "},
	}

	for _, tt := range tests {
		result := padRight(tt.input, tt.width)
		if result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"short", 10, []string{"short"}},
		{"no limit at all", 0, []string{"no limit at all"}},
		{"one two three", 7, []string{"one two", "three"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}

	for _, tt := range tests {
		got := wrapText(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
