package formats

import "testing"

func TestParseYAMLRows(t *testing.T) {
	lvl, err := ParseYAML([]byte("id: t\nname: Test\nrows:\n  - \"12 .9\"\n  - \"0000\"\n"))
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.Name != "Test" || len(lvl.Grid) != 2 {
		t.Fatalf("unexpected level: %+v", lvl)
	}
	expected := []int{1, 2, 0, 9}
	for i, v := range expected {
		if lvl.Grid[0][i] != v {
			t.Errorf("Grid[0][%d] = %d, expected %d", i, lvl.Grid[0][i], v)
		}
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing id", "rows:\n  - \"1\"\n"},
		{"invalid rune", "id: t\nrows:\n  - \"1x\"\n"},
		{"malformed", "id: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
