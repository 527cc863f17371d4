package sanitizer

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "12 Main Street", "12 Main Street"},
		{"leading and trailing space", "  12 Main Street  ", "12 Main Street"},
		{"collapsed whitespace", "12\tMain\n\nStreet", "12 Main Street"},
		{"control characters dropped", "ring\x00 the\x07 bell", "ring the bell"},
		{"unicode preserved", "Allée des Érables", "Allée des Érables"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"uuid untouched", "0f8fad5b-d9cb-469f-a165-70867728950e", "0f8fad5b-d9cb-469f-a165-70867728950e"},
		{"spaces stripped", " svc-123 ", "svc-123"},
		{"injection characters removed", `svc"; drop`, "svcdrop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanID(tt.input); got != tt.want {
				t.Errorf("CleanID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
