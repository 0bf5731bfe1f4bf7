package domain

import "testing"

func TestSong_IsLocal(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected bool
	}{
		{"local file", "local:/music/track.mp3", true},
		{"remote id", "dQw4w9WgXcQ", false},
		{"prefix mid-string", "song-local:x", false},
		{"empty id", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Song{ID: tt.id}
			if got := s.IsLocal(); got != tt.expected {
				t.Errorf("IsLocal(%q) = %v, want %v", tt.id, got, tt.expected)
			}
		})
	}
}

func TestSortOrder_String(t *testing.T) {
	if SortAscending.String() != "ascending" {
		t.Errorf("Expected 'ascending', got %q", SortAscending.String())
	}
	if SortDescending.String() != "descending" {
		t.Errorf("Expected 'descending', got %q", SortDescending.String())
	}
}
