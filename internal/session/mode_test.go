package session

import "testing"

func TestMode(t *testing.T) {
	t.Run("String Roundtrip", func(t *testing.T) {
		for _, m := range Modes() {
			parsed, err := ParseMode(m.String())
			if err != nil {
				t.Errorf("ParseMode(%q) returned error: %v", m.String(), err)
			}
			if parsed != m {
				t.Errorf("ParseMode(%q) = %v, want %v", m.String(), parsed, m)
			}
		}
	})

	t.Run("ParseMode Unknown", func(t *testing.T) {
		if _, err := ParseMode("bookmarks"); err == nil {
			t.Error("expected error for unknown mode")
		}
	})

	t.Run("Default Is First In Selector", func(t *testing.T) {
		if Modes()[0] != DefaultMode {
			t.Errorf("expected default mode %v to be first, got %v", DefaultMode, Modes()[0])
		}
	})

	t.Run("Fields Per Mode", func(t *testing.T) {
		tt := []struct {
			mode Mode
			want []Field
		}{
			{ModeURL, []Field{FieldText}},
			{ModeMyPlaylists, []Field{FieldRangeStart, FieldRangeEnd}},
			{ModeSaved, []Field{FieldLimit}},
			{ModeSearch, []Field{FieldText, FieldLimit}},
		}

		for _, tc := range tt {
			got := tc.mode.Fields()
			if len(got) != len(tc.want) {
				t.Errorf("%v fields = %v, want %v", tc.mode, got, tc.want)
				continue
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("%v field %d = %v, want %v", tc.mode, i, got[i], tc.want[i])
				}
			}
		}
	})

	t.Run("UsesDirectory", func(t *testing.T) {
		for _, m := range Modes() {
			want := m == ModeMyPlaylists
			if m.UsesDirectory() != want {
				t.Errorf("%v UsesDirectory = %v, want %v", m, m.UsesDirectory(), want)
			}
		}
	})
}
